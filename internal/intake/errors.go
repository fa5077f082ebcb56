package intake

import (
	"fmt"
	"strings"
)

// ValidationError lists the required form fields that were left empty
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
