// Package schemas provides JSON Schema validation for résumé forms and snapshots.
package schemas

import (
	"fmt"
	"os"
	"strings"

	embedded "github.com/jonathan/github-resume/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateForm validates raw form JSON against the embedded form schema.
func ValidateForm(jsonContent []byte) error {
	return ValidateEmbedded(embedded.FormSchema, jsonContent)
}

// ValidateResume validates snapshot JSON against the embedded résumé schema.
func ValidateResume(jsonContent []byte) error {
	return ValidateEmbedded(embedded.ResumeSchema, jsonContent)
}

// ValidateEmbedded validates JSON content against one of the embedded schemas.
func ValidateEmbedded(schemaName string, jsonContent []byte) error {
	schemaContent, err := embedded.FS.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "embedded schema not found",
			Cause:   err,
		}
	}
	return validateBytes(schemaName, schemaContent, jsonContent)
}

// ValidateFile validates JSON content against a user-supplied schema file,
// for stricter house rules layered on the built-in checks.
func ValidateFile(schemaPath string, jsonContent []byte) error {
	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		message := "failed to read schema file"
		if os.IsNotExist(err) {
			message = "schema file not found"
		}
		return &SchemaLoadError{Path: schemaPath, Message: message, Cause: err}
	}
	return validateBytes(schemaPath, schemaContent, jsonContent)
}

func validateBytes(schemaName string, schemaContent, jsonContent []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaContent),
		gojsonschema.NewBytesLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
