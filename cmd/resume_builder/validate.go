package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/github-resume/internal/intake"
	"github.com/jonathan/github-resume/internal/schemas"
	"github.com/jonathan/github-resume/internal/types"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a form or résumé JSON file",
	Long: "Checks a form (--form) or a résumé snapshot (--resume) against its JSON schema and the required fields. " +
		"--schema adds a check against your own JSON Schema file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if validateForm != "" {
			return runValidateForm(cmd.OutOrStdout(), validateForm, validateSchema)
		}
		return runValidateResume(cmd.OutOrStdout(), validateResume, validateSchema)
	},
}

var (
	validateForm   string
	validateResume string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateForm, "form", "", "Path to form JSON file")
	validateCmd.Flags().StringVar(&validateResume, "resume", "", "Path to résumé JSON file")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to an extra JSON Schema file (optional)")
	validateCmd.MarkFlagsMutuallyExclusive("form", "resume")
	validateCmd.MarkFlagsOneRequired("form", "resume")

	rootCmd.AddCommand(validateCmd)
}

func runValidateForm(out io.Writer, path, schemaPath string) error {
	if err := validateAgainstFile(path, schemaPath); err != nil {
		return err
	}

	form, err := intake.LoadForm(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, err := form.ToResumeData(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
	return nil
}

func runValidateResume(out io.Writer, path, schemaPath string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := validateAgainstFile(path, schemaPath); err != nil {
		return err
	}

	if err := schemas.ValidateResume(content); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return fmt.Errorf("failed to validate resume: %w", err)
	}

	var data types.ResumeData
	if err := json.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	if err := data.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("validation failed: %d required field(s) empty: %w", len(fieldErrs), err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
	return nil
}

// validateAgainstFile checks the document at path against the optional user schema.
func validateAgainstFile(path, schemaPath string) error {
	if schemaPath == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := schemas.ValidateFile(schemaPath, content); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("validation against %s failed: %w", schemaPath, err)
		}
		if errors.As(err, &schemaLoadErr) {
			return fmt.Errorf("could not use schema: %w", err)
		}
		return fmt.Errorf("failed to validate against schema: %w", err)
	}
	return nil
}
