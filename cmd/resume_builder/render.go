package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/github-resume/internal/rendering"
	"github.com/jonathan/github-resume/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [link]",
	Short: "Render the current résumé to HTML",
	Long:  "Restores the résumé (link first, then cache) and renders it to a standalone HTML file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return runRender(cmd.Context(), a, firstArg(args), renderOutput)
	},
}

var renderOutput string

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (required)")

	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(ctx context.Context, a *app, source, output string) error {
	data, err := a.restoreRequired(ctx, source)
	if err != nil {
		return err
	}

	html, err := a.renderHTML(data)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(output)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	_, _ = fmt.Fprintf(a.out, "Rendered %s\n", output)
	return nil
}

// restoreRequired is restore for commands that cannot proceed without a résumé.
func (a *app) restoreRequired(ctx context.Context, source string) (*types.ResumeData, error) {
	data, _ := a.restore(ctx, source)
	if data == nil {
		return nil, errors.New(noStateMessage)
	}
	return data, nil
}

func (a *app) renderHTML(data *types.ResumeData) (string, error) {
	html, err := rendering.Render(data, &rendering.Options{
		TemplatePath: a.cfg.Template,
		Theme:        a.cfg.Theme,
	})
	if err != nil {
		var templateErr *rendering.TemplateError
		var renderErr *rendering.RenderError
		if errors.As(err, &templateErr) || errors.As(err, &renderErr) {
			return "", fmt.Errorf("rendering failed: %w", err)
		}
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return html, nil
}
