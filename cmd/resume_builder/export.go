package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/github-resume/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [link]",
	Short: "Export the current résumé to an A4 PDF",
	Long: "Restores the résumé (link first, then cache), renders it and prints it to PDF with headless Chrome. " +
		"The file defaults to <Name>_resume.pdf.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return runExport(cmd.Context(), a, firstArg(args), exportOutput)
	},
}

var (
	exportOutput  string
	exportTimeout int
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output PDF file (default <Name>_resume.pdf)")
	exportCmd.Flags().IntVar(&exportTimeout, "timeout", 60, "Export timeout in seconds")

	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, a *app, source, output string) error {
	data, err := a.restoreRequired(ctx, source)
	if err != nil {
		return err
	}

	html, err := a.renderHTML(data)
	if err != nil {
		return err
	}

	if output == "" {
		output = export.FileName(data.PersonalInfo.Name)
	}

	exporter := export.NewPDFExporter(a.cfg.ChromePath, a.cfg.Verbose)
	if exportTimeout > 0 {
		exporter.Timeout = time.Duration(exportTimeout) * time.Second
	}
	if err := exporter.WriteFile(ctx, html, output); err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	_, _ = fmt.Fprintf(a.out, "Exported %s\n", output)
	return nil
}
