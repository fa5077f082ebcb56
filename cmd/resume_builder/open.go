package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [link]",
	Short: "Restore the current résumé and print it as JSON",
	Long: "Restores the résumé from a share link (full URL, ?query or token query) when given, " +
		"otherwise from the cache while it is fresh.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return runOpen(cmd.Context(), a, firstArg(args))
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(ctx context.Context, a *app, source string) error {
	data, src := a.restore(ctx, source)
	if data == nil {
		_, _ = fmt.Fprintln(a.out, noStateMessage)
		return nil
	}

	if a.cfg.Verbose {
		a.printer.PrintResume(data, string(src))
	}

	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(a.out, string(jsonBytes))
	return nil
}
