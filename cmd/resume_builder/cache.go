package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the cached résumé",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached résumé",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return runCacheClear(cmd.Context(), a)
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(ctx context.Context, a *app) error {
	a.cache.Clear(ctx)
	_, _ = fmt.Fprintln(a.out, "Cache cleared")
	return nil
}
