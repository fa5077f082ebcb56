package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/github-resume/internal/curation"
	"github.com/jonathan/github-resume/internal/github"
	"github.com/jonathan/github-resume/internal/intake"
	"github.com/jonathan/github-resume/internal/types"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a résumé from a form and print its share link",
	Long: "Reads a form JSON file, enriches it with the user's public GitHub projects, " +
		"saves the result to the cache and prints a shareable link.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return runBuild(cmd.Context(), a, buildOptions{
			FormPath: buildForm,
			Projects: buildProjects,
			NoGithub: buildNoGithub,
			Output:   buildOutput,
		})
	},
}

var (
	buildForm     string
	buildProjects []string
	buildNoGithub bool
	buildOutput   string
)

func init() {
	buildCmd.Flags().StringVarP(&buildForm, "form", "f", "", "Path to form JSON file (required)")
	buildCmd.Flags().StringSliceVarP(&buildProjects, "projects", "p", nil, "Projects to feature, in order (default: top 4 by stars)")
	buildCmd.Flags().BoolVar(&buildNoGithub, "no-github", false, "Skip GitHub enrichment")
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Path to write the résumé JSON (optional)")

	if err := buildCmd.MarkFlagRequired("form"); err != nil {
		panic(fmt.Sprintf("failed to mark form flag as required: %v", err))
	}

	rootCmd.AddCommand(buildCmd)
}

type buildOptions struct {
	FormPath string
	Projects []string
	NoGithub bool
	Output   string
}

func runBuild(ctx context.Context, a *app, opts buildOptions) error {
	form, err := intake.LoadForm(opts.FormPath)
	if err != nil {
		return err
	}

	data, err := form.ToResumeData()
	if err != nil {
		return err
	}

	if data.GithubUsername != "" && !opts.NoGithub {
		data, err = enrich(ctx, a, data, opts.Projects)
		if err != nil {
			return err
		}
	} else if len(opts.Projects) > 0 {
		return fmt.Errorf("--projects needs a GitHub username in the form")
	}

	a.cache.Save(ctx, data)

	if opts.Output != "" {
		if err := writeResumeJSON(opts.Output, data); err != nil {
			return err
		}
	}

	link, ok := a.codec.Encode(data)
	if !ok {
		return fmt.Errorf("failed to generate shareable link")
	}
	_, _ = fmt.Fprintln(a.out, link)
	return nil
}

// enrich merges the user's GitHub profile and featured projects into data.
func enrich(ctx context.Context, a *app, data *types.ResumeData, projects []string) (*types.ResumeData, error) {
	if a.cfg.Verbose {
		a.logger.Printf("[GITHUB] Fetching profile and repositories for %s", data.GithubUsername)
	}

	enrichment, err := a.githubClient().Enrich(ctx, data.GithubUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GitHub data: %w", err)
	}

	merged := github.Merge(data, enrichment, types.MaxFeaturedRepos)
	if len(projects) > 0 {
		board, err := curation.SelectByName(enrichment.Candidates, projects)
		if err != nil {
			return nil, err
		}
		merged = board.Apply(merged)
	}

	if a.cfg.Verbose {
		var featured []types.Repo
		if merged.GithubData != nil {
			featured = merged.GithubData.Repos
		}
		a.printer.PrintCandidates(enrichment.Candidates, featured)
	}
	return merged, nil
}

func writeResumeJSON(path string, data *types.ResumeData) error {
	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write resume to output file: %w", err)
	}
	return nil
}
