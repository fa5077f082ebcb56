// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/github-resume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintResume outputs a human-readable summary of a résumé snapshot and
// where it was restored from.
func (p *Printer) PrintResume(data *types.ResumeData, source string) {
	if data == nil {
		return
	}

	var sb strings.Builder
	info := data.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:      %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("Title:     %s\n", info.Title))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", info.Email))
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", info.Location))
	}
	if data.GithubUsername != "" {
		sb.WriteString(fmt.Sprintf("GitHub:    %s\n", data.GithubUsername))
	}
	if source != "" {
		sb.WriteString(fmt.Sprintf("Source:    %s\n", source))
	}
	sb.WriteString("\n")

	if len(data.Experience) == 0 {
		sb.WriteString("Experience: none (fresher)\n")
	} else {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(data.Experience)))
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Title, exp.Company))
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
	}

	if len(data.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:    %s\n", strings.Join(data.Skills, ", ")))
	}

	if data.GithubData != nil && len(data.GithubData.Repos) > 0 {
		sb.WriteString("\nFeatured projects:\n")
		for _, repo := range data.GithubData.Repos {
			sb.WriteString(fmt.Sprintf("  ★ %-6d %s\n", repo.Stars, repo.Name))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidates outputs the projects available for featuring, marking the
// ones that are selected.
func (p *Printer) PrintCandidates(candidates []types.Repo, selected []types.Repo) {
	if len(candidates) == 0 {
		p.printBox("GITHUB PROJECTS", "No eligible repositories (forks are excluded)")
		return
	}

	chosen := make(map[string]bool, len(selected))
	for _, repo := range selected {
		chosen[repo.Name] = true
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d candidates, %d selected:\n\n", len(candidates), len(selected)))
	for _, repo := range candidates {
		mark := " "
		if chosen[repo.Name] {
			mark = "✓"
		}
		line := fmt.Sprintf("[%s] %s (★ %d)", mark, repo.Name, repo.Stars)
		if repo.Language != "" {
			line += " " + repo.Language
		}
		sb.WriteString(line + "\n")
	}

	p.printBox("GITHUB PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}
