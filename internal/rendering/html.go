// Package rendering renders résumé snapshots into a printable HTML document.
package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strings"

	"github.com/jonathan/github-resume/internal/types"
)

// ChartAlt is the alt text of the contribution chart image. The PDF exporter
// looks for it to wait until the chart has loaded.
const ChartAlt = "GitHub Contribution Chart"

// ChartBaseURL serves contribution charts by username.
const ChartBaseURL = "https://ghchart.rshah.org/"

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

const defaultTemplate = "templates/resume.html.tmpl"

// Options configures rendering. The zero value renders the embedded template
// with the light theme.
type Options struct {
	TemplatePath string // overrides the embedded template
	Theme        string
}

// TemplateData represents the data structure passed to the HTML template
type TemplateData struct {
	Personal       types.PersonalInfo
	Summary        string
	AvatarURL      string
	GithubUsername string
	ProfileURL     string
	Projects       []types.Repo
	ChartURL       string
	ChartAlt       string
	Experience     []types.Experience
	Education      []string
	Skills         []string
	Theme          string
}

// RenderHTML renders data with the embedded template.
func RenderHTML(data *types.ResumeData) (string, error) {
	return Render(data, nil)
}

// Render renders data as a standalone HTML document.
func Render(data *types.ResumeData, opts *Options) (string, error) {
	if data == nil {
		return "", &RenderError{Message: "no resume data to render"}
	}
	if opts == nil {
		opts = &Options{}
	}

	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return "", err
	}

	templateData, err := buildTemplateData(data, opts.Theme)
	if err != nil {
		return "", &RenderError{
			Message: "failed to build template data",
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, templateData); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate loads the template at templatePath, or the embedded one when empty
func parseTemplate(templatePath string) (*template.Template, error) {
	var content []byte
	var err error
	if templatePath == "" {
		content, err = templateFS.ReadFile(defaultTemplate)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData flattens the snapshot into what the template displays
func buildTemplateData(data *types.ResumeData, theme string) (*TemplateData, error) {
	switch theme {
	case "":
		theme = ThemeLight
	case ThemeLight, ThemeDark:
	default:
		return nil, fmt.Errorf("unknown theme: %s", theme)
	}

	td := &TemplateData{
		Personal:       data.PersonalInfo,
		GithubUsername: data.GithubUsername,
		Experience:     data.Experience,
		Education:      data.Education,
		Skills:         data.Skills,
		Theme:          theme,
	}
	if data.PersonalInfo.Summary != nil {
		td.Summary = *data.PersonalInfo.Summary
	}
	if data.GithubUsername != "" {
		td.ProfileURL = "https://github.com/" + url.PathEscape(data.GithubUsername)
	}
	if data.GithubData != nil {
		td.AvatarURL = data.GithubData.AvatarURL
		td.Projects = data.GithubData.Repos
		if data.GithubUsername != "" {
			td.ChartURL = ChartBaseURL + url.PathEscape(data.GithubUsername)
			td.ChartAlt = ChartAlt
		}
	}

	return td, nil
}
