// Package intake turns raw résumé form input into a ResumeData snapshot.
package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/github-resume/internal/schemas"
	"github.com/jonathan/github-resume/internal/types"
)

// Form holds the fields exactly as the user typed them.
type Form struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	// Summary is nil when the summary field was not submitted at all.
	Summary *string `json:"summary,omitempty"`

	// Fresher declares that the candidate has no work experience yet.
	Fresher     bool             `json:"fresher,omitempty"`
	Experiences []ExperienceForm `json:"experiences,omitempty"`

	Education      string `json:"education,omitempty"` // one entry per line
	Skills         string `json:"skills,omitempty"`    // comma separated
	GithubUsername string `json:"githubUsername,omitempty"`
}

// ExperienceForm is one experience block of the form, highlights unfiltered.
type ExperienceForm struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Highlights []string `json:"highlights"`
}

// LoadForm reads a JSON form file, checking it against the form schema first.
func LoadForm(path string) (*Form, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %s: %w", path, err)
	}
	return ParseForm(content)
}

// ParseForm validates and decodes form JSON.
func ParseForm(content []byte) (*Form, error) {
	if err := schemas.ValidateForm(content); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	var form Form
	if err := json.Unmarshal(content, &form); err != nil {
		return nil, fmt.Errorf("failed to parse form JSON: %w", err)
	}
	return &form, nil
}

// ToResumeData builds a snapshot from the form.
// Returns a *ValidationError when a required field is empty.
func (f *Form) ToResumeData() (*types.ResumeData, error) {
	data := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			Name:     f.Name,
			Title:    f.Title,
			Email:    f.Email,
			Phone:    f.Phone,
			Location: f.Location,
		},
		Experience:     buildExperience(f.Fresher, f.Experiences),
		Education:      SplitEducation(f.Education),
		Skills:         SplitSkills(f.Skills),
		GithubUsername: strings.TrimSpace(f.GithubUsername),
	}
	if f.Summary != nil {
		data.PersonalInfo.Summary = types.StringPtr(*f.Summary)
	}

	if err := checkRequired(data); err != nil {
		return nil, err
	}
	return data, nil
}

// buildExperience never returns nil: a fresher and an empty form both
// declare an empty work history.
func buildExperience(fresher bool, forms []ExperienceForm) []types.Experience {
	experience := make([]types.Experience, 0, len(forms))
	if fresher {
		return experience
	}
	for _, exp := range forms {
		experience = append(experience, types.Experience{
			Title:      exp.Title,
			Company:    exp.Company,
			Location:   exp.Location,
			StartDate:  exp.StartDate,
			EndDate:    exp.EndDate,
			Highlights: nonBlank(exp.Highlights),
		})
	}
	return experience
}

// SplitEducation returns one entry per non-empty line. Lines keep their spacing.
func SplitEducation(text string) []string {
	entries := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// SplitSkills splits a comma separated list, trimming each skill and dropping empties.
func SplitSkills(text string) []string {
	skills := []string{}
	for _, skill := range strings.Split(text, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func nonBlank(items []string) []string {
	out := []string{}
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func checkRequired(data *types.ResumeData) error {
	err := data.Validate()
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Missing: missing}
}
