// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxFeaturedRepos is the number of GitHub projects a résumé is meant to showcase.
// The share codec and the cache do not enforce it; curation and enrichment do.
const MaxFeaturedRepos = 4

// ResumeData represents one résumé snapshot.
// The JSON field names are the wire format of both the cache entry and the share token.
type ResumeData struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Experience     []Experience `json:"experience"`
	Education      []string     `json:"education"`
	Skills         []string     `json:"skills"`
	GithubUsername string       `json:"githubUsername"`
	GithubData     *GitHubData  `json:"githubData,omitempty"`
}

// PersonalInfo holds the contact block of a résumé
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	// Summary is nil when the field was never filled in, which is distinct from "".
	Summary *string `json:"summary,omitempty"`
}

// Experience represents a single position. Dates are free-form strings.
type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Highlights []string `json:"highlights"`
}

// GitHubData is the enrichment merged into a résumé from a public GitHub profile
type GitHubData struct {
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Repos     []Repo `json:"repos"`
}

// Repo is a project summary shown in the Featured Projects section
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	URL         string `json:"url"`
	Language    string `json:"language"`
}

// Validate checks that the required personal fields are present.
// No other validation is performed on a résumé.
func (r *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Clone returns a deep copy of the snapshot.
// Nil slices stay nil and empty slices stay empty so the copy is structurally equal.
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}

	out := *r
	if r.PersonalInfo.Summary != nil {
		summary := *r.PersonalInfo.Summary
		out.PersonalInfo.Summary = &summary
	}

	if r.Experience != nil {
		out.Experience = make([]Experience, len(r.Experience))
		for i, exp := range r.Experience {
			exp.Highlights = cloneStrings(exp.Highlights)
			out.Experience[i] = exp
		}
	}
	out.Education = cloneStrings(r.Education)
	out.Skills = cloneStrings(r.Skills)

	if r.GithubData != nil {
		gh := *r.GithubData
		if gh.Repos != nil {
			gh.Repos = append([]Repo{}, r.GithubData.Repos...)
		}
		out.GithubData = &gh
	}

	return &out
}

// StringPtr returns a pointer to s, for optional fields such as Summary.
func StringPtr(s string) *string {
	return &s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
