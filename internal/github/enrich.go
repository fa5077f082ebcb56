package github

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/github-resume/internal/types"
	"golang.org/x/sync/errgroup"
)

// Enrichment is a fetched profile plus every showcase candidate, best first.
type Enrichment struct {
	Profile    Profile
	Candidates []types.Repo
}

// Enrich fetches the profile and repositories concurrently and shapes the
// repositories into showcase candidates.
func (c *Client) Enrich(ctx context.Context, username string) (*Enrichment, error) {
	if username == "" {
		return nil, fmt.Errorf("github username is empty")
	}

	var (
		profile *Profile
		repos   []Repository
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.FetchProfile(gctx, username)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		r, err := c.FetchRepos(gctx, username)
		if err != nil {
			return fmt.Errorf("failed to fetch repositories: %w", err)
		}
		repos = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Enrichment{
		Profile:    *profile,
		Candidates: Candidates(repos),
	}, nil
}

// Candidates drops forks, orders by stars descending (ties keep API order)
// and maps repositories onto the résumé project shape.
func Candidates(repos []Repository) []types.Repo {
	owned := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			owned = append(owned, repo)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Stars > owned[j].Stars
	})

	candidates := make([]types.Repo, 0, len(owned))
	for _, repo := range owned {
		candidates = append(candidates, types.Repo{
			Name:        repo.Name,
			Description: deref(repo.Description),
			Stars:       repo.Stars,
			URL:         repo.HTMLURL,
			Language:    deref(repo.Language),
		})
	}
	return candidates
}

// Merge returns a copy of data carrying the profile and the first limit
// candidates. When no candidate survives, GithubData is left unset.
func Merge(data *types.ResumeData, enrichment *Enrichment, limit int) *types.ResumeData {
	out := data.Clone()
	if out == nil || enrichment == nil {
		return out
	}
	if limit <= 0 {
		limit = types.MaxFeaturedRepos
	}

	repos := enrichment.Candidates
	if len(repos) > limit {
		repos = repos[:limit]
	}
	if len(repos) == 0 {
		out.GithubData = nil
		return out
	}

	out.GithubData = &types.GitHubData{
		AvatarURL: enrichment.Profile.AvatarURL,
		Bio:       enrichment.Profile.Bio,
		Location:  enrichment.Profile.Location,
		Repos:     append([]types.Repo{}, repos...),
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
