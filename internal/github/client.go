// Package github fetches public GitHub profiles and repositories and shapes
// them into the résumé's project showcase.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the builder to the GitHub API.
const DefaultUserAgent = "github-resume-builder/1.0"

// reposPerPage matches the single page the builder reads.
const reposPerPage = 100

// Profile is the subset of a GitHub user the résumé displays.
type Profile struct {
	Login     string
	AvatarURL string
	Bio       string
	Location  string
}

// Repository is the subset of a GitHub repository the résumé displays.
// Description and Language are nil when GitHub reports null.
type Repository struct {
	Name        string
	Description *string
	Stars       int
	HTMLURL     string
	Language    *string
	Fork        bool
}

// Options configures the client.
type Options struct {
	BaseURL   string
	Token     string // optional; raises the rate limit
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults for the public API.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the GitHub REST API through go-github.
type Client struct {
	api       *gh.Client
	baseURL   string
	timeout   time.Duration
	configErr error
}

// NewClient creates a client. A nil options value uses DefaultOptions.
// An unparsable BaseURL is reported by the first fetch.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	api := gh.NewClient(&http.Client{Timeout: timeout})
	if opts.Token != "" {
		api = api.WithAuthToken(opts.Token)
	}
	api.UserAgent = userAgent

	c := &Client{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		c.configErr = fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	} else {
		api.BaseURL = endpoint
	}
	return c
}

// FetchProfile retrieves a user's public profile.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	path := "users/" + url.PathEscape(username)
	if err := c.check(path, username); err != nil {
		return nil, err
	}

	user, resp, err := c.api.Users.Get(ctx, url.PathEscape(username))
	if err != nil {
		return nil, c.apiError(path, resp, err)
	}
	return &Profile{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
		Bio:       user.GetBio(),
		Location:  user.GetLocation(),
	}, nil
}

// FetchRepos retrieves the first page of a user's repositories, sorted by the API.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]Repository, error) {
	path := "users/" + url.PathEscape(username) + "/repos"
	if err := c.check(path, username); err != nil {
		return nil, err
	}

	listOpts := &gh.RepositoryListByUserOptions{
		Sort:        "stars",
		ListOptions: gh.ListOptions{PerPage: reposPerPage},
	}
	repos, resp, err := c.api.Repositories.ListByUser(ctx, url.PathEscape(username), listOpts)
	if err != nil {
		return nil, c.apiError(path, resp, err)
	}

	out := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		out = append(out, Repository{
			Name:        repo.GetName(),
			Description: repo.Description,
			Stars:       repo.GetStargazersCount(),
			HTMLURL:     repo.GetHTMLURL(),
			Language:    repo.Language,
			Fork:        repo.GetFork(),
		})
	}
	return out, nil
}

func (c *Client) check(path, username string) error {
	if c.configErr != nil {
		return &APIError{URL: c.baseURL + "/" + path, Message: "invalid client configuration", Cause: c.configErr}
	}
	if username == "" {
		return &APIError{URL: c.baseURL + "/" + path, Message: "username is empty"}
	}
	return nil
}

// apiError maps a go-github failure onto APIError, keeping GitHub's own message.
func (c *Client) apiError(path string, resp *gh.Response, err error) error {
	apiErr := &APIError{URL: c.baseURL + "/" + path, Cause: err}
	if resp != nil && resp.Response != nil {
		apiErr.StatusCode = resp.StatusCode
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.URL = resp.Request.URL.String()
		}
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var errResp *gh.ErrorResponse
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &rateErr):
		apiErr.Message = rateErr.Message
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = http.StatusForbidden
		}
	case errors.As(err, &abuseErr):
		apiErr.Message = abuseErr.Message
	case errors.As(err, &errResp):
		apiErr.Message = errResp.Message
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		apiErr.Message = "failed to parse response JSON"
	default:
		apiErr.Message = "HTTP request failed"
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.StatusCode)
	}
	return apiErr
}
