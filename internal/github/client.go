// Package github fetches public repository data from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devlink/internal/cache"
	"devlink/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultBaseURL = "https://api.github.com"

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stargazers  int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the given API base URL. An empty baseURL
// selects the public GitHub API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// RecentRepos returns the user's five most recently created public
// repositories, served from Redis when a fresh copy exists.
func (c *Client) RecentRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	key := cache.GithubReposKey(username)

	err := cache.Aside(ctx, key, &repos, cache.GithubReposTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	span, ctx := observability.NewSpan(ctx, "github.fetch_repos", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.AddAttributes(attribute.String("github.username", username))

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("github API returned status %d for user %q", resp.StatusCode, username)
		span.SetError(err)
		return nil, err
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		span.SetError(err)
		return nil, err
	}
	return repos, nil
}
