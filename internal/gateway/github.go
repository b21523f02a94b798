// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/greeting-action/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching repository
// metadata from GitHub.
type Fetcher interface {
	FetchRepoStats(ctx context.Context, owner, repo string) (*domain.RepoStats, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The client carries no timeout: a run is single-shot and short-lived, and
// cancellation is left to the hosting platform terminating the process.
func NewGitHubGateway(token string, logger *log.Logger) *GitHubGateway {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}
}

// FetchRepoStats performs a single authenticated read of the repository's
// metadata and maps the response field-for-field into a RepoStats. It makes
// exactly one request: no retries, no rate-limit handling, no pagination.
func (g *GitHubGateway) FetchRepoStats(ctx context.Context, owner, repo string) (*domain.RepoStats, error) {
	g.logger.Printf("Fetching repository metadata for %s/%s...", owner, repo)
	r, _, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository metadata: %w", err)
	}
	stats := &domain.RepoStats{
		Name:     r.GetFullName(),
		Stars:    r.GetStargazersCount(),
		Forks:    r.GetForksCount(),
		Issues:   r.GetOpenIssuesCount(),
		Language: r.GetLanguage(),
		Size:     r.GetSize(),
		Created:  r.GetCreatedAt().UTC().Format(time.RFC3339),
		Updated:  r.GetUpdatedAt().UTC().Format(time.RFC3339),
	}
	g.logger.Println("Completed fetching repository metadata.")
	return stats, nil
}
