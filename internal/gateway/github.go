// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/readme-tools/update-repo-info/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching repository
// metadata. A failed lookup is reported through the RepoInfo value itself,
// never as an error, so one bad reference cannot abort the run.
type Fetcher interface {
	FetchRepoInfo(ctx context.Context, owner, repo string) domain.RepoInfo
}

// PullRequester defines the behavior the publisher needs to open or refresh
// the update pull request.
type PullRequester interface {
	EnsurePullRequest(ctx context.Context, owner, repo, head, base, title, body string) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher and
// PullRequester interfaces.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of
// GitHubGateway authenticated with the given token.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		logger:     logger,
	}, nil
}

// FetchRepoInfo looks up the star count and last-push time for owner/repo
// via the repository metadata endpoint. Any network error, non-2xx status,
// or missing timestamp yields a failure-flagged RepoInfo.
func (g *GitHubGateway) FetchRepoInfo(ctx context.Context, owner, repo string) domain.RepoInfo {
	repository, _, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		g.logger.Printf("Failed to fetch %s/%s: %v", owner, repo, err)
		return domain.RepoInfo{Failed: true}
	}
	pushedAt := repository.GetPushedAt()
	if pushedAt.IsZero() {
		g.logger.Printf("No pushed_at timestamp for %s/%s", owner, repo)
		return domain.RepoInfo{Failed: true}
	}
	return domain.RepoInfo{
		Stars:    repository.GetStargazersCount(),
		PushedAt: pushedAt.Time,
	}
}

// EnsurePullRequest opens a pull request from head to base, or updates the
// body of the one already open for that head branch so re-runs never stack
// duplicate PRs. It returns the pull request's HTML URL.
func (g *GitHubGateway) EnsurePullRequest(ctx context.Context, owner, repo, head, base, title, body string) (string, error) {
	opts := &github.PullRequestListOptions{
		State: "open",
		Head:  fmt.Sprintf("%s:%s", owner, head),
		Base:  base,
	}
	existing, _, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return "", fmt.Errorf("failed to list pull requests: %w", err)
	}
	if len(existing) > 0 {
		number := existing[0].GetNumber()
		g.logger.Printf("Updating existing pull request #%d", number)
		update := &github.PullRequest{Body: github.Ptr(body)}
		updated, _, err := g.restClient.PullRequests.Edit(ctx, owner, repo, number, update)
		if err != nil {
			return "", fmt.Errorf("failed to update pull request #%d: %w", number, err)
		}
		return updated.GetHTMLURL(), nil
	}
	created, _, err := g.restClient.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create pull request: %w", err)
	}
	g.logger.Printf("Pull request created: %s", created.GetHTMLURL())
	return created.GetHTMLURL(), nil
}
