// Package publisher writes the rewritten README back into the checked-out
// working copy and publishes it, either as a direct commit to the base
// branch or through a dedicated pull request branch.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/readme-tools/update-repo-info/internal/gateway"
)

// Mode selects how changes are published.
type Mode string

const (
	// ModeDirect commits straight to the base branch.
	ModeDirect Mode = "direct"
	// ModePR publishes through the dedicated update branch and a pull request.
	ModePR Mode = "pr"
)

const (
	commitMessage = "chore: update repo info in README"
	prBranch      = "update-repo-info"
	botName       = "github-actions[bot]"
	botEmail      = "41898282+github-actions[bot]@users.noreply.github.com"
)

// Request carries one publish operation. Original and Updated are the
// document texts before and after the rewrite; when they are equal the
// publisher takes no action at all.
type Request struct {
	ReadmePath   string // repository-relative path of the document
	Original     string
	Updated      string
	Mode         Mode
	BaseBranch   string
	Owner        string // required in ModePR
	Repo         string // required in ModePR
	UpdatedLinks []string
}

// Publisher commits the rewritten document and pushes it to the remote.
// Any failure here (auth, permissions, branch protection) is returned as an
// error; the caller treats it as fatal.
type Publisher struct {
	repo     *git.Repository
	prOpener gateway.PullRequester
	token    string
	logger   *log.Logger
	now      func() time.Time
}

// New creates a Publisher operating on the given repository. The token is
// used as the push credential; prOpener is only exercised in ModePR.
func New(repo *git.Repository, prOpener gateway.PullRequester, token string, logger *log.Logger) *Publisher {
	return &Publisher{
		repo:     repo,
		prOpener: prOpener,
		token:    token,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish applies req. An unchanged document is a no-op, never an empty
// commit or an empty pull request.
func (p *Publisher) Publish(ctx context.Context, req Request) error {
	if req.Updated == req.Original {
		p.logger.Println("No changes to publish.")
		return nil
	}
	switch req.Mode {
	case ModeDirect:
		return p.publishDirect(ctx, req)
	case ModePR:
		return p.publishPR(ctx, req)
	default:
		return fmt.Errorf("unknown publish mode %q", req.Mode)
	}
}

func (p *Publisher) publishDirect(ctx context.Context, req Request) error {
	if err := p.writeAndCommit(req.ReadmePath, req.Updated); err != nil {
		return err
	}
	refspec := fmt.Sprintf("refs/heads/%s:refs/heads/%s", req.BaseBranch, req.BaseBranch)
	if err := p.push(ctx, refspec); err != nil {
		return err
	}
	p.logger.Printf("Pushed changes to %s", req.BaseBranch)
	return nil
}

func (p *Publisher) publishPR(ctx context.Context, req Request) error {
	head, err := p.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	wt, err := p.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	// Recreate the update branch from the current base checkout on every
	// run, so a stale branch from a previous run never leaks old content.
	branchRef := plumbing.NewBranchReferenceName(prBranch)
	_ = p.repo.Storer.RemoveReference(branchRef)
	if err := wt.Checkout(&git.CheckoutOptions{Branch: branchRef, Create: true, Hash: head.Hash()}); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", prBranch, err)
	}

	if err := p.writeAndCommit(req.ReadmePath, req.Updated); err != nil {
		return err
	}
	refspec := fmt.Sprintf("+refs/heads/%s:refs/heads/%s", prBranch, prBranch)
	if err := p.push(ctx, refspec); err != nil {
		return err
	}
	p.logger.Printf("Pushed changes to %s", prBranch)

	body := fmt.Sprintf("Automated update of repo info in README.\n\nUpdated %d repository links.", len(req.UpdatedLinks))
	url, err := p.prOpener.EnsurePullRequest(ctx, req.Owner, req.Repo, prBranch, req.BaseBranch, commitMessage, body)
	if err != nil {
		return fmt.Errorf("failed to open pull request: %w", err)
	}
	p.logger.Printf("Pull request ready: %s", url)
	return nil
}

// writeAndCommit writes content over the document in the worktree, stages
// it, and commits as the CI bot identity.
func (p *Publisher) writeAndCommit(readmePath, content string) error {
	wt, err := p.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	f, err := wt.Filesystem.Create(readmePath)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", readmePath, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", readmePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", readmePath, err)
	}
	if _, err := wt.Add(readmePath); err != nil {
		return fmt.Errorf("failed to stage %s: %w", readmePath, err)
	}
	sig := &object.Signature{Name: botName, Email: botEmail, When: p.now()}
	if _, err := wt.Commit(commitMessage, &git.CommitOptions{Author: sig}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (p *Publisher) push(ctx context.Context, refspec string) error {
	opts := &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(refspec)},
	}
	if p.token != "" {
		// GitHub accepts the installation/workflow token as a basic-auth
		// password with this fixed username.
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: p.token}
	}
	err := p.repo.PushContext(ctx, opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s: %w", refspec, err)
	}
	return nil
}
