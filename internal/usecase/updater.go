// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"github.com/readme-tools/update-repo-info/internal/domain"
	"github.com/readme-tools/update-repo-info/internal/gateway"
	"github.com/readme-tools/update-repo-info/internal/markdown"
)

// Updater is the use case for annotating README repository links.
// It orchestrates extraction, metadata fetching, and rewriting.
type Updater struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewUpdater creates a new Updater instance.
func NewUpdater(fetcher gateway.Fetcher, logger *log.Logger) *Updater {
	return &Updater{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Update runs the extract, fetch, render, rewrite pipeline over doc and
// returns the rewritten text together with the URLs whose annotations
// actually changed. Metadata lookups happen strictly one at a time in
// document order; a failed lookup is rendered as a failure marker on that
// line and never stops the remaining references from being annotated.
func (u *Updater) Update(ctx context.Context, doc string) (string, []string) {
	refs := markdown.ExtractRefs(doc)
	if len(refs) == 0 {
		u.logger.Println("No GitHub repository links found.")
		return doc, nil
	}
	u.logger.Printf("Found %d repository links.", len(refs))

	infos := make([]domain.RepoInfo, len(refs))
	for i, ref := range refs {
		infos[i] = u.fetcher.FetchRepoInfo(ctx, ref.Owner, ref.Repo)
	}

	updated := markdown.Rewrite(doc, refs, infos)

	var changed []string
	for i, ref := range refs {
		if doc[ref.End:ref.AnnotationEnd] != markdown.RenderAnnotation(infos[i]) {
			changed = append(changed, ref.URL)
		}
	}
	u.logger.Printf("Rewrite complete, %d links changed.", len(changed))
	return updated, changed
}
