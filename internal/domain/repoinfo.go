// Package domain contains the core data structures for the README updater.
package domain

import "time"

// RepoRef identifies one occurrence of a GitHub repository link in the
// document. Start and End are the byte offsets of the URL itself, and
// AnnotationEnd extends past any existing machine-generated annotation
// (AnnotationEnd == End when the link carries none). Spans are recorded at
// extraction time so the rewriter never has to re-search the text.
type RepoRef struct {
	Owner         string
	Repo          string
	URL           string
	Start         int
	End           int
	AnnotationEnd int
}

// RepoInfo holds the fetched metadata for a single repository.
// Failed reports that the lookup did not succeed; the other fields are
// meaningless in that case.
type RepoInfo struct {
	Stars    int
	PushedAt time.Time
	Failed   bool
}
