// Package markdown locates GitHub repository links in a README document and
// rewrites their trailing annotations. Every function here is a pure
// transformation: document text goes in as a value and a new value comes
// out, which keeps the idempotence of the pipeline easy to reason about.
package markdown

import (
	"regexp"

	"github.com/readme-tools/update-repo-info/internal/domain"
)

// repoLinkRe matches a bare GitHub repository URL and captures the owner and
// repository segments. Go's regexp has no lookahead, so URLs that continue
// into a deeper path are filtered by inspecting the following byte instead.
var repoLinkRe = regexp.MustCompile(`https://github\.com/([\w.-]+)/([\w.-]+)`)

// annotationRe matches an existing machine-generated annotation directly
// after a URL: a parenthesized group terminated by the sentinel comment.
// A parenthesized group without the sentinel is ordinary prose and must not
// be consumed.
var annotationRe = regexp.MustCompile(`^ ?\([^)\n]*\) ?` + regexp.QuoteMeta(Sentinel))

// ExtractRefs scans doc and returns one RepoRef per recognized repository
// link, in document order. Duplicate links yield one reference each. A link
// is recognized only when the URL, plus any existing annotation, sits at the
// end of its line. GitHub URLs pointing below a repository root (files,
// issues, pull requests) and URLs followed by other prose are silently
// skipped rather than reported as errors.
func ExtractRefs(doc string) []domain.RepoRef {
	var refs []domain.RepoRef
	for _, m := range repoLinkRe.FindAllStringSubmatchIndex(doc, -1) {
		start, end := m[0], m[1]
		if end < len(doc) && doc[end] == '/' {
			// Deeper path such as /blob or /issues, not a repository root.
			continue
		}
		annotationEnd := end
		if loc := annotationRe.FindStringIndex(doc[end:]); loc != nil {
			annotationEnd = end + loc[1]
		}
		if !atLineEnd(doc, annotationEnd) {
			continue
		}
		refs = append(refs, domain.RepoRef{
			Owner:         doc[m[2]:m[3]],
			Repo:          doc[m[4]:m[5]],
			URL:           doc[start:end],
			Start:         start,
			End:           end,
			AnnotationEnd: annotationEnd,
		})
	}
	return refs
}

// atLineEnd reports whether pos sits at the end of its line, allowing
// trailing whitespace and an optional carriage return.
func atLineEnd(doc string, pos int) bool {
	for ; pos < len(doc); pos++ {
		switch doc[pos] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}
