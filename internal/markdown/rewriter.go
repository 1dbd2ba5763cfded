package markdown

import "github.com/readme-tools/update-repo-info/internal/domain"

// Rewrite returns a copy of doc in which every reference carries a freshly
// rendered annotation for the matching entry in infos, replacing any
// previous annotation on that link. refs and infos are parallel slices in
// document order, as produced by ExtractRefs and the fetch loop.
//
// Replacement uses the byte spans recorded on each reference, processed in
// reverse document order so earlier edits cannot shift the offsets of later
// ones. Bytes outside the replaced spans are preserved exactly, which makes
// the whole pipeline idempotent for unchanged upstream data.
func Rewrite(doc string, refs []domain.RepoRef, infos []domain.RepoInfo) string {
	out := doc
	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		out = out[:ref.Start] + ref.URL + RenderAnnotation(infos[i]) + out[ref.AnnotationEnd:]
	}
	return out
}
