package markdown

import (
	"fmt"

	"github.com/readme-tools/update-repo-info/internal/domain"
)

// Sentinel marks machine-generated annotations so that subsequent runs can
// locate and replace them instead of appending duplicates.
const Sentinel = "<!--repo-info-->"

const dateLayout = "2006-01-02"

// RenderAnnotation formats fetched repository info as the annotation text
// appended after a link, including the leading space:
//
//	 (⭐ 3014, ⏰ 2025-07-12) <!--repo-info-->
//
// A failed fetch renders a literal failure marker instead of the counts, so
// the line stays annotated and the failure is visible in the document.
func RenderAnnotation(info domain.RepoInfo) string {
	if info.Failed {
		return " (fetch failed) " + Sentinel
	}
	return fmt.Sprintf(" (⭐ %d, ⏰ %s) %s", info.Stars, info.PushedAt.UTC().Format(dateLayout), Sentinel)
}
