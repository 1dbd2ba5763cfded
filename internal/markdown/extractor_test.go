package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractRefs uses a table-driven approach to cover link recognition,
// path filtering, and annotation span detection.
func TestExtractRefs(t *testing.T) {
	testCases := []struct {
		name          string
		doc           string
		expectedRefs  []string // owner/repo in expected document order
		expectedCount int
	}{
		{
			name:          "happy path - two plain links in document order",
			doc:           "- https://github.com/octocat/Hello-World\n- https://github.com/golang/go\n",
			expectedRefs:  []string{"octocat/Hello-World", "golang/go"},
			expectedCount: 2,
		},
		{
			name:          "file path link is skipped",
			doc:           "see https://github.com/golang/go/blob/master/README.md for details\n",
			expectedCount: 0,
		},
		{
			name:          "issues link is skipped",
			doc:           "reported in https://github.com/golang/go/issues/1\n",
			expectedCount: 0,
		},
		{
			name:          "trailing slash is skipped",
			doc:           "https://github.com/golang/go/\n",
			expectedCount: 0,
		},
		{
			name:          "duplicate links yield one reference each",
			doc:           "- https://github.com/a/b\n- https://github.com/a/b\n",
			expectedRefs:  []string{"a/b", "a/b"},
			expectedCount: 2,
		},
		{
			name:          "mid-line URL followed by prose is not recognized",
			doc:           "https://github.com/a/b is one of my favourites\n",
			expectedCount: 0,
		},
		{
			name:          "markdown link syntax is not recognized",
			doc:           "[the repo](https://github.com/a/b)\n",
			expectedCount: 0,
		},
		{
			name:          "owner-only URL is not a repository link",
			doc:           "profile: https://github.com/octocat\n",
			expectedCount: 0,
		},
		{
			name:          "dots and dashes in owner and repo",
			doc:           "https://github.com/my-org.io/some_repo.js\n",
			expectedRefs:  []string{"my-org.io/some_repo.js"},
			expectedCount: 1,
		},
		{
			name:          "no links at all",
			doc:           "# Heading\n\nJust prose.\n",
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			refs := ExtractRefs(tc.doc)
			require.Len(t, refs, tc.expectedCount)
			for i, ref := range refs {
				assert.Equal(t, tc.expectedRefs[i], ref.Owner+"/"+ref.Repo)
				// The recorded span must point back at the URL itself.
				assert.Equal(t, ref.URL, tc.doc[ref.Start:ref.End])
			}
		})
	}
}

func TestExtractRefs_AnnotationSpans(t *testing.T) {
	t.Run("existing annotation is included in the span", func(t *testing.T) {
		doc := "- https://github.com/octocat/Hello-World (⭐ 100, ⏰ 2024-01-01) " + Sentinel + "\n"
		refs := ExtractRefs(doc)
		require.Len(t, refs, 1)
		ref := refs[0]
		assert.Greater(t, ref.AnnotationEnd, ref.End)
		assert.Equal(t, " (⭐ 100, ⏰ 2024-01-01) "+Sentinel, doc[ref.End:ref.AnnotationEnd])
	})

	t.Run("fetch-failed annotation is included in the span", func(t *testing.T) {
		doc := "- https://github.com/octocat/Hello-World (fetch failed) " + Sentinel + "\n"
		refs := ExtractRefs(doc)
		require.Len(t, refs, 1)
		assert.Equal(t, " (fetch failed) "+Sentinel, doc[refs[0].End:refs[0].AnnotationEnd])
	})

	t.Run("prose parentheses without sentinel disqualify the line", func(t *testing.T) {
		doc := "- https://github.com/octocat/Hello-World (a neat repo)\n"
		assert.Empty(t, ExtractRefs(doc))
	})

	t.Run("trailing whitespace after the annotation is tolerated", func(t *testing.T) {
		doc := "- https://github.com/octocat/Hello-World (⭐ 100, ⏰ 2024-01-01) " + Sentinel + "  \r\n"
		refs := ExtractRefs(doc)
		require.Len(t, refs, 1)
	})
}
