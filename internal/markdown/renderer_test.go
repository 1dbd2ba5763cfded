package markdown

import (
	"testing"
	"time"

	"github.com/readme-tools/update-repo-info/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderAnnotation(t *testing.T) {
	t.Run("success renders stars and UTC date with the sentinel", func(t *testing.T) {
		// 01:30 JST on the 13th is still the 12th in UTC.
		jst := time.FixedZone("JST", 9*60*60)
		info := domain.RepoInfo{Stars: 3014, PushedAt: time.Date(2025, 7, 13, 1, 30, 0, 0, jst)}
		assert.Equal(t, " (⭐ 3014, ⏰ 2025-07-12) "+Sentinel, RenderAnnotation(info))
	})

	t.Run("failure renders the literal marker", func(t *testing.T) {
		assert.Equal(t, " (fetch failed) "+Sentinel, RenderAnnotation(domain.RepoInfo{Failed: true}))
	})
}
