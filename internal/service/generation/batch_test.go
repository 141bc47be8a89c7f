package generation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slideforge/internal/models"
)

func Test_BuildContentRequests(t *testing.T) {
	t.Parallel()

	doc := models.DocumentModel{
		Title: "Quarterly Review",
		Slides: []models.Slide{
			{ID: "s1", Title: "Intro", Content: "Welcome"},
			{ID: "s2", Title: "Numbers", Content: "Up and to the right"},
		},
	}

	t.Run("one request per placeholder in document order", func(t *testing.T) {
		requests := BuildContentRequests(doc)

		require.Len(t, requests, 5, "expected 1 title + 2 per slide")

		require.NotNil(t, requests[0].ReplaceAllText)
		require.Equal(t, PlaceholderPresentationTitle, requests[0].ReplaceAllText.ContainsText.Text, "presentation title must be replaced first")
		require.Equal(t, "Quarterly Review", requests[0].ReplaceAllText.ReplaceText)

		require.Equal(t, PlaceholderSlideTitle, requests[1].ReplaceAllText.ContainsText.Text)
		require.Equal(t, "Intro", requests[1].ReplaceAllText.ReplaceText)
		require.Equal(t, PlaceholderSlideContent, requests[2].ReplaceAllText.ContainsText.Text)
		require.Equal(t, "Welcome", requests[2].ReplaceAllText.ReplaceText)

		require.Equal(t, "Numbers", requests[3].ReplaceAllText.ReplaceText)
		require.Equal(t, "Up and to the right", requests[4].ReplaceAllText.ReplaceText)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		requests := BuildContentRequests(doc)

		for _, r := range requests {
			require.False(t, r.ReplaceAllText.ContainsText.MatchCase)
		}
	})

	t.Run("empty slide content still produces a request", func(t *testing.T) {
		requests := BuildContentRequests(models.DocumentModel{
			Title:  "T",
			Slides: []models.Slide{{Title: "only title"}},
		})

		require.Len(t, requests, 3)
		require.Equal(t, "", requests[2].ReplaceAllText.ReplaceText, "empty content replaces the placeholder with nothing")
	})

	t.Run("deterministic for the same document", func(t *testing.T) {
		first := BuildContentRequests(doc)
		second := BuildContentRequests(doc)

		require.Equal(t, first, second)
	})
}
