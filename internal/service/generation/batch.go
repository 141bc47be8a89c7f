package generation

import (
	"slideforge/internal/googleapi"
	"slideforge/internal/models"
)

// BuildContentRequests compiles the document into the ordered replace
// operations for the primary batch update: one replacement for the
// presentation title first, then title and content replacements per slide in
// document order. Matching is case insensitive and replaces every occurrence
// still present in the document, so the order of the output matters.
// Pure function: same document, same output.
func BuildContentRequests(doc models.DocumentModel) []googleapi.Request {
	requests := make([]googleapi.Request, 0, 1+2*len(doc.Slides))

	requests = append(requests, replaceAll(PlaceholderPresentationTitle, doc.Title))

	for _, slide := range doc.Slides {
		requests = append(requests, replaceAll(PlaceholderSlideTitle, slide.Title))
		requests = append(requests, replaceAll(PlaceholderSlideContent, slide.Content))
	}

	return requests
}

func replaceAll(placeholder string, text string) googleapi.Request {
	return googleapi.Request{
		ReplaceAllText: &googleapi.ReplaceAllTextRequest{
			ContainsText: googleapi.SubstringMatchCriteria{
				Text:      placeholder,
				MatchCase: false,
			},
			ReplaceText: text,
		},
	}
}
