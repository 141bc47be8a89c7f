package generation

import (
	"fmt"

	"slideforge/internal/googleapi"
	"slideforge/internal/models"
)

// BuildOverflowRequests compiles the slides the template cannot hold into
// explicit create-and-fill operations. The template reserves one slide for
// the title, so slides from index templateCapacity-1 onward overflow. Each
// overflow slide yields a createSlide with generated object ids followed by
// the two insertText operations targeting the fresh title and body regions.
// Object ids are unique within one call, nothing more is promised.
func BuildOverflowRequests(slides []models.Slide, templateCapacity int) []googleapi.Request {
	if templateCapacity < 1 || len(slides) <= templateCapacity-1 {
		return nil
	}

	overflow := slides[templateCapacity-1:]
	requests := make([]googleapi.Request, 0, 3*len(overflow))

	for i, slide := range overflow {
		slideID := fmt.Sprintf("additional_slide_%d", i)
		titleID := fmt.Sprintf("additional_title_%d", i)
		bodyID := fmt.Sprintf("additional_body_%d", i)

		requests = append(requests,
			googleapi.Request{
				CreateSlide: &googleapi.CreateSlideRequest{
					ObjectID:             slideID,
					SlideLayoutReference: googleapi.LayoutReference{PredefinedLayout: layoutTitleAndBody},
					PlaceholderIDMappings: []googleapi.PlaceholderIDMapping{
						{LayoutPlaceholder: googleapi.LayoutPlaceholder{Type: placeholderTypeTitle}, ObjectID: titleID},
						{LayoutPlaceholder: googleapi.LayoutPlaceholder{Type: placeholderTypeBody}, ObjectID: bodyID},
					},
				},
			},
			googleapi.Request{
				InsertText: &googleapi.InsertTextRequest{ObjectID: titleID, Text: slide.Title},
			},
			googleapi.Request{
				InsertText: &googleapi.InsertTextRequest{ObjectID: bodyID, Text: slide.Content},
			},
		)
	}

	return requests
}
