package googleapi

// Subset of the Slides batchUpdate request types the generator emits.
// The remote endpoint applies requests strictly in the given order.

type Request struct {
	ReplaceAllText *ReplaceAllTextRequest `json:"replaceAllText,omitempty"`
	CreateSlide    *CreateSlideRequest    `json:"createSlide,omitempty"`
	InsertText     *InsertTextRequest     `json:"insertText,omitempty"`
}

type SubstringMatchCriteria struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

type ReplaceAllTextRequest struct {
	ContainsText SubstringMatchCriteria `json:"containsText"`
	ReplaceText  string                 `json:"replaceText"`
}

type LayoutReference struct {
	PredefinedLayout string `json:"predefinedLayout"`
}

type LayoutPlaceholder struct {
	Type string `json:"type"`
}

type PlaceholderIDMapping struct {
	LayoutPlaceholder LayoutPlaceholder `json:"layoutPlaceholder"`
	ObjectID          string            `json:"objectId"`
}

type CreateSlideRequest struct {
	ObjectID              string                 `json:"objectId"`
	SlideLayoutReference  LayoutReference        `json:"slideLayoutReference"`
	PlaceholderIDMappings []PlaceholderIDMapping `json:"placeholderIdMappings"`
}

type InsertTextRequest struct {
	ObjectID string `json:"objectId"`
	Text     string `json:"text"`
}
