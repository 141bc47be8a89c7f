package models

// DocumentModel is the caller supplied description of a presentation:
// a title, ordered slides and optional ordered narration entries.
// The generation pipeline never mutates it.
type DocumentModel struct {
	Title     string           `json:"title"`
	Slides    []Slide          `json:"slides"`
	Narration []NarrationEntry `json:"narration,omitempty"`
}

type Slide struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NarrationEntry is a voiceover script line attached to a slide.
// SlideNumber is a 1-based caller supplied index and need not be unique
// or contiguous.
type NarrationEntry struct {
	ID          string `json:"id"`
	SlideNumber int    `json:"slide_number"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
}
