package generation

// Well known placeholder tokens the master template is expected to contain.
// Title and content placeholders are shared literal tokens across every
// template slide rather than per-slide indexed ones, so a replace-all with
// more than one outstanding occurrence resolves in document order. Kept as
// is to stay compatible with existing templates.
const (
	PlaceholderPresentationTitle = "{{PRESENTATION_TITLE}}"
	PlaceholderSlideTitle        = "{{slide_title}}"
	PlaceholderSlideContent      = "{{slide_content}}"
)

// DefaultTemplateCapacity is the number of slides the default master
// template ships with, title slide included
const DefaultTemplateCapacity = 5

const (
	layoutTitleAndBody   = "TITLE_AND_BODY"
	placeholderTypeTitle = "TITLE"
	placeholderTypeBody  = "BODY"
)
