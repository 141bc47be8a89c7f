package generation

// The provider's document URLs are a deterministic scheme over the document
// id, so every link can be derived locally without a remote call.

const presentationBaseURL = "https://docs.google.com/presentation/d"

// ExportFormats the provider's export endpoint understands
var ExportFormats = []string{"pdf", "pptx", "jpeg", "png", "svg", "txt"}

func viewURL(documentID string) string {
	return presentationBaseURL + "/" + documentID
}

func editURL(documentID string) string {
	return presentationBaseURL + "/" + documentID + "/edit"
}

func exportURLs(documentID string) map[string]string {
	urls := make(map[string]string, len(ExportFormats))
	for _, format := range ExportFormats {
		urls[format] = presentationBaseURL + "/" + documentID + "/export/" + format
	}
	return urls
}
