package pagesift

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Relative links and
	// image sources are resolved against baseURL when it is not empty.
	// The input should be clean HTML (e.g., a normalized document).
	Convert(html, baseURL string) (string, error)
}
