package extractor

import "strings"

// NormalizePage cleans the raw text of one page. Carriage returns become
// newlines, every newline run collapses to a single newline, space runs
// collapse to one space, and the result is trimmed.
//
// Paragraph breaks are not kept apart from line breaks.
func NormalizePage(raw string) string {
	text := strings.ReplaceAll(raw, "\r", "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	return strings.TrimSpace(text)
}

// JoinPages normalizes each page, drops pages left empty and joins the rest
// with a single newline, preserving page order.
func JoinPages(pages []string) string {
	cleaned := make([]string, 0, len(pages))
	for _, page := range pages {
		if text := NormalizePage(page); text != "" {
			cleaned = append(cleaned, text)
		}
	}
	return strings.Join(cleaned, "\n")
}
