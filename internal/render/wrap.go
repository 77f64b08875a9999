package render

import "strings"

// WrapWords greedily packs words into lines whose measured width never exceeds
// maxWidth, breaking before the word that would overflow. A single word wider
// than maxWidth still gets its own line. The word sequence of the input is
// preserved exactly across the returned lines.
func WrapWords(measure func(string) float64, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	current := ""

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
