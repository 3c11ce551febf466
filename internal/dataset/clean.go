package dataset

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// CleanText normalizes a scraped review cell. Localized cells shaped like {'en': '...'}
// yield their English value; cells containing markup are reduced to their visible text.
func CleanText(cell string) string {
	text := strings.TrimSpace(cell)

	if en, ok := localizedValue(text); ok {
		text = strings.TrimSpace(en)
	}
	if looksLikeHTML(text) {
		text = visibleText(text)
	}
	return text
}

func localizedValue(text string) (string, bool) {
	if !strings.HasPrefix(text, "{'en':") && !strings.HasPrefix(text, `{"en":`) {
		return "", false
	}

	for _, candidate := range []string{text, strings.ReplaceAll(text, "'", `"`)} {
		var data map[string]any
		if err := json.Unmarshal([]byte(candidate), &data); err != nil {
			continue
		}
		if en, ok := data["en"].(string); ok {
			return en, true
		}
	}
	return "", false
}

func looksLikeHTML(text string) bool {
	open := strings.IndexByte(text, '<')
	return open >= 0 && strings.IndexByte(text[open:], '>') > 0
}

// visibleText extracts text nodes, skipping scripts and styles
func visibleText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, " ")
}
