// ABOUTME: Parses timedtext caption XML into snippets
// ABOUTME: Handles the classic <text start dur> layout and the srv3 <p t d> layout
package youtube

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/tubesum/internal/models"
)

var (
	// inlineTagRE matches the styling tags captions carry; other angle brackets are text
	inlineTagRE = regexp.MustCompile(`(?i)</?(?:s|i|b|u|font)(?:\s[^>]*)?/?>`)
	breakRE     = regexp.MustCompile(`(?i)<br\s*/?>`)
)

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
	Body struct {
		Paragraphs []struct {
			T     string `xml:"t,attr"`
			D     string `xml:"d,attr"`
			Inner string `xml:",innerxml"`
		} `xml:"p"`
	} `xml:"body"`
}

// parseTimedText decodes caption XML. Lines with no text are dropped.
func parseTimedText(data []byte) ([]models.Snippet, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	var snippets []models.Snippet
	for _, line := range tt.Lines {
		text := cleanText(line.Text)
		if text == "" {
			continue
		}
		snippets = append(snippets, models.Snippet{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}

	// srv3 timings are in milliseconds and the body is raw markup
	for _, p := range tt.Body.Paragraphs {
		text := cleanText(html.UnescapeString(stripTags(p.Inner)))
		if text == "" {
			continue
		}
		snippets = append(snippets, models.Snippet{
			Text:     text,
			Start:    parseSeconds(p.T) / 1000,
			Duration: parseSeconds(p.D) / 1000,
		})
	}

	return snippets, nil
}

// cleanText unescapes entities, strips inline markup, and collapses whitespace
func cleanText(s string) string {
	s = stripTags(html.UnescapeString(s))
	return strings.Join(strings.Fields(s), " ")
}

func stripTags(s string) string {
	s = breakRE.ReplaceAllString(s, " ")
	return inlineTagRE.ReplaceAllString(s, "")
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
