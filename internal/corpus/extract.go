package corpus

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/triplex-nlp/triplex/internal/model"
)

// Sentence is one intake candidate with its provenance and quality score.
type Sentence struct {
	Text    string  `json:"text" yaml:"text"`
	Source  string  `json:"source" yaml:"source"`
	Quality float64 `json:"quality" yaml:"quality"`
}

// Extractor turns raw page content into scored candidate sentences.
type Extractor struct {
	minRunes   int
	maxRunes   int
	minQuality float64
}

// NewExtractor creates an extractor with the given intake bounds.
func NewExtractor(cfg model.CorpusConfig) *Extractor {
	minRunes := cfg.MinSentenceRunes
	if minRunes <= 0 {
		minRunes = 6
	}
	maxRunes := cfg.MaxSentenceRunes
	if maxRunes <= 0 {
		maxRunes = 120
	}

	return &Extractor{
		minRunes:   minRunes,
		maxRunes:   maxRunes,
		minQuality: cfg.MinQuality,
	}
}

// FromHTML extracts scored sentences from an HTML document.
func (e *Extractor) FromHTML(htmlContent, source string) ([]Sentence, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	text := extractVisibleText(doc)
	return e.FromText(text, source), nil
}

// FromText splits plain text into sentences, scores each and drops the
// ones below the quality floor. Duplicates are removed, first wins.
func (e *Extractor) FromText(text, source string) []Sentence {
	var sentences []Sentence
	seen := make(map[string]bool)

	for _, raw := range e.split(text) {
		if seen[raw] {
			continue
		}
		seen[raw] = true

		quality := Score(raw)
		if quality < e.minQuality {
			continue
		}
		sentences = append(sentences, Sentence{
			Text:    raw,
			Source:  source,
			Quality: quality,
		})
	}

	return sentences
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// split cuts text on sentence terminators. CJK terminators end a sentence
// unconditionally; Latin terminators only when followed by whitespace or
// end of text, which avoids splitting on abbreviations mid-sentence.
func (e *Extractor) split(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	emit := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if sentence == "" {
			return
		}
		runes := utf8.RuneCountInString(sentence)
		if runes >= e.minRunes && runes <= e.maxRunes {
			sentences = append(sentences, sentence)
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		switch r {
		case '。', '！', '？':
			emit()
		case '.', '!', '?':
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' {
				emit()
			}
		}
	}
	emit()

	return sentences
}
