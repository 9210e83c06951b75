package chunk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const terminators = ".!?"

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// ErrEmptyText is returned when the input yields no synthesizable text.
var ErrEmptyText = errors.New("no text to synthesize")

// Chunk is one independently synthesizable unit of input text. Index
// defines processing order and the numbering of saved audio files.
type Chunk struct {
	Index int
	Text  string
}

// Split turns raw input text into an ordered list of chunks, each
// ending in a sentence terminator. When pattern is non-empty the text
// is split on that regular expression and sentencesPerChunk is
// ignored; otherwise consecutive sentences are batched
// sentencesPerChunk at a time.
func Split(text, pattern string, sentencesPerChunk int) ([]Chunk, error) {
	if sentencesPerChunk < 1 {
		return nil, fmt.Errorf("sentences per chunk must be at least 1, got %d", sentencesPerChunk)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if !endsWithTerminator(text) {
		text += "."
	}

	var parts []string
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid split pattern: %w", err)
		}
		for _, part := range re.Split(text, -1) {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	} else {
		sentences := splitSentences(text)
		for start := 0; start < len(sentences); start += sentencesPerChunk {
			end := start + sentencesPerChunk
			if end > len(sentences) {
				end = len(sentences)
			}
			parts = append(parts, strings.Join(sentences[start:end], " "))
		}
	}
	if len(parts) == 0 {
		return nil, ErrEmptyText
	}

	chunks := make([]Chunk, len(parts))
	for i, part := range parts {
		if !endsWithTerminator(part) {
			part += "."
		}
		chunks[i] = Chunk{Index: i, Text: part}
	}
	return chunks, nil
}

// splitSentences cuts text at whitespace following a sentence
// terminator. RE2 has no lookbehind, so boundaries are found with
// [.!?]\s+ and the cut placed just after the terminator.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text, -1) {
		cut := m[0] + 1
		if s := strings.TrimSpace(text[start:cut]); s != "" {
			sentences = append(sentences, s)
		}
		start = m[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func endsWithTerminator(s string) bool {
	last, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(terminators, last)
}
