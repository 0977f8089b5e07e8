// ABOUTME: ChunkText splits text into word-aligned segments bounded by a character count
// ABOUTME: Used by translation (512) and summarization (4096) to fit backend input limits
package core

import (
	"strings"
	"unicode/utf8"
)

// ChunkText splits text on whitespace and greedily packs words into chunks
// whose joined length (in runes) does not exceed maxLength. A single word
// longer than maxLength becomes its own chunk and is never split. Empty or
// whitespace-only input yields nil.
func ChunkText(text string, maxLength int) []string {
	if maxLength < 1 {
		maxLength = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)

		// Length of current chunk with this word appended (plus separating space)
		nextLen := currentLen + wordLen
		if len(current) > 0 {
			nextLen++
		}

		if nextLen > maxLength && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			nextLen = wordLen
		}

		current = append(current, word)
		currentLen = nextLen
	}

	return append(chunks, strings.Join(current, " "))
}
