package sender

import (
	"fmt"
	"unicode/utf8"
)

// SplitText cuts text in consecutive chunks of size characters, the last chunk may be shorter. Chunks are cut on
// rune boundaries and concatenate back to the exact input.
func SplitText(text string, size int) []string {
	if text == "" {
		return nil
	}

	if size <= 0 {
		return []string{text}
	}

	chunks := make([]string, 0, utf8.RuneCountInString(text)/size+1)

	var count, start int
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start = i
			count = 0
		}
		count++
	}

	return append(chunks, text[start:])
}

// partPrefix labels part n (1-indexed) of total
func partPrefix(n, total int) string {
	return fmt.Sprintf("Part %d/%d:\n\n", n, total)
}
