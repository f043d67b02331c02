// Package fingerprint derives a content hash for flashcards so that the same
// card written twice, with different casing or spacing, is recognised.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize lowercases and trims the question and answer, folds CRLF line
// endings and collapses runs of whitespace inside each field, then joins the
// two with a newline.
func Normalize(question, answer string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return strings.Join(strings.Fields(p), " ")
	}
	return normalizePart(question) + "\n" + normalizePart(answer)
}

// Hash returns the hex SHA-256 of the normalized card content.
func Hash(question, answer string) string {
	sum := sha256.Sum256([]byte(Normalize(question, answer)))
	return hex.EncodeToString(sum[:])
}
