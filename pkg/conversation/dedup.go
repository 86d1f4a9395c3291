package conversation

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint normalizes a reply and hashes it. Normalization strips case,
// punctuation and whitespace runs so that trivial rephrasings ("Hello!" vs
// "hello") still collide.
func Fingerprint(text string) string {
	normalized := normalizeReply(text)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func normalizeReply(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// SimilarityRatio is a cheap token-overlap measure (Jaccard on word sets)
// used for near-duplicate detection beyond exact fingerprint matches.
func SimilarityRatio(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalizeReply(text)) {
		set[w] = true
	}
	return set
}
