package gcp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSynthesisBytes stays under the 5000-byte input limit of one
// SynthesizeSpeech request.
const maxSynthesisBytes = 4800

var sentenceEnd = regexp.MustCompile(`[.!?]+["')\]]*\s+|\n\s*`)

// splitForSynthesis packs whole sentences into chunks of at most limit
// bytes. Sentences longer than limit are split between words, and words
// longer than limit between runes.
func splitForSynthesis(text string, limit int) []string {
	var (
		chunks []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}
	add := func(piece string) {
		if cur.Len() > 0 && cur.Len()+1+len(piece) > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(piece)
	}

	for _, s := range sentences(text) {
		if len(s) <= limit {
			add(s)
			continue
		}
		for _, w := range strings.Fields(s) {
			for len(w) > limit {
				cut := limit
				for cut > 0 && !utf8.RuneStart(w[cut]) {
					cut--
				}
				add(w[:cut])
				w = w[cut:]
			}
			add(w)
		}
	}
	flush()
	return chunks
}

func sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
