// Package pii provides a reversible scrub of sensitive spans (emails,
// phone numbers, URLs, street addresses) into stable placeholder tokens
// before resume text is sent to the judgment service.
package pii

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenMap maps a placeholder token (for example "[[EMAIL_1]]") back to the
// original sensitive substring it replaced. A map is built per scrub call
// and never merged across documents.
type TokenMap map[string]string

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?1[ .-]?)?(?:\(\d{3}\)|\d{3})[ .-]?\d{3}[ .-]?\d{4}`)
	urlRe   = regexp.MustCompile(`(?:https?://[^\s)]+|www\.[^\s)]+|\b[a-zA-Z0-9.-]+\.(?:com|org|net|io|ai|co|edu|gov|us|uk|ca|de|fr|au|in|nz)(?:/[\w\-./?%&=+#]*)?)`)
	addrRe  = regexp.MustCompile(`(?i)\d+\s+[^\n,]+(?:Street|St\.|Avenue|Ave\.|Road|Rd\.|Boulevard|Blvd\.|Lane|Ln\.|Drive|Dr\.)`)
)

// categories are applied in fixed precedence. Later categories run over the
// already tokenized text, so a phone number inside an address hint is taken
// by the phone pattern first and cannot be re-matched by the address one.
var categories = []struct {
	prefix  string
	pattern *regexp.Regexp
}{
	{"EMAIL", emailRe},
	{"PHONE", phoneRe},
	{"URL", urlRe},
	{"ADDR", addrRe},
}

// Scrub replaces sensitive spans in text with placeholder tokens and
// returns the scrubbed text together with the token map needed to undo
// the substitution. Pure function of its input.
func Scrub(text string) (string, TokenMap) {
	tokenMap := make(TokenMap)
	scrubbed := text
	for _, cat := range categories {
		scrubbed = tokenize(scrubbed, cat.pattern, cat.prefix, tokenMap)
	}
	return scrubbed, tokenMap
}

// tokenize replaces every match of pattern with a numbered token, counting
// from 1 in left-to-right scan order.
func tokenize(text string, pattern *regexp.Regexp, prefix string, tokenMap TokenMap) string {
	idx := 1
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		token := fmt.Sprintf("[[%s_%d]]", prefix, idx)
		tokenMap[token] = match
		idx++
		return token
	})
}

// Restore substitutes every token in scrubbed text back to its original
// value. The pipeline never calls this on its own output; it is surfaced
// for callers that need to audit or undo a scrub.
func Restore(text string, tokenMap TokenMap) string {
	restored := text
	for token, original := range tokenMap {
		restored = strings.ReplaceAll(restored, token, original)
	}
	return restored
}
