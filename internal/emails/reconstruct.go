package emails

import (
	"iter"
	"strings"
)

// stripChars is ASCII punctuation without '@' and '.'. Candidates are trimmed
// of these on both ends to drop wrappers such as "<foo@bar.com>" or
// "[foo@bar.com]," left around an address.
const stripChars = "!\"#$%&'()*+,-/:;<=>?[\\]^_`{|}~"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Tokenize collapses line breaks to spaces and splits text into
// whitespace-separated tokens, keeping their original order.
func Tokenize(text string) []string {
	return strings.Fields(lineBreaks.Replace(text))
}

// Candidates yields the email-like strings found in OCR text, in the order
// they appear. See CandidatesFromTokens for the rules.
func Candidates(text string) iter.Seq[string] {
	return CandidatesFromTokens(Tokenize(text))
}

// CandidatesFromTokens yields a candidate for every token that holds, or
// together with its successor forms, something shaped like an address.
//
// For token i, the first matching rule wins:
//
//   - no '@': when token i+1 starts with '@', join the two ("foo" "@bar.com").
//     The pair is skipped when token i+1 has no '.', or has "@." at its start.
//   - contains '@' and ends with '@': join with token i+1 ("foo@" "bar.com").
//   - contains '@' elsewhere and does not start with '@': the token itself.
//   - anything else yields nothing.
//
// Each candidate is trimmed of surrounding punctuation (except '@' and '.');
// candidates that end up empty are skipped. An address split into more than
// two tokens, e.g. "foo" "@" "bar" "." "com", is not reassembled.
func CandidatesFromTokens(tokens []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range tokens {
			candidate, ok := candidateAt(tokens, i)
			if !ok {
				continue
			}
			candidate = strings.Trim(candidate, stripChars)
			if candidate == "" {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}
}

func candidateAt(tokens []string, i int) (string, bool) {
	word := tokens[i]
	hasNext := i+1 < len(tokens)

	switch {
	case !strings.Contains(word, "@"):
		if !hasNext {
			return "", false
		}
		next := tokens[i+1]
		if !strings.HasPrefix(next, "@") {
			return "", false
		}
		atIdx := strings.Index(next, "@")
		dotIdx := strings.Index(next, ".")
		// '@' must come before a '.', and "@." is never valid. A next token
		// without any '.' has dotIdx == -1 and is skipped by the first test.
		if atIdx > dotIdx || dotIdx-1 == atIdx {
			return "", false
		}
		return word + next, true

	case strings.HasSuffix(word, "@"):
		if !hasNext {
			return "", false
		}
		return word + tokens[i+1], true

	case !strings.HasPrefix(word, "@"):
		return word, true
	}
	return "", false
}
