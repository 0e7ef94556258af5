package emails

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Validator decides whether a candidate is a syntactically valid email
// address and returns its normalized form.
type Validator interface {
	Validate(candidate string) (string, error)
}

// InvalidError is returned for candidates that are not valid addresses.
type InvalidError struct {
	Candidate string
	Reason    string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%q is not a valid email address: %s", e.Candidate, e.Reason)
}

const (
	maxLocalLength   = 64
	maxAddressLength = 254
)

// Domains reserved for special use (RFC 6761 and friends) can never receive
// mail from the public internet.
var specialUseDomains = []string{"arpa", "invalid", "local", "localhost", "onion", "test"}

// domainProfile applies UTS #46 lookup mapping (which lowercases), STD3
// hostname rules, the bidi rule and DNS length limits.
var domainProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.VerifyDNSLength(true),
	idna.Transitional(false),
)

// SyntaxValidator checks addresses against the RFC 5322 dot-atom grammar and
// DNS hostname rules without any network lookups.
//
// Normalization keeps the local part's case (it may be significant to the
// receiving server) but applies Unicode NFC, and lowercases the domain.
type SyntaxValidator struct {
	// AllowSMTPUTF8 permits non-ASCII characters in the local part.
	AllowSMTPUTF8 bool
}

// NewSyntaxValidator returns a validator accepting internationalized addresses.
func NewSyntaxValidator() *SyntaxValidator {
	return &SyntaxValidator{AllowSMTPUTF8: true}
}

// Validate checks candidate and returns its normalized form.
//
// A single trailing period after the domain is treated as sentence
// punctuation and dropped, so "write to jane@example.com." validates.
func (v *SyntaxValidator) Validate(candidate string) (string, error) {
	invalid := func(format string, args ...any) (string, error) {
		return "", &InvalidError{Candidate: candidate, Reason: fmt.Sprintf(format, args...)}
	}

	switch n := strings.Count(candidate, "@"); {
	case candidate == "":
		return invalid("it is empty")
	case n == 0:
		return invalid("there is no @-sign")
	case n > 1:
		return invalid("there is more than one @-sign")
	}

	local, domain, _ := strings.Cut(candidate, "@")
	domain = strings.TrimSuffix(domain, ".")
	if local == "" {
		return invalid("there is nothing before the @-sign")
	}
	if domain == "" {
		return invalid("there is nothing after the @-sign")
	}

	local, reason := v.normalizeLocal(local)
	if reason != "" {
		return invalid("%s", reason)
	}

	display, ascii, reason := normalizeDomain(domain)
	if reason != "" {
		return invalid("%s", reason)
	}

	if n := len(local) + 1 + len(ascii); n > maxAddressLength {
		return invalid("the address is %d bytes long, the limit is %d", n, maxAddressLength)
	}
	return local + "@" + display, nil
}

func (v *SyntaxValidator) normalizeLocal(local string) (string, string) {
	local = norm.NFC.String(local)

	if len(local) > maxLocalLength {
		return "", fmt.Sprintf("the part before the @-sign is %d bytes long, the limit is %d", len(local), maxLocalLength)
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return "", "the part before the @-sign cannot start or end with a period"
	}
	if strings.Contains(local, "..") {
		return "", "the part before the @-sign cannot contain two periods in a row"
	}

	for _, r := range local {
		switch {
		case r < utf8.RuneSelf:
			if r != '.' && !isAtext(byte(r)) {
				return "", fmt.Sprintf("the part before the @-sign contains an invalid character %q", r)
			}
		case !v.AllowSMTPUTF8:
			return "", "internationalized characters before the @-sign are not supported"
		case !unicode.IsPrint(r) || unicode.IsSpace(r):
			return "", fmt.Sprintf("the part before the @-sign contains an unsafe character %U", r)
		}
	}
	return local, ""
}

// isAtext reports whether c is an RFC 5322 atext character.
func isAtext(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-/=?^_`{|}~", c) >= 0
}

// normalizeDomain returns the lowercase Unicode form of domain for display
// and its ASCII (punycode) form for length checks.
func normalizeDomain(domain string) (string, string, string) {
	if strings.HasPrefix(domain, "[") {
		return "", "", "domain literals are not supported"
	}

	ascii, err := domainProfile.ToASCII(domain)
	if err != nil {
		return "", "", fmt.Sprintf("the part after the @-sign is not a valid domain name (%v)", err)
	}
	if !strings.Contains(ascii, ".") {
		return "", "", "the part after the @-sign must contain a period"
	}

	tld := ascii[strings.LastIndexByte(ascii, '.')+1:]
	if strings.Trim(tld, "0123456789") == "" {
		return "", "", "the part after the @-sign does not end in a valid top-level domain"
	}

	for _, special := range specialUseDomains {
		if ascii == special || strings.HasSuffix(ascii, "."+special) {
			return "", "", fmt.Sprintf("%s is a special-use or reserved name that cannot receive email", special)
		}
	}

	display, err := domainProfile.ToUnicode(ascii)
	if err != nil {
		display = ascii
	}
	return display, ascii, ""
}
