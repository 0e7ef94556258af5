// Package emails recovers email addresses from OCR text.
//
// OCR output splits lines into whitespace-separated words and often breaks an
// address around its '@' sign ("foo" "@bar.com", "foo@" "bar.com").
// Candidates walks the words once, re-joining a word with its immediate
// successor when the pair looks like one address, and trims punctuation that
// wrapped the address in the image (angle brackets, commas, quotes).
//
// Every candidate is then checked by a Validator. SyntaxValidator implements
// the RFC 5322 dot-atom grammar for the local part and IDNA/DNS hostname
// rules for the domain, without any network access, and returns a normalized
// form: NFC local part, lowercase domain.
//
// Set collects the distinct normalized addresses.
package emails
