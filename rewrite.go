package doxfix

import (
	"regexp"
	"strings"
)

var (
	templateOpenRe = regexp.MustCompile(`template< *`)
	identSepRe     = regexp.MustCompile(`([A-Za-z0-9_:]+) +([,>])`)
	pointerRe      = regexp.MustCompile(` +([&*][A-Za-z_])`)
	angleOpenRe    = regexp.MustCompile(`< +`)
	angleCloseRe   = regexp.MustCompile(` +>`)
)

// FixOperatorSpacing removes the space Doxygen inserts between the operator
// keyword and an ampersand in link text ("operator &" → "operator&").
func FixOperatorSpacing(s string) string {
	return strings.ReplaceAll(s, "operator &", "operator&")
}

// FixTemplateParams normalizes a template parameter list.
// Every "template<" becomes "template <" (any spaces already following the
// bracket are absorbed), then spaces between an identifier and a following
// comma or closing bracket are dropped.
//
// Example: "template<  class T , int N >" → "template <class T, int N>".
func FixTemplateParams(s string) string {
	s = templateOpenRe.ReplaceAllString(s, "template <")
	return identSepRe.ReplaceAllString(s, "${1}${2}")
}

// FixMemberSignature normalizes the text of a member declaration. The rules
// are applied in order:
//
//   - a run of spaces before "&x" or "*x" (x a letter or underscore) becomes one space
//   - the first "->" becomes "→"
//   - spaces after "<" are removed
//   - spaces before ">" are removed
func FixMemberSignature(s string) string {
	s = pointerRe.ReplaceAllString(s, " ${1}")
	s = strings.Replace(s, "->", "→", 1)
	s = angleOpenRe.ReplaceAllString(s, "<")
	return angleCloseRe.ReplaceAllString(s, ">")
}
