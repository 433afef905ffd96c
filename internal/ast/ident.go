package ast

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsIdentifierStart/IsIdentifierContinue approximate the ECMAScript
// IdentifierStart/IdentifierPart productions using unicode.IsLetter for
// the non-ASCII case. A fully conformant implementation would consult
// generated Unicode ID tables for exact conformance; this transform only
// needs to tell "is this text safe to print as a bare identifier" and
// "what's a safe fallback character otherwise" well enough to generate
// collision-free names, so the approximation is deliberate rather than
// an oversight.
func IsIdentifierStart(c rune) bool {
	switch c {
	case '_', '$':
		return true
	}
	if c < utf8.RuneSelf {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	return unicode.IsLetter(c)
}

func IsIdentifierContinue(c rune) bool {
	if IsIdentifierStart(c) {
		return true
	}
	if c < utf8.RuneSelf {
		return c >= '0' && c <= '9'
	}
	return unicode.IsDigit(c) || unicode.IsMark(c)
}

func IsIdentifier(text string) bool {
	if text == "" {
		return false
	}
	for i, c := range text {
		if i == 0 {
			if !IsIdentifierStart(c) {
				return false
			}
		} else if !IsIdentifierContinue(c) {
			return false
		}
	}
	return !isReservedWord(text)
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"new": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "let": true, "static": true,
	"enum": true, "null": true, "true": true, "false": true,
}

func isReservedWord(text string) bool { return reservedWords[text] }

// ForceValidIdentifier coerces arbitrary text into a valid identifier by
// substituting "_" for any offending code point, the same strategy
// evanw-esbuild uses for generated names derived from file paths or
// property keys.
func ForceValidIdentifier(text string) string {
	if text == "" {
		return "_"
	}
	sb := strings.Builder{}
	for i, c := range text {
		valid := IsIdentifierContinue(c)
		if i == 0 {
			valid = IsIdentifierStart(c)
		}
		if valid {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	if isReservedWord(sb.String()) {
		return "_" + sb.String()
	}
	return sb.String()
}
