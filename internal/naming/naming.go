// Package naming provides shared string case conversion utilities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Every rune that is neither a letter nor a digit acts as a separator and
// capitalizes the next letter. Letters after the first of a word keep their case.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

var titleCaser = cases.Title(language.English)

// ToTitle converts a phrase to title case using Unicode-aware rules.
// Example: "swagger petstore" -> "Swagger Petstore"
func ToTitle(s string) string {
	return titleCaser.String(s)
}

// OperationName derives a method name for an operation without an
// operationId from its HTTP method and path. Path parameters become "By"
// segments.
// Example: ("GET", "/pets/{petId}") -> "getPetsByPetId"
// Example: ("post", "/store/order") -> "postStoreOrder"
func OperationName(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))

	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			b.WriteString("By")
			segment = strings.Trim(segment, "{}")
		}
		b.WriteString(ToPascalCase(segment))
	}

	return b.String()
}

// reservedWords cannot be used as bare JavaScript method names in generated
// code without confusing readers, so they get an underscore suffix.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "constructor": true, "continue": true, "debugger": true,
	"default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true, "in": true,
	"instanceof": true, "interface": true, "let": true, "new": true, "null": true,
	"package": true, "private": true, "protected": true, "public": true,
	"return": true, "static": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "var": true,
	"void": true, "while": true, "with": true, "yield": true,
}

// IsJSIdentifier reports whether s is a valid, non-reserved JavaScript
// identifier restricted to ASCII letters, digits, '_' and '$'.
func IsJSIdentifier(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && r < unicode.MaxASCII && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// JSIdentifier turns s into a valid JavaScript identifier.
// Valid identifiers are returned unchanged; anything else is camel-cased,
// prefixed with '_' when it starts with a digit, and suffixed with '_' when
// it collides with a reserved word.
// Example: "list-pets" -> "listPets"
// Example: "2fa" -> "_2fa"
func JSIdentifier(s string) string {
	if IsJSIdentifier(s) {
		return s
	}

	var b strings.Builder
	for _, r := range ToCamelCase(s) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	id := b.String()

	switch {
	case id == "":
		return "_"
	case unicode.IsDigit(rune(id[0])):
		id = "_" + id
	case reservedWords[id]:
		id += "_"
	}
	return id
}
