package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() value for enum values outside their declared range.
const UnknownStr = "unknown"

// GlobalPrefix is the alias qualifier used for fully qualified C# names.
const GlobalPrefix = "global::"

// LowerFirst lower-cases the first rune of name.
// Returns the input unchanged if it is empty.
func LowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}

// FieldName returns the backing-field identifier for a generated member:
// an underscore followed by the member name with its first rune lower-cased.
func FieldName(member string) string {
	return "_" + LowerFirst(member)
}

// ShortName returns the last dot-separated segment of a qualified name.
// "System.Text.Json.JsonIgnoreAttribute" -> "JsonIgnoreAttribute".
func ShortName(qualified string) string {
	qualified = strings.TrimPrefix(qualified, GlobalPrefix)
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}

	return qualified
}

// Namespace returns everything before the last dot of a qualified name,
// or an empty string for names in the global namespace.
func Namespace(qualified string) string {
	qualified = strings.TrimPrefix(qualified, GlobalPrefix)
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[:i]
	}

	return ""
}

// JoinQualified joins a namespace and a name with a dot, omitting the dot
// when the namespace is empty.
func JoinQualified(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}

// TrimAttributeSuffix strips the conventional "Attribute" suffix from a type name.
func TrimAttributeSuffix(name string) string {
	if trimmed, ok := strings.CutSuffix(name, "Attribute"); ok && trimmed != "" {
		return trimmed
	}

	return name
}
