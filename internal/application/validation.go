package application

import (
	"fmt"
	"strings"

	"coursecraft/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceKey" -> "source key")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sourceKey": "source key",
		"targetKey": "target key",
		"parentKey": "parent key",
		"nodeKey":   "node key",
		"title":     "title",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateKind checks that a node has the expected kind.
// Returns a ValidationError if it doesn't.
func ValidateKind(fieldName string, node *domain.Node, expected ...domain.Kind) error {
	for _, kind := range expected {
		if node.Kind == kind {
			return nil
		}
	}
	names := make([]string, len(expected))
	for i, kind := range expected {
		names[i] = kind.String()
	}
	return &ValidationError{
		Field:   fieldName,
		Message: fmt.Sprintf("expected %s, got %s", strings.Join(names, " or "), node.Kind),
	}
}
