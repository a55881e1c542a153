package metadata

import (
	"strings"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Validate checks an envelope for internal consistency:
//   - Message type and version are present
//   - MessageSchemaVersionId, when present, agrees with the namespace version
//
// The schema version attribute is written as "ern/382" or "ern/41"; it is
// compared on its digits only.
func Validate(m ddex.Message) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	if m.Type == "" {
		result.AddError("message type is missing (document has no root element)")
	}
	if m.Version == "" {
		result.AddError("DDEX version is missing (no ERN namespace and no MessageSchemaVersionId)")
	}

	if m.SchemaVersionID != "" && m.Version != "" && m.Version != m.SchemaVersionID {
		declared := digits(m.SchemaVersionID)
		if declared != "" && declared != digits(m.Version) {
			result.AddError("MessageSchemaVersionId %q does not match the namespace version %s",
				m.SchemaVersionID, m.Version)
		}
	}

	return result
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
