package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceDocumentIdentity is the UUID namespace for document identities.
// It is derived from "ddexcheck/document-identity/v1" under the URL namespace.
var NamespaceDocumentIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ddexcheck/document-identity/v1"))

// DocumentID creates a deterministic UUID v5 from a normalized file path.
//
// Path Normalization:
//  1. Convert backslashes to forward slashes
//  2. Convert to lowercase (case-insensitive identity)
//  3. Remove leading "./" prefix
//
// Examples:
//   - "./feeds/release.xml" → uuid_v5(namespace, "feeds/release.xml")
//   - "FEEDS\Release.XML"   → uuid_v5(namespace, "feeds/release.xml")
func DocumentID(path string) uuid.UUID {
	return uuid.NewSHA1(NamespaceDocumentIdentity, []byte(normalizePath(path)))
}

func normalizePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	normalized = strings.ToLower(normalized)
	return strings.TrimPrefix(normalized, "./")
}
