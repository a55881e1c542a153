// Package checksum provides document content hashing with normalization support.
//
// Two fingerprints are computed for every validated document:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing XML comments and insignificant
//     whitespace (the same message re-serialized by another tool keeps its
//     fingerprint)
//
// # Normalization Strategy
//
//  1. Remove the XML declaration and comments (<!-- -->)
//  2. Keep CDATA sections and quoted attribute values verbatim
//  3. Drop whitespace-only runs between tags
//  4. Collapse remaining whitespace sequences to single spaces
//
// Case is preserved: XML names and values are case-sensitive.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
