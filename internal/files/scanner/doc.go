// Package scanner discovers DDEX documents for batch validation.
//
// The scanner package is responsible for:
//   - Finding files whose base name matches a glob pattern, optionally recursively
//   - Extracting file metadata (path, size, timestamps)
//   - Computing raw and normalized content checksums for the result store
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package scanner
