// Package filesystem provides the file access abstraction used for DDEX
// documents and XSD schema trees.
//
// Key interfaces:
//   - FileSystemProvider: reads files, lists directories and opens trees
//   - Directory: a tree that can be walked to discover documents
//   - File: an individual file with metadata and content
//
// Implementations:
//   - OSFileSystem: production implementation on the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
package filesystem
