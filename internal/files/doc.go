// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Discovery of DDEX documents for batch validation
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/ddexcheck/internal/files/filesystem"
//	    "github.com/vvka-141/ddexcheck/internal/files/scanner"
//	)
//
//	s := scanner.NewScanner(checksum.New())
//	result, err := s.Scan("./feeds", scanner.Options{Pattern: "*.xml", Recursive: true})
//	for _, doc := range result.Documents {
//	    res := validator.ValidateFile(doc.Path)
//	}
package files
