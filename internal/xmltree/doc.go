// Package xmltree is the read-only XML tree used by the rule engine.
//
// It wraps github.com/beevik/etree with the few operations the checks need:
// parsing with a strict well-formedness gate, namespace-agnostic descendant
// search by local name, trimmed text access and the diagnostic element path
// reported with every issue.
//
// # Element Paths
//
// Path builds a "/"-separated chain of local tag names from the document
// root. When a parent holds more than one child with the same tag, each of
// those children carries a 1-based position suffix:
//
//	/NewReleaseMessage/ResourceList/SoundRecording[2]/ISRC
//
// The path is diagnostic only. It is deterministic for a given tree but is
// not a selector and need not be unique in irregular documents.
package xmltree
