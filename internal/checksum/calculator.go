package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator computes document checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator using SHA-256.
// It is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

type scanState int

const (
	ssText scanState = iota
	ssTag
	ssQuoted
	ssComment
	ssCDATA
	ssDecl
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
	declOpen     = "<?xml"
	declClose    = "?>"
)

// Normalize rewrites an XML document into its canonical fingerprint form.
// The input does not need to be well-formed.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := ssText
	var quote byte
	var pendingSpace bool
	i := 0

	flushSpace := func(next byte) {
		if pendingSpace && next != '<' && b.Len() > 0 && !strings.HasSuffix(b.String(), ">") {
			b.WriteByte(' ')
		}
		pendingSpace = false
	}

	for i < len(content) {
		ch := content[i]

		switch state {
		case ssText:
			switch {
			case strings.HasPrefix(content[i:], commentOpen):
				state = ssComment
				i += len(commentOpen)
			case strings.HasPrefix(content[i:], cdataOpen):
				flushSpace(ch)
				state = ssCDATA
				b.WriteString(cdataOpen)
				i += len(cdataOpen)
			case strings.HasPrefix(content[i:], declOpen) && isDeclEnd(content, i+len(declOpen)):
				state = ssDecl
				i += len(declOpen)
			case isSpace(ch):
				pendingSpace = true
				i++
			case ch == '<':
				pendingSpace = false
				state = ssTag
				b.WriteByte(ch)
				i++
			default:
				flushSpace(ch)
				b.WriteByte(ch)
				i++
			}

		case ssTag:
			switch {
			case ch == '"' || ch == '\'':
				if pendingSpace && !strings.HasSuffix(b.String(), "=") {
					b.WriteByte(' ')
				}
				pendingSpace = false
				quote = ch
				state = ssQuoted
				b.WriteByte(ch)
			case isSpace(ch):
				pendingSpace = true
			case ch == '>' || ch == '/' || ch == '=':
				pendingSpace = false
				b.WriteByte(ch)
				if ch == '>' {
					state = ssText
				}
			default:
				if pendingSpace && !strings.HasSuffix(b.String(), "=") {
					b.WriteByte(' ')
				}
				pendingSpace = false
				b.WriteByte(ch)
			}
			i++

		case ssQuoted:
			b.WriteByte(ch)
			if ch == quote {
				state = ssTag
			}
			i++

		case ssComment:
			if strings.HasPrefix(content[i:], commentClose) {
				state = ssText
				i += len(commentClose)
			} else {
				i++
			}

		case ssCDATA:
			if strings.HasPrefix(content[i:], cdataClose) {
				b.WriteString(cdataClose)
				state = ssText
				i += len(cdataClose)
			} else {
				b.WriteByte(ch)
				i++
			}

		case ssDecl:
			if strings.HasPrefix(content[i:], declClose) {
				state = ssText
				i += len(declClose)
			} else {
				i++
			}
		}
	}

	return b.String()
}

// isDeclEnd reports whether the "<?xml" at the current position is the XML
// declaration and not a processing instruction such as <?xml-stylesheet.
func isDeclEnd(s string, i int) bool {
	return i < len(s) && (isSpace(s[i]) || s[i] == '?')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
