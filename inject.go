package devserve

import "bytes"

// Marker identifies a document that already carries the injected client.
// It doubles as the script element's id, so a served page always contains
// it exactly once.
const Marker = "__devserve_injected__"

var (
	marker    = []byte(Marker)
	closeBody = []byte("</body>")
)

// inject splices the client script immediately before the document's last
// closing body tag, case-insensitively, or appends it when the document
// has none. Documents already carrying the marker come back untouched.
func inject(doc []byte) []byte {
	if bytes.Contains(doc, marker) {
		return doc
	}
	index := bytes.LastIndex(asciiLower(doc), closeBody)
	if index < 0 {
		return append(doc, clientScript...)
	}
	out := make([]byte, 0, len(doc)+len(clientScript))
	out = append(out, doc[:index]...)
	out = append(out, clientScript...)
	out = append(out, doc[index:]...)
	return out
}

// asciiLower folds only 'A'-'Z', so every offset in the result maps to the
// same offset in the original. Unicode-aware lowering can change byte
// lengths (İ becomes a one-byte i) and would drift the splice index into
// the middle of a rune.
func asciiLower(doc []byte) []byte {
	out := make([]byte, len(doc))
	for i, c := range doc {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
