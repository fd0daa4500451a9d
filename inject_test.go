package devserve

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matryer/is"
)

func TestInjectBeforeClosingBody(t *testing.T) {
	is := is.New(t)
	doc := []byte("<html><body>Hi</body></html>")
	out := inject(doc)
	is.Equal(bytes.Count(out, marker), 1)
	is.True(bytes.Index(out, marker) < bytes.Index(out, closeBody))
	is.True(bytes.HasSuffix(out, []byte("</body></html>")))
	is.True(bytes.HasPrefix(out, []byte("<html><body>Hi")))
}

func TestInjectBeforeLastClosingBody(t *testing.T) {
	is := is.New(t)
	doc := []byte("<html><body><pre>&lt;/body&gt; </body> sample</pre></body></html>")
	out := inject(doc)
	last := bytes.LastIndex(out, closeBody)
	is.True(bytes.Index(out, marker) < last)
	is.True(bytes.Index(out, marker) > bytes.Index(out, closeBody))
}

func TestInjectCaseInsensitive(t *testing.T) {
	is := is.New(t)
	doc := []byte("<HTML><BODY>Hi</BODY></HTML>")
	out := inject(doc)
	is.Equal(bytes.Count(out, marker), 1)
	is.True(bytes.HasSuffix(out, []byte("</BODY></HTML>")))
}

func TestInjectPreservesMultibyteRunes(t *testing.T) {
	is := is.New(t)
	// İ, ẞ and K all shrink under Unicode lowering, which would drift a
	// splice index computed on a lowered copy. The script must land at the
	// tag, byte for byte, with the content untouched.
	doc := []byte("<html><BODY>İİİ ẞtraße 273K</BODY></html>")
	tag := bytes.Index(doc, []byte("</BODY>"))
	out := inject(doc)
	is.True(utf8.Valid(out))
	is.Equal(bytes.Count(out, marker), 1)
	is.Equal(string(out[:tag]), string(doc[:tag]))
	is.True(bytes.HasSuffix(out, doc[tag:]))
	is.True(bytes.HasPrefix(out[tag:], clientScript))
}

func TestInjectAppendsWithoutBody(t *testing.T) {
	is := is.New(t)
	doc := []byte("<p>fragment with no body tag</p>")
	out := inject(doc)
	is.True(bytes.HasPrefix(out, doc))
	is.Equal(bytes.Count(out, marker), 1)
}

func TestInjectIdempotent(t *testing.T) {
	is := is.New(t)
	doc := []byte("<html><body>Hi</body></html>")
	once := inject(doc)
	twice := inject(once)
	is.Equal(string(once), string(twice))
	is.Equal(bytes.Count(twice, marker), 1)

	// A document that somehow already carries the marker is left alone.
	manual := []byte("<html><body>" + Marker + "</body></html>")
	is.Equal(string(inject(manual)), string(manual))
}

func TestClientScriptIsSelfContained(t *testing.T) {
	is := is.New(t)
	script := string(clientScript)
	is.True(strings.Contains(script, `id="`+Marker+`"`))
	is.True(strings.Contains(script, `new EventSource("`+LiveReloadPath+`")`))
	is.True(strings.Contains(script, `searchParams.get("noreload")`))
	is.True(strings.Contains(script, `searchParams.get("inspect")`))
	is.True(!strings.Contains(script, "src=")) // nothing loaded externally
}
