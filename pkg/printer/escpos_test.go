package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDocumentInitializesPrinter(t *testing.T) {
	doc := NewDocument(32)
	got := doc.Bytes()
	if !bytes.HasPrefix(got, []byte{ESC, '@'}) {
		t.Errorf("document does not start with ESC @: % x", got[:2])
	}
}

func TestNewDocumentDefaultsWidth(t *testing.T) {
	doc := NewDocument(0)
	doc.Separator('-')
	line := textLines(t, doc)[0]
	if len(line) != 32 {
		t.Errorf("separator width = %d, want 32", len(line))
	}
}

func TestKeyValuePadsToWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Subtotal", "1,000.00")
	line := textLines(t, doc)[0]
	if len(line) != 32 {
		t.Errorf("line width = %d, want 32: %q", len(line), line)
	}
	if !strings.HasPrefix(line, "Subtotal") || !strings.HasSuffix(line, "1,000.00") {
		t.Errorf("unexpected layout: %q", line)
	}
}

func TestKeyValueOverflowKeepsOneSpace(t *testing.T) {
	doc := NewDocument(16)
	doc.KeyValue("A very long label indeed", "99.00")
	line := textLines(t, doc)[0]
	if !strings.Contains(line, "indeed 99.00") {
		t.Errorf("expected single space between overflowing key and value: %q", line)
	}
}

func TestItemLineFormat(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(2, "Classic Cheeseburger", "300.00")
	line := textLines(t, doc)[0]
	if !strings.HasPrefix(line, "2x Classic Cheeseburger") {
		t.Errorf("unexpected prefix: %q", line)
	}
	if !strings.HasSuffix(line, "300.00") {
		t.Errorf("unexpected suffix: %q", line)
	}
	if len(line) != 32 {
		t.Errorf("line width = %d, want 32", len(line))
	}
}

func TestCutAppendsCommand(t *testing.T) {
	doc := NewDocument(32)
	doc.Text("done").Cut()
	got := doc.Bytes()
	if !bytes.HasSuffix(got, []byte{GS, 'V', 0x00}) {
		t.Errorf("document does not end with cut command: % x", got[len(got)-3:])
	}
}

// textLines strips the init sequence and splits the printable payload on
// line feeds.
func textLines(t *testing.T, doc *Document) []string {
	t.Helper()
	raw := bytes.TrimPrefix(doc.Bytes(), []byte{ESC, '@'})
	lines := strings.Split(string(raw), string(rune(LF)))
	if len(lines) == 0 {
		t.Fatal("no lines in document")
	}
	return lines
}
