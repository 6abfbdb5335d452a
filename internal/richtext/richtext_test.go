package richtext

import "testing"

func TestDecodeAndStripHTML_EmptyInput(t *testing.T) {
	if got := DecodeAndStripHTML(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDecodeAndStripHTML_BulletList(t *testing.T) {
	got := DecodeAndStripHTML("<ul><li>Built X</li><li>Shipped Y</li></ul>")
	want := "• Built X\n• Shipped Y"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAndStripHTML_ParagraphsAndBreaks(t *testing.T) {
	got := DecodeAndStripHTML("<p>first</p><p>second<br/>third</p>")
	want := "first\nsecond\nthird"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAndStripHTML_DecodesEntitiesBeforeStripping(t *testing.T) {
	// 编码过的标签应先解码、再作为标签剥除，而不是以字面文本残留。
	got := DecodeAndStripHTML("&lt;b&gt;bold&lt;/b&gt; &amp; plain")
	want := "bold & plain"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAndStripHTML_DoubleEncodedAmpersand(t *testing.T) {
	// &amp;lt; 只解一层：lt 的替换先执行，&amp; 折叠后得到字面 "&lt;"。
	got := DecodeAndStripHTML("&amp;lt;")
	if got != "&lt;" {
		t.Fatalf("got %q want %q", got, "&lt;")
	}

	// &amp; 排在 quot 之前，二次编码的引号在同一趟内还原。
	got = DecodeAndStripHTML("&amp;quot;hi&amp;quot;")
	if got != `"hi"` {
		t.Fatalf("got %q want %q", got, `"hi"`)
	}
}

func TestDecodeAndStripHTML_CollapsesBlankLines(t *testing.T) {
	got := DecodeAndStripHTML("<p>a</p>\n\n  \n<p>b</p>")
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeAndStripHTML_Idempotent(t *testing.T) {
	inputs := []string{
		"<ul><li>one</li><li>two &amp; three</li></ul>",
		"<p>summary</p><br>line",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"plain text already",
	}
	for _, in := range inputs {
		once := DecodeAndStripHTML(in)
		twice := DecodeAndStripHTML(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q second %q", in, once, twice)
		}
	}
}

func TestSanitizeHTML_KeepsEditorSubset(t *testing.T) {
	got := SanitizeHTML(`<ul><li>ok</li></ul><script>alert(1)</script>`)
	if got != "<ul><li>ok</li></ul>" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeHTML_Empty(t *testing.T) {
	if got := SanitizeHTML(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
