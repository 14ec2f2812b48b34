package xmldom

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-nbrender/dom"
)

func TestElement_SetInnerHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "well-formed markup",
			markup: "<b>bold</b> text",
			want:   "<div><b>bold</b> text</div>",
		},
		{
			name:   "escaped text",
			markup: "x &lt; 1",
			want:   "<div>x &lt; 1</div>",
		},
		{
			name:   "self-closing void tag",
			markup: "a<br/>b",
			want:   "<div>a<br></br>b</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			el := New().CreateElement("div")
			if err := el.SetInnerHTML(tt.markup); err != nil {
				t.Fatalf("SetInnerHTML() error = %v", err)
			}

			if got := String(el); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElement_SetInnerHTML_Malformed(t *testing.T) {
	t.Parallel()

	el := New().CreateElement("div")
	el.SetText("kept")

	err := el.SetInnerHTML("<p>unclosed")
	if !errors.Is(err, dom.ErrMalformedMarkup) {
		t.Fatalf("SetInnerHTML() error = %v, want ErrMalformedMarkup", err)
	}
	if got := String(el); got != "<div>kept</div>" {
		t.Errorf("content changed after failed parse: %q", got)
	}
}

func TestElement_ClassAndAttributes(t *testing.T) {
	t.Parallel()

	doc := New()
	el := doc.CreateElement("img")
	el.SetClassName("nb-image-output")
	el.SetAttribute("src", "data:image/png;base64,AAAA")

	got := String(el)
	for _, want := range []string{`class="nb-image-output"`, `src="data:image/png;base64,AAAA"`} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}

	el.SetClassName("")
	if strings.Contains(String(el), "class=") {
		t.Errorf("class attribute not removed: %q", String(el))
	}
}

func TestDocument_Serialize_LeavesTreeDetached(t *testing.T) {
	t.Parallel()

	doc := New()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("pre")
	child.SetText("a < b")
	parent.AppendChild(child)

	first := String(parent)
	second := String(parent)
	if first != second {
		t.Errorf("serializing twice differs: %q vs %q", first, second)
	}
	if want := "<div><pre>a &lt; b</pre></div>"; first != want {
		t.Errorf("String() = %q, want %q", first, want)
	}
}

func TestElement_Etree(t *testing.T) {
	t.Parallel()

	el := New().CreateElement("div").(*Element)
	el.SetClassName("a")

	if got := el.Etree().SelectAttrValue("class", ""); got != "a" {
		t.Errorf("Etree() class = %q, want a", got)
	}
}
