package svgparse

import (
	"testing"
)

func TestParseSimpleSVG(t *testing.T) {
	tr, err := Parse(`<svg><circle id="c" cx="50" cy="50" r="40"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := tr.Node(0).Name, "svg"; got != want {
		t.Errorf("root name = %q, want %q", got, want)
	}
	circle := tr.Node(1)
	if got, want := circle.Name, "circle"; got != want {
		t.Errorf("child name = %q, want %q", got, want)
	}
	if got, want := circle.Args["id"].ToString(), "c"; got != want {
		t.Errorf("id attr = %q, want %q", got, want)
	}
}

func TestParseNoSvgFound(t *testing.T) {
	_, err := Parse(`<html><body>hello</body></html>`)
	if _, ok := err.(ErrNoSvgFound); !ok {
		t.Fatalf("err = %v (%T), want ErrNoSvgFound", err, err)
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse(`<svg><circle></svg>`)
	if _, ok := err.(ErrXMLParse); !ok {
		t.Fatalf("err = %v (%T), want ErrXMLParse", err, err)
	}
}

func TestParseInvalidAttribute(t *testing.T) {
	_, err := Parse(`<svg><rect transform="bogus(1)"/></svg>`)
	if _, ok := err.(ErrAttributeParse); !ok {
		t.Fatalf("err = %v (%T), want ErrAttributeParse", err, err)
	}
}

func TestParseTextContent(t *testing.T) {
	tr, err := Parse(`<svg><text>Hello</text></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Node(1).Text, "Hello"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestParseLastTextWins(t *testing.T) {
	tr, err := Parse(`<svg><text>one<tspan/>two</text></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Node(1).Text, "two"; got != want {
		t.Errorf("text = %q, want %q (last char-data run wins)", got, want)
	}
}

func TestParseEmbeddedInPreamble(t *testing.T) {
	tr, err := Parse("<html><body>\n<svg><g/></svg>\n</body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Node(0).Name, "svg"; got != want {
		t.Errorf("root name = %q, want %q", got, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tr, err := Parse(`<svg><circle id="c" cx="50" cy="50" r="40"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	out := Serialize(tr, 0, nil)
	tr2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parsing serialised output failed: %v", err)
	}
	if got, want := tr2.Node(1).Args["id"].ToString(), "c"; got != want {
		t.Errorf("round-tripped id = %q, want %q", got, want)
	}
}

func TestSerializeWithIDOverride(t *testing.T) {
	tr, err := Parse(`<svg><circle/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	out := Serialize(tr, 0, func(idx int) (string, bool) {
		if idx == 1 {
			return "abc-1", true
		}
		return "", false
	})
	tr2, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tr2.Node(1).Args["id"].ToString(), "abc-1"; got != want {
		t.Errorf("overridden id = %q, want %q", got, want)
	}
}
