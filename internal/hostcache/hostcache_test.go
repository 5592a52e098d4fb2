package hostcache

import (
	"path/filepath"
	"testing"
)

func TestCacheGetSetRoundTrip(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "last.svg"))

	if _, ok := c.Get(); ok {
		t.Fatal("Get on a fresh cache reported ok=true")
	}

	if err := c.Set("<svg></svg>"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get()
	if !ok || got != "<svg></svg>" {
		t.Fatalf("Get after Set = (%q, %v), want (%q, true)", got, ok, "<svg></svg>")
	}
}

func TestCachePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.svg")

	first := New(path)
	if err := first.Set("<svg id=\"a\"></svg>"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second := New(path)
	got, ok := second.Get()
	if !ok || got != "<svg id=\"a\"></svg>" {
		t.Fatalf("Get on reopened cache = (%q, %v), want (%q, true)", got, ok, "<svg id=\"a\"></svg>")
	}
}
