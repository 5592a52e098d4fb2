package attr

import "testing"

func TestParseColourNone(t *testing.T) {
	c, err := ParseColour("none")
	if err != nil {
		t.Fatal(err)
	}
	if !c.None {
		t.Errorf("ParseColour(none).None = false, want true")
	}
	if got, want := c.ToString(), "none"; got != want {
		t.Errorf("ToString() = %q, want %q", got, want)
	}
}

func TestParseColourNamed(t *testing.T) {
	c, err := ParseColour("red")
	if err != nil {
		t.Fatal(err)
	}
	want := Colour{R: 0xff, G: 0, B: 0, A: 0xff}
	if c != want {
		t.Errorf("ParseColour(red) = %+v, want %+v", c, want)
	}
}

func TestParseColourShortHex(t *testing.T) {
	c, err := ParseColour("#0f0")
	if err != nil {
		t.Fatal(err)
	}
	want := Colour{R: 0, G: 0xff, B: 0, A: 0xff}
	if c != want {
		t.Errorf("ParseColour(#0f0) = %+v, want %+v", c, want)
	}
}

func TestParseColourLongHexWithAlpha(t *testing.T) {
	c, err := ParseColour("#11223344")
	if err != nil {
		t.Fatal(err)
	}
	want := Colour{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	if c != want {
		t.Errorf("ParseColour(#11223344) = %+v, want %+v", c, want)
	}
	if got, want := c.ToString(), "#11223344"; got != want {
		t.Errorf("ToString() = %q, want %q", got, want)
	}
}

func TestParseColourRGBFunctional(t *testing.T) {
	c, err := ParseColour("rgb(255, 0, 0)")
	if err != nil {
		t.Fatal(err)
	}
	want := Colour{R: 0xff, G: 0, B: 0, A: 0xff}
	if c != want {
		t.Errorf("ParseColour(rgb(255,0,0)) = %+v, want %+v", c, want)
	}
}

func TestParseColourRGBAFunctional(t *testing.T) {
	c, err := ParseColour("rgba(0, 0, 0, 0.5)")
	if err != nil {
		t.Fatal(err)
	}
	if c.A < 126 || c.A > 129 {
		t.Errorf("ParseColour alpha = %d, want ~127", c.A)
	}
}

func TestParseColourOpaqueOmitsAlphaInHex(t *testing.T) {
	c, _ := ParseColour("#112233")
	if got, want := c.ToString(), "#112233"; got != want {
		t.Errorf("ToString() = %q, want %q", got, want)
	}
}

func TestParseColourUnrecognised(t *testing.T) {
	if _, err := ParseColour("not-a-colour"); err == nil {
		t.Fatal("expected error for unrecognised colour")
	}
}
