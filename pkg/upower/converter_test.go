package upower

import (
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/powerjson/powerjson/pkg/convert"
)

func TestConverter_Registered(t *testing.T) {
	c, err := convert.Get("upower")
	if err != nil {
		t.Fatalf("Get(upower) error = %v", err)
	}
	if !slices.Contains(c.Magic(), "upower") {
		t.Errorf("Magic() = %v, want to contain upower", c.Magic())
	}
}

func TestConverter_Convert(t *testing.T) {
	c := Converter{}

	records, err := c.Convert(sampleReport, convert.Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if records[0]["power_supply"] != true {
		t.Errorf("normalized mode: power_supply = %v, want true", records[0]["power_supply"])
	}

	raw, err := c.Convert(sampleReport, convert.Options{Raw: true})
	if err != nil {
		t.Fatalf("Convert(raw) error = %v", err)
	}
	if raw[0]["power_supply"] != "yes" {
		t.Errorf("raw mode: power_supply = %v, want string yes", raw[0]["power_supply"])
	}
	if _, present := raw[0]["updated_epoch"]; present {
		t.Error("raw mode must not derive updated_epoch")
	}
}

func TestConverter_Advisory(t *testing.T) {
	c := Converter{}

	var advisory string
	opts := convert.Options{Advise: func(msg string) { advisory = msg }}

	if _, err := c.Convert(sampleReport, opts); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	onLinux := runtime.GOOS == "linux"
	if onLinux && advisory != "" {
		t.Errorf("unexpected advisory on linux: %q", advisory)
	}
	if !onLinux && !strings.Contains(advisory, "upower") {
		t.Errorf("advisory = %q, want converter named", advisory)
	}

	// quiet suppresses the hook entirely
	advisory = ""
	opts.Quiet = true
	if _, err := c.Convert(sampleReport, opts); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if advisory != "" {
		t.Errorf("quiet mode still emitted advisory %q", advisory)
	}
}

func TestConverter_Probe(t *testing.T) {
	sample := strings.Split(strings.TrimSpace(sampleReport), "\n")
	if got := (Converter{}).Probe(sample); got < 0.8 {
		t.Errorf("Probe(upower sample) = %v, want >= 0.8", got)
	}

	nonsense := []string{"battery.charge: 100", "ups.status: OL"}
	if got := (Converter{}).Probe(nonsense); got != 0 {
		t.Errorf("Probe(upsc sample) = %v, want 0 without headers", got)
	}
}
