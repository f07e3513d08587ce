package upower

import (
	"strings"
	"testing"

	"github.com/powerjson/powerjson/pkg/convert"
)

// sampleReport is a capture of `upower -d` with one battery device and the
// daemon block.
const sampleReport = `Device: /org/freedesktop/UPower/devices/battery_BAT0
  native-path:          /sys/devices/LNXSYSTM:00/device:00/PNP0C0A:00/power_supply/BAT0
  vendor:               NOTEBOOK
  model:                BAT
  serial:               0001
  power supply:         yes
  updated:              Thu Feb  9 18:42:15 2012 (1 seconds ago)
  has history:          yes
  has statistics:       yes
  battery
    present:             yes
    rechargeable:        yes
    state:               charging
    warning-level:       none
    energy:              22.3998 Wh
    energy-empty:        0 Wh
    energy-full:         52.6473 Wh
    energy-full-design:  62.16 Wh
    energy-rate:         31.6905 W
    voltage:             12.191 V
    time to full:        57.3 minutes
    percentage:          42.5469%
    capacity:            84.6964%
    technology:          lithium-ion
  History (charge):
    1328809335	42.547	charging
    1328809305	42.020	charging
  History (rate):
    1328809335	31.691	charging

Daemon:
  daemon-version:  0.99.4
  on-battery:      no
  lid-is-closed:   no
  lid-is-present:  yes
  critical-action: PowerOff
`

func TestParse_DeviceAndDaemon(t *testing.T) {
	records, err := Parse(sampleReport)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}

	dev := records[0]
	if dev["type"] != "Device" {
		t.Errorf("records[0] type = %v, want Device", dev["type"])
	}
	if dev["device_name"] != "/org/freedesktop/UPower/devices/battery_BAT0" {
		t.Errorf("device_name = %v", dev["device_name"])
	}
	if dev["power_supply"] != "yes" {
		t.Errorf("power_supply = %v, want raw string \"yes\"", dev["power_supply"])
	}
	if dev["updated"] != "Thu Feb  9 18:42:15 2012 (1 seconds ago)" {
		t.Errorf("updated = %v", dev["updated"])
	}

	detail, ok := dev["detail"].(convert.Record)
	if !ok {
		t.Fatalf("detail missing or wrong type: %T", dev["detail"])
	}
	if detail["type"] != "battery" {
		t.Errorf("detail type = %v, want battery", detail["type"])
	}
	if detail["energy"] != "22.3998 Wh" {
		t.Errorf("detail energy = %v, want raw string", detail["energy"])
	}
	if detail["energy_full_design"] != "62.16 Wh" {
		t.Errorf("energy_full_design = %v", detail["energy_full_design"])
	}
	if detail["time_to_full"] != "57.3 minutes" {
		t.Errorf("time_to_full = %v (label normalization failed?)", detail["time_to_full"])
	}

	charge, ok := dev["history_charge"].([]convert.Record)
	if !ok {
		t.Fatalf("history_charge missing or wrong type: %T", dev["history_charge"])
	}
	if len(charge) != 2 {
		t.Fatalf("Got %d history_charge rows, want 2", len(charge))
	}
	if charge[0]["time"] != "1328809335" || charge[0]["percent_charged"] != "42.547" || charge[0]["status"] != "charging" {
		t.Errorf("history_charge[0] = %v", charge[0])
	}
	if charge[1]["percent_charged"] != "42.020" {
		t.Errorf("history_charge[1] out of order: %v", charge[1])
	}

	rate, ok := dev["history_rate"].([]convert.Record)
	if !ok || len(rate) != 1 {
		t.Fatalf("history_rate = %v", dev["history_rate"])
	}

	daemon := records[1]
	if daemon["type"] != "Daemon" {
		t.Errorf("records[1] type = %v, want Daemon", daemon["type"])
	}
	if _, present := daemon["device_name"]; present {
		t.Error("Daemon record must not have device_name")
	}
	if daemon["daemon_version"] != "0.99.4" {
		t.Errorf("daemon_version = %v", daemon["daemon_version"])
	}
	if _, present := daemon["detail"]; present {
		t.Error("Daemon record must not have detail")
	}
}

func TestParse_RecordOrder(t *testing.T) {
	input := `Device: /dev/a
  vendor: A
Device: /dev/b
  vendor: B
Daemon:
  daemon-version: 1.0
`
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Got %d records, want 3", len(records))
	}

	want := []string{"/dev/a", "/dev/b", ""}
	for i, name := range want {
		if name == "" {
			continue
		}
		if records[i]["device_name"] != name {
			t.Errorf("records[%d] device_name = %v, want %s", i, records[i]["device_name"], name)
		}
	}
}

func TestParse_DeviceNameIffDevice(t *testing.T) {
	records, err := Parse(sampleReport)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, rec := range records {
		_, hasName := rec["device_name"]
		if (rec["type"] == "Device") != hasName {
			t.Errorf("records[%d]: type=%v but device_name present=%v", i, rec["type"], hasName)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\n  \n"} {
		records, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if len(records) != 0 {
			t.Errorf("Parse(%q) = %d records, want 0", input, len(records))
		}
	}
}

func TestParse_NoHeaders(t *testing.T) {
	input := `  vendor: NOTEBOOK
  model: BAT
`
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Got %d records, want 0 (no header lines)", len(records))
	}
}

func TestParse_HistoryHeaderWithoutRows(t *testing.T) {
	input := `Device: /dev/bat
  History (charge):
`
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Got %d records, want 1", len(records))
	}

	rows, ok := records[0]["history_charge"].([]convert.Record)
	if !ok {
		t.Fatalf("history_charge absent, want empty sequence: %v", records[0])
	}
	if len(rows) != 0 {
		t.Errorf("Got %d rows, want 0", len(rows))
	}
}

func TestParse_DetailFieldBeforeTypeLine(t *testing.T) {
	input := `Device: /dev/bat
    present: yes
`
	_, err := Parse(input)
	if err == nil {
		t.Fatal("Parse() expected error for detail field before detail type line")
	}
	if !strings.Contains(err.Error(), "detail") {
		t.Errorf("error %q should name the detail precondition", err)
	}
}

func TestParse_MalformedHistoryRow(t *testing.T) {
	input := `Device: /dev/bat
  History (charge):
    1328809335	42.547
`
	_, err := Parse(input)
	if err == nil {
		t.Fatal("Parse() expected error for 2-field history row")
	}
	if !strings.Contains(err.Error(), "history row") {
		t.Errorf("error %q should describe the malformed row", err)
	}
}

func TestParse_HistoryRowOutsideSection(t *testing.T) {
	input := `Device: /dev/bat
    1328809335	42.547	charging
`
	_, err := Parse(input)
	if err == nil {
		t.Fatal("Parse() expected error for history row outside a section")
	}
}

func TestParse_ValueContainingColon(t *testing.T) {
	input := `Device: /dev/bat
  model: Smart-UPS X: 1500
`
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if records[0]["model"] != "Smart-UPS X: 1500" {
		t.Errorf("model = %v, only the first colon delimits", records[0]["model"])
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"power supply", "power_supply"},
		{"daemon-version", "daemon_version"},
		{"History (charge)", "history_charge"},
		{"  time to full  ", "time_to_full"},
		{"Voltage", "voltage"},
	}

	for _, tt := range tests {
		if got := normalizeKey(tt.label); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
