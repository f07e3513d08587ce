package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/powerjson/powerjson/pkg/convert"
)

var testRecords = []convert.Record{
	{"type": "Device", "device_name": "/org/freedesktop/UPower/devices/battery_BAT0"},
	{"type": "Daemon", "on_battery": false},
}

func TestSend(t *testing.T) {
	var gotPayload Payload
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), "upower", testRecords, SendOptions{
		URL:   server.URL,
		Token: "abc123",
	})

	if !resp.Success() {
		t.Fatalf("Send() failed: status=%d err=%v", resp.StatusCode, resp.Error)
	}
	if resp.Body != `{"status":"ok"}` {
		t.Errorf("body = %q", resp.Body)
	}

	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get("Authorization") != "Bearer abc123" {
		t.Errorf("Authorization = %q", gotHeaders.Get("Authorization"))
	}
	if gotHeaders.Get("User-Agent") != "powerjson-webhook" {
		t.Errorf("User-Agent = %q", gotHeaders.Get("User-Agent"))
	}

	if gotPayload.Converter != "upower" {
		t.Errorf("payload converter = %q, want upower", gotPayload.Converter)
	}
	if len(gotPayload.Records) != 2 {
		t.Errorf("payload records = %d, want 2", len(gotPayload.Records))
	}
	if _, err := time.Parse(time.RFC3339, gotPayload.Timestamp); err != nil {
		t.Errorf("payload timestamp %q is not RFC3339: %v", gotPayload.Timestamp, err)
	}
}

func TestSend_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), "upower", nil, SendOptions{URL: server.URL})
	if !resp.Success() {
		t.Fatalf("Send() failed: status=%d err=%v", resp.StatusCode, resp.Error)
	}
}

func TestSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), "upower", testRecords, SendOptions{URL: server.URL})
	if resp.Success() {
		t.Fatal("Send() reported success for a 500")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Error == nil {
		t.Error("expected an error for a 500 response")
	}
}

func TestSend_Unreachable(t *testing.T) {
	resp := NewClient().Send(context.Background(), "upower", testRecords, SendOptions{
		URL:     "http://127.0.0.1:1",
		Timeout: 2 * time.Second,
	})
	if resp.Success() {
		t.Fatal("Send() reported success for an unreachable endpoint")
	}
	if resp.Error == nil {
		t.Error("expected a transport error")
	}
}
