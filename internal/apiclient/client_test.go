package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListReminders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/reminders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"blood test","date_time":"2024-03-15T12:00:00Z","notes":null,"notified":false}]`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	reminders, err := c.ListReminders(context.Background())
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Title != "blood test" {
		t.Fatalf("unexpected reminders: %+v", reminders)
	}
}

func TestMarkNotified(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.MarkNotified(context.Background(), 42); err != nil {
		t.Fatalf("MarkNotified: %v", err)
	}
	if gotPath != "PUT /api/reminders/42/notify" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
}

func TestNon2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = c.MarkNotified(context.Background(), 99)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", httpErr.StatusCode)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New("", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := New("::not-a-url", time.Second); err == nil {
		t.Fatal("expected error for malformed base url")
	}
}
