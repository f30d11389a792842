package adapthttp_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	adapthttp "medtrack/internal/adapter/http"
	"medtrack/internal/adapter/memory"
	"medtrack/internal/app"
)

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := memory.New()
	ms := app.NewMedicationService(db)
	rs := app.NewReminderService(db)
	vs := app.NewVitalService(db)
	as := app.NewAppointmentService(db)
	authSvc := app.NewAuthService(db, db.NewSessionRepo())

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(ms, rs, vs, as, authSvc, webDir).WithoutAuth()
	return httptest.NewServer(srv.Handler())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return items
}

func doJSON(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	tomorrow := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	// Create
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/appointments", map[string]any{
		"doctor":    "Dr. Lee",
		"type":      "Checkup",
		"date_time": tomorrow.Format(time.RFC3339),
	})
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	id, ok := decodeBody(t, resp)["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("expected non-zero id, got %v", id)
	}

	// Read back
	resp2, err := http.Get(fmt.Sprintf("%s/api/appointments/%d", ts.URL, int64(id)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close() //nolint:errcheck
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
	got := decodeBody(t, resp2)
	if got["doctor"] != "Dr. Lee" || got["type"] != "Checkup" {
		t.Fatalf("unexpected appointment: %v", got)
	}

	// Shows up in the upcoming list
	resp3, err := http.Get(ts.URL + "/api/appointments/upcoming/list")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp3.Body.Close() //nolint:errcheck
	upcoming := decodeList(t, resp3)
	found := false
	for _, a := range upcoming {
		if a["id"] == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected appointment %v in upcoming list, got %v", id, upcoming)
	}

	// Delete, then a get is a 404
	resp4 := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/appointments/%d", ts.URL, int64(id)), nil)
	defer resp4.Body.Close() //nolint:errcheck
	if resp4.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp4.StatusCode)
	}

	resp5, err := http.Get(fmt.Sprintf("%s/api/appointments/%d", ts.URL, int64(id)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp5.Body.Close() //nolint:errcheck
	if resp5.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp5.StatusCode)
	}
	body := decodeBody(t, resp5)
	if _, ok := body["error"].(string); !ok {
		t.Fatalf("expected error message, got %v", body)
	}
}

func TestCreateMedicationValidation(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name:       "valid",
			payload:    map[string]any{"name": "Aspirin", "dosage": "100mg", "frequency": "daily", "time": "08:00"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			payload:    map[string]any{"dosage": "100mg", "frequency": "daily", "time": "08:00"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad clock time",
			payload:    map[string]any{"name": "Aspirin", "dosage": "100mg", "frequency": "daily", "time": "25:99"},
			wantStatus: http.StatusBadRequest,
		},
	}

	ts := newTestServer(t)
	defer ts.Close()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/medications", tc.payload)
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != tc.wantStatus {
				body := decodeBody(t, resp)
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
			if tc.wantStatus == http.StatusCreated {
				if _, ok := decodeBody(t, resp)["id"]; !ok {
					t.Fatal("response missing 'id' field")
				}
			}
		})
	}
}

func TestMedicationTakenFlow(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/medications", map[string]any{
		"name": "Aspirin", "dosage": "100mg", "frequency": "daily", "time": "08:00",
	})
	defer resp.Body.Close() //nolint:errcheck
	id := int64(decodeBody(t, resp)["id"].(float64))

	resp2 := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/medications/%d/taken", ts.URL, id), map[string]any{"taken": true})
	defer resp2.Body.Close() //nolint:errcheck
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}

	resp3, err := http.Get(ts.URL + "/api/medications/stats/count")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp3.Body.Close() //nolint:errcheck
	stats := decodeBody(t, resp3)
	if stats["total"] != 1.0 || stats["taken"] != 1.0 || stats["pending"] != 0.0 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestReminderNotify(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/reminders", map[string]any{
		"title":     "blood test",
		"date_time": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	id := int64(decodeBody(t, resp)["id"].(float64))

	resp2 := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/reminders/%d/notify", ts.URL, id), nil)
	defer resp2.Body.Close() //nolint:errcheck
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}

	resp3, err := http.Get(fmt.Sprintf("%s/api/reminders/%d", ts.URL, id))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp3.Body.Close() //nolint:errcheck
	if got := decodeBody(t, resp3); got["notified"] != true {
		t.Fatalf("expected notified=true, got %v", got)
	}

	// Unknown id is a 404
	resp4 := doJSON(t, http.MethodPut, ts.URL+"/api/reminders/999/notify", nil)
	defer resp4.Body.Close() //nolint:errcheck
	if resp4.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp4.StatusCode)
	}
}

func TestLatestVitalEmpty(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/vitals/latest/record")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestVitalsRangeValidation(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/vitals/range/dates?start_date=2024-03-01")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestVitalsCreateRejectsEmptyRecord(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/vitals", map[string]any{})
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAppointmentDoctorFilter(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	for _, doctor := range []string{"Dr. Smith", "Dr. Smithers", "Dr. Jones"} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/appointments", map[string]any{
			"doctor":    doctor,
			"type":      "Checkup",
			"date_time": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		})
		resp.Body.Close() //nolint:errcheck
	}

	resp, err := http.Get(ts.URL + "/api/appointments/doctor/smith")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	items := decodeList(t, resp)
	if len(items) != 2 {
		t.Fatalf("expected 2 matches for smith, got %d", len(items))
	}
}

func TestAppointmentStatsCount(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/appointments", map[string]any{
		"doctor":    "Dr. Lee",
		"type":      "Checkup",
		"date_time": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	resp.Body.Close() //nolint:errcheck

	resp2, err := http.Get(ts.URL + "/api/appointments/stats/count")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close() //nolint:errcheck
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 at /api/appointments/stats/count, got %d", resp2.StatusCode)
	}

	stats := decodeBody(t, resp2)
	if stats["total"] != 1.0 || stats["upcoming"] != 1.0 || stats["past"] != 0.0 {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if stats["types"] != 1.0 || stats["doctors"] != 1.0 {
		t.Fatalf("unexpected distinct counts: %v", stats)
	}
}

func TestUnauthorizedWithoutSession(t *testing.T) {
	db := memory.New()
	srv := adapthttp.New(
		app.NewMedicationService(db),
		app.NewReminderService(db),
		app.NewVitalService(db),
		app.NewAppointmentService(db),
		app.NewAuthService(db, db.NewSessionRepo()),
		t.TempDir(),
	)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/medications")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Health and auth config stay reachable
	resp2, err := http.Get(ts.URL + "/api/auth/config")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close() //nolint:errcheck
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"DELETE medications list", http.MethodDelete, "/api/medications"},
		{"POST reminders today", http.MethodPost, "/api/reminders/today/list"},
		{"PUT vitals stats", http.MethodPut, "/api/vitals/stats/summary"},
		{"DELETE appointments upcoming", http.MethodDelete, "/api/appointments/upcoming/list"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", resp.StatusCode)
			}
		})
	}
}
