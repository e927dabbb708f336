package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestTimelineAddEventAndFetch(t *testing.T) {
	r := setupRouter(t, nil)

	rec := performRequest(r, http.MethodPost, "/api/timeline/APP_1/events", map[string]any{
		"event_type": "evaluation",
		"event_data": map[string]any{"compliance_score": 80.5, "framework": "EU_AI_ACT"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var event struct {
		ID            string `json:"id"`
		ApplicationID string `json:"application_id"`
		EventType     string `json:"event_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.ID == "" || event.ApplicationID != "APP_1" || event.EventType != "evaluation" {
		t.Fatalf("unexpected event: %+v", event)
	}

	rec = performRequest(r, http.MethodGet, "/api/timeline/APP_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline: expected status 200, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/api/timeline/APP_1/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected status 200, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/api/timeline/APP_1/trend", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("trend: expected status 200, got %d", rec.Code)
	}
	var trend struct {
		Trend []struct {
			ComplianceScore float64 `json:"compliance_score"`
		} `json:"trend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &trend); err != nil {
		t.Fatalf("decode trend: %v", err)
	}
	if len(trend.Trend) != 1 || trend.Trend[0].ComplianceScore != 80.5 {
		t.Fatalf("unexpected trend: %+v", trend.Trend)
	}
}

func TestTimelineAddEvent_InvalidType(t *testing.T) {
	r := setupRouter(t, nil)

	rec := performRequest(r, http.MethodPost, "/api/timeline/APP_1/events", map[string]any{
		"event_type": "audit",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTimelineAddEvent_MissingType(t *testing.T) {
	r := setupRouter(t, nil)

	rec := performRequest(r, http.MethodPost, "/api/timeline/APP_1/events", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTimelineUnknownApplication_EmptyList(t *testing.T) {
	r := setupRouter(t, nil)

	rec := performRequest(r, http.MethodGet, "/api/timeline/NEVER_SEEN", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Events []any `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Fatalf("expected empty list, got %d events", len(resp.Events))
	}
}
