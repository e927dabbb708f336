package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"compliance-llm/internal/domain"
)

func TestTimelineService_AddAndList(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())
	ctx := context.Background()

	first, err := svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 80.0})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := svc.AddEvent(ctx, "APP_1", domain.EventTypeRemediation, map[string]any{"note": "fixed"})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct non-empty event ids, got %q and %q", first.ID, second.ID)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	events, err := svc.Timeline(ctx, "APP_1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != first.ID || events[1].ID != second.ID {
		t.Fatal("events must come back in insertion order")
	}
}

func TestTimelineService_InvalidEventType(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())

	for _, eventType := range []string{"", "audit", "EVALUATION"} {
		_, err := svc.AddEvent(context.Background(), "APP_1", eventType, nil)
		if !errors.Is(err, ErrInvalidEventType) {
			t.Fatalf("event type %q: expected ErrInvalidEventType, got %v", eventType, err)
		}
	}

	events, err := svc.Timeline(context.Background(), "APP_1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("rejected events must not be stored, got %d", len(events))
	}
}

func TestTimelineService_UnknownApplicationIsEmpty(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())
	events, err := svc.Timeline(context.Background(), "NEVER_SEEN")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty timeline, got %d events", len(events))
	}
}

func TestTimelineService_ComplianceHistoryFiltersEvaluations(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())
	ctx := context.Background()

	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 60.0})
	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeRemediation, nil)
	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeVerification, nil)
	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 85.0})

	history, err := svc.ComplianceHistory(ctx, "APP_1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 evaluation events, got %d", len(history))
	}
	for _, event := range history {
		if event.EventType != domain.EventTypeEvaluation {
			t.Fatalf("history must only hold evaluations, got %q", event.EventType)
		}
	}
}

func TestTimelineService_ComplianceTrend(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())
	ctx := context.Background()

	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 60.0})
	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 85})
	_, _ = svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"note": "no score"})

	trend, err := svc.ComplianceTrend(ctx, "APP_1")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 trend points, got %d", len(trend))
	}
	if trend[0].ComplianceScore != 60 || trend[1].ComplianceScore != 85 {
		t.Fatalf("unexpected scores: %v, %v", trend[0].ComplianceScore, trend[1].ComplianceScore)
	}
	// Sin compliance_score degrada a 0.
	if trend[2].ComplianceScore != 0 {
		t.Fatalf("missing score must degrade to 0, got %v", trend[2].ComplianceScore)
	}
	if trend[0].Timestamp.After(trend[1].Timestamp) {
		t.Fatal("trend must be in chronological order")
	}
}

func TestTimelineService_ConcurrentAppends(t *testing.T) {
	svc := NewTimelineService(NewMemoryTimelineStore())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddEvent(ctx, "APP_1", domain.EventTypeEvaluation, map[string]any{"compliance_score": 50.0}); err != nil {
				t.Errorf("add event: %v", err)
			}
		}()
	}
	wg.Wait()

	events, err := svc.Timeline(ctx, "APP_1")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != n {
		t.Fatalf("expected %d events, got %d", n, len(events))
	}
}
