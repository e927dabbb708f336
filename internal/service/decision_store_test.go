package service

import (
	"context"
	"errors"
	"testing"

	"compliance-llm/internal/domain"
)

func TestMemoryDecisionStore_SaveGetList(t *testing.T) {
	store := NewMemoryDecisionStore()
	ctx := context.Background()

	first := domain.Decision{DecisionID: "decision_APP_1_EU_AI_ACT", ApplicationID: "APP_1", Framework: "EU_AI_ACT"}
	second := domain.Decision{DecisionID: "decision_APP_2_FINRA", ApplicationID: "APP_2", Framework: "FINRA"}

	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := store.Get(ctx, first.DecisionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ApplicationID != "APP_1" {
		t.Fatalf("unexpected decision: %+v", got)
	}

	decisions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(decisions))
	}
	if decisions[0].DecisionID != first.DecisionID || decisions[1].DecisionID != second.DecisionID {
		t.Fatal("list must preserve insertion order")
	}
}

func TestMemoryDecisionStore_SaveOverwrites(t *testing.T) {
	store := NewMemoryDecisionStore()
	ctx := context.Background()

	decision := domain.Decision{DecisionID: "decision_APP_1_EU_AI_ACT", Framework: "EU_AI_ACT"}
	_ = store.Save(ctx, decision)

	decision.Framework = "FINRA"
	_ = store.Save(ctx, decision)

	decisions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(decisions) != 1 {
		t.Fatalf("re-saving the same id must not duplicate, got %d entries", len(decisions))
	}
	if decisions[0].Framework != "FINRA" {
		t.Fatalf("expected overwritten decision, got %+v", decisions[0])
	}
}

func TestMemoryDecisionStore_NotFound(t *testing.T) {
	store := NewMemoryDecisionStore()
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrDecisionNotFound) {
		t.Fatalf("expected ErrDecisionNotFound, got %v", err)
	}
}
