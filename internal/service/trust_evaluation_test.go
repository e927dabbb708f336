package service

import (
	"errors"
	"math"
	"testing"

	"compliance-llm/internal/domain"
)

// stubFactor devuelve siempre el mismo puntaje y registra el marco visto.
type stubFactor struct {
	score         float64
	seenFramework string
}

func (f *stubFactor) Evaluate(app domain.Application) FactorScore {
	f.seenFramework = app.String(domain.FieldRegulatoryFramework)
	return FactorScore{Score: f.score, Explanation: "stub"}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTrustEvaluator_WeightedMean(t *testing.T) {
	e := NewTrustEvaluator()
	if err := e.RegisterFactor("a", &stubFactor{score: 80}, 1.0); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := e.RegisterFactor("b", &stubFactor{score: 40}, 3.0); err != nil {
		t.Fatalf("register b: %v", err)
	}

	result := e.Evaluate(domain.Application{"id": "X"}, "GDPR")

	// (80*1 + 40*3) / 4 = 50
	if !almostEqual(result.OverallScore, 50) {
		t.Fatalf("expected overall 50, got %v", result.OverallScore)
	}
	if len(result.Factors) != 2 {
		t.Fatalf("expected 2 factor results, got %d", len(result.Factors))
	}
	fr := result.Factors["b"]
	if fr.FactorID != "b" || !almostEqual(fr.Score, 40) || !almostEqual(fr.Weight, 3.0) {
		t.Fatalf("unexpected factor result: %+v", fr)
	}
	if fr.Explanation == "" {
		t.Fatal("expected explanation to be carried through")
	}
}

func TestTrustEvaluator_ScoreEqualToThresholdIsNotTrustworthy(t *testing.T) {
	e := NewTrustEvaluator()
	// Umbral GDPR es 65: igualarlo no alcanza.
	_ = e.RegisterFactor("a", &stubFactor{score: 65}, 1.0)

	result := e.Evaluate(domain.Application{}, "GDPR")
	if result.IsTrustworthy {
		t.Fatalf("score equal to threshold must not be trustworthy (score=%v)", result.OverallScore)
	}

	_ = e.RegisterFactor("a", &stubFactor{score: 65.01}, 1.0)
	result = e.Evaluate(domain.Application{}, "GDPR")
	if !result.IsTrustworthy {
		t.Fatalf("score above threshold must be trustworthy (score=%v)", result.OverallScore)
	}
}

func TestTrustEvaluator_NoFactors(t *testing.T) {
	e := NewTrustEvaluator()
	result := e.Evaluate(domain.Application{"id": "X"}, "GDPR")
	if result.OverallScore != 0 {
		t.Fatalf("expected score 0 with no factors, got %v", result.OverallScore)
	}
	if result.IsTrustworthy {
		t.Fatal("no factors must not be trustworthy")
	}
	if len(result.Factors) != 0 {
		t.Fatalf("expected empty factor map, got %d entries", len(result.Factors))
	}
}

func TestTrustEvaluator_RegisterInvalidWeight(t *testing.T) {
	e := NewTrustEvaluator()
	for _, weight := range []float64{0, -1} {
		err := e.RegisterFactor("a", &stubFactor{score: 50}, weight)
		if !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", weight, err)
		}
	}
	// Pesos mayores que 1 son válidos (los canónicos llegan a 1.5).
	if err := e.RegisterFactor("a", &stubFactor{score: 50}, 1.5); err != nil {
		t.Fatalf("weight 1.5 should be valid: %v", err)
	}
}

func TestTrustEvaluator_ReRegisterReplaces(t *testing.T) {
	e := NewTrustEvaluator()
	_ = e.RegisterFactor("a", &stubFactor{score: 10}, 1.0)
	_ = e.RegisterFactor("a", &stubFactor{score: 90}, 1.0)

	result := e.Evaluate(domain.Application{}, "UNKNOWN_FW")
	if !almostEqual(result.OverallScore, 90) {
		t.Fatalf("expected replaced factor score 90, got %v", result.OverallScore)
	}
	// Marco desconocido: umbral por defecto 80, 90 > 80.
	if !result.IsTrustworthy {
		t.Fatal("expected trustworthy with default threshold 80 and score 90")
	}
}

func TestTrustEvaluator_InjectsFrameworkWithoutMutatingCaller(t *testing.T) {
	factor := &stubFactor{score: 50}
	e := NewTrustEvaluator()
	_ = e.RegisterFactor("a", factor, 1.0)

	app := domain.Application{"id": "X"}
	_ = e.Evaluate(app, "FINRA")

	if factor.seenFramework != "FINRA" {
		t.Fatalf("factor should see injected framework, got %q", factor.seenFramework)
	}
	if _, ok := app[domain.FieldRegulatoryFramework]; ok {
		t.Fatal("caller application must not be mutated")
	}
}

func TestTrustEvaluator_SingleFactorAboveThreshold(t *testing.T) {
	e := NewTrustEvaluator()
	_ = e.RegisterFactor(FactorDataQuality, &stubFactor{score: 90}, 1.0)

	// EU_AI_ACT: umbral 80.
	result := e.Evaluate(domain.Application{"id": "X"}, "EU_AI_ACT")
	if !almostEqual(result.OverallScore, 90) {
		t.Fatalf("expected overall 90, got %v", result.OverallScore)
	}
	if !result.IsTrustworthy {
		t.Fatal("90 > 80 must be trustworthy")
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		framework string
		want      float64
	}{
		{"GDPR", 65},
		{"FCRA", 60},
		{"CCPA", 70},
		{"GLBA", 75},
		{"EU_AI_ACT", 80},
		{"FINRA", 70},
		{"INTERNAL", 75},
		{"SOMETHING_ELSE", 80},
	}
	for _, tt := range tests {
		if got := Threshold(tt.framework); got != tt.want {
			t.Errorf("Threshold(%q) = %v, want %v", tt.framework, got, tt.want)
		}
	}
}

func TestNewDefaultTrustEvaluator(t *testing.T) {
	e := NewDefaultTrustEvaluator()
	result := e.Evaluate(domain.Application{
		"id": "LC_1001", "loan_amount": 10000.0, "interest_rate": 5.32, "grade": "A",
		"employment_length": 10.0, "home_ownership": "RENT", "annual_income": 60000.0,
		"purpose": "debt_consolidation", "dti": 15.2, "delinq_2yrs": 0.0,
	}, "EU_AI_ACT")

	want := []string{FactorDataQuality, FactorModelConfidence, FactorRegulatoryAlignment, FactorEthicalConsiderations}
	for _, id := range want {
		fr, ok := result.Factors[id]
		if !ok {
			t.Fatalf("missing canonical factor %q", id)
		}
		if fr.Score < 0 || fr.Score > 100 {
			t.Fatalf("factor %q score out of range: %v", id, fr.Score)
		}
	}
	if result.OverallScore < 0 || result.OverallScore > 100 {
		t.Fatalf("overall score out of range: %v", result.OverallScore)
	}
}
