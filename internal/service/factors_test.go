package service

import (
	"strings"
	"testing"

	"compliance-llm/internal/domain"
)

func completeApp() domain.Application {
	return domain.Application{
		"id": "LC_1001", "loan_amount": 10000.0, "interest_rate": 5.32, "grade": "A",
		"employment_length": 10.0, "home_ownership": "RENT", "annual_income": 60000.0,
		"purpose": "debt_consolidation", "dti": 15.2, "delinq_2yrs": 0.0,
	}
}

func TestFactors_EmptyApplicationDegradesGracefully(t *testing.T) {
	factors := map[string]TrustFactor{
		FactorDataQuality:           NewDataQualityFactor(),
		FactorModelConfidence:       NewModelConfidenceFactor(),
		FactorRegulatoryAlignment:   NewRegulatoryAlignmentFactor(),
		FactorEthicalConsiderations: NewEthicalConsiderationsFactor(),
	}

	for id, factor := range factors {
		t.Run(id, func(t *testing.T) {
			fs := factor.Evaluate(domain.Application{})
			if fs.Score < 0 || fs.Score > 100 {
				t.Fatalf("score out of range: %v", fs.Score)
			}
			if fs.Explanation == "" {
				t.Fatal("expected a non-empty explanation")
			}
		})
	}
}

func TestDataQualityFactor_CompleteConsistentApplication(t *testing.T) {
	fs := NewDataQualityFactor().Evaluate(completeApp())
	if !almostEqual(fs.Score, 100) {
		t.Fatalf("expected perfect data quality for the sample, got %v", fs.Score)
	}
}

func TestDataQualityFactor_PenalizesInconsistency(t *testing.T) {
	app := completeApp()
	// Grado A con monto fuera de rango y DTI que no cierra con el ingreso.
	app["loan_amount"] = 90000.0
	app["dti"] = 80.0

	fs := NewDataQualityFactor().Evaluate(app)
	perfect := NewDataQualityFactor().Evaluate(completeApp())
	if fs.Score >= perfect.Score {
		t.Fatalf("inconsistent data must score lower: %v >= %v", fs.Score, perfect.Score)
	}
}

func TestModelConfidenceFactor_MissingEmploymentLowersScore(t *testing.T) {
	withEmployment := NewModelConfidenceFactor().Evaluate(completeApp())

	app := completeApp()
	delete(app, "employment_length")
	withoutEmployment := NewModelConfidenceFactor().Evaluate(app)

	if withoutEmployment.Score >= withEmployment.Score {
		t.Fatalf("missing employment history must lower confidence: %v >= %v",
			withoutEmployment.Score, withEmployment.Score)
	}
}

func TestRegulatoryAlignmentFactor_ReadsInjectedFramework(t *testing.T) {
	app := completeApp().WithField(domain.FieldRegulatoryFramework, "FINRA")
	fs := NewRegulatoryAlignmentFactor().Evaluate(app)
	if !strings.Contains(fs.Explanation, "FINRA") {
		t.Fatalf("explanation must name the framework, got %q", fs.Explanation)
	}
}

func TestRegulatoryAlignmentFactor_DefaultsToEUAIAct(t *testing.T) {
	fs := NewRegulatoryAlignmentFactor().Evaluate(completeApp())
	if !strings.Contains(fs.Explanation, "EU_AI_ACT") {
		t.Fatalf("expected EU_AI_ACT default, got %q", fs.Explanation)
	}
}

func TestEthicalConsiderationsFactor_PenalizesDisproportionateRate(t *testing.T) {
	fair := NewEthicalConsiderationsFactor().Evaluate(completeApp())

	app := completeApp()
	// Grado A con tasa de grado E.
	app["interest_rate"] = 15.23
	unfair := NewEthicalConsiderationsFactor().Evaluate(app)

	if unfair.Score >= fair.Score {
		t.Fatalf("disproportionate rate must score lower: %v >= %v", unfair.Score, fair.Score)
	}
}

func TestEthicalConsiderationsFactor_PenalizesUncommonPurpose(t *testing.T) {
	neutral := NewEthicalConsiderationsFactor().Evaluate(completeApp())

	app := completeApp()
	app["purpose"] = "vacation"
	biased := NewEthicalConsiderationsFactor().Evaluate(app)

	if biased.Score >= neutral.Score {
		t.Fatalf("uncommon purpose must score lower: %v >= %v", biased.Score, neutral.Score)
	}
}

func TestCompletenessRatio(t *testing.T) {
	if r := completenessRatio(completeApp()); !almostEqual(r, 1.0) {
		t.Fatalf("expected full completeness, got %v", r)
	}
	if r := completenessRatio(domain.Application{}); r != 0 {
		t.Fatalf("expected zero completeness, got %v", r)
	}
	half := domain.Application{
		"id": "X", "loan_amount": 1.0, "interest_rate": 1.0, "grade": "A", "dti": 1.0,
	}
	if r := completenessRatio(half); !almostEqual(r, 0.5) {
		t.Fatalf("expected 0.5, got %v", r)
	}
}
