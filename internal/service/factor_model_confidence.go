package service

import (
	"fmt"

	"compliance-llm/internal/domain"
)

// ModelConfidenceFactor evalúa certeza de predicción y robustez del modelo
// para el tipo de solicitud.
type ModelConfidenceFactor struct{}

func NewModelConfidenceFactor() ModelConfidenceFactor {
	return ModelConfidenceFactor{}
}

func (ModelConfidenceFactor) Evaluate(app domain.Application) FactorScore {
	certainty := evaluatePredictionCertainty(app)
	robustness := evaluateModelRobustness(app)

	score := certainty*0.6 + robustness*0.4

	return FactorScore{
		Score: score,
		Explanation: fmt.Sprintf(
			"Model confidence score is %.1f/100, with %s prediction certainty and %s model robustness",
			score, confidenceLevel(certainty), confidenceLevel(robustness),
		),
	}
}

func confidenceLevel(score float64) string {
	switch {
	case score > 70:
		return "high"
	case score > 50:
		return "moderate"
	default:
		return "low"
	}
}

func evaluatePredictionCertainty(app domain.Application) float64 {
	score := 70.0

	// Los grados altos son más predecibles.
	switch app.String("grade") {
	case "A", "B":
		score += 15
	case "D", "E":
		score -= 10
	}

	// Valores extremos reducen la certeza.
	if app.Float("dti") > 35 {
		score -= 15
	}
	if app.Float("loan_amount") > 35000 {
		score -= 10
	}

	// Más historia laboral, predicción más estable.
	if empLen, ok := app.FloatOK("employment_length"); ok {
		if empLen > 5 {
			score += 10
		} else if empLen < 1 {
			score -= 15
		}
	} else {
		score -= 15
	}

	return clampScore(score)
}

func evaluateModelRobustness(app domain.Application) float64 {
	score := 75.0

	// Propósitos con más datos de entrenamiento dan modelos más robustos.
	switch app.String("purpose") {
	case "debt_consolidation", "credit_card", "home_improvement":
		score += 15
	default:
		score -= 10
	}

	switch app.String("home_ownership") {
	case "MORTGAGE", "RENT":
		score += 10
	case "OWN":
		score += 5
	default:
		score -= 10
	}

	if app.Float("delinq_2yrs") > 2 {
		score -= 15
	}

	return clampScore(score)
}
