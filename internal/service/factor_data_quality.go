package service

import (
	"fmt"

	"compliance-llm/internal/domain"
)

// DataQualityFactor evalúa completitud, consistencia y exactitud de los datos.
type DataQualityFactor struct{}

func NewDataQualityFactor() DataQualityFactor {
	return DataQualityFactor{}
}

func (DataQualityFactor) Evaluate(app domain.Application) FactorScore {
	completeness := clampScore(completenessRatio(app) * 100)
	consistency := evaluateConsistency(app)
	accuracy := evaluateAccuracy(app)

	score := completeness*0.4 + consistency*0.3 + accuracy*0.3

	strength := "accuracy"
	if completeness > 70 {
		strength = "completeness"
	} else if consistency > 70 {
		strength = "consistency"
	}

	return FactorScore{
		Score: score,
		Explanation: fmt.Sprintf(
			"Data quality score is %.1f/100 (completeness %.1f, consistency %.1f, accuracy %.1f), with strengths in %s",
			score, completeness, consistency, accuracy, strength,
		),
	}
}

// evaluateConsistency arranca en 100 y descuenta por contradicciones internas.
func evaluateConsistency(app domain.Application) float64 {
	score := 100.0

	loanAmount := app.Float("loan_amount")
	grade := app.String("grade")

	// Montos fuera de lo esperable para el grado asignado.
	if grade == "A" && loanAmount > 30000 {
		score -= 20
	} else if grade == "E" && loanAmount < 5000 {
		score -= 20
	}

	// DTI declarado vs. el esperado según monto e ingreso anual.
	dti := app.Float("dti")
	annualIncome := app.Float("annual_income")
	if annualIncome > 0 {
		expectedDTI := (loanAmount / annualIncome) * 100
		diff := dti - expectedDTI
		if diff < 0 {
			diff = -diff
		}
		if diff > 20 {
			score -= 30
		}
	}

	return clampScore(score)
}

// evaluateAccuracy arranca en 100 y descuenta por valores fuera de rango.
func evaluateAccuracy(app domain.Application) float64 {
	score := 100.0

	if amount := app.Float("loan_amount"); amount <= 0 || amount > 100000 {
		score -= 20
	}
	if rate := app.Float("interest_rate"); rate <= 0 || rate > 30 {
		score -= 20
	}
	if income := app.Float("annual_income"); income <= 0 || income > 500000 {
		score -= 20
	}
	if dti := app.Float("dti"); dti <= 0 || dti > 100 {
		score -= 20
	}

	return clampScore(score)
}
