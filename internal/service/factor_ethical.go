package service

import (
	"fmt"

	"compliance-llm/internal/domain"
)

// EthicalConsiderationsFactor evalúa equidad de términos y posibles sesgos.
type EthicalConsiderationsFactor struct{}

func NewEthicalConsiderationsFactor() EthicalConsiderationsFactor {
	return EthicalConsiderationsFactor{}
}

func (EthicalConsiderationsFactor) Evaluate(app domain.Application) FactorScore {
	fairness := evaluateFairness(app)
	bias := evaluateBias(app)

	score := fairness*0.6 + bias*0.4

	fairnessLabel := "low"
	if fairness > 70 {
		fairnessLabel = "high"
	} else if fairness > 50 {
		fairnessLabel = "moderate"
	}
	biasLabel := "significant"
	if bias > 70 {
		biasLabel = "minimal"
	} else if bias > 50 {
		biasLabel = "moderate"
	}

	return FactorScore{
		Score: score,
		Explanation: fmt.Sprintf(
			"Ethical considerations score is %.1f/100, with %s fairness and %s potential bias",
			score, fairnessLabel, biasLabel,
		),
	}
}

func evaluateFairness(app domain.Application) float64 {
	score := 80.0

	grade := app.String("grade")
	interestRate := app.Float("interest_rate")
	dti := app.Float("dti")
	annualIncome := app.Float("annual_income")
	loanAmount := app.Float("loan_amount")

	// Tasa de interés desproporcionada para el grado.
	switch {
	case grade == "A" && interestRate > 10:
		score -= 20
	case grade == "B" && interestRate > 15:
		score -= 15
	case grade == "C" && interestRate > 20:
		score -= 10
	}

	// Monto razonable relativo al ingreso.
	if annualIncome > 0 {
		ratio := loanAmount / annualIncome
		if ratio > 1.0 {
			score -= 15
		} else if ratio > 0.5 {
			score -= 5
		}
	}

	// DTI alto con grado alto sugiere que el DTI no pesó en el grado.
	if dti > 40 && (grade == "A" || grade == "B") {
		score -= 15
	}

	return clampScore(score)
}

func evaluateBias(app domain.Application) float64 {
	score := 100.0

	switch app.String("home_ownership") {
	case "MORTGAGE", "RENT", "OWN":
	default:
		score -= 15
	}

	if app.Float("employment_length") < 2 {
		score -= 10
	}

	switch app.String("purpose") {
	case "wedding", "vacation", "moving", "medical":
		score -= 15
	}

	return clampScore(score)
}
