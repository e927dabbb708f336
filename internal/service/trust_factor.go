package service

import (
	"compliance-llm/internal/domain"
)

// FactorScore es puntaje y explicación en un solo valor atómico.
// Los factores no retienen estado entre evaluaciones: el último resultado
// vive en quien lo pidió, no en el factor.
type FactorScore struct {
	Score       float64
	Explanation string
}

// TrustFactor es una dimensión de evaluación de confianza.
// Evaluate es una función pura de los campos que lee: campos ausentes o
// malformados degradan el puntaje, nunca fallan (herramienta de evaluación,
// no validador).
type TrustFactor interface {
	Evaluate(app domain.Application) FactorScore
}

// Identificadores canónicos de los factores de confianza.
const (
	FactorDataQuality           = "data_quality"
	FactorModelConfidence       = "model_confidence"
	FactorRegulatoryAlignment   = "regulatory_alignment"
	FactorEthicalConsiderations = "ethical_considerations"
)

// clampScore acota un puntaje al rango [0,100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// requiredFields son los campos que una solicitud completa debe traer.
var requiredFields = []string{
	"id", "loan_amount", "interest_rate", "grade",
	"employment_length", "home_ownership", "annual_income",
	"purpose", "dti", "delinq_2yrs",
}

// completenessRatio devuelve la fracción [0,1] de campos requeridos presentes.
func completenessRatio(app domain.Application) float64 {
	present := 0
	for _, field := range requiredFields {
		if app.Has(field) {
			present++
		}
	}
	return float64(present) / float64(len(requiredFields))
}
