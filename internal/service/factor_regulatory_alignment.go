package service

import (
	"fmt"

	"compliance-llm/internal/domain"
)

// RegulatoryAlignmentFactor evalúa alineación con el marco regulatorio objetivo
// y calidad de documentación. Lee el marco desde el campo que el evaluador
// inyecta en la copia de la solicitud.
type RegulatoryAlignmentFactor struct{}

func NewRegulatoryAlignmentFactor() RegulatoryAlignmentFactor {
	return RegulatoryAlignmentFactor{}
}

func (RegulatoryAlignmentFactor) Evaluate(app domain.Application) FactorScore {
	framework := app.String(domain.FieldRegulatoryFramework)
	if framework == "" {
		framework = "EU_AI_ACT"
	}

	frameworkScore := evaluateFrameworkAlignment(app, framework)
	documentation := evaluateDocumentation(app)

	score := frameworkScore*0.7 + documentation*0.3

	frameworkLabel := "weak"
	if frameworkScore > 70 {
		frameworkLabel = "strong"
	} else if frameworkScore > 50 {
		frameworkLabel = "moderate"
	}
	docLabel := "insufficient"
	if documentation > 70 {
		docLabel = "thorough"
	} else if documentation > 50 {
		docLabel = "adequate"
	}

	return FactorScore{
		Score: score,
		Explanation: fmt.Sprintf(
			"Regulatory alignment score is %.1f/100 for %s, with %s framework compliance and %s documentation",
			score, framework, frameworkLabel, docLabel,
		),
	}
}

func evaluateFrameworkAlignment(app domain.Application, framework string) float64 {
	score := 70.0

	switch framework {
	case "EU_AI_ACT":
		// El EU AI Act enfatiza transparencia y equidad.
		switch app.String("grade") {
		case "A", "B":
			score += 15
		case "D", "E":
			score -= 10
		}
		if dti := app.Float("dti"); dti < 20 {
			score += 10
		} else if dti > 35 {
			score -= 15
		}
	case "FINRA":
		// FINRA enfatiza evaluación de riesgo y divulgación.
		if delinq, ok := app.FloatOK("delinq_2yrs"); ok && delinq == 0 {
			score += 15
		} else if delinq > 2 {
			score -= 20
		}
		if dti := app.Float("dti"); dti < 25 {
			score += 10
		} else if dti > 40 {
			score -= 15
		}
	case "GDPR":
		// Para la demo se asume consentimiento correcto en todas las solicitudes.
		score += 10
	}

	return clampScore(score)
}

func evaluateDocumentation(app domain.Application) float64 {
	score := 65.0

	// Completitud de la solicitud como proxy de documentación presentada.
	completeness := completenessRatio(app)
	switch {
	case completeness > 0.9:
		score += 25
	case completeness > 0.7:
		score += 15
	case completeness < 0.5:
		score -= 20
	}

	return clampScore(score)
}
