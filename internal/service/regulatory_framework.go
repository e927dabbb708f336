package service

import (
	"fmt"
	"sort"

	"compliance-llm/internal/domain"
)

const (
	defaultRequirementThreshold = 75.0
	defaultOverallThreshold     = 85.0

	genericRemediationText = "Review and address compliance issues"

	// Máximo de requisitos adicionales listados después del prioritario.
	maxAdditionalRemediations = 4
)

// ComplianceFramework es un marco regulatorio: un conjunto de requisitos con
// sus mapeos de factores ponderados y sus umbrales de cumplimiento.
// Se configura por completo en construcción y después solo se lee.
type ComplianceFramework struct {
	name                 string
	description          string
	requirementThreshold float64
	overallThreshold     float64
	requirements         []domain.Requirement
	factorWeights        map[string]map[string]float64
	remediationTemplates map[string]string
}

// NewComplianceFramework crea un marco vacío con los umbrales por defecto
// (requisito > 75, global > 85).
func NewComplianceFramework(name, description string) *ComplianceFramework {
	return &ComplianceFramework{
		name:                 name,
		description:          description,
		requirementThreshold: defaultRequirementThreshold,
		overallThreshold:     defaultOverallThreshold,
		factorWeights:        make(map[string]map[string]float64),
		remediationTemplates: make(map[string]string),
	}
}

// SetThresholds ajusta los umbrales del marco (algunos marcos son menos estrictos).
func (f *ComplianceFramework) SetThresholds(requirement, overall float64) {
	f.requirementThreshold = requirement
	f.overallThreshold = overall
}

// SetRemediationTemplates define el texto de remediación por categoría de requisito.
func (f *ComplianceFramework) SetRemediationTemplates(templates map[string]string) {
	f.remediationTemplates = templates
}

func (f *ComplianceFramework) Name() string        { return f.name }
func (f *ComplianceFramework) Description() string { return f.description }

// AddRequirement declara un requisito del marco. Solo en construcción.
func (f *ComplianceFramework) AddRequirement(id, description, category string) {
	f.requirements = append(f.requirements, domain.Requirement{
		ID:          id,
		Description: description,
		Category:    category,
	})
}

// MapFactorToRequirements asocia un factor de confianza, con un peso, a uno o
// más requisitos del marco.
func (f *ComplianceFramework) MapFactorToRequirements(factorID string, requirementIDs []string, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("map factor %q with weight %v: %w", factorID, weight, ErrInvalidWeight)
	}
	for _, reqID := range requirementIDs {
		weights, ok := f.factorWeights[reqID]
		if !ok {
			weights = make(map[string]float64)
			f.factorWeights[reqID] = weights
		}
		weights[factorID] = weight
	}
	return nil
}

// Requirements devuelve los requisitos declarados, en orden de declaración.
func (f *ComplianceFramework) Requirements() []domain.Requirement {
	out := make([]domain.Requirement, len(f.requirements))
	copy(out, f.requirements)
	return out
}

// FactorsForRequirement devuelve el mapeo factor → peso del requisito,
// vacío si no se declaró ninguno.
func (f *ComplianceFramework) FactorsForRequirement(requirementID string) map[string]float64 {
	weights := f.factorWeights[requirementID]
	out := make(map[string]float64, len(weights))
	for factorID, w := range weights {
		out[factorID] = w
	}
	return out
}

// EvaluateCompliance puntúa cada requisito como promedio ponderado local de
// los factores mapeados y agrega el veredicto global del marco.
// Un requisito sin factores mapeados nunca puede cumplir: score 0,
// compliant false (default conservador).
func (f *ComplianceFramework) EvaluateCompliance(trust domain.TrustEvaluationResult) domain.ComplianceEvaluationResult {
	factorScores := trust.FactorScores()

	requirementCompliance := make(map[string]domain.RequirementComplianceResult, len(f.requirements))
	var nonCompliant []domain.RequirementComplianceResult
	compliantCount := 0

	for _, req := range f.requirements {
		score := f.requirementScore(req.ID, factorScores)
		result := domain.RequirementComplianceResult{
			RequirementID: req.ID,
			Score:         score,
			// Estrictamente mayor, igualar el umbral no cumple.
			Compliant:   score > f.requirementThreshold,
			Description: req.Description,
			Category:    req.Category,
		}
		requirementCompliance[req.ID] = result
		if result.Compliant {
			compliantCount++
		} else {
			nonCompliant = append(nonCompliant, result)
		}
	}

	total := len(f.requirements)
	percentage := 0.0
	if total > 0 {
		percentage = 100 * float64(compliantCount) / float64(total)
	}

	// Peor puntaje primero; empates rompen por id para un orden estable.
	sort.Slice(nonCompliant, func(i, j int) bool {
		if nonCompliant[i].Score != nonCompliant[j].Score {
			return nonCompliant[i].Score < nonCompliant[j].Score
		}
		return nonCompliant[i].RequirementID < nonCompliant[j].RequirementID
	})

	return domain.ComplianceEvaluationResult{
		Framework:                f.name,
		Description:              f.description,
		Compliant:                percentage > f.overallThreshold,
		CompliancePercentage:     percentage,
		CompliantRequirements:    compliantCount,
		TotalRequirements:        total,
		RequirementCompliance:    requirementCompliance,
		NonCompliantRequirements: nonCompliant,
		Remediation:              f.generateRemediation(nonCompliant),
	}
}

// requirementScore es el promedio ponderado local del requisito; 0 si no hay
// factores mapeados.
func (f *ComplianceFramework) requirementScore(requirementID string, factorScores map[string]float64) float64 {
	weights := f.factorWeights[requirementID]
	if len(weights) == 0 {
		return 0
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for factorID, weight := range weights {
		weightedSum += factorScores[factorID] * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// generateRemediation arma la sugerencia a partir del requisito no cumplido
// con peor puntaje; nil cuando todos cumplen.
func (f *ComplianceFramework) generateRemediation(nonCompliant []domain.RequirementComplianceResult) *domain.RemediationSuggestion {
	if len(nonCompliant) == 0 {
		return nil
	}

	priority := nonCompliant[0]
	suggestion, ok := f.remediationTemplates[priority.Category]
	if !ok {
		suggestion = genericRemediationText
	}

	var additional []string
	for _, req := range nonCompliant[1:] {
		if len(additional) == maxAdditionalRemediations {
			break
		}
		additional = append(additional, req.RequirementID)
	}

	return &domain.RemediationSuggestion{
		PriorityRequirementID:    priority.RequirementID,
		SuggestionText:           suggestion,
		AdditionalRequirementIDs: additional,
	}
}
