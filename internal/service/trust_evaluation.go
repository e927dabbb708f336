package service

import (
	"errors"
	"fmt"
	"sync"

	"compliance-llm/internal/domain"
)

// ErrInvalidWeight se devuelve al registrar un factor o mapeo con peso <= 0.
var ErrInvalidWeight = errors.New("weight must be greater than zero")

// Umbrales de confianza por marco regulatorio. Marco desconocido usa
// defaultTrustThreshold.
var trustThresholds = map[string]float64{
	"GDPR":      65,
	"FCRA":      60,
	"CCPA":      70,
	"GLBA":      75,
	"EU_AI_ACT": 80,
	"FINRA":     70,
	"INTERNAL":  75,
}

const defaultTrustThreshold = 80.0

type weightedFactor struct {
	factor TrustFactor
	weight float64
}

// TrustEvaluator combina factores de confianza ponderados en un puntaje global.
// El registro se configura al inicio; si se re-registra en caliente queda
// excluido mutuamente de las evaluaciones concurrentes.
type TrustEvaluator struct {
	mu      sync.RWMutex
	factors map[string]weightedFactor
	order   []string
}

// NewTrustEvaluator crea un evaluador vacío, sin factores registrados.
func NewTrustEvaluator() *TrustEvaluator {
	return &TrustEvaluator{factors: make(map[string]weightedFactor)}
}

// NewDefaultTrustEvaluator registra los cuatro factores canónicos con sus
// pesos por defecto.
func NewDefaultTrustEvaluator() *TrustEvaluator {
	e := NewTrustEvaluator()
	_ = e.RegisterFactor(FactorDataQuality, NewDataQualityFactor(), 1.0)
	_ = e.RegisterFactor(FactorModelConfidence, NewModelConfidenceFactor(), 0.8)
	_ = e.RegisterFactor(FactorRegulatoryAlignment, NewRegulatoryAlignmentFactor(), 1.2)
	_ = e.RegisterFactor(FactorEthicalConsiderations, NewEthicalConsiderationsFactor(), 1.0)
	return e
}

// RegisterFactor registra un factor con su peso. Un id repetido reemplaza el
// registro anterior.
func (e *TrustEvaluator) RegisterFactor(id string, factor TrustFactor, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("register factor %q with weight %v: %w", id, weight, ErrInvalidWeight)
	}
	if factor == nil {
		return fmt.Errorf("register factor %q: nil factor", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.factors[id]; !exists {
		e.order = append(e.order, id)
	}
	e.factors[id] = weightedFactor{factor: factor, weight: weight}
	return nil
}

// Evaluate corre todos los factores y devuelve el puntaje global ponderado.
// Sin factores registrados el puntaje es 0 y la solicitud no es confiable.
func (e *TrustEvaluator) Evaluate(app domain.Application, regulatoryFramework string) domain.TrustEvaluationResult {
	// Copia superficial con el marco inyectado; la solicitud del llamador
	// no se muta.
	scoped := app.WithField(domain.FieldRegulatoryFramework, regulatoryFramework)

	e.mu.RLock()
	defer e.mu.RUnlock()

	factorResults := make(map[string]domain.TrustFactorResult, len(e.factors))
	weightedSum := 0.0
	totalWeight := 0.0

	for _, id := range e.order {
		wf := e.factors[id]
		fs := wf.factor.Evaluate(scoped)
		factorResults[id] = domain.TrustFactorResult{
			FactorID:    id,
			Score:       fs.Score,
			Weight:      wf.weight,
			Explanation: fs.Explanation,
		}
		weightedSum += fs.Score * wf.weight
		totalWeight += wf.weight
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
	}

	return domain.TrustEvaluationResult{
		OverallScore:        overall,
		Factors:             factorResults,
		RegulatoryFramework: regulatoryFramework,
		// Estrictamente mayor: igualar el umbral no alcanza.
		IsTrustworthy: overall > Threshold(regulatoryFramework),
	}
}

// Threshold devuelve el umbral de confianza del marco dado.
func Threshold(regulatoryFramework string) float64 {
	if t, ok := trustThresholds[regulatoryFramework]; ok {
		return t
	}
	return defaultTrustThreshold
}
