package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"compliance-llm/internal/domain"
)

// ErrUnknownFramework se devuelve al direccionar un marco nunca registrado.
var ErrUnknownFramework = errors.New("unknown regulatory framework")

// Registry mantiene los marcos regulatorios registrados y despacha la
// evaluación de cumplimiento a uno o a todos.
type Registry struct {
	mu         sync.RWMutex
	frameworks map[string]*ComplianceFramework
}

// NewRegistry crea un registro vacío.
func NewRegistry() *Registry {
	return &Registry{frameworks: make(map[string]*ComplianceFramework)}
}

// NewDefaultRegistry registra los marcos canónicos.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("EU_AI_ACT", NewEUAIActFramework())
	r.Register("FINRA", NewFINRAFramework())
	r.Register("INTERNAL", NewInternalFramework())
	return r
}

// Register registra un marco bajo una clave; una clave repetida lo sobreescribe.
func (r *Registry) Register(key string, framework *ComplianceFramework) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameworks[key] = framework
}

// Keys devuelve las claves registradas en orden estable.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.frameworks))
	for key := range r.frameworks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Requirements devuelve los requisitos del marco indicado.
func (r *Registry) Requirements(key string) ([]domain.Requirement, error) {
	r.mu.RLock()
	fw, ok := r.frameworks[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("framework %q: %w", key, ErrUnknownFramework)
	}
	return fw.Requirements(), nil
}

// EvaluateCompliance delega la evaluación al marco indicado.
func (r *Registry) EvaluateCompliance(key string, trust domain.TrustEvaluationResult) (domain.ComplianceEvaluationResult, error) {
	r.mu.RLock()
	fw, ok := r.frameworks[key]
	r.mu.RUnlock()
	if !ok {
		return domain.ComplianceEvaluationResult{}, fmt.Errorf("framework %q: %w", key, ErrUnknownFramework)
	}
	return fw.EvaluateCompliance(trust), nil
}

// EvaluateAll evalúa cada marco registrado de forma independiente.
// La evaluación es computación pura y no puede fallar una vez registrado el
// marco, así que el resultado trae exactamente una entrada por clave.
func (r *Registry) EvaluateAll(trust domain.TrustEvaluationResult) map[string]domain.ComplianceEvaluationResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make(map[string]domain.ComplianceEvaluationResult, len(r.frameworks))
	for key, fw := range r.frameworks {
		results[key] = fw.EvaluateCompliance(trust)
	}
	return results
}
