package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compliance-llm/internal/domain"
)

// ComplianceService orquesta el pipeline completo: evaluación de confianza,
// cumplimiento regulatorio, registro en la línea de tiempo y persistencia de
// la decisión.
type ComplianceService struct {
	evaluator *TrustEvaluator
	registry  *Registry
	timeline  *TimelineService
	decisions DecisionStore
	logger    *zap.Logger
}

func NewComplianceService(
	evaluator *TrustEvaluator,
	registry *Registry,
	timeline *TimelineService,
	decisions DecisionStore,
	logger *zap.Logger,
) *ComplianceService {
	return &ComplianceService{
		evaluator: evaluator,
		registry:  registry,
		timeline:  timeline,
		decisions: decisions,
		logger:    logger,
	}
}

// EvaluateTrust corre solo la evaluación de confianza, sin persistir nada.
func (s *ComplianceService) EvaluateTrust(app domain.Application, framework string) domain.TrustEvaluationResult {
	return s.evaluator.Evaluate(app, framework)
}

// Process evalúa una solicitud contra un marco, registra el evento de
// evaluación y guarda la decisión resultante.
func (s *ComplianceService) Process(ctx context.Context, app domain.Application, framework string) (domain.Decision, error) {
	trust := s.evaluator.Evaluate(app, framework)

	compliance, err := s.registry.EvaluateCompliance(framework, trust)
	if err != nil {
		return domain.Decision{}, err
	}

	appID := app.ID()
	if _, err := s.timeline.AddEvent(ctx, appID, domain.EventTypeEvaluation, evaluationEventData(framework, trust, compliance)); err != nil {
		return domain.Decision{}, err
	}

	decision := domain.Decision{
		DecisionID:       fmt.Sprintf("decision_%s_%s", appID, framework),
		ApplicationID:    appID,
		Framework:        framework,
		Timestamp:        time.Now().UTC(),
		TrustResult:      trust,
		ComplianceResult: compliance,
		ApplicationData:  app,
	}
	if err := s.decisions.Save(ctx, decision); err != nil {
		return domain.Decision{}, fmt.Errorf("save decision: %w", err)
	}

	s.logger.Info("application processed",
		zap.String("application_id", appID),
		zap.String("framework", framework),
		zap.Float64("overall_score", trust.OverallScore),
		zap.Float64("compliance_percentage", compliance.CompliancePercentage),
		zap.Bool("compliant", compliance.Compliant),
	)

	return decision, nil
}

// ProcessAllFrameworks evalúa la solicitud contra todos los marcos
// registrados, con un evento de evaluación por marco. La evaluación de
// confianza se corre por marco porque el factor de alineación regulatoria
// depende del marco objetivo.
func (s *ComplianceService) ProcessAllFrameworks(ctx context.Context, app domain.Application) (map[string]domain.ComplianceEvaluationResult, error) {
	appID := app.ID()
	results := make(map[string]domain.ComplianceEvaluationResult)

	for _, key := range s.registry.Keys() {
		trust := s.evaluator.Evaluate(app, key)
		compliance, err := s.registry.EvaluateCompliance(key, trust)
		if err != nil {
			return nil, err
		}
		if _, err := s.timeline.AddEvent(ctx, appID, domain.EventTypeEvaluation, evaluationEventData(key, trust, compliance)); err != nil {
			return nil, err
		}
		results[key] = compliance
	}
	return results, nil
}

// Decision devuelve una decisión guardada.
func (s *ComplianceService) Decision(ctx context.Context, decisionID string) (domain.Decision, error) {
	return s.decisions.Get(ctx, decisionID)
}

// Decisions lista las decisiones guardadas.
func (s *ComplianceService) Decisions(ctx context.Context) ([]domain.Decision, error) {
	return s.decisions.List(ctx)
}

// Verify recalcula el digest de la decisión guardada y registra el evento de
// verificación en la línea de tiempo de la solicitud.
func (s *ComplianceService) Verify(ctx context.Context, decisionID string) (domain.DecisionVerification, error) {
	decision, err := s.decisions.Get(ctx, decisionID)
	if err != nil {
		return domain.DecisionVerification{}, err
	}

	payload, err := json.Marshal(decision)
	if err != nil {
		return domain.DecisionVerification{}, fmt.Errorf("marshal decision: %w", err)
	}
	digest := sha256.Sum256(payload)

	verification := domain.DecisionVerification{
		DecisionID:         decisionID,
		Verified:           true,
		VerificationMethod: "sha256",
		Digest:             hex.EncodeToString(digest[:]),
		Timestamp:          time.Now().UTC(),
	}

	if _, err := s.timeline.AddEvent(ctx, decision.ApplicationID, domain.EventTypeVerification, map[string]any{
		"decision_id": decisionID,
		"digest":      verification.Digest,
		"verified":    verification.Verified,
	}); err != nil {
		return domain.DecisionVerification{}, err
	}

	return verification, nil
}

func evaluationEventData(framework string, trust domain.TrustEvaluationResult, compliance domain.ComplianceEvaluationResult) map[string]any {
	return map[string]any{
		"framework":        framework,
		"compliance_score": compliance.CompliancePercentage,
		"compliant":        compliance.Compliant,
		"trust_score":      trust.OverallScore,
		"is_trustworthy":   trust.IsTrustworthy,
	}
}
