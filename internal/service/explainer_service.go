package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"compliance-llm/internal/domain"
	"compliance-llm/internal/llm"
)

// ErrExplainerDisabled se devuelve cuando no hay cliente LLM configurado.
var ErrExplainerDisabled = errors.New("explainer disabled: no llm client configured")

const explainSystemPrompt = `You are an assistant specialized in explaining financial compliance decisions.
Your role is to provide clear, accurate explanations about loan application compliance decisions
based on the provided data. Focus on:

1. Explaining why a decision was made in simple, non-technical language
2. Highlighting the key factors that influenced the decision
3. Explaining regulatory requirements relevant to the decision
4. Providing context about the compliance framework being applied
5. Suggesting potential remediation steps when applicable

Keep explanations concise, factual, and helpful. Avoid speculation beyond the provided data.`

const recommendSystemPrompt = `You are an assistant specialized in providing recommendations for improving
compliance with financial regulations. Based on the provided application data and trust factors,
generate actionable recommendations to improve compliance. Each recommendation should include
a title, detailed description, and priority level (high, medium, or low).

Format your response as a JSON array of recommendation objects, each with 'title', 'description',
and 'priority' fields. Focus on practical, specific actions that would improve compliance scores.`

// ExplainerService genera explicaciones en lenguaje natural de decisiones de
// cumplimiento usando el LLM. Con client nil el servicio queda deshabilitado
// y cada operación devuelve ErrExplainerDisabled.
type ExplainerService struct {
	client llm.LLMClient
	logger *zap.Logger
}

func NewExplainerService(client llm.LLMClient, logger *zap.Logger) *ExplainerService {
	return &ExplainerService{client: client, logger: logger}
}

// Enabled indica si hay un cliente LLM disponible.
func (s *ExplainerService) Enabled() bool {
	return s.client != nil
}

// ExplainDecision explica una decisión; query opcional enfoca la respuesta en
// una pregunta puntual.
func (s *ExplainerService) ExplainDecision(ctx context.Context, decision domain.Decision, query string) (string, error) {
	if s.client == nil {
		return "", ErrExplainerDisabled
	}

	decisionContext, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal decision: %w", err)
	}

	var b strings.Builder
	b.WriteString(explainSystemPrompt)
	b.WriteString("\n\nPlease explain the following compliance decision:\n\n")
	b.Write(decisionContext)
	b.WriteString("\n\n")
	if query != "" {
		b.WriteString("Specifically address this question: " + query)
	} else {
		b.WriteString("Provide a clear explanation of why this decision was made.")
	}

	explanation, err := s.client.Generate(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	return strings.TrimSpace(explanation), nil
}

// Recommendations pide al LLM acciones concretas para mejorar el cumplimiento
// de la solicitud, a partir de los factores de confianza ya evaluados.
func (s *ExplainerService) Recommendations(ctx context.Context, app domain.Application, trust domain.TrustEvaluationResult) ([]domain.Recommendation, error) {
	if s.client == nil {
		return nil, ErrExplainerDisabled
	}

	payload := map[string]any{
		"application":   app,
		"trust_factors": trust.Factors,
	}
	contextStr, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal context: %w", err)
	}

	prompt := recommendSystemPrompt + "\n\nGenerate recommendations based on this data:\n\n" + string(contextStr)

	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	cleaned := cleanLLMJSONResponse(raw)

	// El modelo a veces envuelve la lista en {"recommendations": [...]}.
	var wrapped struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && len(wrapped.Recommendations) > 0 {
		return wrapped.Recommendations, nil
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		s.logger.Warn("recommendations parse failed", zap.Error(err))
		return nil, fmt.Errorf("parse llm response: %w", err)
	}
	return recs, nil
}
