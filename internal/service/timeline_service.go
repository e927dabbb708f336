package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"compliance-llm/internal/domain"
)

// ErrInvalidEventType se devuelve al agregar un evento con tipo fuera del
// conjunto {evaluation, remediation, verification}.
var ErrInvalidEventType = errors.New("invalid timeline event type")

// TimelineStore es el almacenamiento append-only de eventos por solicitud.
type TimelineStore interface {
	Append(ctx context.Context, event domain.TimelineEvent) error
	List(ctx context.Context, applicationID string) ([]domain.TimelineEvent, error)
}

// TimelineService administra la historia de cumplimiento de cada solicitud.
type TimelineService struct {
	store TimelineStore
}

func NewTimelineService(store TimelineStore) *TimelineService {
	return &TimelineService{store: store}
}

// AddEvent valida el tipo, completa id y timestamp, y apendea el evento.
// El evento devuelto es el creado; nunca se muta después.
func (s *TimelineService) AddEvent(ctx context.Context, applicationID, eventType string, eventData map[string]any) (domain.TimelineEvent, error) {
	if !domain.ValidEventType(eventType) {
		return domain.TimelineEvent{}, fmt.Errorf("event type %q: %w", eventType, ErrInvalidEventType)
	}

	event := domain.TimelineEvent{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		EventType:     eventType,
		EventData:     eventData,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.store.Append(ctx, event); err != nil {
		return domain.TimelineEvent{}, fmt.Errorf("append timeline event: %w", err)
	}
	return event, nil
}

// Timeline devuelve los eventos en orden cronológico; una solicitud nunca
// vista devuelve lista vacía, no error.
func (s *TimelineService) Timeline(ctx context.Context, applicationID string) ([]domain.TimelineEvent, error) {
	return s.store.List(ctx, applicationID)
}

// ComplianceHistory filtra la línea de tiempo a eventos de evaluación.
func (s *TimelineService) ComplianceHistory(ctx context.Context, applicationID string) ([]domain.TimelineEvent, error) {
	events, err := s.store.List(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	history := make([]domain.TimelineEvent, 0, len(events))
	for _, event := range events {
		if event.EventType == domain.EventTypeEvaluation {
			history = append(history, event)
		}
	}
	return history, nil
}

// ComplianceTrend extrae la serie (timestamp, compliance_score) de los
// eventos de evaluación, en orden cronológico.
func (s *TimelineService) ComplianceTrend(ctx context.Context, applicationID string) ([]domain.TrendPoint, error) {
	history, err := s.ComplianceHistory(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	trend := make([]domain.TrendPoint, 0, len(history))
	for _, event := range history {
		trend = append(trend, domain.TrendPoint{
			Timestamp:       event.Timestamp,
			ComplianceScore: eventScore(event.EventData),
		})
	}
	return trend, nil
}

// eventScore lee compliance_score tolerando los tipos numéricos de JSON;
// ausente degrada a 0.
func eventScore(data map[string]any) float64 {
	switch v := data["compliance_score"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// MemoryTimelineStore guarda las líneas de tiempo en memoria. El mutex
// garantiza que un append es atómico y que ninguna lectura observa un evento
// a medio insertar.
type MemoryTimelineStore struct {
	mu        sync.Mutex
	timelines map[string][]domain.TimelineEvent
}

func NewMemoryTimelineStore() *MemoryTimelineStore {
	return &MemoryTimelineStore{timelines: make(map[string][]domain.TimelineEvent)}
}

func (s *MemoryTimelineStore) Append(_ context.Context, event domain.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timelines[event.ApplicationID] = append(s.timelines[event.ApplicationID], event)
	return nil
}

func (s *MemoryTimelineStore) List(_ context.Context, applicationID string) ([]domain.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.timelines[applicationID]
	out := make([]domain.TimelineEvent, len(events))
	copy(out, events)
	return out, nil
}
