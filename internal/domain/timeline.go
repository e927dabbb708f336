package domain

import "time"

// Tipos de evento admitidos en la línea de tiempo de cumplimiento.
const (
	EventTypeEvaluation   = "evaluation"
	EventTypeRemediation  = "remediation"
	EventTypeVerification = "verification"
)

// ValidEventType valida contra el conjunto cerrado de tipos de evento.
func ValidEventType(eventType string) bool {
	switch eventType {
	case EventTypeEvaluation, EventTypeRemediation, EventTypeVerification:
		return true
	default:
		return false
	}
}

// TimelineEvent es una entrada append-only en la historia de una solicitud.
// Nunca se muta ni se borra después de creada.
type TimelineEvent struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"application_id"`
	EventType     string         `json:"event_type"`
	EventData     map[string]any `json:"event_data"`
	Timestamp     time.Time      `json:"timestamp"`
}

// TrendPoint es un punto (timestamp, puntaje) de la serie de cumplimiento.
type TrendPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	ComplianceScore float64   `json:"compliance_score"`
}
