package domain

import "time"

// Decision empaqueta una evaluación completa de una solicitud contra un marco.
type Decision struct {
	DecisionID       string                     `json:"decision_id"`
	ApplicationID    string                     `json:"application_id"`
	Framework        string                     `json:"framework"`
	Timestamp        time.Time                  `json:"timestamp"`
	TrustResult      TrustEvaluationResult      `json:"trust_result"`
	ComplianceResult ComplianceEvaluationResult `json:"compliance_result"`
	ApplicationData  Application                `json:"application_data"`
}

// DecisionVerification es el resultado del chequeo de integridad de una decisión.
type DecisionVerification struct {
	DecisionID         string    `json:"decision_id"`
	Verified           bool      `json:"verified"`
	VerificationMethod string    `json:"verification_method"`
	Digest             string    `json:"digest"`
	Timestamp          time.Time `json:"timestamp"`
}
