package domain

// Requirement es un criterio de cumplimiento declarado por un marco regulatorio.
// Inmutable durante la vida del marco.
type Requirement struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// RequirementComplianceResult es el veredicto por requisito.
type RequirementComplianceResult struct {
	RequirementID string  `json:"requirement_id"`
	Score         float64 `json:"score"`
	Compliant     bool    `json:"compliant"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
}

// RemediationSuggestion prioriza el requisito no cumplido con peor puntaje.
type RemediationSuggestion struct {
	PriorityRequirementID    string   `json:"priority_requirement_id"`
	SuggestionText           string   `json:"suggestion_text"`
	AdditionalRequirementIDs []string `json:"additional_requirement_ids"`
}

// ComplianceEvaluationResult es el veredicto global contra un marco regulatorio.
// non_compliant_requirements queda ordenado ascendente por puntaje (peor primero).
type ComplianceEvaluationResult struct {
	Framework                string                                 `json:"framework"`
	Description              string                                 `json:"description"`
	Compliant                bool                                   `json:"compliant"`
	CompliancePercentage     float64                                `json:"compliance_percentage"`
	CompliantRequirements    int                                    `json:"compliant_requirements"`
	TotalRequirements        int                                    `json:"total_requirements"`
	RequirementCompliance    map[string]RequirementComplianceResult `json:"requirement_compliance"`
	NonCompliantRequirements []RequirementComplianceResult          `json:"non_compliant_requirements"`
	Remediation              *RemediationSuggestion                 `json:"remediation"`
}

// Recommendation es una acción sugerida por el explicador LLM.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}
