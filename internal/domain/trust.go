package domain

// TrustFactorResult es el resultado de un factor individual dentro de una evaluación.
type TrustFactorResult struct {
	FactorID    string  `json:"factor_id"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Explanation string  `json:"explanation"`
}

// TrustEvaluationResult agrega los factores en un puntaje global de confianza.
// is_trustworthy exige superar estrictamente el umbral del marco regulatorio.
type TrustEvaluationResult struct {
	OverallScore        float64                      `json:"overall_score"`
	Factors             map[string]TrustFactorResult `json:"factors"`
	RegulatoryFramework string                       `json:"regulatory_framework"`
	IsTrustworthy       bool                         `json:"is_trustworthy"`
}

// FactorScores devuelve solo los puntajes por factor, que es lo que consumen
// los marcos regulatorios al evaluar requisitos.
func (r TrustEvaluationResult) FactorScores() map[string]float64 {
	scores := make(map[string]float64, len(r.Factors))
	for id, f := range r.Factors {
		scores[id] = f.Score
	}
	return scores
}
