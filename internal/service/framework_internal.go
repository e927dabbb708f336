package service

// NewInternalFramework construye la política interna de gobernanza de modelos.
// Usa los umbrales por defecto.
func NewInternalFramework() *ComplianceFramework {
	f := NewComplianceFramework(
		"INTERNAL",
		"Internal model governance policy for automated lending decisions",
	)

	f.AddRequirement("INT-01", "Input Data Integrity: decisions must be based on complete and validated application data", "Data")
	f.AddRequirement("INT-02", "Model Reliability: the scoring model must be confident for the application segment", "Technical")
	f.AddRequirement("INT-03", "Review Readiness: every decision must be reviewable by a credit officer", "Governance")
	f.AddRequirement("INT-04", "Fair Treatment: applicants must receive terms consistent with their risk profile", "Fairness")
	f.AddRequirement("INT-05", "Audit Trail: decision records must support later regulatory audits", "Documentation")

	_ = f.MapFactorToRequirements(FactorDataQuality, []string{"INT-01", "INT-05"}, 1.3)
	_ = f.MapFactorToRequirements(FactorModelConfidence, []string{"INT-02", "INT-03"}, 1.0)
	_ = f.MapFactorToRequirements(FactorRegulatoryAlignment, []string{"INT-03", "INT-05"}, 1.1)
	_ = f.MapFactorToRequirements(FactorEthicalConsiderations, []string{"INT-04"}, 1.2)

	f.SetRemediationTemplates(map[string]string{
		"Data":          "Re-collect or validate the application fields before re-scoring",
		"Technical":     "Route the application to a segment where the model has better coverage",
		"Governance":    "Queue the decision for manual review by a credit officer",
		"Fairness":      "Re-price the offer so terms match the applicant's risk profile",
		"Documentation": "Attach the missing decision records before closing the case",
	})

	return f
}
