package service

// NewEUAIActFramework construye el marco del EU AI Act con sus requisitos,
// mapeos de factores y umbrales (requisito > 75, global > 85).
func NewEUAIActFramework() *ComplianceFramework {
	f := NewComplianceFramework(
		"EU_AI_ACT",
		"European Union Artificial Intelligence Act, focusing on transparency, fairness, and accountability in AI systems",
	)

	f.AddRequirement("EUAI-01", "Transparency: AI systems must provide clear information about their capabilities and limitations", "Transparency")
	f.AddRequirement("EUAI-02", "Fairness: AI systems must avoid unfair bias and discrimination", "Fairness")
	f.AddRequirement("EUAI-03", "Human Oversight: AI systems must enable effective oversight by humans", "Governance")
	f.AddRequirement("EUAI-04", "Robustness: AI systems must be technically robust and accurate", "Technical")
	f.AddRequirement("EUAI-05", "Data Quality: AI systems must use high-quality training and operational data", "Data")
	f.AddRequirement("EUAI-06", "Documentation: AI systems must maintain comprehensive documentation of development and operation", "Documentation")
	f.AddRequirement("EUAI-07", "Risk Management: AI systems must implement appropriate risk management measures", "Risk")

	_ = f.MapFactorToRequirements(FactorDataQuality, []string{"EUAI-05", "EUAI-04", "EUAI-07"}, 1.2)
	_ = f.MapFactorToRequirements(FactorModelConfidence, []string{"EUAI-04", "EUAI-01", "EUAI-07"}, 1.0)
	_ = f.MapFactorToRequirements(FactorRegulatoryAlignment, []string{"EUAI-06", "EUAI-03", "EUAI-01"}, 1.5)
	_ = f.MapFactorToRequirements(FactorEthicalConsiderations, []string{"EUAI-02", "EUAI-03", "EUAI-07"}, 1.3)

	f.SetRemediationTemplates(map[string]string{
		"Transparency":  "Improve transparency by providing clearer explanations of decision factors and model limitations",
		"Fairness":      "Address potential bias in the model by reviewing training data and decision criteria",
		"Governance":    "Enhance human oversight capabilities by implementing additional review checkpoints",
		"Technical":     "Improve model robustness through additional testing and validation",
		"Data":          "Enhance data quality by implementing stricter validation and cleaning processes",
		"Documentation": "Improve documentation of model development, training, and decision processes",
		"Risk":          "Strengthen risk management by implementing additional controls and monitoring",
	})

	return f
}
