package service

// NewFINRAFramework construye el marco FINRA. Umbrales más laxos que el
// EU AI Act: requisito > 70, global > 80.
func NewFINRAFramework() *ComplianceFramework {
	f := NewComplianceFramework(
		"FINRA",
		"Financial Industry Regulatory Authority framework, focusing on investor protection and market integrity",
	)
	f.SetThresholds(70, 80)

	f.AddRequirement("FINRA-01", "Suitability: Recommendations must be suitable for the specific customer", "Suitability")
	f.AddRequirement("FINRA-02", "Disclosure: Clear disclosure of risks, costs, and conflicts of interest", "Disclosure")
	f.AddRequirement("FINRA-03", "Fair Pricing: Reasonable and fair pricing of financial products", "Pricing")
	f.AddRequirement("FINRA-04", "Risk Assessment: Proper assessment of customer risk tolerance", "Risk")
	f.AddRequirement("FINRA-05", "Record Keeping: Maintenance of accurate and complete records", "Documentation")
	f.AddRequirement("FINRA-06", "Supervision: Adequate supervision of automated systems", "Governance")
	f.AddRequirement("FINRA-07", "Data Security: Protection of customer data and financial information", "Security")

	_ = f.MapFactorToRequirements(FactorDataQuality, []string{"FINRA-05", "FINRA-04", "FINRA-07"}, 1.1)
	_ = f.MapFactorToRequirements(FactorModelConfidence, []string{"FINRA-04", "FINRA-01", "FINRA-06"}, 1.2)
	_ = f.MapFactorToRequirements(FactorRegulatoryAlignment, []string{"FINRA-05", "FINRA-02", "FINRA-06"}, 1.4)
	_ = f.MapFactorToRequirements(FactorEthicalConsiderations, []string{"FINRA-01", "FINRA-02", "FINRA-03"}, 1.0)

	f.SetRemediationTemplates(map[string]string{
		"Suitability":   "Improve customer suitability assessment by gathering more detailed financial information",
		"Disclosure":    "Enhance disclosure documentation to more clearly explain risks and costs",
		"Pricing":       "Review pricing model to ensure fair and reasonable rates for all customers",
		"Risk":          "Strengthen risk assessment methodology with more comprehensive factors",
		"Documentation": "Improve record keeping practices with more detailed transaction logs",
		"Governance":    "Enhance supervision of automated systems with additional review checkpoints",
		"Security":      "Strengthen data security measures to better protect customer information",
	})

	return f
}
