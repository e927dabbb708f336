// Package report genera reportes PDF de decisiones de cumplimiento.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"compliance-llm/internal/domain"
)

// Generator arma el reporte PDF de una decisión: resumen ejecutivo, factores
// de confianza, cumplimiento por requisito, remediación y recomendaciones.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produce el PDF de la decisión. Las recomendaciones son opcionales
// (nil cuando el explicador LLM está deshabilitado).
func (g *Generator) Generate(decision domain.Decision, recommendations []domain.Recommendation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	g.writeHeader(pdf, decision)
	g.writeSummary(pdf, decision)
	g.writeTrustFactors(pdf, decision.TrustResult)
	g.writeRequirements(pdf, decision.ComplianceResult)
	g.writeRemediation(pdf, decision.ComplianceResult.Remediation)
	g.writeRecommendations(pdf, recommendations)
	g.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeHeader(pdf *gofpdf.Fpdf, decision domain.Decision) {
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Compliance Decision Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Report Date:", time.Now().UTC().Format("January 2, 2006")},
		{"Application ID:", decision.ApplicationID},
		{"Regulatory Framework:", decision.Framework},
		{"Decision ID:", decision.DecisionID},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 7, row[1], "1", 0, "L", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(6)
}

func (g *Generator) writeSummary(pdf *gofpdf.Fpdf, decision domain.Decision) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Executive Summary")
	pdf.Ln(9)

	compliance := decision.ComplianceResult
	pdf.SetFont("Arial", "B", 11)
	if compliance.Compliant {
		pdf.SetTextColor(0, 128, 0)
		pdf.Cell(0, 7, "Compliance Status: COMPLIANT")
	} else {
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 7, "Compliance Status: NON-COMPLIANT")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Overall Compliance Score: %.1f%%", compliance.CompliancePercentage))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Trust Score: %.1f (trustworthy: %t)", decision.TrustResult.OverallScore, decision.TrustResult.IsTrustworthy))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Requirements Met: %d of %d", compliance.CompliantRequirements, compliance.TotalRequirements))
	pdf.Ln(10)
}

func (g *Generator) writeTrustFactors(pdf *gofpdf.Fpdf, trust domain.TrustEvaluationResult) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Trust Factor Analysis")
	pdf.Ln(9)

	if len(trust.Factors) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, "No trust factor data available.")
		pdf.Ln(10)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Factor", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Score", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Weight", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, "Explanation", "1", 0, "L", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, id := range sortedFactorIDs(trust.Factors) {
		factor := trust.Factors[id]
		pdf.CellFormat(60, 6, id, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", factor.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", factor.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, truncate(factor.Explanation, 48), "1", 0, "L", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(6)
}

func (g *Generator) writeRequirements(pdf *gofpdf.Fpdf, compliance domain.ComplianceEvaluationResult) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Regulatory Alignment")
	pdf.Ln(9)

	if len(compliance.RequirementCompliance) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, "No regulatory requirements data available.")
		pdf.Ln(10)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 7, "Requirement", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Score", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(85, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.Ln(7)

	ids := make([]string, 0, len(compliance.RequirementCompliance))
	for id := range compliance.RequirementCompliance {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pdf.SetFont("Arial", "", 9)
	for _, id := range ids {
		req := compliance.RequirementCompliance[id]
		status := "Compliant"
		if !req.Compliant {
			status = "Non-compliant"
		}
		pdf.CellFormat(30, 6, req.RequirementID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", req.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(85, 6, truncate(req.Description, 62), "1", 0, "L", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(6)
}

func (g *Generator) writeRemediation(pdf *gofpdf.Fpdf, remediation *domain.RemediationSuggestion) {
	if remediation == nil {
		return
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Remediation")
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Priority Requirement: "+remediation.PriorityRequirementID)
	pdf.Ln(6)
	pdf.MultiCell(0, 6, remediation.SuggestionText, "", "L", false)
	if len(remediation.AdditionalRequirementIDs) > 0 {
		pdf.Cell(0, 6, "Also review: "+strings.Join(remediation.AdditionalRequirementIDs, ", "))
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func (g *Generator) writeRecommendations(pdf *gofpdf.Fpdf, recommendations []domain.Recommendation) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Recommendations")
	pdf.Ln(9)

	if len(recommendations) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, "No recommendations available.")
		pdf.Ln(10)
		return
	}

	for _, rec := range recommendations {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%s [%s]", rec.Title, strings.ToUpper(rec.Priority)))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, rec.Description, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(4)
}

func (g *Generator) writeFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Generated by the compliance decision service on "+time.Now().UTC().Format("2006-01-02 15:04:05"))
}

func sortedFactorIDs(factors map[string]domain.TrustFactorResult) []string {
	ids := make([]string, 0, len(factors))
	for id := range factors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
