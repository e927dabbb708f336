package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compliance-llm/internal/domain"
	"compliance-llm/internal/loandata"
	"compliance-llm/internal/report"
	"compliance-llm/internal/service"
)

// ComplianceHandler mantiene dependencias para endpoints de evaluación,
// decisiones, explicaciones y reportes.
type ComplianceHandler struct {
	logger           *zap.Logger
	complianceServ   *service.ComplianceService
	explainerServ    *service.ExplainerService
	registry         *service.Registry
	loader           *loandata.Loader
	reportGen        *report.Generator
	defaultFramework string
}

func NewComplianceHandler(
	logger *zap.Logger,
	complianceServ *service.ComplianceService,
	explainerServ *service.ExplainerService,
	registry *service.Registry,
	loader *loandata.Loader,
	reportGen *report.Generator,
	defaultFramework string,
) *ComplianceHandler {
	return &ComplianceHandler{
		logger:           logger,
		complianceServ:   complianceServ,
		explainerServ:    explainerServ,
		registry:         registry,
		loader:           loader,
		reportGen:        reportGen,
		defaultFramework: defaultFramework,
	}
}

// ListApplications maneja GET /api/applications.
func (h *ComplianceHandler) ListApplications(c *gin.Context) {
	count := 0
	if raw := c.Query("count"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &count); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"applications": h.loader.List(count)})
}

// EvaluateTrust maneja POST /api/evaluate/trust. Acepta una solicitud por id
// o el documento completo inline.
func (h *ComplianceHandler) EvaluateTrust(c *gin.Context) {
	var req struct {
		ApplicationID string         `json:"application_id"`
		Application   map[string]any `json:"application"`
		Framework     string         `json:"framework"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid evaluate trust request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, ok := h.resolveApplication(c, req.ApplicationID, req.Application)
	if !ok {
		return
	}

	framework := req.Framework
	if framework == "" {
		framework = h.defaultFramework
	}

	result := h.complianceServ.EvaluateTrust(app, framework)
	c.JSON(http.StatusOK, result)
}

// Process maneja POST /api/process.
func (h *ComplianceHandler) Process(c *gin.Context) {
	var req struct {
		ApplicationID string         `json:"application_id"`
		Application   map[string]any `json:"application"`
		Framework     string         `json:"framework"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid process request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, ok := h.resolveApplication(c, req.ApplicationID, req.Application)
	if !ok {
		return
	}

	framework := req.Framework
	if framework == "" {
		framework = h.defaultFramework
	}

	decision, err := h.complianceServ.Process(c.Request.Context(), app, framework)
	if err != nil {
		h.respondError(c, err, "could not process application")
		return
	}
	c.JSON(http.StatusOK, decision)
}

// ProcessAll maneja POST /api/process/all.
func (h *ComplianceHandler) ProcessAll(c *gin.Context) {
	var req struct {
		ApplicationID string         `json:"application_id"`
		Application   map[string]any `json:"application"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid process all request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, ok := h.resolveApplication(c, req.ApplicationID, req.Application)
	if !ok {
		return
	}

	results, err := h.complianceServ.ProcessAllFrameworks(c.Request.Context(), app)
	if err != nil {
		h.respondError(c, err, "could not process application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListDecisions maneja GET /api/decisions.
func (h *ComplianceHandler) ListDecisions(c *gin.Context) {
	decisions, err := h.complianceServ.Decisions(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "could not list decisions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

// GetDecision maneja GET /api/decisions/:decision_id.
func (h *ComplianceHandler) GetDecision(c *gin.Context) {
	decision, err := h.complianceServ.Decision(c.Request.Context(), c.Param("decision_id"))
	if err != nil {
		h.respondError(c, err, "could not get decision")
		return
	}
	c.JSON(http.StatusOK, decision)
}

// VerifyDecision maneja GET /api/decisions/:decision_id/verify.
func (h *ComplianceHandler) VerifyDecision(c *gin.Context) {
	verification, err := h.complianceServ.Verify(c.Request.Context(), c.Param("decision_id"))
	if err != nil {
		h.respondError(c, err, "could not verify decision")
		return
	}
	c.JSON(http.StatusOK, verification)
}

// DecisionReport maneja GET /api/decisions/:decision_id/report y devuelve el
// PDF directamente.
func (h *ComplianceHandler) DecisionReport(c *gin.Context) {
	decision, err := h.complianceServ.Decision(c.Request.Context(), c.Param("decision_id"))
	if err != nil {
		h.respondError(c, err, "could not get decision")
		return
	}

	// Las recomendaciones del LLM son best-effort: el reporte sale igual sin ellas.
	var recommendations []domain.Recommendation
	if h.explainerServ.Enabled() {
		recs, err := h.explainerServ.Recommendations(c.Request.Context(), decision.ApplicationData, decision.TrustResult)
		if err != nil {
			h.logger.Warn("report recommendations failed", zap.Error(err), zap.String("decision_id", decision.DecisionID))
		} else {
			recommendations = recs
		}
	}

	pdfBytes, err := h.reportGen.Generate(decision, recommendations)
	if err != nil {
		h.logger.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", decision.DecisionID))
	// Pisa el Content-Type JSON que deja el middleware.
	c.Header("Content-Type", "application/pdf")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Explain maneja POST /api/explain.
func (h *ComplianceHandler) Explain(c *gin.Context) {
	var req struct {
		DecisionID string `json:"decision_id" binding:"required"`
		Query      string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid explain request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	decision, err := h.complianceServ.Decision(c.Request.Context(), req.DecisionID)
	if err != nil {
		h.respondError(c, err, "could not get decision")
		return
	}

	explanation, err := h.explainerServ.ExplainDecision(c.Request.Context(), decision, req.Query)
	if err != nil {
		h.respondError(c, err, "could not generate explanation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"decision_id": req.DecisionID, "explanation": explanation})
}

// Recommendations maneja POST /api/recommendations.
func (h *ComplianceHandler) Recommendations(c *gin.Context) {
	var req struct {
		ApplicationID string         `json:"application_id"`
		Application   map[string]any `json:"application"`
		Framework     string         `json:"framework"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommendations request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, ok := h.resolveApplication(c, req.ApplicationID, req.Application)
	if !ok {
		return
	}

	framework := req.Framework
	if framework == "" {
		framework = h.defaultFramework
	}

	trust := h.complianceServ.EvaluateTrust(app, framework)
	recommendations, err := h.explainerServ.Recommendations(c.Request.Context(), app, trust)
	if err != nil {
		h.respondError(c, err, "could not generate recommendations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

// ListFrameworks maneja GET /api/frameworks.
func (h *ComplianceHandler) ListFrameworks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frameworks": h.registry.Keys()})
}

// FrameworkRequirements maneja GET /api/frameworks/:name/requirements.
func (h *ComplianceHandler) FrameworkRequirements(c *gin.Context) {
	requirements, err := h.registry.Requirements(c.Param("name"))
	if err != nil {
		h.respondError(c, err, "could not get requirements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": requirements})
}

// resolveApplication arma la solicitud desde el body: inline si viene el
// documento, o por id contra el loader. Responde el error y devuelve false si
// no se pudo resolver.
func (h *ComplianceHandler) resolveApplication(c *gin.Context, applicationID string, inline map[string]any) (domain.Application, bool) {
	if len(inline) > 0 {
		return domain.Application(inline), true
	}
	if applicationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application_id or application is required"})
		return nil, false
	}
	app, err := h.loader.GetByID(applicationID)
	if err != nil {
		h.respondError(c, err, "could not load application")
		return nil, false
	}
	return app, true
}

// respondError traduce errores de dominio a códigos HTTP.
func (h *ComplianceHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUnknownFramework):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDecisionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, loandata.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidEventType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExplainerDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
