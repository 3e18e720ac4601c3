// ABOUTME: gin handlers for profiles, tone, patterns, learnings, and composition
// ABOUTME: Reads of absent entities return null bodies; only invalid input is an error
package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/models"
	"github.com/harper/brand-memory/internal/storage/sqlite"
	"gopkg.in/yaml.v3"
)

// GET /health
func (s *Server) health(c *gin.Context) {
	respondSuccess(c, gin.H{"status": "ok"})
}

// GET /tone/presets
func (s *Server) listPresets(c *gin.Context) {
	respondSuccess(c, gin.H{"presets": models.TonePresets()})
}

// GET /tone/recommend?business_type=
func (s *Server) recommendPreset(c *gin.Context) {
	businessType := c.Query("business_type")
	respondSuccess(c, gin.H{
		"business_type": businessType,
		"preset":        core.RecommendPreset(businessType),
	})
}

// GET /businesses/:id/profile
func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.memory.Profiles.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"profile": profile})
}

// PUT /businesses/:id/profile
func (s *Server) upsertProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	profile, err := s.memory.Profiles.UpsertProfile(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"profile": profile})
}

// GET /businesses/:id/summary
func (s *Server) getSummary(c *gin.Context) {
	summary, err := s.memory.Profiles.GetContextSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, summary)
}

type voiceSampleRequest struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// POST /businesses/:id/voice-samples
func (s *Server) addVoiceSample(c *gin.Context) {
	var req voiceSampleRequest
	if !bindJSON(c, &req) {
		return
	}
	sample, err := s.memory.Profiles.AddVoiceSample(c.Request.Context(), c.Param("id"), req.Text, req.Tags)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sample": sample})
}

// DELETE /businesses/:id/voice-samples/:sampleId
func (s *Server) removeVoiceSample(c *gin.Context) {
	if err := s.memory.Profiles.RemoveVoiceSample(c.Request.Context(), c.Param("id"), c.Param("sampleId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /businesses/:id/campaign-preferences
func (s *Server) getCampaignPreferences(c *gin.Context) {
	prefs, err := s.memory.Profiles.GetCampaignPreferences(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"campaign_preferences": prefs})
}

// PUT /businesses/:id/campaign-preferences
func (s *Server) updateCampaignPreferences(c *gin.Context) {
	var update models.CampaignPreferencesUpdate
	if !bindJSON(c, &update) {
		return
	}
	ctx := c.Request.Context()
	if err := s.memory.Profiles.UpdateCampaignPreferences(ctx, c.Param("id"), update); err != nil {
		respondErr(c, err)
		return
	}
	s.getCampaignPreferences(c)
}

type campaignOutcomeRequest struct {
	models.CampaignOutcome
	Report string `json:"report"`
}

// POST /businesses/:id/campaign-outcomes
func (s *Server) recordCampaignOutcome(c *gin.Context) {
	var req campaignOutcomeRequest
	if !bindJSON(c, &req) {
		return
	}
	businessID := c.Param("id")
	if err := s.memory.Profiles.LearnFromCampaign(c.Request.Context(), businessID, req.CampaignOutcome); err != nil {
		respondErr(c, err)
		return
	}

	queued := false
	if req.Report != "" && s.scribe != nil {
		s.scribe.RecordOutcomeAsync(businessID, req.Report)
		queued = true
	}
	c.JSON(http.StatusAccepted, gin.H{"recorded": true, "report_queued": queued})
}

// GET /businesses/:id/tone
func (s *Server) getTone(c *gin.Context) {
	tone, err := s.memory.Tone.GetTone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"tone": tone})
}

type presetRequest struct {
	Preset string `json:"preset"`
}

// PUT /businesses/:id/tone/preset
func (s *Server) setPreset(c *gin.Context) {
	var req presetRequest
	if !bindJSON(c, &req) {
		return
	}
	tone, err := s.memory.Tone.SetPreset(c.Request.Context(), c.Param("id"), req.Preset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"tone": tone})
}

// PUT /businesses/:id/tone/custom
func (s *Server) setCustomTone(c *gin.Context) {
	var input models.CustomToneInput
	if !bindJSON(c, &input) {
		return
	}
	tone, err := s.memory.Tone.SetCustom(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"tone": tone})
}

type adjustRequest struct {
	Command string `json:"command"`
}

// POST /businesses/:id/tone/adjust
func (s *Server) adjustTone(c *gin.Context) {
	var req adjustRequest
	if !bindJSON(c, &req) {
		return
	}
	adjustment, err := s.memory.Tone.AdjustNaturally(c.Request.Context(), c.Param("id"), req.Command)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, adjustment)
}

type applyToAllRequest struct {
	Apply bool `json:"apply"`
}

// PUT /businesses/:id/tone/apply-to-all
func (s *Server) setApplyToAll(c *gin.Context) {
	var req applyToAllRequest
	if !bindJSON(c, &req) {
		return
	}
	tone, err := s.memory.Tone.SetApplyToAllContent(c.Request.Context(), c.Param("id"), req.Apply)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"tone": tone})
}

// GET /businesses/:id/patterns?type=&campaign_type=&platform=&min_confidence=&limit=
func (s *Server) listPatterns(c *gin.Context) {
	filter := models.PatternFilter{
		CampaignType: c.Query("campaign_type"),
		Platform:     c.Query("platform"),
	}
	if t := c.Query("type"); t != "" {
		pt, err := models.ParsePatternType(t)
		if err != nil {
			respondErr(c, err)
			return
		}
		filter.PatternType = pt
	}
	if v := c.Query("min_confidence"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(c, "min_confidence must be a number", http.StatusBadRequest)
			return
		}
		filter.MinConfidence = f
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, "limit must be an integer", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}

	patterns, err := s.memory.Patterns.GetPatterns(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"patterns": patterns})
}

type storePatternRequest struct {
	PatternType  models.PatternType        `json:"pattern_type"`
	PatternValue string                    `json:"pattern_value"`
	CampaignType string                    `json:"campaign_type"`
	Platform     string                    `json:"platform"`
	Metrics      models.PerformanceMetrics `json:"performance_metrics"`
	Variance     *float64                  `json:"variance"`
	Examples     []string                  `json:"examples"`
}

// POST /businesses/:id/patterns
func (s *Server) storePattern(c *gin.Context) {
	var req storePatternRequest
	if !bindJSON(c, &req) {
		return
	}
	pattern, err := s.memory.Patterns.StorePattern(c.Request.Context(), c.Param("id"), core.StorePatternInput{
		PatternType:  req.PatternType,
		PatternValue: req.PatternValue,
		Scope:        models.PatternScope{CampaignType: req.CampaignType, Platform: req.Platform},
		Metrics:      req.Metrics,
		Variance:     req.Variance,
		Examples:     req.Examples,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pattern": pattern})
}

// POST /businesses/:id/patterns/discover
func (s *Server) discoverPatterns(c *gin.Context) {
	patterns, err := s.memory.Patterns.DiscoverPatterns(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"patterns": patterns})
}

// GET /patterns/:patternId
func (s *Server) getPattern(c *gin.Context) {
	pattern, err := s.memory.Patterns.GetPattern(c.Request.Context(), c.Param("patternId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if pattern == nil {
		respondError(c, "pattern not found", http.StatusNotFound)
		return
	}
	respondSuccess(c, gin.H{"pattern": pattern})
}

// PATCH /patterns/:patternId/performance
func (s *Server) updatePatternPerformance(c *gin.Context) {
	var update models.MetricsUpdate
	if !bindJSON(c, &update) {
		return
	}
	if err := s.memory.Patterns.UpdatePatternPerformance(c.Request.Context(), c.Param("patternId"), update); err != nil {
		respondErr(c, err)
		return
	}
	s.getPattern(c)
}

// POST /patterns/:patternId/deactivate
func (s *Server) deactivatePattern(c *gin.Context) {
	if err := s.memory.Patterns.DeactivatePattern(c.Request.Context(), c.Param("patternId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /businesses/:id/learnings?include_dismissed=&limit=
func (s *Server) listLearnings(c *gin.Context) {
	includeDismissed := c.Query("include_dismissed") == "true"
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	learnings, err := s.memory.Patterns.GetLearnings(c.Request.Context(), c.Param("id"), includeDismissed, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"learnings": learnings})
}

type storeLearningRequest struct {
	Category       string   `json:"category"`
	Insight        string   `json:"insight"`
	DataPoints     int      `json:"data_points"`
	Confidence     *float64 `json:"confidence"`
	Recommendation string   `json:"recommendation"`
}

// POST /businesses/:id/learnings
func (s *Server) storeLearning(c *gin.Context) {
	var req storeLearningRequest
	if !bindJSON(c, &req) {
		return
	}
	confidence := 0.5
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	learning, err := s.memory.Patterns.StoreLearning(c.Request.Context(), c.Param("id"), core.StoreLearningInput{
		Category:       req.Category,
		Insight:        req.Insight,
		DataPoints:     req.DataPoints,
		Confidence:     confidence,
		Recommendation: req.Recommendation,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"learning": learning})
}

// POST /learnings/:learningId/dismiss
func (s *Server) dismissLearning(c *gin.Context) {
	if err := s.memory.Patterns.DismissLearning(c.Request.Context(), c.Param("learningId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /businesses/:id/context?mode=default|lightweight|full&format=json|text
func (s *Server) composeContext(c *gin.Context) {
	ctx := c.Request.Context()
	businessID := c.Param("id")

	var (
		composed *models.ComposedContext
		err      error
	)
	switch mode := c.DefaultQuery("mode", "default"); mode {
	case "default":
		composed, err = s.memory.Composer.Compose(ctx, businessID, models.DefaultComposeOptions())
	case "lightweight":
		composed, err = s.memory.Composer.ComposeLightweight(ctx, businessID)
	case "full":
		composed, err = s.memory.Composer.ComposeFull(ctx, businessID)
	default:
		respondError(c, "mode must be default, lightweight, or full", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, composed.Document)
		return
	}
	respondSuccess(c, composed)
}

// GET /businesses/:id/context/estimate
func (s *Server) estimateContext(c *gin.Context) {
	estimate, err := s.memory.Composer.EstimateTokenUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondSuccess(c, gin.H{"estimated_tokens": estimate})
}

// GET /businesses/:id/export?format=json|yaml|markdown
func (s *Server) export(c *gin.Context) {
	if s.exporter == nil {
		respondError(c, "export is not available", http.StatusNotImplemented)
		return
	}
	businessID := c.Param("id")
	if err := models.ValidateBusinessID(businessID); err != nil {
		respondErr(c, err)
		return
	}
	data, err := s.exporter.Export(c.Request.Context(), businessID)
	if err != nil {
		respondErr(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		respondSuccess(c, data)
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml", out)
	case "markdown":
		var buf bytes.Buffer
		sqlite.WriteMarkdown(&buf, data)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
	default:
		respondError(c, "format must be json, yaml, or markdown", http.StatusBadRequest)
	}
}
