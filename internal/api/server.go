// ABOUTME: HTTP API over the brand memory components using gin
// ABOUTME: Routes live under /businesses/:id and mirror the component operations
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/brand-memory/internal/core"
	"github.com/harper/brand-memory/internal/storage/sqlite"
)

// Exporter produces a portable snapshot of one business
type Exporter interface {
	Export(ctx context.Context, businessID string) (*sqlite.ExportData, error)
}

// Server serves the JSON API
type Server struct {
	memory   *core.Memory
	scribe   *core.Scribe
	exporter Exporter
	engine   *gin.Engine
}

// Option configures optional collaborators
type Option func(*Server)

// WithScribe enables background learning extraction from outcome reports
func WithScribe(scribe *core.Scribe) Option {
	return func(s *Server) { s.scribe = scribe }
}

// WithExporter enables the export endpoint
func WithExporter(exporter Exporter) Option {
	return func(s *Server) { s.exporter = exporter }
}

// NewServer builds the gin engine and registers every route
func NewServer(memory *core.Memory, opts ...Option) *Server {
	s := &Server{memory: memory}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s.engine = r
	s.routes()
	return s
}

// Handler exposes the engine for http.Server and httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/health", s.health)

	r.GET("/tone/presets", s.listPresets)
	r.GET("/tone/recommend", s.recommendPreset)

	b := r.Group("/businesses/:id")
	b.GET("/profile", s.getProfile)
	b.PUT("/profile", s.upsertProfile)
	b.GET("/summary", s.getSummary)
	b.POST("/voice-samples", s.addVoiceSample)
	b.DELETE("/voice-samples/:sampleId", s.removeVoiceSample)
	b.GET("/campaign-preferences", s.getCampaignPreferences)
	b.PUT("/campaign-preferences", s.updateCampaignPreferences)
	b.POST("/campaign-outcomes", s.recordCampaignOutcome)

	b.GET("/tone", s.getTone)
	b.PUT("/tone/preset", s.setPreset)
	b.PUT("/tone/custom", s.setCustomTone)
	b.POST("/tone/adjust", s.adjustTone)
	b.PUT("/tone/apply-to-all", s.setApplyToAll)

	b.GET("/patterns", s.listPatterns)
	b.POST("/patterns", s.storePattern)
	b.POST("/patterns/discover", s.discoverPatterns)
	b.GET("/learnings", s.listLearnings)
	b.POST("/learnings", s.storeLearning)

	b.GET("/context", s.composeContext)
	b.GET("/context/estimate", s.estimateContext)
	b.GET("/export", s.export)

	r.GET("/patterns/:patternId", s.getPattern)
	r.PATCH("/patterns/:patternId/performance", s.updatePatternPerformance)
	r.POST("/patterns/:patternId/deactivate", s.deactivatePattern)
	r.POST("/learnings/:learningId/dismiss", s.dismissLearning)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("[API] Shutting down...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if s.scribe != nil {
		s.scribe.Wait()
	}
	return nil
}
