// ABOUTME: Export functionality for a business's brand memory
// ABOUTME: Supports YAML, Markdown, and JSON export formats
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/brand-memory/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document
const ExportVersion = "1.0"

// ExportData represents the complete exportable data for one business
type ExportData struct {
	Version    string           `yaml:"version" json:"version"`
	ExportedAt string           `yaml:"exported_at" json:"exported_at"`
	Tool       string           `yaml:"tool" json:"tool"`
	BusinessID string           `yaml:"business_id" json:"business_id"`
	Profile    *ExportProfile   `yaml:"profile,omitempty" json:"profile,omitempty"`
	Tone       *ExportTone      `yaml:"tone,omitempty" json:"tone,omitempty"`
	Patterns   []ExportPattern  `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Learnings  []ExportLearning `yaml:"learnings,omitempty" json:"learnings,omitempty"`
}

// ExportProfile represents a business profile for export
type ExportProfile struct {
	Name                     string                     `yaml:"name" json:"name"`
	Industry                 string                     `yaml:"industry,omitempty" json:"industry,omitempty"`
	BusinessType             string                     `yaml:"business_type,omitempty" json:"business_type,omitempty"`
	Location                 string                     `yaml:"location,omitempty" json:"location,omitempty"`
	TargetAudience           string                     `yaml:"target_audience,omitempty" json:"target_audience,omitempty"`
	UniqueSellingProposition string                     `yaml:"unique_selling_proposition,omitempty" json:"unique_selling_proposition,omitempty"`
	BrandPersonality         string                     `yaml:"brand_personality,omitempty" json:"brand_personality,omitempty"`
	VoiceSamples             []string                   `yaml:"voice_samples,omitempty" json:"voice_samples,omitempty"`
	CampaignPreferences      models.CampaignPreferences `yaml:"campaign_preferences" json:"campaign_preferences"`
}

// ExportTone represents a tone configuration for export
type ExportTone struct {
	Preset            string   `yaml:"preset,omitempty" json:"preset,omitempty"`
	CustomDescription string   `yaml:"custom_description,omitempty" json:"custom_description,omitempty"`
	Formality         int      `yaml:"formality" json:"formality"`
	Humor             int      `yaml:"humor" json:"humor"`
	Enthusiasm        int      `yaml:"enthusiasm" json:"enthusiasm"`
	Examples          []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// ExportPattern represents an active content pattern for export
type ExportPattern struct {
	PatternID    string  `yaml:"pattern_id" json:"pattern_id"`
	Type         string  `yaml:"type" json:"type"`
	Value        string  `yaml:"value" json:"value"`
	CampaignType string  `yaml:"campaign_type,omitempty" json:"campaign_type,omitempty"`
	Platform     string  `yaml:"platform,omitempty" json:"platform,omitempty"`
	Confidence   float64 `yaml:"confidence" json:"confidence"`
	SampleSize   int     `yaml:"sample_size" json:"sample_size"`
}

// ExportLearning represents a learning for export
type ExportLearning struct {
	LearningID     string  `yaml:"learning_id" json:"learning_id"`
	Category       string  `yaml:"category,omitempty" json:"category,omitempty"`
	Insight        string  `yaml:"insight" json:"insight"`
	Recommendation string  `yaml:"recommendation,omitempty" json:"recommendation,omitempty"`
	Confidence     float64 `yaml:"confidence" json:"confidence"`
	Dismissed      bool    `yaml:"dismissed,omitempty" json:"dismissed,omitempty"`
	CreatedAt      string  `yaml:"created_at" json:"created_at"`
}

// Export collects everything stored for a business
func (s *Storage) Export(ctx context.Context, businessID string) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "brandmem",
		BusinessID: businessID,
	}

	profile, err := s.GetProfile(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile != nil {
		ep := &ExportProfile{
			Name:                     profile.Name,
			Industry:                 profile.Industry,
			BusinessType:             profile.BusinessType,
			TargetAudience:           profile.TargetAudience,
			UniqueSellingProposition: profile.UniqueSellingProposition,
			BrandPersonality:         profile.BrandPersonality,
			CampaignPreferences:      profile.CampaignPreferences,
		}
		if profile.Location != nil {
			ep.Location = profile.Location.String()
		}
		for _, vs := range profile.VoiceSamples {
			ep.VoiceSamples = append(ep.VoiceSamples, vs.Text)
		}
		data.Profile = ep
	}

	tone, err := s.GetTone(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tone: %w", err)
	}
	if tone != nil {
		data.Tone = &ExportTone{
			Preset:            tone.Preset,
			CustomDescription: tone.CustomDescription,
			Formality:         tone.Axes.Formality,
			Humor:             tone.Axes.Humor,
			Enthusiasm:        tone.Axes.Enthusiasm,
			Examples:          tone.Examples,
		}
	}

	patterns, err := s.ListPatterns(ctx, businessID, models.PatternFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	for _, p := range patterns {
		data.Patterns = append(data.Patterns, ExportPattern{
			PatternID:    p.ID,
			Type:         string(p.PatternType),
			Value:        p.PatternValue,
			CampaignType: p.CampaignType,
			Platform:     p.Platform,
			Confidence:   p.PerformanceMetrics.ConfidenceScore,
			SampleSize:   p.PerformanceMetrics.SampleSize,
		})
	}

	learnings, err := s.ListLearnings(ctx, businessID, true, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list learnings: %w", err)
	}
	for _, l := range learnings {
		data.Learnings = append(data.Learnings, ExportLearning{
			LearningID:     l.ID,
			Category:       l.Category,
			Insight:        l.Insight,
			Recommendation: l.Recommendation,
			Confidence:     l.Confidence,
			Dismissed:      l.IsDismissed,
			CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		})
	}

	return data, nil
}

// ExportToYAML exports a business to a YAML file
func (s *Storage) ExportToYAML(ctx context.Context, businessID, outputPath string) error {
	return s.exportToFile(ctx, businessID, outputPath, func(w io.Writer, data *ExportData) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	})
}

// ExportToJSON exports a business to a JSON file
func (s *Storage) ExportToJSON(ctx context.Context, businessID, outputPath string) error {
	return s.exportToFile(ctx, businessID, outputPath, func(w io.Writer, data *ExportData) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	})
}

// ExportToMarkdown exports a business to a Markdown file
func (s *Storage) ExportToMarkdown(ctx context.Context, businessID, outputPath string) error {
	return s.exportToFile(ctx, businessID, outputPath, func(w io.Writer, data *ExportData) error {
		WriteMarkdown(w, data)
		return nil
	})
}

func (s *Storage) exportToFile(ctx context.Context, businessID, outputPath string, encode func(io.Writer, *ExportData) error) (err error) {
	data, err := s.Export(ctx, businessID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// A failed close can mean buffered bytes never reached disk
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return encode(file, data)
}

// WriteMarkdown renders export data as a human-readable Markdown document
func WriteMarkdown(w io.Writer, data *ExportData) {
	title := data.BusinessID
	if data.Profile != nil && data.Profile.Name != "" {
		title = data.Profile.Name
	}
	_, _ = fmt.Fprintf(w, "# Brand Memory Export - %s\n\n", title)
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	if p := data.Profile; p != nil {
		_, _ = fmt.Fprintln(w, "## Business Profile")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "- **Name:** %s\n", p.Name)
		writeField(w, "Industry", p.Industry)
		writeField(w, "Type", p.BusinessType)
		writeField(w, "Location", p.Location)
		writeField(w, "Target Audience", p.TargetAudience)
		writeField(w, "Unique Selling Proposition", p.UniqueSellingProposition)
		writeField(w, "Brand Personality", p.BrandPersonality)
		if len(p.VoiceSamples) > 0 {
			_, _ = fmt.Fprintln(w, "- **Voice Samples:**")
			for _, vs := range p.VoiceSamples {
				_, _ = fmt.Fprintf(w, "  - %q\n", vs)
			}
		}
		prefs := p.CampaignPreferences
		writeField(w, "Preferred Campaign Types", strings.Join(prefs.PreferredCampaignTypes, ", "))
		writeField(w, "Preferred Platforms", strings.Join(prefs.PreferredPlatforms, ", "))
		writeField(w, "Preferred Content Types", strings.Join(prefs.PreferredContentTypes, ", "))
		_, _ = fmt.Fprintln(w)
	}

	if t := data.Tone; t != nil {
		_, _ = fmt.Fprintln(w, "## Tone")
		_, _ = fmt.Fprintln(w)
		writeField(w, "Preset", t.Preset)
		writeField(w, "Custom", t.CustomDescription)
		_, _ = fmt.Fprintf(w, "- **Formality:** %d/5\n", t.Formality)
		_, _ = fmt.Fprintf(w, "- **Humor:** %d/3\n", t.Humor)
		_, _ = fmt.Fprintf(w, "- **Enthusiasm:** %d/5\n", t.Enthusiasm)
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Patterns) > 0 {
		_, _ = fmt.Fprintln(w, "## Patterns")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Type | Value | Confidence | Samples |")
		_, _ = fmt.Fprintln(w, "|------|-------|------------|---------|")
		for _, p := range data.Patterns {
			_, _ = fmt.Fprintf(w, "| %s | %s | %.2f | %d |\n", p.Type, p.Value, p.Confidence, p.SampleSize)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Learnings) > 0 {
		_, _ = fmt.Fprintln(w, "## Learnings")
		_, _ = fmt.Fprintln(w)
		for _, l := range data.Learnings {
			line := l.Insight
			if l.Recommendation != "" {
				line += " (" + l.Recommendation + ")"
			}
			if l.Dismissed {
				line = "~~" + line + "~~"
			}
			_, _ = fmt.Fprintf(w, "- %s\n", line)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func writeField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "- **%s:** %s\n", label, value)
}
