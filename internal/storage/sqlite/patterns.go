// ABOUTME: Content pattern storage operations for SQLite
// ABOUTME: Supports filtered, confidence-ordered retrieval of active patterns
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

// PatternStore handles content pattern persistence
type PatternStore struct {
	db *DB
}

// NewPatternStore creates a new PatternStore
func NewPatternStore(db *DB) *PatternStore {
	return &PatternStore{db: db}
}

const patternColumns = `id, business_id, pattern_type, pattern_value, campaign_type, platform,
	avg_engagement_rate, avg_reach, sample_size, confidence_score, examples, is_active,
	discovered_at, last_validated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPattern(row rowScanner) (*models.ContentPattern, error) {
	var (
		p            models.ContentPattern
		patternType  string
		examplesJSON string
	)
	err := row.Scan(&p.ID, &p.BusinessID, &patternType, &p.PatternValue, &p.CampaignType, &p.Platform,
		&p.PerformanceMetrics.AvgEngagementRate, &p.PerformanceMetrics.AvgReach,
		&p.PerformanceMetrics.SampleSize, &p.PerformanceMetrics.ConfidenceScore,
		&examplesJSON, &p.IsActive, &p.DiscoveredAt, &p.LastValidatedAt)
	if err != nil {
		return nil, err
	}
	p.PatternType = models.PatternType(patternType)
	p.Examples = decodeStrings(examplesJSON)
	return &p, nil
}

// Insert stores a new pattern. Patterns with the same value are not merged.
func (s *PatternStore) Insert(ctx context.Context, p *models.ContentPattern) error {
	examplesJSON, err := encodeJSON(p.Examples)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if p.DiscoveredAt.IsZero() {
		p.DiscoveredAt = now
	}
	if p.LastValidatedAt.IsZero() {
		p.LastValidatedAt = p.DiscoveredAt
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content_patterns (`+patternColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.BusinessID, string(p.PatternType), p.PatternValue, p.CampaignType, p.Platform,
		p.PerformanceMetrics.AvgEngagementRate, p.PerformanceMetrics.AvgReach,
		p.PerformanceMetrics.SampleSize, p.PerformanceMetrics.ConfidenceScore,
		examplesJSON, boolToInt(p.IsActive), p.DiscoveredAt, p.LastValidatedAt)
	if err != nil {
		return storeErr("insert pattern", err)
	}
	return nil
}

// Get retrieves a pattern by ID regardless of its active flag
func (s *PatternStore) Get(ctx context.Context, patternID string) (*models.ContentPattern, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+patternColumns+` FROM content_patterns WHERE id = ?`, patternID)
	p, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get pattern", err)
	}
	return p, nil
}

// List returns active patterns matching the filter, highest confidence first
func (s *PatternStore) List(ctx context.Context, businessID string, filter models.PatternFilter) ([]models.ContentPattern, error) {
	conditions := []string{"business_id = ?", "is_active = 1"}
	args := []interface{}{businessID}

	if filter.PatternType != "" {
		conditions = append(conditions, "pattern_type = ?")
		args = append(args, string(filter.PatternType))
	}
	if filter.CampaignType != "" {
		conditions = append(conditions, "campaign_type = ?")
		args = append(args, filter.CampaignType)
	}
	if filter.Platform != "" {
		conditions = append(conditions, "platform = ?")
		args = append(args, filter.Platform)
	}
	if filter.MinConfidence > 0 {
		conditions = append(conditions, "confidence_score >= ?")
		args = append(args, filter.MinConfidence)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+patternColumns+`
		FROM content_patterns
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY confidence_score DESC, discovered_at DESC, id ASC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, storeErr("list patterns", err)
	}
	defer func() { _ = rows.Close() }()

	patterns := []models.ContentPattern{}
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, storeErr("scan pattern", err)
		}
		patterns = append(patterns, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate patterns", err)
	}
	return patterns, nil
}

// Update rewrites the mutable fields of an existing pattern
func (s *PatternStore) Update(ctx context.Context, p *models.ContentPattern) error {
	examplesJSON, err := encodeJSON(p.Examples)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE content_patterns SET
			pattern_value = ?,
			campaign_type = ?,
			platform = ?,
			avg_engagement_rate = ?,
			avg_reach = ?,
			sample_size = ?,
			confidence_score = ?,
			examples = ?,
			is_active = ?,
			last_validated_at = ?
		WHERE id = ?
	`, p.PatternValue, p.CampaignType, p.Platform,
		p.PerformanceMetrics.AvgEngagementRate, p.PerformanceMetrics.AvgReach,
		p.PerformanceMetrics.SampleSize, p.PerformanceMetrics.ConfidenceScore,
		examplesJSON, boolToInt(p.IsActive), p.LastValidatedAt, p.ID)
	if err != nil {
		return storeErr("update pattern", err)
	}
	return nil
}
