// ABOUTME: Learning storage operations for SQLite
// ABOUTME: Confidence-ordered listing with optional inclusion of dismissed rows
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harper/brand-memory/internal/models"
)

// LearningStore handles learning persistence
type LearningStore struct {
	db *DB
}

// NewLearningStore creates a new LearningStore
func NewLearningStore(db *DB) *LearningStore {
	return &LearningStore{db: db}
}

const learningColumns = `id, business_id, category, insight, data_points, confidence,
	recommendation, is_dismissed, created_at`

func scanLearning(row rowScanner) (*models.Learning, error) {
	var l models.Learning
	err := row.Scan(&l.ID, &l.BusinessID, &l.Category, &l.Insight, &l.DataPoints, &l.Confidence,
		&l.Recommendation, &l.IsDismissed, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Insert stores a new learning
func (s *LearningStore) Insert(ctx context.Context, l *models.Learning) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learnings (`+learningColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.BusinessID, l.Category, l.Insight, l.DataPoints, l.Confidence,
		l.Recommendation, boolToInt(l.IsDismissed), l.CreatedAt)
	if err != nil {
		return storeErr("insert learning", err)
	}
	return nil
}

// Get retrieves a learning by ID, returning nil if not found
func (s *LearningStore) Get(ctx context.Context, learningID string) (*models.Learning, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+learningColumns+` FROM learnings WHERE id = ?`, learningID)
	l, err := scanLearning(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get learning", err)
	}
	return l, nil
}

// List returns learnings for a business, highest confidence first
func (s *LearningStore) List(ctx context.Context, businessID string, includeDismissed bool, limit int) ([]models.Learning, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + learningColumns + ` FROM learnings WHERE business_id = ?`
	if !includeDismissed {
		query += ` AND is_dismissed = 0`
	}
	query += ` ORDER BY confidence DESC, created_at DESC, id ASC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, businessID, limit)
	if err != nil {
		return nil, storeErr("list learnings", err)
	}
	defer func() { _ = rows.Close() }()

	learnings := []models.Learning{}
	for rows.Next() {
		l, err := scanLearning(rows)
		if err != nil {
			return nil, storeErr("scan learning", err)
		}
		learnings = append(learnings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate learnings", err)
	}
	return learnings, nil
}

// Update rewrites the mutable fields of a learning
func (s *LearningStore) Update(ctx context.Context, l *models.Learning) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE learnings SET
			category = ?,
			insight = ?,
			data_points = ?,
			confidence = ?,
			recommendation = ?,
			is_dismissed = ?
		WHERE id = ?
	`, l.Category, l.Insight, l.DataPoints, l.Confidence, l.Recommendation, boolToInt(l.IsDismissed), l.ID)
	if err != nil {
		return storeErr("update learning", err)
	}
	return nil
}
