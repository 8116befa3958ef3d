package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// ClassRepository persists fetched hook and format classes for offline viewing.
//
// Classes are cached on every fetch and replaced wholesale when the backend
// returns a newer copy. The kind column distinguishes hook from format entries.
type ClassRepository struct {
	db *sql.DB
}

// NewClassRepository creates a new ClassRepository with the given database connection
func NewClassRepository(db *sql.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new [models.PersistedClass] into the database with generated ID and sequence
func (r *ClassRepository) Create(class *models.PersistedClass) error {
	sequence, err := NextSequence(r.db, "hook_classes")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	class.SetID(id)
	class.Sequence = sequence

	if err := class.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO hook_classes (id, sequence, remote_id, kind, name, technique, avg_views, avg_engagement, video_count, analysis_json, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		class.RemoteID,
		class.Kind,
		class.Class.Name,
		class.Class.Technique,
		class.Class.AvgViews,
		class.Class.AvgEngagement,
		class.Class.VideoCount,
		class.AnalysisJSON,
		class.FetchedAt,
		class.CreatedAt(),
		class.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert class: %w", err)
	}

	return nil
}

// Get retrieves a class by ID, excluding soft-deleted rows
func (r *ClassRepository) Get(id string) (*models.PersistedClass, error) {
	query := classSelect + " WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a class by kind and the backend's identifier
func (r *ClassRepository) GetByRemoteID(kind, remoteID string) (*models.PersistedClass, error) {
	query := classSelect + " WHERE kind = ? AND remote_id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, kind, remoteID))
}

// Update modifies an existing cached class in the database
func (r *ClassRepository) Update(class *models.PersistedClass) error {
	if err := class.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	class.SetUpdatedAt(now)

	query := `
		UPDATE hook_classes
		SET name = ?, technique = ?, avg_views = ?, avg_engagement = ?, video_count = ?, analysis_json = ?, fetched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		class.Class.Name,
		class.Class.Technique,
		class.Class.AvgViews,
		class.Class.AvgEngagement,
		class.Class.VideoCount,
		class.AnalysisJSON,
		class.FetchedAt,
		now,
		class.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("class not found or already deleted: %s", class.ID())
	}

	return nil
}

// Delete soft-deletes a cached class by ID
func (r *ClassRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE hook_classes
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("class not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves cached classes matching the given criteria, excluding soft-deleted rows
func (r *ClassRepository) List(criteria map[string]any) ([]*models.PersistedClass, error) {
	query := classSelect + " WHERE deleted_at IS NULL"

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.PersistedClass
	for rows.Next() {
		class, err := scanClass(rows.Scan)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return classes, nil
}

const classSelect = `
	SELECT id, sequence, remote_id, kind, name, technique, avg_views, avg_engagement, video_count, analysis_json, fetched_at, created_at, updated_at, deleted_at
	FROM hook_classes`

// scanOne scans a single [sql.Row] into a [models.PersistedClass]
func (r *ClassRepository) scanOne(row *sql.Row) (*models.PersistedClass, error) {
	class, err := scanClass(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("class not found")
	}
	return class, err
}

func scanClass(scan func(dest ...any) error) (*models.PersistedClass, error) {
	var (
		id           string
		sequence     int
		remoteID     string
		kind         string
		name         string
		technique    string
		avgViews     float64
		avgEng       float64
		videoCount   int
		analysisJSON sql.NullString
		fetchedAt    time.Time
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := scan(&id, &sequence, &remoteID, &kind, &name, &technique, &avgViews, &avgEng, &videoCount, &analysisJSON, &fetchedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan class: %w", err)
	}

	dto := models.HookClass{
		ID:            remoteID,
		Name:          name,
		Technique:     technique,
		AvgViews:      avgViews,
		AvgEngagement: avgEng,
		VideoCount:    videoCount,
	}

	class := models.NewPersistedClass(sequence, kind, remoteID, dto)
	class.SetID(id)
	class.SetCreatedAt(createdAt)
	class.SetUpdatedAt(updatedAt)
	class.FetchedAt = fetchedAt
	if analysisJSON.Valid && analysisJSON.String != "" {
		class.AnalysisJSON = analysisJSON.String
		var analysis models.ClassAnalysis
		if err := json.Unmarshal([]byte(analysisJSON.String), &analysis); err != nil {
			return nil, fmt.Errorf("failed to decode cached analysis: %w", err)
		}
		class.Class.Analysis = &analysis
	}
	if deletedAt.Valid {
		class.SetDeletedAt(&deletedAt.Time)
	}

	return class, nil
}
