package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// PostRepository persists fetched trending posts for offline viewing.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository with the given database connection
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new [models.PersistedPost] into the database with generated ID and sequence
func (r *PostRepository) Create(post *models.PersistedPost) error {
	sequence, err := NextSequence(r.db, "trending_posts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	post.SetID(id)
	post.Sequence = sequence

	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO trending_posts (id, sequence, remote_id, platform, author, caption, hashtag, views, likes, comments, shares, posted_at, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		post.Post.ID,
		post.Post.Platform,
		post.Post.Author,
		post.Post.Caption,
		post.Post.Hashtag,
		post.Post.Views,
		post.Post.Likes,
		post.Post.Comments,
		post.Post.Shares,
		post.Post.PostedAt,
		post.FetchedAt,
		post.CreatedAt(),
		post.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// Get retrieves a post by ID, excluding soft-deleted rows
func (r *PostRepository) Get(id string) (*models.PersistedPost, error) {
	query := postSelect + " WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a post by the backend's identifier
func (r *PostRepository) GetByRemoteID(remoteID string) (*models.PersistedPost, error) {
	query := postSelect + " WHERE remote_id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Delete soft-deletes a cached post by ID
func (r *PostRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE trending_posts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("post not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves cached posts matching the given criteria, excluding soft-deleted rows
func (r *PostRepository) List(criteria map[string]any) ([]*models.PersistedPost, error) {
	query := postSelect + " WHERE deleted_at IS NULL"

	args := []any{}

	if hashtag, ok := criteria["hashtag"].(string); ok && hashtag != "" {
		query += " AND hashtag = ?"
		args = append(args, hashtag)
	}

	if platform, ok := criteria["platform"].(string); ok && platform != "" {
		query += " AND platform = ?"
		args = append(args, platform)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.PersistedPost
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}

const postSelect = `
	SELECT id, sequence, remote_id, platform, author, caption, hashtag, views, likes, comments, shares, posted_at, fetched_at, created_at, updated_at, deleted_at
	FROM trending_posts`

// scanOne scans a single [sql.Row] into a [models.PersistedPost]
func (r *PostRepository) scanOne(row *sql.Row) (*models.PersistedPost, error) {
	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post not found")
	}
	return post, err
}

func scanPost(scan func(dest ...any) error) (*models.PersistedPost, error) {
	var (
		id        string
		sequence  int
		remoteID  string
		platform  string
		author    string
		caption   string
		hashtag   string
		views     int64
		likes     int64
		comments  int64
		shares    int64
		postedAt  sql.NullString
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := scan(&id, &sequence, &remoteID, &platform, &author, &caption, &hashtag, &views, &likes, &comments, &shares, &postedAt, &fetchedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	dto := models.TrendingPost{
		ID:       remoteID,
		Platform: platform,
		Author:   author,
		Caption:  caption,
		Hashtag:  hashtag,
		Views:    views,
		Likes:    likes,
		Comments: comments,
		Shares:   shares,
	}
	if postedAt.Valid {
		dto.PostedAt = postedAt.String
	}

	post := models.NewPersistedPost(sequence, dto)
	post.SetID(id)
	post.SetCreatedAt(createdAt)
	post.SetUpdatedAt(updatedAt)
	post.FetchedAt = fetchedAt
	if deletedAt.Valid {
		post.SetDeletedAt(&deletedAt.Time)
	}

	return post, nil
}
