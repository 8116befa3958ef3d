package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// localCredentialID is the fixed row key; the client stores one identity at a time.
const localCredentialID = "local"

// StoredCredential is the persisted bearer token and the claims snapshot taken
// from it at login. The backend remains authoritative for all of it.
type StoredCredential struct {
	Token     string
	Email     string
	Role      string
	Plan      string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CredentialRepository persists the logged-in identity across CLI invocations.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new CredentialRepository with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Save upserts the stored credential, replacing any previous identity.
func (r *CredentialRepository) Save(cred *StoredCredential) error {
	if cred.Token == "" {
		return fmt.Errorf("%w: token is required", shared.ErrInvalidCredentials)
	}

	now := time.Now()
	cred.UpdatedAt = now
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}

	query := `
		INSERT INTO credentials (id, token, email, role, plan, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			email = excluded.email,
			role = excluded.role,
			plan = excluded.plan,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		localCredentialID,
		cred.Token,
		cred.Email,
		cred.Role,
		cred.Plan,
		cred.ExpiresAt,
		cred.CreatedAt,
		cred.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Get retrieves the stored credential.
//
// Returns [shared.ErrNotAuthenticated] when no identity has been saved.
func (r *CredentialRepository) Get() (*StoredCredential, error) {
	query := `
		SELECT token, email, role, plan, expires_at, created_at, updated_at
		FROM credentials
		WHERE id = ?
	`

	var (
		cred      StoredCredential
		expiresAt sql.NullTime
	)

	err := r.db.QueryRow(query, localCredentialID).Scan(
		&cred.Token,
		&cred.Email,
		&cred.Role,
		&cred.Plan,
		&expiresAt,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan credential: %w", err)
	}

	if expiresAt.Valid {
		cred.ExpiresAt = expiresAt.Time
	}

	return &cred, nil
}

// Clear removes the stored credential. Clearing an empty store is not an error.
func (r *CredentialRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM credentials WHERE id = ?", localCredentialID)
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
