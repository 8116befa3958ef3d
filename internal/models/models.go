package models

import (
	"time"
)

// Model defines the base interface for locally persisted cache records.
type Model interface {
	ID() string           // ID returns the unique identifier for this record
	CreatedAt() time.Time // CreatedAt returns when this record was created
	UpdatedAt() time.Time // UpdatedAt returns when this record was last updated
	Validate() error      // Validate checks if the record's data is valid and returns an error if not
}

// Repository defines the interface for local cache data access.
// Implementations handle SQLite interactions for specific record types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new record
	Get(id string) (T, error)                  // Get retrieves a record by its ID
	Update(model T) error                      // Update modifies an existing record
	Delete(id string) error                    // Delete removes a record by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all records matching the given criteria
}
