// Package entity provides base building blocks shared by catalog entities.
package entity

import (
	"context"
	"time"

	"stockyard/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for all catalog entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// IsActive marks the record usable; deactivation is the soft-delete path
	IsActive bool `db:"is_active" json:"isActive"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        id.New(),
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp and increments version
// (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// Deactivate clears the active flag.
func (b *BaseEntity) Deactivate() {
	b.IsActive = false
}

// Activate sets the active flag.
func (b *BaseEntity) Activate() {
	b.IsActive = true
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}
