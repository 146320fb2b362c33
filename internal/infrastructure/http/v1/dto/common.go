// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stockyard/internal/core/entity"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID        string    `json:"id"`
	IsActive  bool      `json:"isActive"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromBaseEntity creates BaseResponse from entity.BaseEntity.
func FromBaseEntity(b entity.BaseEntity) BaseResponse {
	return BaseResponse{
		ID:        b.ID.String(),
		IsActive:  b.IsActive,
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Activation ---

// SetActiveRequest toggles the active flag on a catalog record.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
