package dto

import (
	"time"

	"stockyard/internal/domain/ledger"
	"stockyard/internal/domain/packaging"
)

// MovementResponse contains one ledger record.
type MovementResponse struct {
	ID              string              `json:"id"`
	ProductID       string              `json:"productId"`
	Type            string              `json:"type"`
	PackageQuantity int                 `json:"packageQuantity"`
	UnitsPerPackage int                 `json:"unitsPerPackage"`
	UnitQuantity    int                 `json:"unitQuantity"`
	TotalUnits      int64               `json:"totalUnits"`
	Breakdown       packaging.Breakdown `json:"breakdown"`
	Reason          string              `json:"reason"`
	Notes           *string             `json:"notes,omitempty"`
	Date            time.Time           `json:"date"`
	UserID          string              `json:"userId,omitempty"`
	UserName        string              `json:"userName,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// FromMovement creates MovementResponse from a movement.
func FromMovement(m *ledger.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID.String(),
		ProductID:       m.ProductID.String(),
		Type:            string(m.Type),
		PackageQuantity: m.PackageQuantity,
		UnitsPerPackage: m.UnitsPerPackage,
		UnitQuantity:    m.UnitQuantity,
		TotalUnits:      m.TotalUnits,
		Breakdown:       m.Breakdown(),
		Reason:          m.Reason,
		Notes:           m.Notes,
		Date:            m.Date,
		UserID:          m.UserID,
		UserName:        m.UserName,
		CreatedAt:       m.CreatedAt,
	}
}

// RecordMovementRequest for recording a movement. unitsPerPackage
// overrides the product's default ratio for this movement only.
type RecordMovementRequest struct {
	ProductID       string     `json:"productId" binding:"required"`
	Type            string     `json:"type" binding:"required"`
	PackageQuantity int        `json:"packageQuantity" binding:"min=0"`
	UnitQuantity    int        `json:"unitQuantity" binding:"min=0"`
	UnitsPerPackage *int       `json:"unitsPerPackage"`
	Reason          string     `json:"reason" binding:"required"`
	Notes           string     `json:"notes"`
	Date            *time.Time `json:"date"`
}

// MovementListRequest filters the movement list.
type MovementListRequest struct {
	ProductID string     `form:"productId"`
	Type      string     `form:"type"`
	Reason    string     `form:"reason"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit"`
	Offset    int        `form:"offset"`
}
