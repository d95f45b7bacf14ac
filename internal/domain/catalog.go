package domain

import (
	"strings"
	"time"
)

// DefaultCatalogColor is used when a catalog task is created without a color.
const DefaultCatalogColor = "#000000"

// CatalogTask is the reusable, day-independent task definition that day
// entries are seeded from.
type CatalogTask struct {
	ID                 string
	Name               string
	Color              string
	DefaultGoalMinutes int
	CreatedAt          time.Time
}

// Normalize trims the name, fills the default color and clamps the goal.
func (t *CatalogTask) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if strings.TrimSpace(t.Color) == "" {
		t.Color = DefaultCatalogColor
	}
	t.DefaultGoalMinutes = clampNonNegative(t.DefaultGoalMinutes)
}

// Validate checks the fields a catalog task needs before it is stored.
func (t *CatalogTask) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required")
	}
	if t.DefaultGoalMinutes <= 0 {
		return NewValidationError("defaultGoalMinutes", "must be positive")
	}
	return nil
}
