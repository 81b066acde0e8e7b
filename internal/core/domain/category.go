package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category still has products")
)

// Category groups products under a unique name. CreatedBy records the
// owner; mutation rights belong to the owner and to admins.
type Category struct {
	ID          string    `json:"id"`
	Nom         string    `json:"nom"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
