package entity

import "time"

// FAQ pregunta frecuente administrada por usuarios admin.
type FAQ struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
