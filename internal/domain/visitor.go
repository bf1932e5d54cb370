package domain

import "time"

// Visitor is the identity record of a person booking visits. Registration
// is handled by an administrative collaborator; the scheduling core only
// reads committed visitors.
type Visitor struct {
	ID    int64
	Name  string
	Phone *string
	Email *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
