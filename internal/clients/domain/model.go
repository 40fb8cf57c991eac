package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a top-level organisational entity that owns projects.
type Client struct {
	ID                int64     `json:"id"`
	ClientName        string    `json:"client_name"`
	CreatedByID       int64     `json:"created_by_id"`
	CreatedByUsername string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListFilter narrows a client listing. Zero values mean "no constraint".
type ListFilter struct {
	// Search matches client_name or the creator's username, case-insensitively.
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
