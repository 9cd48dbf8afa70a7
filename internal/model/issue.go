package model

import "time"

const (
	IssueStatusPending    = "Pending"
	IssueStatusInProgress = "In Progress"
	IssueStatusResolved   = "Resolved"
	IssueStatusRejected   = "Rejected"
)

// Issue represents a civic issue reported by a user
type Issue struct {
	ID          int64     `json:"id"`
	UserID      int       `json:"user_id"`
	UserName    string    `json:"user_name"` // Reporter name, joined from users
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    *string   `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Status      string    `json:"status"`
	Upvotes     int64     `json:"upvotes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IssueUpdate records a single status change on an issue
type IssueUpdate struct {
	ID        int64     `json:"id"`
	IssueID   int64     `json:"issue_id"`
	UpdatedBy int       `json:"updated_by"`
	Status    string    `json:"status"`
	Message   *string   `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateIssueRequest is used for reporting a new issue
type CreateIssueRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// UpdateIssueStatusRequest is used by authorities to change an issue's status
type UpdateIssueStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Message *string `json:"message"`
}
