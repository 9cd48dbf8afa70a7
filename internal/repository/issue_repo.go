package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sani483/civic/internal/model"

	"github.com/jackc/pgx/v5"
)

// IssueRepository defines operations for civic issue data
type IssueRepository interface {
	Create(ctx context.Context, issue *model.Issue) error
	FindAll(ctx context.Context) ([]model.Issue, error)
	FindByID(ctx context.Context, id int64) (*model.Issue, error)
	Upvote(ctx context.Context, id int64) (*model.Issue, error)
	UpdateStatus(ctx context.Context, id int64, status string, message *string, updatedBy int) (*model.Issue, error)
}

type issueRepository struct {
	db DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db DB) IssueRepository {
	return &issueRepository{db: db}
}

const issueColumns = `i.id, i.user_id, u.name, i.title, i.description, i.category, i.location,
            i.latitude, i.longitude, i.status, i.upvotes, i.created_at, i.updated_at`

func scanIssue(row pgx.Row, i *model.Issue) error {
	return row.Scan(
		&i.ID, &i.UserID, &i.UserName, &i.Title, &i.Description, &i.Category, &i.Location,
		&i.Latitude, &i.Longitude, &i.Status, &i.Upvotes, &i.CreatedAt, &i.UpdatedAt,
	)
}

// Create inserts a new issue into the database
func (r *issueRepository) Create(ctx context.Context, issue *model.Issue) error {
	sql := `INSERT INTO issues (user_id, title, description, category, location, latitude, longitude, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING id, upvotes, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		issue.UserID, issue.Title, issue.Description, issue.Category, issue.Location,
		issue.Latitude, issue.Longitude, issue.Status,
	).Scan(&issue.ID, &issue.Upvotes, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// FindAll retrieves all issues, newest first, with the reporter's name
func (r *issueRepository) FindAll(ctx context.Context) ([]model.Issue, error) {
	sql := `SELECT ` + issueColumns + `
            FROM issues i
            JOIN users u ON i.user_id = u.id
            ORDER BY i.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	var issues []model.Issue
	for rows.Next() {
		var i model.Issue
		if err := scanIssue(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}
	return issues, nil
}

// FindByID retrieves an issue by its ID
func (r *issueRepository) FindByID(ctx context.Context, id int64) (*model.Issue, error) {
	i := &model.Issue{}
	sql := `SELECT ` + issueColumns + `
            FROM issues i
            JOIN users u ON i.user_id = u.id
            WHERE i.id = $1`
	err := scanIssue(r.db.QueryRow(ctx, sql, id), i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find issue by ID: %w", err)
	}
	return i, nil
}

// Upvote increments an issue's upvote counter and returns the updated row
func (r *issueRepository) Upvote(ctx context.Context, id int64) (*model.Issue, error) {
	i := &model.Issue{}
	sql := `UPDATE issues i SET upvotes = i.upvotes + 1
            FROM users u
            WHERE i.id = $1 AND u.id = i.user_id
            RETURNING ` + issueColumns
	err := scanIssue(r.db.QueryRow(ctx, sql, id), i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to upvote issue: %w", err)
	}
	return i, nil
}

// UpdateStatus sets a new status on an issue and appends a history row to
// issue_updates. Returns nil when the issue does not exist.
func (r *issueRepository) UpdateStatus(ctx context.Context, id int64, status string, message *string, updatedBy int) (*model.Issue, error) {
	updateSQL := `UPDATE issues SET status = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, updateSQL, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, nil // Not found
	}

	historySQL := `INSERT INTO issue_updates (issue_id, updated_by, status, message)
                   VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, historySQL, id, updatedBy, status, message); err != nil {
		return nil, fmt.Errorf("failed to record issue status update: %w", err)
	}

	return r.FindByID(ctx, id)
}
