package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sani483/civic/internal/model"
	"github.com/Sani483/civic/internal/repository"
)

var (
	ErrIssueNotFound    = errors.New("issue not found")
	ErrReporterNotFound = errors.New("reporting user not found")
)

// IssueService defines operations for civic issues
type IssueService interface {
	Report(ctx context.Context, reporterEmail string, req model.CreateIssueRequest) (*model.Issue, error)
	List(ctx context.Context) ([]model.Issue, error)
	Upvote(ctx context.Context, issueID int64) (*model.Issue, error)
	UpdateStatus(ctx context.Context, issueID int64, updaterEmail string, req model.UpdateIssueStatusRequest) (*model.Issue, error)
}

type issueService struct {
	issueRepo repository.IssueRepository
	userRepo  repository.UserRepository
}

// NewIssueService creates a new IssueService
func NewIssueService(issueRepo repository.IssueRepository, userRepo repository.UserRepository) IssueService {
	return &issueService{issueRepo: issueRepo, userRepo: userRepo}
}

// Report creates a new issue on behalf of the authenticated user
func (s *issueService) Report(ctx context.Context, reporterEmail string, req model.CreateIssueRequest) (*model.Issue, error) {
	reporter, err := s.userRepo.FindByEmail(ctx, reporterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reporter: %w", err)
	}
	if reporter == nil {
		return nil, ErrReporterNotFound
	}

	issue := &model.Issue{
		UserID:      reporter.ID,
		UserName:    reporter.Name,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      model.IssueStatusPending,
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to create issue in repo: %w", err)
	}
	return issue, nil
}

// List returns all issues, newest first
func (s *issueService) List(ctx context.Context) ([]model.Issue, error) {
	issues, err := s.issueRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues from repo: %w", err)
	}
	return issues, nil
}

// Upvote increments the upvote count of an issue
func (s *issueService) Upvote(ctx context.Context, issueID int64) (*model.Issue, error) {
	issue, err := s.issueRepo.Upvote(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to upvote issue in repo: %w", err)
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// UpdateStatus changes an issue's status and records the change in its
// history. Role checks happen at the middleware layer.
func (s *issueService) UpdateStatus(ctx context.Context, issueID int64, updaterEmail string, req model.UpdateIssueStatusRequest) (*model.Issue, error) {
	updater, err := s.userRepo.FindByEmail(ctx, updaterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve updater: %w", err)
	}
	if updater == nil {
		return nil, ErrReporterNotFound
	}

	issue, err := s.issueRepo.UpdateStatus(ctx, issueID, req.Status, req.Message, updater.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue status in repo: %w", err)
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}
