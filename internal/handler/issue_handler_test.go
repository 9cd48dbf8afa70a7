package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sani483/civic/internal/middleware"
	"github.com/Sani483/civic/internal/model"
	"github.com/Sani483/civic/internal/service"
	"github.com/Sani483/civic/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memIssueRepo is an in-memory IssueRepository for handler tests
type memIssueRepo struct {
	issues map[int64]*model.Issue
	nextID int64
}

func newMemIssueRepo() *memIssueRepo {
	return &memIssueRepo{issues: make(map[int64]*model.Issue), nextID: 1}
}

func (r *memIssueRepo) Create(_ context.Context, issue *model.Issue) error {
	issue.ID = r.nextID
	r.nextID++
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt
	cp := *issue
	r.issues[issue.ID] = &cp
	return nil
}

func (r *memIssueRepo) FindAll(_ context.Context) ([]model.Issue, error) {
	var out []model.Issue
	for _, i := range r.issues {
		out = append(out, *i)
	}
	return out, nil
}

func (r *memIssueRepo) FindByID(_ context.Context, id int64) (*model.Issue, error) {
	i, ok := r.issues[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *memIssueRepo) Upvote(_ context.Context, id int64) (*model.Issue, error) {
	i, ok := r.issues[id]
	if !ok {
		return nil, nil
	}
	i.Upvotes++
	cp := *i
	return &cp, nil
}

func (r *memIssueRepo) UpdateStatus(_ context.Context, id int64, status string, _ *string, _ int) (*model.Issue, error) {
	i, ok := r.issues[id]
	if !ok {
		return nil, nil
	}
	i.Status = status
	cp := *i
	return &cp, nil
}

func newIssueTestRouter(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := utils.NewTokenService("test-secret", 60)
	userRepo := newMemUserRepo()
	require.NoError(t, userRepo.Create(context.Background(), &model.User{
		Name: "Alice", Email: "a@x.com", Role: model.RoleCitizen,
	}))
	require.NoError(t, userRepo.Create(context.Background(), &model.User{
		Name: "Inspector", Email: "i@gov.example", Role: model.RoleAuthority,
	}))

	issueService := service.NewIssueService(newMemIssueRepo(), userRepo)
	issueHandler := NewIssueHandler(issueService)

	router := gin.New()
	issueHandler.RegisterIssueRoutes(router.Group("/"),
		middleware.JWTAuthMiddleware(tokens), middleware.AuthorityMiddleware())

	citizenToken, err := tokens.Issue("a@x.com", model.RoleCitizen)
	require.NoError(t, err)
	authorityToken, err := tokens.Issue("i@gov.example", model.RoleAuthority)
	require.NoError(t, err)
	return router, citizenToken, authorityToken
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreateIssue_RequiresAuth(t *testing.T) {
	router, _, _ := newIssueTestRouter(t)

	w := doJSON(router, http.MethodPost, "/issues", "", `{"title":"t","description":"d"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueFlow(t *testing.T) {
	router, citizenToken, authorityToken := newIssueTestRouter(t)

	// Report an issue as a citizen
	w := doJSON(router, http.MethodPost, "/issues", citizenToken,
		`{"title":"Pothole on Main St","description":"Large pothole","category":"roads"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var issue model.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, "Alice", issue.UserName)
	assert.Equal(t, model.IssueStatusPending, issue.Status)

	// Anyone can list issues
	w = doJSON(router, http.MethodGet, "/issues", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var issues []model.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
	assert.Len(t, issues, 1)

	// Upvote
	w = doJSON(router, http.MethodPost, fmt.Sprintf("/issues/%d/upvote", issue.ID), citizenToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var upvoted model.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upvoted))
	assert.EqualValues(t, 1, upvoted.Upvotes)

	// A citizen cannot change status
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/issues/%d/status", issue.ID), citizenToken,
		`{"status":"Resolved"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An authority can
	w = doJSON(router, http.MethodPut, fmt.Sprintf("/issues/%d/status", issue.ID), authorityToken,
		`{"status":"In Progress","message":"Crew dispatched"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.IssueStatusInProgress, updated.Status)
}

func TestUpvote_NotFound(t *testing.T) {
	router, citizenToken, _ := newIssueTestRouter(t)

	w := doJSON(router, http.MethodPost, "/issues/42/upvote", citizenToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
