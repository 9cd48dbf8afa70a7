package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Sani483/civic/internal/middleware"
	"github.com/Sani483/civic/internal/model"
	"github.com/Sani483/civic/internal/service"

	"github.com/gin-gonic/gin"
)

// IssueHandler handles civic issue requests
type IssueHandler struct {
	service service.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(s service.IssueService) *IssueHandler {
	return &IssueHandler{service: s}
}

// Helper to get the authenticated user's email from context
func getAuthEmail(c *gin.Context) (string, error) {
	emailVal, exists := c.Get(middleware.AuthEmailKey)
	if !exists {
		return "", errors.New("user email not found in context")
	}
	email, ok := emailVal.(string)
	if !ok {
		return "", errors.New("invalid user email type in context")
	}
	return email, nil
}

func (h *IssueHandler) ListIssues(c *gin.Context) {
	issues, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing issues: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	if issues == nil {
		issues = []model.Issue{}
	}
	c.JSON(http.StatusOK, issues)
}

func (h *IssueHandler) CreateIssue(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	issue, err := h.service.Report(c.Request.Context(), email, req)
	if err != nil {
		if errors.Is(err, service.ErrReporterNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}
	c.JSON(http.StatusCreated, issue)
}

func (h *IssueHandler) UpvoteIssue(c *gin.Context) {
	issueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issue, err := h.service.Upvote(c.Request.Context(), issueID)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error upvoting issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote issue"})
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *IssueHandler) UpdateIssueStatus(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	issueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var req model.UpdateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	issue, err := h.service.UpdateStatus(c.Request.Context(), issueID, email, req)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrReporterNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error updating issue status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue status"})
		return
	}
	c.JSON(http.StatusOK, issue)
}

// RegisterIssueRoutes registers issue routes
func (h *IssueHandler) RegisterIssueRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, authorityMW gin.HandlerFunc) {
	issueRoutes := rg.Group("/issues")
	{
		issueRoutes.GET("", h.ListIssues)

		issueRoutes.POST("", authMW, h.CreateIssue)
		issueRoutes.POST("/:id/upvote", authMW, h.UpvoteIssue)
		issueRoutes.PUT("/:id/status", authMW, authorityMW, h.UpdateIssueStatus)
	}
}
