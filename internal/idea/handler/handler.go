package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/integrationhub/ideaportal/pkg/logger"
)

// IdeaService is the subset of service.Service the HTTP layer needs.
type IdeaService interface {
	ParseList(page, limit, query string) (service.ListParams, error)
	List(ctx context.Context, p service.ListParams) (*idea.Page, error)
	Get(ctx context.Context, id string) (*idea.WithEmployee, error)
	Create(ctx context.Context, d idea.Draft) (*idea.Idea, error)
	Vote(ctx context.Context, id string, vt idea.VoteType) (*idea.Idea, error)
	Delete(ctx context.Context, id string) error
	Employees(ctx context.Context) ([]idea.Employee, error)
	Employee(ctx context.Context, id string) (*idea.Employee, error)
}

const retryMessage = "something went wrong, please try again"

type voteRequest struct {
	VoteType idea.VoteType `json:"voteType"`
}

// RegisterRoutes mounts the idea and employee API on r. The mutating
// middlewares (rate limiting in production) wrap POST and DELETE only.
func RegisterRoutes(r gin.IRouter, svc IdeaService, mutating ...gin.HandlerFunc) {
	api := r.Group("/api")
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutating...), h)
	}

	api.GET("/ideas", func(c *gin.Context) {
		p, err := svc.ParseList(c.Query("page"), c.Query("limit"), c.Query("query"))
		if err != nil {
			respondError(c, err)
			return
		}
		page, err := svc.List(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	api.GET("/ideas/:id", func(c *gin.Context) {
		got, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, got)
	})

	api.POST("/ideas", write(func(c *gin.Context) {
		var d idea.Draft
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), d)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})...)

	api.POST("/ideas/:id/vote", write(func(c *gin.Context) {
		var req voteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		voted, err := svc.Vote(c.Request.Context(), c.Param("id"), req.VoteType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, voted)
	})...)

	api.DELETE("/ideas/:id", write(func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})...)

	api.GET("/employees", func(c *gin.Context) {
		es, err := svc.Employees(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, es)
	})

	api.GET("/employees/:id", func(c *gin.Context) {
		e, err := svc.Employee(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": retryMessage, "retryable": true})
	}
}
