package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	plandomain "github.com/velozity/opsboard/internal/plan/domain"
)

func (s *Server) ListPlanWeeks(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}
	if limit <= 0 {
		limit = plandomain.DefaultRecentWeeks
	}

	weeks, err := s.planSvc.ListRecentWeeks(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}

func (s *Server) GetPlanWeek(c *gin.Context) {
	weekStart, err := s.weekKey(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	lines, err := s.planSvc.GetWeek(c.Request.Context(), weekStart)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"week_start": weekStart, "lines": lines})
}

func (s *Server) PutPlanWeek(c *gin.Context) {
	weekStart, err := s.weekKey(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var lines []plandomain.LineInput
	if err := c.ShouldBindJSON(&lines); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	stored, err := s.planSvc.PutWeek(c.Request.Context(), weekStart, lines)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "week_start": weekStart, "lines": stored})
}

func (s *Server) ZeroPlanWeek(c *gin.Context) {
	weekStart, err := s.weekKey(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.planSvc.ZeroWeek(c.Request.Context(), weekStart); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "week_start": weekStart, "rows": 0})
}
