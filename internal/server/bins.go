package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	bindomain "github.com/velozity/opsboard/internal/bin/domain"
)

func (s *Server) GetBinWeek(c *gin.Context) {
	weekStart, err := s.weekKey(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.binSvc.GetWeek(c.Request.Context(), weekStart)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"week_start": weekStart, "rows": rows})
}

func (s *Server) PutBinWeek(c *gin.Context) {
	weekStart, err := s.weekKey(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var rows []bindomain.RowInput
	if err := c.ShouldBindJSON(&rows); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.binSvc.PutWeek(c.Request.Context(), weekStart, rows)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"upserted": result.Upserted,
		"rejected": result.Rejected,
		"errors":   result.Errors,
	})
}
