package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/velozity/opsboard/internal/export"
	"go.uber.org/zap"
)

func (s *Server) ExportDaySheet(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = s.cal.Today()
	}

	f, err := s.exportSvc.DaySheet(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("closing day sheet", zap.Error(err))
		}
	}()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(date)))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		s.log.Warn("writing day sheet", zap.Error(err))
	}
}
