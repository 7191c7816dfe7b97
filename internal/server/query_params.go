package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseOptionalInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// weekKey resolves the week parameter for plan and bin routes. The path
// segment wins; the weekStart and ws query aliases are fallbacks. Any date
// inside a week is accepted and normalized to that week's Monday. An empty
// value means the current business week.
func (s *Server) weekKey(c *gin.Context) (string, error) {
	raw := strings.TrimSpace(c.Param("week"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("weekStart"))
	}
	if raw == "" {
		raw = strings.TrimSpace(c.Query("ws"))
	}
	if raw == "" {
		return s.cal.ThisMonday(), nil
	}
	monday, err := s.cal.Monday(raw)
	if err != nil {
		return "", newValidationError("week", "invalid_week", "invalid week date")
	}
	return monday, nil
}
