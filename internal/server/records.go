package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	recorddomain "github.com/velozity/opsboard/internal/record/domain"
)

type patchRecordRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type createRecordRequest struct {
	ID        string `json:"id"`
	DateLocal string `json:"date_local"`
	MobileBin string `json:"mobile_bin"`
	SSCCLabel string `json:"sscc_label"`
	PONumber  string `json:"po_number"`
	SKUCode   string `json:"sku_code"`
	UID       string `json:"uid"`
}

func (s *Server) PatchRecord(c *gin.Context) {
	var req patchRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rec, err := s.recordSvc.ApplyPatch(c.Request.Context(), recorddomain.PatchRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Field: strings.TrimSpace(req.Field),
		Value: req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "record": rec})
}

func (s *Server) CreateRecord(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rec, err := s.recordSvc.CreateByNaturalKey(c.Request.Context(), recorddomain.CreateRequest{
		ID:        strings.TrimSpace(req.ID),
		DateLocal: strings.TrimSpace(req.DateLocal),
		MobileBin: strings.TrimSpace(req.MobileBin),
		SSCCLabel: strings.TrimSpace(req.SSCCLabel),
		PONumber:  strings.TrimSpace(req.PONumber),
		SKUCode:   strings.TrimSpace(req.SKUCode),
		UID:       strings.TrimSpace(req.UID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "record": rec})
}

func (s *Server) ImportRecords(c *gin.Context) {
	var rows []recorddomain.ImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.recordSvc.Import(c.Request.Context(), rows)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"inserted": result.Inserted,
		"total":    result.Total,
		"rejected": result.Rejected,
		"errors":   result.Errors,
	})
}

func (s *Server) ListRecords(c *gin.Context) {
	var query struct {
		From   string `form:"from"`
		To     string `form:"to"`
		Status string `form:"status"`
		Limit  string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	records, err := s.recordSvc.Query(c.Request.Context(), recorddomain.QueryRequest{
		From:   strings.TrimSpace(query.From),
		To:     strings.TrimSpace(query.To),
		Status: strings.TrimSpace(query.Status),
		Limit:  limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) DeleteRecord(c *gin.Context) {
	deleted, err := s.recordSvc.DeleteByNaturalKey(c.Request.Context(), recorddomain.DeleteRequest{
		UID:     strings.TrimSpace(c.Query("uid")),
		SKUCode: strings.TrimSpace(c.Query("sku_code")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}

// BatchDeleteRecords accepts either a JSON array of delete items or a single
// item object; the single form is folded into a one-item batch.
func (s *Server) BatchDeleteRecords(c *gin.Context) {
	var items []recorddomain.DeleteRequest
	if err := c.ShouldBindBodyWithJSON(&items); err != nil {
		var single recorddomain.DeleteRequest
		if err := c.ShouldBindBodyWithJSON(&single); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		items = []recorddomain.DeleteRequest{single}
	}

	result, err := s.recordSvc.BatchDelete(c.Request.Context(), items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"total_deleted": result.TotalDeleted,
		"results":       result.Results,
	})
}
