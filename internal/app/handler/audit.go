package handler

import (
	"net/http"
	"strconv"

	"irrigation-dashboard/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuditHandler struct {
	audits *repository.AuditRepository
}

func NewAuditHandler(audits *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// GetAudit godoc
// @Summary Recent dashboard actions
// @Description Returns the latest create, update, delete and photo actions issued through the dashboard
// @Tags Audit
// @Produce json
// @Param screen query string false "Screen name filter"
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {array} ds.ActionLog
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security SessionCookie
// @Router /api/audit [get]
func (h *AuditHandler) GetAudit(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	entries, err := h.audits.Recent(ctx.Request.Context(), ctx.Query("screen"), limit)
	if err != nil {
		logrus.Error("Failed to read audit log: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audit log"})
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
