package handlers

import (
	"net/http"
	"strconv"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	"estate-hub.backend/internal/interfaces/http/middleware"
	"estate-hub.backend/internal/interfaces/http/response"
	"estate-hub.backend/internal/usecases"
	"estate-hub.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VerificationHandler struct {
	usecase *usecases.VerificationTriageUsecase
}

func NewVerificationHandler(usecase *usecases.VerificationTriageUsecase) *VerificationHandler {
	return &VerificationHandler{usecase: usecase}
}

// ListByQueue lists verification submissions in one triage queue
// GET /api/v1/admin/verifications?queue=flagged
func (h *VerificationHandler) ListByQueue(c *gin.Context) {
	queue := entities.TriageQueue(c.DefaultQuery("queue", string(entities.QueuePending)))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	subs, meta, err := h.usecase.ListQueue(c.Request.Context(), queue, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"queue":       queue,
		"submissions": subs,
		"pagination":  meta,
	})
}

// GetStats returns triage queue counters
// GET /api/v1/admin/verifications/stats
func (h *VerificationHandler) GetStats(c *gin.Context) {
	stats, err := h.usecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Approve records an operator approval
// POST /api/v1/admin/verifications/:id/approve
func (h *VerificationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid submission ID"))
		return
	}

	reviewerID, ok := reviewerFromContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	sub, err := h.usecase.Approve(c.Request.Context(), id, reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject records an operator rejection with a reason
// POST /api/v1/admin/verifications/:id/reject
func (h *VerificationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid submission ID"))
		return
	}

	reviewerID, ok := reviewerFromContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest("rejection reason is required"))
		return
	}

	sub, err := h.usecase.Reject(c.Request.Context(), id, reviewerID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func reviewerFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
