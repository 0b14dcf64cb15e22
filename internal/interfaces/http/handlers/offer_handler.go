package handlers

import (
	"net/http"
	"strconv"

	"estate-hub.backend/internal/domain/entities"
	domainerrors "estate-hub.backend/internal/domain/errors"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"estate-hub.backend/internal/interfaces/http/middleware"
	"estate-hub.backend/internal/interfaces/http/response"
	"estate-hub.backend/internal/usecases"
	"estate-hub.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	usecase *usecases.OfferUsecase
}

func NewOfferHandler(usecase *usecases.OfferUsecase) *OfferHandler {
	return &OfferHandler{usecase: usecase}
}

type createOfferRequest struct {
	PropertyID        string  `json:"propertyId" binding:"required"`
	OfferPrice        float64 `json:"offerPrice" binding:"required"`
	DepositAmount     float64 `json:"depositAmount"`
	PaymentMethod     string  `json:"paymentMethod" binding:"required"`
	EstimatedTimeline string  `json:"estimatedTimeline" binding:"required"`
}

// Create submits a new offer on a property
// POST /api/v1/offers
func (h *OfferHandler) Create(c *gin.Context) {
	buyerID, ok := callerFromContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid property ID"))
		return
	}

	offer, err := h.usecase.Create(c.Request.Context(), usecases.CreateOfferInput{
		PropertyID:        propertyID,
		BuyerID:           buyerID,
		OfferPrice:        req.OfferPrice,
		DepositAmount:     req.DepositAmount,
		PaymentMethod:     entities.PaymentMethod(req.PaymentMethod),
		EstimatedTimeline: req.EstimatedTimeline,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, offer)
}

// List lists offers. Buyers only see their own; admins see everything.
// GET /api/v1/offers
func (h *OfferHandler) List(c *gin.Context) {
	callerID, ok := callerFromContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	filter := domainRepos.PropertyOfferFilter{
		Status: entities.OfferStatus(c.Query("status")),
	}
	if propertyID := c.Query("propertyId"); propertyID != "" {
		id, err := uuid.Parse(propertyID)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid property ID"))
			return
		}
		filter.PropertyID = id
	}
	if c.GetString(middleware.UserRoleKey) != string(entities.UserRoleAdmin) {
		filter.BuyerID = callerID
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	offers, meta, err := h.usecase.List(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"offers":     offers,
		"pagination": meta,
	})
}

// Get returns a single offer
// GET /api/v1/offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer ID"))
		return
	}

	offer, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	callerID, _ := callerFromContext(c)
	if c.GetString(middleware.UserRoleKey) != string(entities.UserRoleAdmin) && offer.BuyerID != callerID {
		response.Error(c, domainerrors.Forbidden("not your offer"))
		return
	}

	response.Success(c, http.StatusOK, offer)
}

type updateOfferRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

// Update applies a decision or withdrawal to a pending offer
// PATCH /api/v1/offers/:id
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid offer ID"))
		return
	}

	caller, ok := callerFromContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var req updateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	isAdmin := c.GetString(middleware.UserRoleKey) == string(entities.UserRoleAdmin)

	var offer *entities.PropertyOffer
	switch req.Action {
	case "approve", "reject":
		if !isAdmin {
			response.Error(c, domainerrors.Forbidden("only admins may decide offers"))
			return
		}
		decision := entities.OfferDecisionApproved
		if req.Action == "reject" {
			decision = entities.OfferDecisionRejected
		}
		offer, err = h.usecase.Decide(c.Request.Context(), id, decision, caller, req.Notes)
	case "withdraw":
		offer, err = h.usecase.Withdraw(c.Request.Context(), id, caller)
	default:
		response.Error(c, domainerrors.BadRequest("unrecognized action"))
		return
	}

	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// GetStats returns offer counts grouped by status
// GET /api/v1/offers/stats
func (h *OfferHandler) GetStats(c *gin.Context) {
	stats, err := h.usecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func callerFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
