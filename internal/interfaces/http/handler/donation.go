package handler

import (
	"github.com/gin-gonic/gin"
	appsharing "github.com/weshare/backend/internal/application/sharing"
)

// DonationHandler handles donation HTTP requests
type DonationHandler struct {
	BaseHandler
	donationService *appsharing.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *appsharing.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create lists a new donation for the authenticated donor
func (h *DonationHandler) Create(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appsharing.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), donorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, donation)
}

// List returns the public donation catalog, optionally filtered and geo-sorted
func (h *DonationHandler) List(c *gin.Context) {
	var filter appsharing.DonationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	donations, total, err := h.donationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, donations, total, page, pageSize)
}

// ListMine returns the authenticated donor's own donations
func (h *DonationHandler) ListMine(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	donations, err := h.donationService.ListMine(c.Request.Context(), donorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donations)
}

// GetByID returns a single donation
func (h *DonationHandler) GetByID(c *gin.Context) {
	donationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), donationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donation)
}

// Update overwrites descriptive fields of an owned donation
func (h *DonationHandler) Update(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	donationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	var req appsharing.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	donation, err := h.donationService.Update(c.Request.Context(), donorID, donationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donation)
}

// Delete removes an owned donation while it is still available
func (h *DonationHandler) Delete(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	donationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	if err := h.donationService.Delete(c.Request.Context(), donorID, donationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AcceptRequest reserves the donation for the chosen request's receiver
func (h *DonationHandler) AcceptRequest(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	donationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}
	requestID, err := parseIDParam(c, "requestId")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	donation, err := h.donationService.AcceptRequest(c.Request.Context(), donorID, donationID, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donation)
}

// MarkFulfilled completes a reserved donation and its accepted request
func (h *DonationHandler) MarkFulfilled(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	donationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := h.donationService.MarkFulfilled(c.Request.Context(), donorID, donationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donation)
}

// DonorRating returns the aggregated rating for a donor
func (h *DonationHandler) DonorRating(c *gin.Context) {
	donorID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid donor ID")
		return
	}

	summary, err := h.donationService.RatingSummary(c.Request.Context(), donorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
