package handler

import (
	"github.com/gin-gonic/gin"
	appsharing "github.com/weshare/backend/internal/application/sharing"
)

// RequestHandler handles donation request HTTP requests
type RequestHandler struct {
	BaseHandler
	requestService *appsharing.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *appsharing.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create files a new request for the authenticated receiver
func (h *RequestHandler) Create(c *gin.Context) {
	receiverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appsharing.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), receiverID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// ListOpen returns open requests donors can browse and fulfill
func (h *RequestHandler) ListOpen(c *gin.Context) {
	var filter appsharing.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	requests, total, err := h.requestService.ListOpen(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, requests, total, page, pageSize)
}

// ListMine returns the authenticated receiver's own requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	receiverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requests, err := h.requestService.ListMine(c.Request.Context(), receiverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// ListForDonation returns the requests filed against one of the donor's donations
func (h *RequestHandler) ListForDonation(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	donationID, err := parseIDParam(c, "donationId")
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	requests, err := h.requestService.ListForDonation(c.Request.Context(), donorID, donationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// GetByID returns a single request
func (h *RequestHandler) GetByID(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Update overwrites descriptive fields of an owned request
func (h *RequestHandler) Update(c *gin.Context) {
	receiverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req appsharing.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	request, err := h.requestService.Update(c.Request.Context(), receiverID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Delete removes an owned request
func (h *RequestHandler) Delete(c *gin.Context) {
	receiverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.requestService.Delete(c.Request.Context(), receiverID, requestID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Rate records the receiver's one-time rating on a fulfilled request
func (h *RequestHandler) Rate(c *gin.Context) {
	receiverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req appsharing.RateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	request, err := h.requestService.Rate(c.Request.Context(), receiverID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Fulfill lets a donor satisfy an open request with a manufactured donation
func (h *RequestHandler) Fulfill(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	// The body is optional; without it the donor's profile location is used
	var req appsharing.FulfillRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleValidationError(c, err)
			return
		}
	}

	result, err := h.requestService.Fulfill(c.Request.Context(), donorID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
