package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/application/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review HTTP requests
type ReviewHandler struct {
	BaseHandler
	reviewService *catalog.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *catalog.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListByProduct returns all reviews for a product, newest first
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Create adds the authenticated user's review for a product
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// Update edits the authenticated user's own review
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	var req catalog.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete removes a review; authors delete their own, admins any
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, middleware.IsAdmin(c), reviewID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AttachImage uploads or replaces the photo on the author's review
func (h *ReviewHandler) AttachImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	fileHeader, file, ok := h.openImageFile(c)
	if !ok {
		return
	}
	defer file.Close()

	review, err := h.reviewService.AttachImage(
		c.Request.Context(), userID, reviewID, fileHeader.Filename, imageContentType(fileHeader), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}
