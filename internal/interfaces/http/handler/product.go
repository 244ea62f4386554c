package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/application/catalog"
)

// maxImageSize caps uploaded product and review images at 5 MiB
const maxImageSize = 5 << 20

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a paginated product listing with optional filters
func (h *ProductHandler) List(c *gin.Context) {
	var query catalog.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create adds a new product to the catalog (admin only)
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update modifies product fields (admin only)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product and its stored images (admin only)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UploadMainImage replaces the product's main image (admin only)
func (h *ProductHandler) UploadMainImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	fileHeader, file, ok := h.openImageFile(c)
	if !ok {
		return
	}
	defer file.Close()

	product, err := h.productService.UploadMainImage(
		c.Request.Context(), id, fileHeader.Filename, imageContentType(fileHeader), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// AddGalleryImage appends an image to the product gallery (admin only)
func (h *ProductHandler) AddGalleryImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	fileHeader, file, ok := h.openImageFile(c)
	if !ok {
		return
	}
	defer file.Close()

	product, err := h.productService.AddGalleryImage(
		c.Request.Context(), id, fileHeader.Filename, imageContentType(fileHeader), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

type removeGalleryImageRequest struct {
	Key string `json:"key" binding:"required"`
}

// RemoveGalleryImage deletes a gallery image by storage key (admin only)
func (h *ProductHandler) RemoveGalleryImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req removeGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.RemoveGalleryImage(c.Request.Context(), id, req.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// openImageFile extracts the multipart "image" field, enforcing the size cap.
// Writes the error response itself when the upload is unusable.
func (h *BaseHandler) openImageFile(c *gin.Context) (*multipart.FileHeader, multipart.File, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return nil, nil, false
	}
	if fileHeader.Size > maxImageSize {
		h.BadRequest(c, "Image exceeds maximum allowed size")
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read image file")
		return nil, nil, false
	}
	return fileHeader, file, true
}

func imageContentType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
