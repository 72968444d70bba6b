package handler

import (
	catalogapp "github.com/gasdepot/backend/internal/application/catalog"
	"github.com/gasdepot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	service *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *catalogapp.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateProductRequest is the HTTP request body for creating a product
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required,max=64"`
	Name          string           `json:"name" binding:"required,max=200"`
	Description   string           `json:"description" binding:"omitempty,max=2000"`
	UnitOfMeasure string           `json:"unit_of_measure" binding:"required,oneof=cylinder kg"`
	CapacityKg    *decimal.Decimal `json:"capacity_kg"`
	TareWeightKg  *decimal.Decimal `json:"tare_weight_kg"`
	ValveType     string           `json:"valve_type" binding:"omitempty,max=50"`
	BarcodeUID    string           `json:"barcode_uid" binding:"omitempty,max=64"`
}

// UpdateProductRequest is the HTTP request body for updating a product
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" binding:"omitempty,max=64"`
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	UnitOfMeasure *string          `json:"unit_of_measure" binding:"omitempty,oneof=cylinder kg"`
	CapacityKg    *decimal.Decimal `json:"capacity_kg"`
	TareWeightKg  *decimal.Decimal `json:"tare_weight_kg"`
	ValveType     *string          `json:"valve_type" binding:"omitempty,max=50"`
	BarcodeUID    *string          `json:"barcode_uid" binding:"omitempty,max=64"`
}

// ListProductsRequest binds product listing query parameters
type ListProductsRequest struct {
	dto.ListRequest
	Search        string `form:"search" binding:"omitempty,max=100"`
	Status        string `form:"status" binding:"omitempty,oneof=active end_of_sale obsolete"`
	UnitOfMeasure string `form:"unit_of_measure" binding:"omitempty,oneof=cylinder kg"`
	ShowObsolete  bool   `form:"show_obsolete"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=created_at sku name status capacity_kg"`
	SortOrder     string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// BulkSetStatusRequest is the HTTP request body for bulk status changes
type BulkSetStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,max=500"`
	Status string   `json:"status" binding:"required,oneof=active end_of_sale obsolete"`
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), catalogapp.CreateProductRequest{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		CapacityKg:    req.CapacityKg,
		TareWeightKg:  req.TareWeightKg,
		ValveType:     req.ValveType,
		BarcodeUID:    req.BarcodeUID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), catalogapp.ProductListFilter{
		Search:        req.Search,
		Status:        req.Status,
		UnitOfMeasure: req.UnitOfMeasure,
		ShowObsolete:  req.ShowObsolete,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
		Page:          req.Page,
		Limit:         req.Limit,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, dto.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), productID, catalogapp.UpdateProductRequest{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		CapacityKg:    req.CapacityKg,
		TareWeightKg:  req.TareWeightKg,
		ValveType:     req.ValveType,
		BarcodeUID:    req.BarcodeUID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// MarkObsolete handles POST /products/:id/mark-obsolete
func (h *ProductHandler) MarkObsolete(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.service.MarkObsolete(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Reactivate handles POST /products/:id/reactivate
func (h *ProductHandler) Reactivate(c *gin.Context) {
	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	product, err := h.service.Reactivate(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// BulkSetStatus handles POST /products/bulk-status
func (h *ProductHandler) BulkSetStatus(c *gin.Context) {
	var req BulkSetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.BulkSetStatus(c.Request.Context(), catalogapp.BulkSetStatusRequest{
		IDs:    req.IDs,
		Status: req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Stats handles GET /products/stats
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

func (h *ProductHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid product id")
		return uuid.Nil, false
	}
	productID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid product id")
		return uuid.Nil, false
	}
	return productID, true
}
