package handler

import (
	partnerapp "github.com/gasdepot/backend/internal/application/partner"
	"github.com/gasdepot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	service *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *partnerapp.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateCustomerRequest is the HTTP request body for creating a customer
type CreateCustomerRequest struct {
	Code            string `json:"code" binding:"required,max=32"`
	Name            string `json:"name" binding:"required,max=200"`
	TaxID           string `json:"tax_id" binding:"omitempty,max=32"`
	ContactName     string `json:"contact_name" binding:"omitempty,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=32"`
	Email           string `json:"email" binding:"omitempty,email"`
	CreditTermsDays *int   `json:"credit_terms_days" binding:"omitempty,min=0,max=365"`
	Notes           string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateCustomerRequest is the HTTP request body for updating a customer
type UpdateCustomerRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=200"`
	TaxID           *string `json:"tax_id" binding:"omitempty,max=32"`
	ContactName     *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone           *string `json:"phone" binding:"omitempty,max=32"`
	Email           *string `json:"email" binding:"omitempty,email"`
	AccountStatus   *string `json:"account_status" binding:"omitempty,oneof=active credit_hold closed"`
	CreditTermsDays *int    `json:"credit_terms_days" binding:"omitempty,min=0,max=365"`
	Notes           *string `json:"notes" binding:"omitempty,max=2000"`
}

// ListCustomersRequest binds customer listing query parameters
type ListCustomersRequest struct {
	dto.ListRequest
	Search        string `form:"search" binding:"omitempty,max=100"`
	AccountStatus string `form:"account_status" binding:"omitempty,oneof=active credit_hold closed"`
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.service.Create(c.Request.Context(), partnerapp.CreateCustomerRequest{
		Code:            req.Code,
		Name:            req.Name,
		TaxID:           req.TaxID,
		ContactName:     req.ContactName,
		Phone:           req.Phone,
		Email:           req.Email,
		CreditTermsDays: req.CreditTermsDays,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}
	customerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// GetByCode handles GET /customers/code/:code
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "customer code is required")
		return
	}

	customer, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), partnerapp.CustomerListFilter{
		Search:        req.Search,
		AccountStatus: req.AccountStatus,
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

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}
	customerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.service.Update(c.Request.Context(), customerID, partnerapp.UpdateCustomerRequest{
		Name:            req.Name,
		TaxID:           req.TaxID,
		ContactName:     req.ContactName,
		Phone:           req.Phone,
		Email:           req.Email,
		AccountStatus:   req.AccountStatus,
		CreditTermsDays: req.CreditTermsDays,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}
	customerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
