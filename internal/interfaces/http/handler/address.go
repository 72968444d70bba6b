package handler

import (
	partnerapp "github.com/gasdepot/backend/internal/application/partner"
	"github.com/gasdepot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddressHandler handles delivery address endpoints
type AddressHandler struct {
	BaseHandler
	service *partnerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service *partnerapp.AddressService, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAddressRequest is the HTTP request body for creating an address
type CreateAddressRequest struct {
	CustomerID   string           `json:"customer_id" binding:"required,uuid"`
	Label        string           `json:"label" binding:"omitempty,max=100"`
	Line1        string           `json:"line1" binding:"required,max=200"`
	Line2        string           `json:"line2" binding:"omitempty,max=200"`
	City         string           `json:"city" binding:"required,max=100"`
	Province     string           `json:"province" binding:"omitempty,max=100"`
	PostalCode   string           `json:"postal_code" binding:"omitempty,max=20"`
	Country      string           `json:"country" binding:"omitempty,max=100"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`
	WindowStart  string           `json:"window_start" binding:"omitempty,hhmm"`
	WindowEnd    string           `json:"window_end" binding:"omitempty,hhmm"`
	IsPrimary    bool             `json:"is_primary"`
	Instructions string           `json:"instructions" binding:"omitempty,max=2000"`
}

// UpdateAddressRequest is the HTTP request body for updating an address
type UpdateAddressRequest struct {
	Label        *string          `json:"label" binding:"omitempty,max=100"`
	Line1        *string          `json:"line1" binding:"omitempty,max=200"`
	Line2        *string          `json:"line2" binding:"omitempty,max=200"`
	City         *string          `json:"city" binding:"omitempty,max=100"`
	Province     *string          `json:"province" binding:"omitempty,max=100"`
	PostalCode   *string          `json:"postal_code" binding:"omitempty,max=20"`
	Country      *string          `json:"country" binding:"omitempty,max=100"`
	Latitude     *decimal.Decimal `json:"latitude"`
	Longitude    *decimal.Decimal `json:"longitude"`
	WindowStart  *string          `json:"window_start" binding:"omitempty,hhmm"`
	WindowEnd    *string          `json:"window_end" binding:"omitempty,hhmm"`
	IsPrimary    *bool            `json:"is_primary"`
	Instructions *string          `json:"instructions" binding:"omitempty,max=2000"`
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	address, err := h.service.Create(c.Request.Context(), partnerapp.CreateAddressRequest{
		CustomerID:   customerID,
		Label:        req.Label,
		Line1:        req.Line1,
		Line2:        req.Line2,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		WindowStart:  req.WindowStart,
		WindowEnd:    req.WindowEnd,
		IsPrimary:    req.IsPrimary,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, address)
}

// Get handles GET /addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	addressID, ok := h.bindID(c)
	if !ok {
		return
	}

	address, err := h.service.GetByID(c.Request.Context(), addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// ListByCustomer handles GET /customers/:id/addresses
func (h *AddressHandler) ListByCustomer(c *gin.Context) {
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

	addresses, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Update handles PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	addressID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.service.Update(c.Request.Context(), addressID, partnerapp.UpdateAddressRequest{
		Label:        req.Label,
		Line1:        req.Line1,
		Line2:        req.Line2,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		WindowStart:  req.WindowStart,
		WindowEnd:    req.WindowEnd,
		IsPrimary:    req.IsPrimary,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// SetPrimary handles POST /addresses/:id/set-primary
func (h *AddressHandler) SetPrimary(c *gin.Context) {
	addressID, ok := h.bindID(c)
	if !ok {
		return
	}

	address, err := h.service.SetPrimary(c.Request.Context(), addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	addressID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *AddressHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid address id")
		return uuid.Nil, false
	}
	addressID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "invalid address id")
		return uuid.Nil, false
	}
	return addressID, true
}
