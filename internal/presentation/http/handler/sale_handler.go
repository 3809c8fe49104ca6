package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibeburger/pos-api/internal/application/service"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/request"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/response"
	"github.com/vibeburger/pos-api/pkg/pagination"
)

// SaleHandler handles sales history HTTP requests
type SaleHandler struct {
	salesService *service.SalesService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(salesService *service.SalesService) *SaleHandler {
	return &SaleHandler{salesService: salesService}
}

// List handles listing sales with date filtering
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	if filter.From != "" {
		from, err := parseDate(filter.From)
		if err != nil {
			response.BadRequest(c, "Invalid 'from' date")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To)
		if err != nil {
			response.BadRequest(c, "Invalid 'to' date")
			return
		}
		params.To = &to
	}

	sales, total, err := h.salesService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved", result)
}

// Get handles retrieving a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.salesService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved", sale)
}

// parseDate accepts RFC 3339 timestamps or plain dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
