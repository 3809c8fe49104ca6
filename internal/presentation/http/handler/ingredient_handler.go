package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibeburger/pos-api/internal/application/service"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/request"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/response"
	"github.com/vibeburger/pos-api/pkg/pagination"
)

// IngredientHandler handles ingredient and stock HTTP requests
type IngredientHandler struct {
	catalogService   *service.CatalogService
	inventoryService *service.InventoryService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(
	catalogService *service.CatalogService,
	inventoryService *service.InventoryService,
) *IngredientHandler {
	return &IngredientHandler{
		catalogService:   catalogService,
		inventoryService: inventoryService,
	}
}

// List handles listing ingredients with stock status
func (h *IngredientHandler) List(c *gin.Context) {
	var filter request.IngredientFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.IngredientFilterParams{
		Search:   filter.Search,
		LowStock: filter.LowStock,
		Pagination: pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	levels, total, err := h.inventoryService.ListStockLevels(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(levels,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, http.StatusOK, "Ingredients retrieved", result)
}

// Get handles retrieving an ingredient by ID
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ingredient, err := h.catalogService.GetIngredientByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient retrieved", ingredient)
}

// Create handles ingredient creation
func (h *IngredientHandler) Create(c *gin.Context) {
	var req request.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid ingredient payload")
		return
	}

	input := &service.CreateIngredientInput{
		Name:              req.Name,
		Unit:              req.Unit,
		InitialStock:      req.InitialStock,
		LowStockThreshold: req.LowStockThreshold,
		Cost:              req.Cost,
	}

	ingredient, err := h.catalogService.CreateIngredient(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ingredient created", ingredient)
}

// Update handles ingredient catalog updates
func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req request.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid ingredient payload")
		return
	}

	input := &service.UpdateIngredientInput{
		Name:              req.Name,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
		Cost:              req.Cost,
	}

	ingredient, err := h.catalogService.UpdateIngredient(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient updated", ingredient)
}

// Delete handles ingredient deletion
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	if err := h.catalogService.DeleteIngredient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ReceiveStock handles POST /ingredients/:id/receive
func (h *IngredientHandler) ReceiveStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req request.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid stock payload")
		return
	}

	ingredient, err := h.inventoryService.ReceiveStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock received", ingredient)
}

// AdjustStock handles POST /ingredients/:id/adjust
func (h *IngredientHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid stock payload")
		return
	}

	ingredient, err := h.inventoryService.AdjustStock(c.Request.Context(), id, req.CountedQuantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted", ingredient)
}
