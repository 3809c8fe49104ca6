package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vibeburger/pos-api/internal/application/service"
	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/request"
	"github.com/vibeburger/pos-api/internal/presentation/http/dto/response"
	"github.com/vibeburger/pos-api/pkg/apperror"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// outOfStockDetails is the machine-readable payload for a 422 shortage
// response, so the terminal can highlight the offending cart lines.
type outOfStockDetails struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Needed         decimal.Decimal `json:"needed"`
	Available      decimal.Decimal `json:"available"`
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid checkout payload")
		return
	}

	cart := entity.NewCart()
	for _, line := range req.Lines {
		cart.AddLine(line.ProductID, line.Quantity)
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), *userID, cart)
	if err != nil {
		response.Error(c, mapCheckoutError(err))
		return
	}

	response.Created(c, "Checkout completed", sale)
}

// mapCheckoutError translates checkout failures into HTTP error responses.
// Every failure mode gets a distinct, actionable message; shortages carry a
// structured details payload.
func mapCheckoutError(err error) error {
	var outOfStock *repository.OutOfStockError
	if errors.As(err, &outOfStock) {
		return apperror.NewUnprocessableError(outOfStock.Error(), outOfStockDetails{
			IngredientID:   outOfStock.IngredientID.String(),
			IngredientName: outOfStock.Name,
			Needed:         outOfStock.Needed,
			Available:      outOfStock.Available,
		})
	}

	var unknownProduct *service.UnknownProductError
	if errors.As(err, &unknownProduct) {
		return apperror.NewBadRequestError(unknownProduct.Error())
	}

	var notFound *repository.IngredientNotFoundError
	if errors.As(err, &notFound) {
		return apperror.NewUnprocessableError(notFound.Error(), nil)
	}

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return apperror.NewBadRequestError("Cart is empty")
	case errors.Is(err, service.ErrConflictExhausted):
		return apperror.NewConflictError("Stock is contended, please retry the checkout")
	case errors.Is(err, service.ErrLedgerUnavailable):
		return apperror.NewAppError(http.StatusServiceUnavailable, "Stock service temporarily unavailable, please retry")
	}

	return err
}
