package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fitstream/internal/middleware"
	"fitstream/internal/repositories"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// ListPayments returns the user's payment history, newest first
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	uow := repositories.NewUnitOfWork(h.db)
	payments, err := uow.PaymentTransactions().GetTransactionsByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payments)
}
