package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"admindash/internal/auth"
	"admindash/internal/errors"
	"admindash/internal/model"
	"admindash/internal/service"
)

// CustomerHandler handles customer CRUD endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
	log             *zap.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, log: log}
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// List godoc
// @Summary List customers, newest first
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Customer
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c echo.Context, _ *auth.Identity) error {
	customers, err := h.customerService.List(c.Request().Context())
	if err != nil {
		return handleError(err)
	}
	return c.JSON(http.StatusOK, customers)
}

// Create godoc
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body model.CustomerInput true "Customer payload"
// @Success 201 {object} model.Customer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c echo.Context, admin *auth.Identity) error {
	var input model.CustomerInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	customer, err := h.customerService.Create(c.Request().Context(), input)
	if err != nil {
		return handleError(err)
	}

	h.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("admin_id", admin.ID.String()),
	)
	return c.JSON(http.StatusCreated, customer)
}

// Update godoc
// @Summary Update customer
// @Description Only the provided fields are changed.
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param customer body model.CustomerPatch true "Fields to change"
// @Success 200 {object} model.Customer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context, admin *auth.Identity) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var patch model.CustomerPatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	customer, err := h.customerService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return handleError(err)
	}

	h.log.Info("customer updated",
		zap.String("customer_id", id.String()),
		zap.String("admin_id", admin.ID.String()),
	)
	return c.JSON(http.StatusOK, customer)
}

// Delete godoc
// @Summary Delete customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context, admin *auth.Identity) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		return handleError(err)
	}

	h.log.Info("customer deleted",
		zap.String("customer_id", id.String()),
		zap.String("admin_id", admin.ID.String()),
	)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Customer deleted successfully"})
}

// customerID parses the :id path parameter. An id that cannot name a
// customer is reported as not found.
func customerID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, handleError(errors.ErrCustomerNotFound)
	}
	return id, nil
}
