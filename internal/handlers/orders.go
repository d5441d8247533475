package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"ppf-order-backend/internal/models"
	"ppf-order-backend/internal/services"
)

// multipartMemory is how much of a form gin keeps in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

// formOverhead allows room for the text fields on top of the photo limit.
const formOverhead = 1 << 20

type OrderService interface {
	List() ([]models.Order, error)
	Get(id string) (*models.Order, error)
	Create(input models.NewOrder, photo *services.Photo) (*models.Order, error)
	Update(id string, patch models.OrderPatch) (*models.Order, error)
	Delete(id string) error
}

type OrdersHandler struct {
	orders        OrderService
	maxPhotoBytes int64
	logger        *log.Entry
}

func NewOrdersHandler(orders OrderService, maxPhotoBytes int64) *OrdersHandler {
	return &OrdersHandler{
		orders:        orders,
		maxPhotoBytes: maxPhotoBytes,
		logger:        log.WithField("component", "orders_handler"),
	}
}

// CreateOrder godoc
// @Summary     Submit a new order
// @Description Customer-facing. Accepts the order form with an optional vehicle photo. New orders always start as pending.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       package          formData string true  "Package level"
// @Param       vehicle[year]    formData string false "Vehicle year"
// @Param       vehicle[make]    formData string true  "Vehicle make"
// @Param       vehicle[model]   formData string true  "Vehicle model"
// @Param       vehicle[trim]    formData string false "Vehicle trim"
// @Param       customer[name]   formData string true  "Customer name"
// @Param       customer[email]  formData string false "Customer email"
// @Param       customer[phone]  formData string false "Customer phone"
// @Param       jobRequest       formData string false "Notes"
// @Param       photo            formData file   false "Vehicle photo"
// @Success     201 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPhotoBytes+formOverhead)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Photo is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid form body", Message: err.Error()})
		return
	}

	form := models.CreateOrderForm{
		Package:       c.PostForm("package"),
		VehicleYear:   c.PostForm("vehicle[year]"),
		VehicleMake:   c.PostForm("vehicle[make]"),
		VehicleModel:  c.PostForm("vehicle[model]"),
		VehicleTrim:   c.PostForm("vehicle[trim]"),
		CustomerName:  c.PostForm("customer[name]"),
		CustomerEmail: c.PostForm("customer[email]"),
		CustomerPhone: c.PostForm("customer[phone]"),
		JobRequest:    c.PostForm("jobRequest"),
	}
	if err := form.Validate(); err != nil {
		h.writeError(c, err)
		return
	}

	photo, err := h.readPhoto(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	order, err := h.orders.Create(form.NewOrder(), photo)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

var errPhotoTooLarge = errors.New("photo too large")

// readPhoto returns nil when the form carries no photo.
func (h *OrdersHandler) readPhoto(c *gin.Context) (*services.Photo, error) {
	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewValidationError("Invalid photo")
	}
	if header.Size > h.maxPhotoBytes {
		return nil, errPhotoTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, models.NewValidationError("Invalid photo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, models.NewValidationError("Invalid photo")
	}

	return &services.Photo{
		Data:        data,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// ListOrders godoc
// @Summary     List all orders
// @Description Returns every order, newest first
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Success     200 {array}  models.Order
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List()
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary     Get an order
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder godoc
// @Summary     Update an order
// @Description Applies any subset of order fields in the nested shape. Omitted fields are left as they are; id and createdAt are ignored.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string            true "Order ID (UUID)"
// @Param       request body models.OrderPatch true "Fields to change"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{id} [put]
func (h *OrdersHandler) UpdateOrder(c *gin.Context) {
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	order, err := h.orders.Update(c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary     Delete an order
// @Description Deletes an order. Its photo is removed from storage best-effort first.
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Order ID (UUID)"
// @Success     200 {object} models.SuccessResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{id} [delete]
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *OrdersHandler) writeError(c *gin.Context, err error) {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.Message})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order not found"})
	case errors.Is(err, errPhotoTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Photo is too large"})
	case errors.Is(err, models.ErrUpload):
		h.logger.WithError(err).Error("photo upload failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to upload photo"})
	default:
		h.logger.WithError(err).Error("order operation failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}
}
