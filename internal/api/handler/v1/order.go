package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centerthink/centerthink-api/internal/api/handler/v1/request"
	"github.com/centerthink/centerthink-api/internal/api/handler/v1/response"
	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/service"
)

type OrderService interface {
	CreateType(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error)
	GetType(ctx context.Context, id uint) (domain.OrderType, error)
	ListTypes(ctx context.Context, sortSpec string, limit int) ([]domain.OrderType, error)
	UpdateType(ctx context.Context, orderType domain.OrderType) (domain.OrderType, error)
	DeleteType(ctx context.Context, id uint) error
	CreateOrder(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error)
	GetOrder(ctx context.Context, id uint) (domain.EventOrder, error)
	ListOrders(ctx context.Context, eventID uint, sortSpec string, limit int) ([]domain.EventOrder, error)
	UpdateOrder(ctx context.Context, order domain.EventOrder) (domain.EventOrder, error)
	DeleteOrder(ctx context.Context, id uint) error
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrderType godoc
// @Summary      Create an order type
// @Tags         orders
// @Produce      json
// @Param        request   body      request.OrderTypeRequest true "request body"
// @Success      201      {object}   domain.OrderType
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /order-types [post]
func (h *OrderHandler) HandleCreateOrderType(ctx *gin.Context) {
	req := request.OrderTypeRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	orderType, err := h.svc.CreateType(ctx.Request.Context(), domain.OrderType{
		Name:        req.Name,
		Description: req.Description,
		Priority:    domain.OrderPriority(req.Priority),
		Active:      active,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateOrderType -> h.svc.CreateType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, orderType)
}

// HandleListOrderTypes godoc
// @Summary      List order types
// @Tags         orders
// @Produce      json
// @Success      200 {array}  domain.OrderType
// @Failure      500 {object} response.Err
// @Router       /order-types [get]
func (h *OrderHandler) HandleListOrderTypes(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)

	orderTypes, err := h.svc.ListTypes(ctx.Request.Context(), sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListOrderTypes -> h.svc.ListTypes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, orderTypes)
}

// HandleUpdateOrderType godoc
// @Summary      Update an order type
// @Tags         orders
// @Produce      json
// @Param        orderTypeID path     int true "order type ID"
// @Param        request     body     request.OrderTypeRequest true "request body"
// @Success      200         {object} domain.OrderType
// @Failure      400         {object} response.Err
// @Failure      404         {object} response.Err
// @Failure      500         {object} response.Err
// @Router       /order-types/{orderTypeID} [put]
func (h *OrderHandler) HandleUpdateOrderType(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderTypeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.OrderTypeRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	orderType, err := h.svc.UpdateType(ctx.Request.Context(), domain.OrderType{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Priority:    domain.OrderPriority(req.Priority),
		Active:      active,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderTypeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order type", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrderType -> h.svc.UpdateType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, orderType)
}

// HandleDeleteOrderType godoc
// @Summary      Delete an order type
// @Tags         orders
// @Produce      json
// @Param        orderTypeID path     int true "order type ID"
// @Success      204
// @Failure      404         {object} response.Err
// @Failure      500         {object} response.Err
// @Router       /order-types/{orderTypeID} [delete]
func (h *OrderHandler) HandleDeleteOrderType(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderTypeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteType(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderTypeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order type", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrderType -> h.svc.DeleteType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateOrder godoc
// @Summary      Create an event order
// @Tags         orders
// @Produce      json
// @Param        request   body      request.CreateEventOrderRequest true "request body"
// @Success      201      {object}   domain.EventOrder
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	req := request.CreateEventOrderRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), domain.EventOrder{
		EventID:       req.EventID,
		OrderTypeID:   req.OrderTypeID,
		ResponsibleID: req.ResponsibleID,
		Status:        domain.OrderStatus(req.Status),
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) || errors.Is(err, service.ErrOrderTypeNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrder godoc
// @Summary      Get an event order by ID
// @Tags         orders
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Success      200      {object}   domain.EventOrder
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleListOrders godoc
// @Summary      List event orders, optionally scoped to an event
// @Tags         orders
// @Produce      json
// @Param        event_id query      int false "event ID"
// @Success      200 {array}  domain.EventOrder
// @Failure      500 {object} response.Err
// @Router       /orders [get]
func (h *OrderHandler) HandleListOrders(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)
	eventID := parseUintQuery(ctx, "event_id")

	orders, err := h.svc.ListOrders(ctx.Request.Context(), eventID, sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListOrders -> h.svc.ListOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleUpdateOrder godoc
// @Summary      Update an event order
// @Tags         orders
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Param        request  body       request.UpdateEventOrderRequest true "request body"
// @Success      200      {object}   domain.EventOrder
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [put]
func (h *OrderHandler) HandleUpdateOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateEventOrderRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	existing, err := h.svc.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	order, err := h.svc.UpdateOrder(ctx.Request.Context(), domain.EventOrder{
		ID:              id,
		EventID:         existing.EventID,
		OrderTypeID:     req.OrderTypeID,
		ResponsibleID:   req.ResponsibleID,
		Status:          domain.OrderStatus(req.Status),
		DueDate:         req.DueDate,
		Notes:           req.Notes,
		CompletionNotes: req.CompletionNotes,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrder -> h.svc.UpdateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleDeleteOrder godoc
// @Summary      Delete an event order
// @Tags         orders
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [delete]
func (h *OrderHandler) HandleDeleteOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteOrder(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrder -> h.svc.DeleteOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
