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

type VenueService interface {
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	Get(ctx context.Context, id uint) (domain.Venue, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.Venue, error)
	Update(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	Delete(ctx context.Context, id uint) error
}

type VenueHandler struct {
	svc VenueService
}

func NewVenueHandler(svc VenueService) *VenueHandler {
	return &VenueHandler{
		svc: svc,
	}
}

func venueFromRequest(req request.VenueRequest) domain.Venue {
	venue := domain.Venue{
		Name:         req.Name,
		Address:      req.Address,
		CityID:       req.CityID,
		Capacity:     req.Capacity,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Notes:        req.Notes,
		Active:       true,
	}

	if req.Active != nil {
		venue.Active = *req.Active
	}

	return venue
}

// HandleCreateVenue godoc
// @Summary      Create a venue
// @Tags         venues
// @Produce      json
// @Param        request   body      request.VenueRequest true "request body"
// @Success      201      {object}   domain.Venue
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /venues [post]
func (h *VenueHandler) HandleCreateVenue(ctx *gin.Context) {
	req := request.VenueRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	venue, err := h.svc.Create(ctx.Request.Context(), venueFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateVenue -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, venue)
}

// HandleGetVenue godoc
// @Summary      Get a venue by ID
// @Tags         venues
// @Produce      json
// @Param        venueID  path       int true "venue ID"
// @Success      200      {object}   domain.Venue
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /venues/{venueID} [get]
func (h *VenueHandler) HandleGetVenue(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "venueID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	venue, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetVenue -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// HandleListVenues godoc
// @Summary      List venues
// @Tags         venues
// @Produce      json
// @Success      200 {array}  domain.Venue
// @Failure      500 {object} response.Err
// @Router       /venues [get]
func (h *VenueHandler) HandleListVenues(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)

	venues, err := h.svc.List(ctx.Request.Context(), sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListVenues -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// HandleUpdateVenue godoc
// @Summary      Update a venue
// @Tags         venues
// @Produce      json
// @Param        venueID  path       int true "venue ID"
// @Param        request  body       request.VenueRequest true "request body"
// @Success      200      {object}   domain.Venue
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /venues/{venueID} [put]
func (h *VenueHandler) HandleUpdateVenue(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "venueID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.VenueRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	venue := venueFromRequest(req)
	venue.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), venue)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateVenue -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteVenue godoc
// @Summary      Delete a venue
// @Tags         venues
// @Produce      json
// @Param        venueID  path       int true "venue ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /venues/{venueID} [delete]
func (h *VenueHandler) HandleDeleteVenue(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "venueID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteVenue -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
