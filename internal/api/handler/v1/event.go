package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centerthink/centerthink-api/internal/api/handler/v1/request"
	"github.com/centerthink/centerthink-api/internal/api/handler/v1/response"
	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/service"
)

type EventService interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Get(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	ConfirmAttendance(ctx context.Context, eventID, userID uint, arrivalTime string) (domain.Event, error)
	CancelAttendance(ctx context.Context, eventID, userID uint) (domain.Event, error)
	Calendar(ctx context.Context, cityID uint, startYear int) ([]service.CalendarMonth, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

func eventFromRequest(req request.EventRequest) domain.Event {
	event := domain.Event{
		Description:  req.Description,
		CityID:       req.CityID,
		Date:         req.Date,
		SpeakerID:    req.SpeakerID,
		VenueID:      req.VenueID,
		Status:       domain.EventStatus(req.Status),
		MaxAttendees: req.MaxAttendees,
		Notes:        req.Notes,
	}

	if req.Preparations != nil {
		event.Preparations = *req.Preparations
	}

	return event
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request   body      request.EventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	req := request.EventRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), eventFromRequest(req))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path       int true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListEvents godoc
// @Summary      List events, optionally scoped to a city
// @Tags         events
// @Produce      json
// @Param        city_id  query      int false "city ID"
// @Success      200 {array}  domain.Event
// @Failure      500 {object} response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)
	cityID := parseUintQuery(ctx, "city_id")

	events, err := h.svc.List(ctx.Request.Context(), cityID, sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int true "event ID"
// @Param        request  body       request.EventRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.EventRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// The volunteer list is not editable through this endpoint, so carry it
	// over from the stored event.
	existing, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	event := eventFromRequest(req)
	event.ID = id
	event.Volunteers = existing.Volunteers
	if req.Preparations == nil {
		event.Preparations = existing.Preparations
	}
	if event.Status == "" {
		event.Status = existing.Status
	}

	updated, err := h.svc.Update(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int true "event ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleConfirmAttendance godoc
// @Summary      Confirm attendance as a volunteer
// @Tags         events
// @Produce      json
// @Param        eventID  path       int true "event ID"
// @Param        request  body       request.ConfirmAttendanceRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/attendance [post]
func (h *EventHandler) HandleConfirmAttendance(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ConfirmAttendanceRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.ConfirmAttendance(ctx.Request.Context(), id, userID, req.ArrivalTime)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleConfirmAttendance -> h.svc.ConfirmAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCancelAttendance godoc
// @Summary      Cancel a volunteer attendance
// @Tags         events
// @Produce      json
// @Param        eventID  path       int true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/attendance [delete]
func (h *EventHandler) HandleCancelAttendance(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CancelAttendance(ctx.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleCancelAttendance -> h.svc.CancelAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCalendar godoc
// @Summary      Get the academic-year calendar
// @Tags         events
// @Produce      json
// @Param        year     query      int false "academic year start (defaults to the current one)"
// @Param        city_id  query      int false "city ID"
// @Success      200 {array}  service.CalendarMonth
// @Failure      500 {object} response.Err
// @Router       /events/calendar [get]
func (h *EventHandler) HandleCalendar(ctx *gin.Context) {
	cityID := parseUintQuery(ctx, "city_id")

	startYear := domain.AcademicYearStart(time.Now())
	if raw := ctx.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("year must be an integer")))

			return
		}
		startYear = parsed
	}

	months, err := h.svc.Calendar(ctx.Request.Context(), cityID, startYear)
	if err != nil {
		err = fmt.Errorf("v1.HandleCalendar -> h.svc.Calendar -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, months)
}
