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

type SpeakerService interface {
	Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	Get(ctx context.Context, id uint) (domain.Speaker, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.Speaker, error)
	Update(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	Delete(ctx context.Context, id uint) error
}

type SpeakerHandler struct {
	svc SpeakerService
}

func NewSpeakerHandler(svc SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{
		svc: svc,
	}
}

func speakerFromRequest(req request.SpeakerRequest) domain.Speaker {
	speaker := domain.Speaker{
		Name:                     req.Name,
		Email:                    req.Email,
		Phone:                    req.Phone,
		SocialHandle:             req.SocialHandle,
		Bio:                      req.Bio,
		ContactStatus:            domain.ContactStatus(req.ContactStatus),
		ProposalStatus:           domain.ProposalStatus(req.ProposalStatus),
		ProposalConfirmationDate: req.ProposalConfirmationDate,
		Active:                   true,
	}

	if speaker.ContactStatus == "" {
		speaker.ContactStatus = domain.ContactNotContacted
	}
	if speaker.ProposalStatus == "" {
		speaker.ProposalStatus = domain.ProposalNone
	}
	if req.Active != nil {
		speaker.Active = *req.Active
	}

	return speaker
}

// HandleCreateSpeaker godoc
// @Summary      Create a speaker
// @Tags         speakers
// @Produce      json
// @Param        request   body      request.SpeakerRequest true "request body"
// @Success      201      {object}   domain.Speaker
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /speakers [post]
func (h *SpeakerHandler) HandleCreateSpeaker(ctx *gin.Context) {
	req := request.SpeakerRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	speaker, err := h.svc.Create(ctx.Request.Context(), speakerFromRequest(req))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSpeaker -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, speaker)
}

// HandleGetSpeaker godoc
// @Summary      Get a speaker by ID
// @Tags         speakers
// @Produce      json
// @Param        speakerID path       int true "speaker ID"
// @Success      200       {object}   domain.Speaker
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /speakers/{speakerID} [get]
func (h *SpeakerHandler) HandleGetSpeaker(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "speakerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	speaker, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("speaker", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetSpeaker -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, speaker)
}

// HandleListSpeakers godoc
// @Summary      List speakers
// @Tags         speakers
// @Produce      json
// @Success      200 {array}  domain.Speaker
// @Failure      500 {object} response.Err
// @Router       /speakers [get]
func (h *SpeakerHandler) HandleListSpeakers(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)

	speakers, err := h.svc.List(ctx.Request.Context(), sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSpeakers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, speakers)
}

// HandleUpdateSpeaker godoc
// @Summary      Update a speaker
// @Tags         speakers
// @Produce      json
// @Param        speakerID path       int true "speaker ID"
// @Param        request   body       request.SpeakerRequest true "request body"
// @Success      200       {object}   domain.Speaker
// @Failure      400       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /speakers/{speakerID} [put]
func (h *SpeakerHandler) HandleUpdateSpeaker(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "speakerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SpeakerRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	speaker := speakerFromRequest(req)
	speaker.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), speaker)
	if err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("speaker", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateSpeaker -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSpeaker godoc
// @Summary      Delete a speaker
// @Tags         speakers
// @Produce      json
// @Param        speakerID path       int true "speaker ID"
// @Success      204
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /speakers/{speakerID} [delete]
func (h *SpeakerHandler) HandleDeleteSpeaker(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "speakerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("speaker", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteSpeaker -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
