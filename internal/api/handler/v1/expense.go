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
	"github.com/centerthink/centerthink-api/internal/repository"
	"github.com/centerthink/centerthink-api/internal/service"
)

// maxAttachmentSize caps a single uploaded file at 10 MB.
const maxAttachmentSize = 10 << 20

type ExpenseService interface {
	Create(ctx context.Context, req domain.ExpenseRequest) (domain.ExpenseRequest, error)
	Get(ctx context.Context, id uint) (domain.ExpenseRequest, error)
	List(ctx context.Context, filter repository.ExpenseRequestFilter, sortSpec string, limit int) ([]domain.ExpenseRequest, error)
	Update(ctx context.Context, req domain.ExpenseRequest) (domain.ExpenseRequest, error)
	Delete(ctx context.Context, id uint) error
	AddAttachments(ctx context.Context, id uint, uploads []service.Upload) (domain.ExpenseRequest, error)
	RemoveAttachment(ctx context.Context, id uint, path string) (domain.ExpenseRequest, error)
	RefreshAttachmentURLs(ctx context.Context, id uint) (domain.ExpenseRequest, error)
}

type ExpenseHandler struct {
	svc ExpenseService
}

func NewExpenseHandler(svc ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		svc: svc,
	}
}

// HandleCreateExpenseRequest godoc
// @Summary      Create an expense request
// @Tags         expense-requests
// @Produce      json
// @Param        request   body      request.ExpenseRequestPayload true "request body"
// @Success      201      {object}   domain.ExpenseRequest
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /expense-requests [post]
func (h *ExpenseHandler) HandleCreateExpenseRequest(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.ExpenseRequestPayload{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), domain.ExpenseRequest{
		RequestName:     req.RequestName,
		Email:           req.Email,
		RequestType:     domain.ExpenseType(req.RequestType),
		EstimatedAmount: req.EstimatedAmount,
		IBAN:            req.IBAN,
		ShippingAddress: req.ShippingAddress,
		AdditionalInfo:  req.AdditionalInfo,
		Status:          domain.ExpenseStatus(req.Status),
		CityID:          req.CityID,
		CreatedBy:       userID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateExpenseRequest -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetExpenseRequest godoc
// @Summary      Get an expense request by ID, with fresh attachment URLs
// @Tags         expense-requests
// @Produce      json
// @Param        requestID path      int true "expense request ID"
// @Success      200       {object}  domain.ExpenseRequest
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /expense-requests/{requestID} [get]
func (h *ExpenseHandler) HandleGetExpenseRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	expense, err := h.svc.RefreshAttachmentURLs(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetExpenseRequest -> h.svc.RefreshAttachmentURLs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, expense)
}

// HandleListExpenseRequests godoc
// @Summary      List expense requests
// @Tags         expense-requests
// @Produce      json
// @Param        city_id  query      int    false "city ID"
// @Param        status   query      string false "status"
// @Param        type     query      string false "request type"
// @Success      200 {array}  domain.ExpenseRequest
// @Failure      500 {object} response.Err
// @Router       /expense-requests [get]
func (h *ExpenseHandler) HandleListExpenseRequests(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)

	filter := repository.ExpenseRequestFilter{
		CityID:      parseUintQuery(ctx, "city_id"),
		Status:      domain.ExpenseStatus(ctx.Query("status")),
		RequestType: domain.ExpenseType(ctx.Query("type")),
	}

	expenses, err := h.svc.List(ctx.Request.Context(), filter, sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListExpenseRequests -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, expenses)
}

// HandleUpdateExpenseRequest godoc
// @Summary      Update an expense request
// @Tags         expense-requests
// @Produce      json
// @Param        requestID path      int true "expense request ID"
// @Param        request   body      request.ExpenseRequestPayload true "request body"
// @Success      200       {object}  domain.ExpenseRequest
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /expense-requests/{requestID} [put]
func (h *ExpenseHandler) HandleUpdateExpenseRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ExpenseRequestPayload{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	existing, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateExpenseRequest -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	status := domain.ExpenseStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	updated, err := h.svc.Update(ctx.Request.Context(), domain.ExpenseRequest{
		ID:              id,
		RequestName:     req.RequestName,
		Email:           req.Email,
		RequestType:     domain.ExpenseType(req.RequestType),
		EstimatedAmount: req.EstimatedAmount,
		IBAN:            req.IBAN,
		ShippingAddress: req.ShippingAddress,
		AdditionalInfo:  req.AdditionalInfo,
		Attachments:     existing.Attachments,
		Status:          status,
		CityID:          req.CityID,
		CreatedBy:       existing.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrExpenseRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateExpenseRequest -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteExpenseRequest godoc
// @Summary      Delete an expense request
// @Tags         expense-requests
// @Produce      json
// @Param        requestID path      int true "expense request ID"
// @Success      204
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /expense-requests/{requestID} [delete]
func (h *ExpenseHandler) HandleDeleteExpenseRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrExpenseRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteExpenseRequest -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadAttachments godoc
// @Summary      Upload attachments to an expense request
// @Tags         expense-requests
// @Accept       multipart/form-data
// @Produce      json
// @Param        requestID path      int  true "expense request ID"
// @Param        files     formData  file true "files"
// @Success      200       {object}  domain.ExpenseRequest
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /expense-requests/{requestID}/attachments [post]
func (h *ExpenseHandler) HandleUploadAttachments(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("no files in request")))

		return
	}

	uploads := make([]service.Upload, 0, len(files))
	for _, file := range files {
		if file.Size > maxAttachmentSize {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("file %v exceeds the size limit", file.Filename)))

			return
		}

		f, err := file.Open()
		if err != nil {
			err = fmt.Errorf("v1.HandleUploadAttachments -> file.Open -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}
		defer f.Close()

		uploads = append(uploads, service.Upload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
			Reader:      f,
		})
	}

	expense, err := h.svc.AddAttachments(ctx.Request.Context(), id, uploads)
	if err != nil {
		if errors.Is(err, service.ErrExpenseRequestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUploadAttachments -> h.svc.AddAttachments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, expense)
}

// HandleRemoveAttachment godoc
// @Summary      Remove an attachment from an expense request
// @Tags         expense-requests
// @Produce      json
// @Param        requestID path      int true "expense request ID"
// @Param        request   body      request.RemoveAttachmentRequest true "request body"
// @Success      200       {object}  domain.ExpenseRequest
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /expense-requests/{requestID}/attachments [delete]
func (h *ExpenseHandler) HandleRemoveAttachment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "requestID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.RemoveAttachmentRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	expense, err := h.svc.RemoveAttachment(ctx.Request.Context(), id, req.Path)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseRequestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("expense request", "ID", id))
		case errors.Is(err, service.ErrAttachmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("attachment", "path", req.Path))
		default:
			err = fmt.Errorf("v1.HandleRemoveAttachment -> h.svc.RemoveAttachment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, expense)
}
