package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centerthink/centerthink-api/internal/api/handler/v1/request"
	"github.com/centerthink/centerthink-api/internal/api/handler/v1/response"
	"github.com/centerthink/centerthink-api/internal/service"
)

type WorkspaceService interface {
	Get(ctx context.Context, userID uint) (service.Workspace, error)
	SelectCity(ctx context.Context, userID, cityID uint) (service.Workspace, error)
}

type WorkspaceHandler struct {
	svc WorkspaceService
}

func NewWorkspaceHandler(svc WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		svc: svc,
	}
}

// HandleGetWorkspace godoc
// @Summary      Get the authenticated user's workspace
// @Tags         workspace
// @Produce      json
// @Success      200 {object} service.Workspace
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /me/workspace [get]
func (h *WorkspaceHandler) HandleGetWorkspace(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	workspace, err := h.svc.Get(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))

			return
		}

		err = fmt.Errorf("v1.HandleGetWorkspace -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, workspace)
}

// HandleSelectCity godoc
// @Summary      Select the working city
// @Tags         workspace
// @Produce      json
// @Param        request   body      request.SelectCityRequest true "request body"
// @Success      200      {object}   service.Workspace
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/city [put]
func (h *WorkspaceHandler) HandleSelectCity(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.SelectCityRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	workspace, err := h.svc.SelectCity(ctx.Request.Context(), userID, req.CityID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSelectCity -> h.svc.SelectCity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, workspace)
}
