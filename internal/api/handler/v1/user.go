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

type UserService interface {
	CreateUser(ctx context.Context, caller domain.User, user domain.User) (domain.User, string, error)
	Get(ctx context.Context, caller domain.User, id uint) (domain.User, error)
	List(ctx context.Context, caller domain.User, sortSpec string, limit int) ([]domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.User, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, caller domain.User, id uint) error
	ResetPassword(ctx context.Context, caller domain.User, id uint, newPassword string) error
	VerifyUserEmail(ctx context.Context, caller domain.User, id uint) error
}

// UserHandler is the management surface for user accounts. Authorization is
// re-derived from the authenticated caller's stored profile on every request.
type UserHandler struct {
	svc      UserService
	profiles service.ProfileResolver
}

func NewUserHandler(svc UserService, profiles service.ProfileResolver) *UserHandler {
	return &UserHandler{
		svc:      svc,
		profiles: profiles,
	}
}

func (h *UserHandler) caller(ctx *gin.Context) (domain.User, bool) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return domain.User{}, false
	}

	caller, err := h.profiles.GetCurrentProfile(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.UserHandler.caller -> h.profiles.GetCurrentProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return domain.User{}, false
	}

	return caller, true
}

func renderUserServiceErr(ctx *gin.Context, op string, id uint, err error) {
	var citiesErr *service.CitiesNotAllowedError

	switch {
	case errors.Is(err, service.ErrNotAllowed):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.As(err, &citiesErr):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
	case errors.Is(err, service.ErrUserEmailExists):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrShortPassword),
		errors.Is(err, service.ErrInvalidRole):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleCreateUser godoc
// @Summary      Create a user with a temporary password
// @Tags         users
// @Produce      json
// @Param        request   body      request.CreateUserRequest true "request body"
// @Success      201      {object}   response.CreatedUserResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [post]
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	req := request.CreateUserRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, tempPassword, err := h.svc.CreateUser(ctx.Request.Context(), caller, domain.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Cities:    req.Cities,
		Phone:     req.Phone,
	})
	if err != nil {
		renderUserServiceErr(ctx, "v1.HandleCreateUser -> h.svc.CreateUser", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, response.CreatedUserResponse{
		User:         user,
		TempPassword: tempPassword,
	})
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {array}  domain.User
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /users [get]
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	sortSpec, limit := parseListQuery(ctx)

	users, err := h.svc.List(ctx.Request.Context(), caller, sortSpec, limit)
	if err != nil {
		renderUserServiceErr(ctx, "v1.HandleListUsers -> h.svc.List", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Success      200      {object}   domain.User
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Get(ctx.Request.Context(), caller, id)
	if err != nil {
		renderUserServiceErr(ctx, "v1.HandleGetUser -> h.svc.Get", id, err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateUser godoc
// @Summary      Update a user's profile
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Param        request  body       request.UpdateUserRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [put]
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateUserRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), caller, domain.User{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Cities:    req.Cities,
		Phone:     req.Phone,
	})
	if err != nil {
		renderUserServiceErr(ctx, "v1.HandleUpdateUser -> h.svc.UpdateProfile", id, err)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [delete]
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteUser(ctx.Request.Context(), caller, id); err != nil {
		renderUserServiceErr(ctx, "v1.HandleDeleteUser -> h.svc.DeleteUser", id, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleResetPassword godoc
// @Summary      Reset a user's password, or email a recovery link
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Param        request  body       request.ResetPasswordRequest true "request body"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/reset-password [post]
func (h *UserHandler) HandleResetPassword(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ResetPasswordRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.ResetPassword(ctx.Request.Context(), caller, id, req.Password); err != nil {
		renderUserServiceErr(ctx, "v1.HandleResetPassword -> h.svc.ResetPassword", id, err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleVerifyUserEmail godoc
// @Summary      Mark a user's email as verified
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Success      200      {object}   map[string]string
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/verify-email [post]
func (h *UserHandler) HandleVerifyUserEmail(ctx *gin.Context) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.VerifyUserEmail(ctx.Request.Context(), caller, id); err != nil {
		renderUserServiceErr(ctx, "v1.HandleVerifyUserEmail -> h.svc.VerifyUserEmail", id, err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "verified"})
}
