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

type CityService interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	Get(ctx context.Context, id uint) (domain.City, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.City, error)
	Update(ctx context.Context, city domain.City) (domain.City, error)
	Delete(ctx context.Context, id uint) error
}

type CityHandler struct {
	svc CityService
}

func NewCityHandler(svc CityService) *CityHandler {
	return &CityHandler{
		svc: svc,
	}
}

// HandleCreateCity godoc
// @Summary      Create a city
// @Tags         cities
// @Produce      json
// @Param        request   body      request.CreateCityRequest true "request body"
// @Success      201      {object}   domain.City
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /cities [post]
func (h *CityHandler) HandleCreateCity(ctx *gin.Context) {
	req := request.CreateCityRequest{}
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

	city, err := h.svc.Create(ctx.Request.Context(), domain.City{
		Name:    req.Name,
		Country: req.Country,
		Region:  req.Region,
		Active:  active,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCity -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, city)
}

// HandleGetCity godoc
// @Summary      Get a city by ID
// @Tags         cities
// @Produce      json
// @Param        cityID   path       int true "city ID"
// @Success      200      {object}   domain.City
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /cities/{cityID} [get]
func (h *CityHandler) HandleGetCity(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "cityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	city, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("city", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetCity -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, city)
}

// HandleListCities godoc
// @Summary      List cities
// @Tags         cities
// @Produce      json
// @Success      200 {array}  domain.City
// @Failure      500 {object} response.Err
// @Router       /cities [get]
func (h *CityHandler) HandleListCities(ctx *gin.Context) {
	sortSpec, limit := parseListQuery(ctx)

	cities, err := h.svc.List(ctx.Request.Context(), sortSpec, limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCities -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, cities)
}

// HandleUpdateCity godoc
// @Summary      Update a city
// @Tags         cities
// @Produce      json
// @Param        cityID   path       int true "city ID"
// @Param        request  body       request.UpdateCityRequest true "request body"
// @Success      200      {object}   domain.City
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /cities/{cityID} [put]
func (h *CityHandler) HandleUpdateCity(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "cityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateCityRequest{}
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

	city, err := h.svc.Update(ctx.Request.Context(), domain.City{
		ID:      id,
		Name:    req.Name,
		Country: req.Country,
		Region:  req.Region,
		Active:  active,
	})
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("city", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateCity -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, city)
}

// HandleDeleteCity godoc
// @Summary      Delete a city
// @Tags         cities
// @Produce      json
// @Param        cityID   path       int true "city ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /cities/{cityID} [delete]
func (h *CityHandler) HandleDeleteCity(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "cityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		var inUse *service.CityInUseError
		if errors.As(err, &inUse) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}
		if errors.Is(err, service.ErrCityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("city", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteCity -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
