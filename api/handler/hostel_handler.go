package handler

import (
	"errors"
	"net/http"

	"roomi/api/middleware"
	"roomi/internal/dto"
	"roomi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type HostelHandler struct {
	Service  *service.HostelService
	Validate *validator.Validate
}

func NewHostelHandler(svc *service.HostelService, validate *validator.Validate) *HostelHandler {
	return &HostelHandler{Service: svc, Validate: validate}
}

func (h *HostelHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.CreateHostelRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.CreateHostelInput{
		Name:         req.Name,
		City:         req.City,
		Address:      req.Address,
		Description:  req.Description,
		GenderPolicy: req.GenderPolicy,
		MonthlyRent:  req.MonthlyRent,
	}
	hostel, err := h.Service.Create(c.Request().Context(), userID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.HostelResponseFromEntity(hostel))
}

func (h *HostelHandler) Search(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	hostels, err := h.Service.Search(c.Request().Context(), c.QueryParam("city"), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.HostelResponsesFromEntities(hostels))
}

func (h *HostelHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid hostel id"))
	}
	hostel, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.HostelResponseFromEntity(hostel))
}

func (h *HostelHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	hostels, err := h.Service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.HostelResponsesFromEntities(hostels))
}

func (h *HostelHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid hostel id"))
	}
	if err := h.Service.Delete(c.Request().Context(), userID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HostelHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
