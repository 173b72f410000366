package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type AvatarHandler struct {
	service ports.AvatarService
}

func NewAvatarHandler(service ports.AvatarService) *AvatarHandler {
	return &AvatarHandler{service: service}
}

// List returns every avatar.
//
// @Summary      List avatars
// @Tags         avatars
// @Produce      json
// @Success      200  {object}  avatarListResponse
// @Router       /avatars [get]
func (h *AvatarHandler) List(c echo.Context) error {
	avatars, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if avatars == nil {
		avatars = []domain.Avatar{}
	}
	return c.JSON(http.StatusOK, avatarListResponse{Avatars: avatars})
}

// Create adds an avatar to the catalog.
//
// @Summary      Create avatar
// @Tags         avatars
// @Accept       json
// @Produce      json
// @Param        body  body      createAvatarRequest  true  "Avatar"
// @Success      201   {object}  avatarIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /avatars [post]
func (h *AvatarHandler) Create(c echo.Context) error {
	var req createAvatarRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	avatar, err := h.service.Create(c.Request().Context(), req.Name, req.ImageURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, avatarIDResponse{AvatarID: avatar.ID})
}

// Update replaces an avatar's name and image.
//
// @Summary      Update avatar
// @Tags         avatars
// @Accept       json
// @Produce      json
// @Param        body  body      updateAvatarRequest  true  "Avatar"
// @Success      200   {object}  avatarIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /avatars [put]
func (h *AvatarHandler) Update(c echo.Context) error {
	var req updateAvatarRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	avatar, err := h.service.Update(c.Request().Context(), domain.Avatar{ID: req.ID, Name: req.Name, ImageURL: req.ImageURL})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarIDResponse{AvatarID: avatar.ID})
}
