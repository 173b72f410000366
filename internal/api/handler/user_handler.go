package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// AssignAvatar sets a user's avatar. Users may only change their own unless
// they are administrators.
//
// @Summary      Assign avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      assignAvatarRequest  true  "Assignment"
// @Success      200   {object}  assignAvatarResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/avatars [put]
func (h *UserHandler) AssignAvatar(c echo.Context) error {
	var req assignAvatarRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.service.AssignAvatar(c.Request().Context(), actor(c), req.UserID, req.AvatarID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignAvatarResponse{Success: true, User: user})
}

// AvatarURLs returns the avatar image of each requested user. Ids are read
// from the JSON body, or from repeated userIds query parameters.
//
// @Summary      Users' avatars
// @Tags         users
// @Produce      json
// @Param        userIds  query     []string  false  "User ids"  collectionFormat(multi)
// @Success      200      {object}  userAvatarsResponse
// @Failure      400      {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) AvatarURLs(c echo.Context) error {
	var req userAvatarsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if len(req.UserIDs) == 0 {
		req.UserIDs = c.QueryParams()["userIds"]
	}

	avatars, err := h.service.AvatarURLs(c.Request().Context(), req.UserIDs)
	if err != nil {
		return err
	}
	if avatars == nil {
		avatars = []domain.UserAvatar{}
	}
	return c.JSON(http.StatusOK, userAvatarsResponse{Avatars: avatars})
}
