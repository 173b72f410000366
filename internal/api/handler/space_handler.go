package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/metrics"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type SpaceHandler struct {
	service ports.SpaceService
}

func NewSpaceHandler(service ports.SpaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

// Create instantiates a map as a new space owned by the caller.
//
// @Summary      Create space
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Param        body  body      createSpaceRequest  true  "Space"
// @Success      201   {object}  createSpaceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /spaces [post]
func (h *SpaceHandler) Create(c echo.Context) error {
	var req createSpaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	space, err := h.service.Create(c.Request().Context(), actor(c), ports.CreateSpaceInput{
		Name:       req.Name,
		Dimensions: req.Dimensions,
		MapID:      req.MapID,
	})
	if err != nil {
		return err
	}

	metrics.SpacesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createSpaceResponse{
		Message: "Space created successfully",
		Space: createdSpace{
			ID:         space.ID,
			Name:       space.Name,
			Dimensions: space.Dimensions(),
			MapID:      space.MapID,
		},
	})
}

// List returns a summary of every space.
//
// @Summary      List spaces
// @Tags         spaces
// @Produce      json
// @Success      200  {object}  spaceListResponse
// @Router       /spaces [get]
func (h *SpaceHandler) List(c echo.Context) error {
	spaces, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]spaceSummary, 0, len(spaces))
	for i := range spaces {
		out = append(out, spaceSummary{
			ID:         spaces[i].ID,
			Name:       spaces[i].Name,
			Dimensions: spaces[i].Dimensions(),
			Thumbnail:  spaces[i].Thumbnail,
		})
	}
	return c.JSON(http.StatusOK, spaceListResponse{Spaces: out})
}

// Delete removes a space and every placement inside it.
//
// @Summary      Delete space
// @Tags         spaces
// @Produce      json
// @Param        id   query     string  true  "Space id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /spaces [delete]
func (h *SpaceHandler) Delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return domain.NewValidationError(domain.Violation{Field: "id", Message: "Space ID is required"})
	}

	if err := h.service.Delete(c.Request().Context(), actor(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Space deleted successfully"})
}

// AddElement places an element inside a space.
//
// @Summary      Add space element
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Param        body  body      addSpaceElementRequest  true  "Placement"
// @Success      201   {object}  spaceElementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /spaces/elements [post]
func (h *SpaceHandler) AddElement(c echo.Context) error {
	var req addSpaceElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	se, err := h.service.AddElement(c.Request().Context(), req.SpaceID, domain.Placement{ElementID: req.ElementID, X: req.X, Y: req.Y})
	if err != nil {
		return err
	}

	metrics.PlacementsTotal.WithLabelValues("space", "add").Inc()
	return c.JSON(http.StatusCreated, spaceElementResponse{
		Message:      "Element added to space successfully",
		SpaceElement: se,
	})
}

// RemoveElement deletes the placement at an exact cell of a space.
//
// @Summary      Remove space element
// @Tags         spaces
// @Produce      json
// @Param        spaceId    query     string  true  "Space id"
// @Param        elementId  query     string  true  "Element id"
// @Param        x          query     int     true  "Column"
// @Param        y          query     int     true  "Row"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /spaces/elements [delete]
func (h *SpaceHandler) RemoveElement(c echo.Context) error {
	var req removeSpaceElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := cellQuery(req.ElementID, req.X, req.Y)
	if err != nil {
		return err
	}

	if err := h.service.RemoveElement(c.Request().Context(), req.SpaceID, p); err != nil {
		return err
	}

	metrics.PlacementsTotal.WithLabelValues("space", "remove").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Element removed from space successfully"})
}
