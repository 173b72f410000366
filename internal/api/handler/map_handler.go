package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/metrics"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type MapHandler struct {
	service ports.MapService
}

func NewMapHandler(service ports.MapService) *MapHandler {
	return &MapHandler{service: service}
}

// Create stores a map together with its default placements.
//
// @Summary      Create map
// @Tags         maps
// @Accept       json
// @Produce      json
// @Param        body  body      createMapRequest  true  "Map"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /maps [post]
func (h *MapHandler) Create(c echo.Context) error {
	var req createMapRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), ports.CreateMapInput{
		Name:            req.Name,
		Thumbnail:       req.Thumbnail,
		Width:           req.Width,
		Height:          req.Height,
		DefaultElements: toPlacements(req.DefaultElements),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: m.ID})
}

// Update changes the provided fields and appends the provided placements.
//
// @Summary      Update map
// @Tags         maps
// @Accept       json
// @Produce      json
// @Param        body  body      updateMapRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /maps [put]
func (h *MapHandler) Update(c echo.Context) error {
	var req updateMapRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), req.ID, domain.MapPatch{
		Name:      req.Name,
		Thumbnail: req.Thumbnail,
		Width:     req.Width,
		Height:    req.Height,
		Elements:  toPlacements(req.DefaultElements),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: m.ID})
}

// List returns every map without placements.
//
// @Summary      List maps
// @Tags         maps
// @Produce      json
// @Success      200  {object}  mapListResponse
// @Router       /maps [get]
func (h *MapHandler) List(c echo.Context) error {
	maps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if maps == nil {
		maps = []domain.Map{}
	}
	return c.JSON(http.StatusOK, mapListResponse{Maps: maps})
}

// Get returns a map with its default placements.
//
// @Summary      Get map
// @Tags         maps
// @Produce      json
// @Param        id   path      string  true  "Map id"
// @Success      200  {object}  domain.Map
// @Failure      404  {object}  errorResponse
// @Router       /maps/{id} [get]
func (h *MapHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// AddElement places an element on a map cell.
//
// @Summary      Add map element
// @Tags         maps
// @Accept       json
// @Produce      json
// @Param        body  body      addMapElementRequest  true  "Placement"
// @Success      201   {object}  mapElementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /maps/elements [post]
func (h *MapHandler) AddElement(c echo.Context) error {
	var req addMapElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	me, err := h.service.AddElement(c.Request().Context(), req.MapID, domain.Placement{ElementID: req.ElementID, X: req.X, Y: req.Y})
	if err != nil {
		return err
	}

	metrics.PlacementsTotal.WithLabelValues("map", "add").Inc()
	return c.JSON(http.StatusCreated, mapElementResponse{
		Message:    "Element added to map successfully",
		MapElement: me,
	})
}

// RemoveElement deletes the placement at an exact cell.
//
// @Summary      Remove map element
// @Tags         maps
// @Produce      json
// @Param        mapId      query     string  true  "Map id"
// @Param        elementId  query     string  true  "Element id"
// @Param        x          query     int     true  "Column"
// @Param        y          query     int     true  "Row"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /maps/elements [delete]
func (h *MapHandler) RemoveElement(c echo.Context) error {
	var req removeMapElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := cellQuery(req.ElementID, req.X, req.Y)
	if err != nil {
		return err
	}

	if err := h.service.RemoveElement(c.Request().Context(), req.MapID, p); err != nil {
		return err
	}

	metrics.PlacementsTotal.WithLabelValues("map", "remove").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Element removed from map successfully"})
}
