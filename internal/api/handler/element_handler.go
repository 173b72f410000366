package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type ElementHandler struct {
	service ports.ElementService
}

func NewElementHandler(service ports.ElementService) *ElementHandler {
	return &ElementHandler{service: service}
}

// Create adds an element to the catalog.
//
// @Summary      Create element
// @Tags         elements
// @Accept       json
// @Produce      json
// @Param        body  body      createElementRequest  true  "Element"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /elements [post]
func (h *ElementHandler) Create(c echo.Context) error {
	var req createElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	element, err := h.service.Create(c.Request().Context(), ports.CreateElementInput{
		ImageURL: req.ImageURL,
		Width:    req.Width,
		Height:   req.Height,
		Static:   *req.Static,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: element.ID})
}

// Update changes only the fields present in the body.
//
// @Summary      Update element
// @Tags         elements
// @Accept       json
// @Produce      json
// @Param        body  body      updateElementRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /elements [put]
func (h *ElementHandler) Update(c echo.Context) error {
	var req updateElementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	element, err := h.service.Update(c.Request().Context(), req.ID, domain.ElementPatch{
		ImageURL: req.ImageURL,
		Width:    req.Width,
		Height:   req.Height,
		Static:   req.Static,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: element.ID})
}

// List returns every element.
//
// @Summary      List elements
// @Tags         elements
// @Produce      json
// @Success      200  {object}  elementListResponse
// @Router       /elements [get]
func (h *ElementHandler) List(c echo.Context) error {
	elements, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if elements == nil {
		elements = []domain.Element{}
	}
	return c.JSON(http.StatusOK, elementListResponse{Elements: elements})
}

// Get returns one element.
//
// @Summary      Get element
// @Tags         elements
// @Produce      json
// @Param        id   path      string  true  "Element id"
// @Success      200  {object}  domain.Element
// @Failure      404  {object}  errorResponse
// @Router       /elements/{id} [get]
func (h *ElementHandler) Get(c echo.Context) error {
	element, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, element)
}
