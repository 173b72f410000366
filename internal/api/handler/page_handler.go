package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/web"
)

// PageHandler serves the browser sign-in and sign-up pages. The echo
// instance must carry a web.Renderer.
type PageHandler struct {
	providers []string
}

// NewPageHandler lists the enabled federated providers on the sign-in page.
func NewPageHandler(providers []string) *PageHandler {
	return &PageHandler{providers: providers}
}

func (h *PageHandler) SignIn(c echo.Context) error {
	return c.Render(http.StatusOK, "signin.html", web.Page{Title: "Sign in", Providers: h.providers})
}

func (h *PageHandler) SignUp(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", web.Page{Title: "Sign up"})
}

// Home sends anonymous visitors to the sign-in page and greets signed-in ones
// with their session.
func (h *PageHandler) Home(c echo.Context) error {
	claims := actor(c)
	if claims == nil {
		return c.Redirect(http.StatusFound, "/auth/signin")
	}
	return c.JSON(http.StatusOK, claims)
}
