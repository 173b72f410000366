package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/chiraggahujaa/metaverse-workspace/docs"
	"github.com/chiraggahujaa/metaverse-workspace/internal/api/handler"
	"github.com/chiraggahujaa/metaverse-workspace/internal/api/middleware"
	"github.com/chiraggahujaa/metaverse-workspace/internal/api/web"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Avatars  ports.AvatarService
	Elements ports.ElementService
	Maps     ports.MapService
	Spaces   ports.SpaceService
	Users    ports.UserService

	Codec  ports.SessionCodec
	Cookie handler.CookieConfig
	// Providers names the enabled federated sign-in providers.
	Providers []string
	// Health lists the dependencies checked by the readiness probe.
	Health map[string]handlers.Pinger
	Log    zerolog.Logger
	// Metrics overrides the default Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("page renderer: %w", err)
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}
	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "metaverse",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(httpMetrics)
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Session(d.Codec, d.Cookie.Name))

	admin := middleware.RequireAdmin()
	signedIn := middleware.RequireSession()

	// --- Pages ---
	pages := handler.NewPageHandler(d.Providers)
	e.GET("/", pages.Home)
	e.GET("/auth/signin", pages.SignIn)
	e.GET("/auth/signup", pages.SignUp)

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth, d.Cookie)
	e.POST("/auth/signup", auth.SignUp)
	e.POST("/auth/signin", auth.SignIn)
	e.POST("/auth/signout", auth.SignOut)
	e.GET("/auth/session", auth.Session, signedIn)
	e.GET("/auth/oauth/:provider", auth.BeginOAuth)
	e.GET("/auth/oauth/:provider/callback", auth.OAuthCallback)

	// --- Catalog ---
	avatars := handler.NewAvatarHandler(d.Avatars)
	e.GET("/avatars", avatars.List)
	e.POST("/avatars", avatars.Create, admin)
	e.PUT("/avatars", avatars.Update, admin)

	elements := handler.NewElementHandler(d.Elements)
	e.GET("/elements", elements.List)
	e.GET("/elements/:id", elements.Get)
	e.POST("/elements", elements.Create, admin)
	e.PUT("/elements", elements.Update, admin)

	// --- Maps ---
	maps := handler.NewMapHandler(d.Maps)
	e.GET("/maps", maps.List)
	e.POST("/maps", maps.Create, admin)
	e.PUT("/maps", maps.Update, admin)
	e.POST("/maps/elements", maps.AddElement, signedIn)
	e.DELETE("/maps/elements", maps.RemoveElement, signedIn)
	e.GET("/maps/:id", maps.Get)

	// --- Spaces ---
	spaces := handler.NewSpaceHandler(d.Spaces)
	e.GET("/spaces", spaces.List)
	e.POST("/spaces", spaces.Create, signedIn)
	e.DELETE("/spaces", spaces.Delete, signedIn)
	e.POST("/spaces/elements", spaces.AddElement, signedIn)
	e.DELETE("/spaces/elements", spaces.RemoveElement, signedIn)

	// --- Users ---
	users := handler.NewUserHandler(d.Users)
	e.PUT("/users/avatars", users.AssignAvatar, signedIn)
	e.GET("/users", users.AvatarURLs)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
