package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api/middleware"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports/portstest"
)

// call runs h for a request, decoding claims into context first when given.
func call(t *testing.T, h echo.HandlerFunc, method, target, body string, claims *domain.Claims) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	codec := portstest.NewSessionCodec()
	if claims != nil {
		token, _, err := codec.Encode(*claims)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, middleware.Session(codec, "metaverse_session")(h)(c)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

// violations asserts err is a validation error and returns its fields.
func violations(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
	}
	fields := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func strPtr(s string) *string { return &s }

type stubAuthService struct {
	signUpFn   func(ctx context.Context, actor *domain.Claims, in ports.SignUpInput) (*domain.User, error)
	signInFn   func(ctx context.Context, email, password string) (*ports.Session, error)
	beginFn    func(ctx context.Context, provider string) (string, error)
	completeFn func(ctx context.Context, provider, state, code string) (*ports.Session, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, actor *domain.Claims, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, actor, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) BeginFederated(ctx context.Context, provider string) (string, error) {
	return s.beginFn(ctx, provider)
}

func (s *stubAuthService) CompleteFederated(ctx context.Context, provider, state, code string) (*ports.Session, error) {
	return s.completeFn(ctx, provider, state, code)
}

type stubAvatarService struct {
	listFn   func(ctx context.Context) ([]domain.Avatar, error)
	createFn func(ctx context.Context, name, imageURL string) (*domain.Avatar, error)
	updateFn func(ctx context.Context, avatar domain.Avatar) (*domain.Avatar, error)
}

func (s *stubAvatarService) List(ctx context.Context) ([]domain.Avatar, error) {
	return s.listFn(ctx)
}

func (s *stubAvatarService) Create(ctx context.Context, name, imageURL string) (*domain.Avatar, error) {
	return s.createFn(ctx, name, imageURL)
}

func (s *stubAvatarService) Update(ctx context.Context, avatar domain.Avatar) (*domain.Avatar, error) {
	return s.updateFn(ctx, avatar)
}

type stubElementService struct {
	createFn func(ctx context.Context, in ports.CreateElementInput) (*domain.Element, error)
	updateFn func(ctx context.Context, id string, patch domain.ElementPatch) (*domain.Element, error)
	getFn    func(ctx context.Context, id string) (*domain.Element, error)
	listFn   func(ctx context.Context) ([]domain.Element, error)
}

func (s *stubElementService) Create(ctx context.Context, in ports.CreateElementInput) (*domain.Element, error) {
	return s.createFn(ctx, in)
}

func (s *stubElementService) Update(ctx context.Context, id string, patch domain.ElementPatch) (*domain.Element, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubElementService) Get(ctx context.Context, id string) (*domain.Element, error) {
	return s.getFn(ctx, id)
}

func (s *stubElementService) List(ctx context.Context) ([]domain.Element, error) {
	return s.listFn(ctx)
}

type stubMapService struct {
	createFn func(ctx context.Context, in ports.CreateMapInput) (*domain.Map, error)
	updateFn func(ctx context.Context, id string, patch domain.MapPatch) (*domain.Map, error)
	getFn    func(ctx context.Context, id string) (*domain.Map, error)
	listFn   func(ctx context.Context) ([]domain.Map, error)
	addFn    func(ctx context.Context, mapID string, p domain.Placement) (*domain.MapElement, error)
	removeFn func(ctx context.Context, mapID string, p domain.Placement) error
}

func (s *stubMapService) Create(ctx context.Context, in ports.CreateMapInput) (*domain.Map, error) {
	return s.createFn(ctx, in)
}

func (s *stubMapService) Update(ctx context.Context, id string, patch domain.MapPatch) (*domain.Map, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubMapService) Get(ctx context.Context, id string) (*domain.Map, error) {
	return s.getFn(ctx, id)
}

func (s *stubMapService) List(ctx context.Context) ([]domain.Map, error) {
	return s.listFn(ctx)
}

func (s *stubMapService) AddElement(ctx context.Context, mapID string, p domain.Placement) (*domain.MapElement, error) {
	return s.addFn(ctx, mapID, p)
}

func (s *stubMapService) RemoveElement(ctx context.Context, mapID string, p domain.Placement) error {
	return s.removeFn(ctx, mapID, p)
}

type stubSpaceService struct {
	createFn func(ctx context.Context, actor *domain.Claims, in ports.CreateSpaceInput) (*domain.Space, error)
	listFn   func(ctx context.Context) ([]domain.Space, error)
	deleteFn func(ctx context.Context, actor *domain.Claims, id string) error
	addFn    func(ctx context.Context, spaceID string, p domain.Placement) (*domain.SpaceElement, error)
	removeFn func(ctx context.Context, spaceID string, p domain.Placement) error
}

func (s *stubSpaceService) Create(ctx context.Context, actor *domain.Claims, in ports.CreateSpaceInput) (*domain.Space, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubSpaceService) List(ctx context.Context) ([]domain.Space, error) {
	return s.listFn(ctx)
}

func (s *stubSpaceService) Delete(ctx context.Context, actor *domain.Claims, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubSpaceService) AddElement(ctx context.Context, spaceID string, p domain.Placement) (*domain.SpaceElement, error) {
	return s.addFn(ctx, spaceID, p)
}

func (s *stubSpaceService) RemoveElement(ctx context.Context, spaceID string, p domain.Placement) error {
	return s.removeFn(ctx, spaceID, p)
}

type stubUserService struct {
	assignFn  func(ctx context.Context, actor *domain.Claims, userID, avatarID string) (*domain.User, error)
	avatarsFn func(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error)
}

func (s *stubUserService) AssignAvatar(ctx context.Context, actor *domain.Claims, userID, avatarID string) (*domain.User, error) {
	return s.assignFn(ctx, actor, userID, avatarID)
}

func (s *stubUserService) AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error) {
	return s.avatarsFn(ctx, userIDs)
}
