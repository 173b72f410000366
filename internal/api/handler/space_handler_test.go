package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

func TestSpaceHandler_Create(t *testing.T) {
	caller := &domain.Claims{UserID: "u1", Role: domain.RoleUser}
	stub := &stubSpaceService{
		createFn: func(_ context.Context, actor *domain.Claims, in ports.CreateSpaceInput) (*domain.Space, error) {
			if actor == nil || actor.UserID != "u1" {
				t.Fatalf("actor not forwarded: %+v", actor)
			}
			return &domain.Space{ID: "s1", Name: in.Name, Width: 100, Height: 200, MapID: in.MapID}, nil
		},
	}

	rec, err := call(t, NewSpaceHandler(stub).Create, http.MethodPost, "/spaces",
		`{"name":"Lobby","dimensions":"100x200","mapId":"m1"}`, caller)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["message"] != "Space created successfully" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	space, _ := resp["space"].(map[string]any)
	if space["id"] != "s1" || space["dimensions"] != "100x200" || space["mapId"] != "m1" {
		t.Fatalf("unexpected space %+v", space)
	}
}

func TestSpaceHandler_List(t *testing.T) {
	thumb := "https://cdn.example/office.png"
	stub := &stubSpaceService{
		listFn: func(context.Context) ([]domain.Space, error) {
			return []domain.Space{
				{ID: "s1", Name: "Lobby", Width: 100, Height: 200, Thumbnail: &thumb},
				{ID: "s2", Name: "Attic", Width: 10, Height: 10},
			}, nil
		},
	}

	rec, err := call(t, NewSpaceHandler(stub).List, http.MethodGet, "/spaces", "", nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	spaces, _ := decode(t, rec)["spaces"].([]any)
	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}
	first := spaces[0].(map[string]any)
	second := spaces[1].(map[string]any)
	if first["dimensions"] != "100x200" || first["thumbnail"] != thumb {
		t.Fatalf("unexpected first space %+v", first)
	}
	if v, ok := second["thumbnail"]; !ok || v != nil {
		t.Fatalf("thumbnail must be null when absent, got %+v", second)
	}
}

func TestSpaceHandler_Delete_MissingID(t *testing.T) {
	stub := &stubSpaceService{
		deleteFn: func(context.Context, *domain.Claims, string) error {
			t.Fatalf("service must not be called")
			return nil
		},
	}

	_, err := call(t, NewSpaceHandler(stub).Delete, http.MethodDelete, "/spaces", "", &domain.Claims{UserID: "u1"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Error() != "Space ID is required" {
		t.Fatalf("expected id violation, got %v", err)
	}
}

func TestSpaceHandler_Delete(t *testing.T) {
	stub := &stubSpaceService{
		deleteFn: func(_ context.Context, actor *domain.Claims, id string) error {
			if id != "s1" || actor.UserID != "u1" {
				t.Fatalf("unexpected args %+v %q", actor, id)
			}
			return nil
		},
	}

	rec, err := call(t, NewSpaceHandler(stub).Delete, http.MethodDelete, "/spaces?id=s1", "", &domain.Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSpaceHandler_AddElement(t *testing.T) {
	stub := &stubSpaceService{
		addFn: func(_ context.Context, spaceID string, p domain.Placement) (*domain.SpaceElement, error) {
			return &domain.SpaceElement{ID: "se1", SpaceID: spaceID, ElementID: p.ElementID, X: p.X, Y: p.Y}, nil
		},
	}

	rec, err := call(t, NewSpaceHandler(stub).AddElement, http.MethodPost, "/spaces/elements",
		`{"spaceId":"s1","elementId":"e1","x":4,"y":5}`, &domain.Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	se, _ := resp["spaceElement"].(map[string]any)
	if rec.Code != http.StatusCreated || se["spaceId"] != "s1" || se["y"] != float64(5) {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestSpaceHandler_RemoveElement_NotFound(t *testing.T) {
	stub := &stubSpaceService{
		removeFn: func(_ context.Context, spaceID string, p domain.Placement) error {
			if spaceID != "s1" || p.X != 4 || p.Y != 5 {
				t.Fatalf("unexpected args %q %+v", spaceID, p)
			}
			return domain.NotFound(domain.MsgSpaceElementMissing)
		},
	}

	_, err := call(t, NewSpaceHandler(stub).RemoveElement, http.MethodDelete,
		"/spaces/elements?spaceId=s1&elementId=e1&x=4&y=5", "", &domain.Claims{UserID: "u1"})
	if !errors.Is(err, domain.ErrNotFound) || domain.Message(err) != domain.MsgSpaceElementMissing {
		t.Fatalf("expected not found, got %v", err)
	}
}
