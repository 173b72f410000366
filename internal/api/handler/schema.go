package handler

import (
	"strconv"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string             `json:"error"`
	Details []domain.Violation `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signUpRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Password string `json:"password" form:"password" validate:"required,password"`
	Role     string `json:"role"     form:"role"     validate:"omitempty,oneof=User Admin"`
}

type signUpResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type signInRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type signInResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// --- Avatars ---

type createAvatarRequest struct {
	Name     string `json:"name"     validate:"required,min=1"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

type updateAvatarRequest struct {
	ID       string `json:"id"       validate:"required"`
	Name     string `json:"name"     validate:"required,min=1"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

type avatarIDResponse struct {
	AvatarID string `json:"avatarId"`
}

type avatarListResponse struct {
	Avatars []domain.Avatar `json:"avatars"`
}

// --- Elements ---

type createElementRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Width    int    `json:"width"    validate:"required,gt=0,lte=2147483647"`
	Height   int    `json:"height"   validate:"required,gt=0,lte=2147483647"`
	Static   *bool  `json:"static"   validate:"required"`
}

type updateElementRequest struct {
	ID       string  `json:"id"       validate:"required"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	Width    *int    `json:"width"    validate:"omitempty,gt=0,lte=2147483647"`
	Height   *int    `json:"height"   validate:"omitempty,gt=0,lte=2147483647"`
	Static   *bool   `json:"static"`
}

type idResponse struct {
	ID string `json:"id"`
}

type elementListResponse struct {
	Elements []domain.Element `json:"elements"`
}

// --- Maps ---

type placementRequest struct {
	ElementID string `json:"elementId" validate:"required"`
	X         int    `json:"x"         validate:"gte=0,lte=2147483647"`
	Y         int    `json:"y"         validate:"gte=0,lte=2147483647"`
}

func toPlacements(reqs []placementRequest) []domain.Placement {
	out := make([]domain.Placement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.Placement{ElementID: r.ElementID, X: r.X, Y: r.Y})
	}
	return out
}

type createMapRequest struct {
	Name            string             `json:"name"            validate:"required"`
	Thumbnail       string             `json:"thumbnail"       validate:"required,url"`
	Width           int                `json:"width"           validate:"required,gt=0,lte=2147483647"`
	Height          int                `json:"height"          validate:"required,gt=0,lte=2147483647"`
	DefaultElements []placementRequest `json:"defaultElements" validate:"dive"`
}

type updateMapRequest struct {
	ID              string             `json:"id"              validate:"required"`
	Name            *string            `json:"name"            validate:"omitempty,min=1"`
	Thumbnail       *string            `json:"thumbnail"       validate:"omitempty,url"`
	Width           *int               `json:"width"           validate:"omitempty,gt=0,lte=2147483647"`
	Height          *int               `json:"height"          validate:"omitempty,gt=0,lte=2147483647"`
	DefaultElements []placementRequest `json:"defaultElements" validate:"dive"`
}

type mapListResponse struct {
	Maps []domain.Map `json:"maps"`
}

// --- Placements ---

// cellQuery parses the x and y query values, which validation has already
// restricted to digits.
func cellQuery(elementID, x, y string) (domain.Placement, error) {
	px, err := strconv.Atoi(x)
	if err != nil || px > domain.MaxCoord {
		return domain.Placement{}, domain.NewValidationError(domain.Violation{Field: "x", Message: "x is out of range"})
	}
	py, err := strconv.Atoi(y)
	if err != nil || py > domain.MaxCoord {
		return domain.Placement{}, domain.NewValidationError(domain.Violation{Field: "y", Message: "y is out of range"})
	}
	return domain.Placement{ElementID: elementID, X: px, Y: py}, nil
}

type addMapElementRequest struct {
	MapID     string `json:"mapId"     validate:"required"`
	ElementID string `json:"elementId" validate:"required"`
	X         int    `json:"x"         validate:"gte=0,lte=2147483647"`
	Y         int    `json:"y"         validate:"gte=0,lte=2147483647"`
}

type removeMapElementRequest struct {
	MapID     string `query:"mapId"     validate:"required"`
	ElementID string `query:"elementId" validate:"required"`
	X         string `query:"x"         validate:"required,number"`
	Y         string `query:"y"         validate:"required,number"`
}

type mapElementResponse struct {
	Message    string             `json:"message"`
	MapElement *domain.MapElement `json:"mapElement"`
}

type addSpaceElementRequest struct {
	SpaceID   string `json:"spaceId"   validate:"required"`
	ElementID string `json:"elementId" validate:"required"`
	X         int    `json:"x"         validate:"gte=0,lte=2147483647"`
	Y         int    `json:"y"         validate:"gte=0,lte=2147483647"`
}

type removeSpaceElementRequest struct {
	SpaceID   string `query:"spaceId"   validate:"required"`
	ElementID string `query:"elementId" validate:"required"`
	X         string `query:"x"         validate:"required,number"`
	Y         string `query:"y"         validate:"required,number"`
}

type spaceElementResponse struct {
	Message      string               `json:"message"`
	SpaceElement *domain.SpaceElement `json:"spaceElement"`
}

// --- Spaces ---

type createSpaceRequest struct {
	Name       string `json:"name"       validate:"required"`
	Dimensions string `json:"dimensions" validate:"required"`
	MapID      string `json:"mapId"      validate:"required"`
}

type createdSpace struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	MapID      string `json:"mapId"`
}

type createSpaceResponse struct {
	Message string       `json:"message"`
	Space   createdSpace `json:"space"`
}

type spaceSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Dimensions string  `json:"dimensions"`
	Thumbnail  *string `json:"thumbnail"`
}

type spaceListResponse struct {
	Spaces []spaceSummary `json:"spaces"`
}

// --- Users ---

type assignAvatarRequest struct {
	UserID   string `json:"userId"   validate:"required"`
	AvatarID string `json:"avatarId" validate:"required"`
}

type assignAvatarResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type userAvatarsRequest struct {
	UserIDs []string `json:"userIds" query:"userIds"`
}

type userAvatarsResponse struct {
	Avatars []domain.UserAvatar `json:"avatars"`
}
