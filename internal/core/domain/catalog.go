package domain

import "time"

// Avatar is a selectable character image.
type Avatar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Element is a placeable sprite with fixed pixel dimensions.
type Element struct {
	ID       string    `json:"id"`
	ImageURL string    `json:"imageUrl"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Static   bool      `json:"static"`
	Created  time.Time `json:"-"`
}

// ElementPatch carries the optional fields of an element update. Nil fields
// are left untouched.
type ElementPatch struct {
	ImageURL *string
	Width    *int
	Height   *int
	Static   *bool
}

// Apply copies every provided field of p onto e.
func (p ElementPatch) Apply(e *Element) {
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.Static != nil {
		e.Static = *p.Static
	}
}

// Map is a named template layout. Elements holds its default placements and
// is only populated by lookups that ask for them.
type Map struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Thumbnail string       `json:"thumbnail"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Elements  []MapElement `json:"elements,omitempty"`
	Created   time.Time    `json:"-"`
}

// MapPatch carries the optional fields of a map update. Elements are appended
// to the map's existing placements.
type MapPatch struct {
	Name      *string
	Thumbnail *string
	Width     *int
	Height    *int
	Elements  []Placement
}

// Apply copies every provided scalar field of p onto m.
func (p MapPatch) Apply(m *Map) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.Width != nil {
		m.Width = *p.Width
	}
	if p.Height != nil {
		m.Height = *p.Height
	}
}
