package domain

// Placement positions an element at a cell. It is the payload shape shared by
// map defaults and placement requests before a container is known.
type Placement struct {
	ElementID string `json:"elementId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// MapElement is one default placement of an element on a map. The tuple
// (MapID, ElementID, X, Y) is unique.
type MapElement struct {
	ID        string `json:"id"`
	MapID     string `json:"mapId"`
	ElementID string `json:"elementId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// SpaceElement is one placement of an element inside a space. The tuple
// (SpaceID, ElementID, X, Y) is unique.
type SpaceElement struct {
	ID        string `json:"id"`
	SpaceID   string `json:"spaceId"`
	ElementID string `json:"elementId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// DuplicatePlacement returns the first placement in ps that repeats an
// earlier (elementId, x, y) cell, if any.
func DuplicatePlacement(ps []Placement) (Placement, bool) {
	seen := make(map[Placement]struct{}, len(ps))
	for _, p := range ps {
		if _, ok := seen[p]; ok {
			return p, true
		}
		seen[p] = struct{}{}
	}
	return Placement{}, false
}
