package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

var dimensionsPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// MaxCoord bounds every stored coordinate and size; the columns are 32-bit.
const MaxCoord = math.MaxInt32

// MsgDimensionsFormat is reported when a dimensions string cannot be parsed.
const MsgDimensionsFormat = "Dimensions Format: widthxheight (e.g., 100x200)"

// Space is a user-owned instance of a map with its own placements.
type Space struct {
	ID        string
	Name      string
	Width     int
	Height    int
	MapID     string
	Thumbnail *string
	CreatorID string
	CreatedAt time.Time
}

// Dimensions renders the space size as "WxH".
func (s *Space) Dimensions() string {
	return FormatDimensions(s.Width, s.Height)
}

func FormatDimensions(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// ParseDimensions splits a "WxH" string into two positive integers.
func ParseDimensions(s string) (width, height int, err error) {
	m := dimensionsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%s", MsgDimensionsFormat)
	}
	width, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse width: %w", err)
	}
	height, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("parse height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive")
	}
	if width > MaxCoord || height > MaxCoord {
		return 0, 0, fmt.Errorf("dimensions exceed %d", MaxCoord)
	}
	return width, height, nil
}
