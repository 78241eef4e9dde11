package domain

import (
	"fmt"
	"strings"
)

type CheckpointType string

const (
	CheckpointInternational   CheckpointType = "INTERNATIONAL"
	CheckpointInterprovincial CheckpointType = "INTERPROVINCIAL"
	CheckpointInterdistrital  CheckpointType = "INTERDISTRITAL"
	CheckpointIntradistrictal CheckpointType = "INTRADISTRICTAL"
)

func (t CheckpointType) Valid() bool {
	switch t {
	case CheckpointInternational, CheckpointInterprovincial, CheckpointInterdistrital, CheckpointIntradistrictal:
		return true
	}
	return false
}

// Direction names one of the four neighbor slots of a checkpoint.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists the slots in the order the path finder explores them.
var Directions = []Direction{North, South, East, West}

func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case North, South, East, West:
		return d, nil
	}
	return "", fmt.Errorf("parse direction %q: %w", s, ErrInvalidDirection)
}

// Opposite returns the slot that points back along the same link.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return ""
}

// Links holds the four optional neighbor checkpoint ids. An empty string
// means the slot has no link.
type Links struct {
	NorthernNext string
	SouthernNext string
	EasternNext  string
	WesternNext  string
}

func (l Links) Get(d Direction) string {
	switch d {
	case North:
		return l.NorthernNext
	case South:
		return l.SouthernNext
	case East:
		return l.EasternNext
	case West:
		return l.WesternNext
	}
	return ""
}

func (l *Links) Set(d Direction, id string) {
	switch d {
	case North:
		l.NorthernNext = id
	case South:
		l.SouthernNext = id
	case East:
		l.EasternNext = id
	case West:
		l.WesternNext = id
	}
}

// Represents a fixed fiscal inspection post and its directional links.
// DistrictName and ProvinceName are resolved by the store at load time.
// Location is nil for posts that were never surveyed.
type CheckpointNode struct {
	CheckpointID   string
	Name           string
	DistrictID     string
	DistrictName   string
	ProvinceName   string
	CheckpointType CheckpointType
	Location       *Coordinates
	Links
}

// Neighbors returns the linked checkpoint ids in exploration order,
// skipping empty slots.
func (c *CheckpointNode) Neighbors() []string {
	out := make([]string, 0, len(Directions))
	for _, d := range Directions {
		if id := c.Links.Get(d); id != "" {
			out = append(out, id)
		}
	}
	return out
}
