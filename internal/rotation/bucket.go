package rotation

import (
	"fmt"
	"strings"
)

// Axis is the entity rotation a bucket range tests.
type Axis int

const (
	// Pitch is the x rotation, -90 (looking up) to 90 (looking down).
	Pitch Axis = iota
	// Yaw is the y rotation, -180 to 180.
	Yaw
)

// Range is an inclusive interval of degrees, as in the rx/rxm and ry/rym
// target selector arguments.
type Range struct {
	Min, Max int
}

func (r Range) contains(v float64) bool {
	return float64(r.Min) <= v && v <= float64(r.Max)
}

// Bucket is one orientation class of a scheme. At runtime the placing
// entity gets Tag when its rotation falls in one of Ranges and it has none
// of the tags of the buckets tested before this one. State is the rotation
// state value placed for the bucket.
type Bucket struct {
	Tag    string
	Axis   Axis
	Ranges []Range
	State  int
}

var (
	pitchUp   = Range{-90, -60}
	pitchDown = Range{60, 90}

	yawSouthA = Range{135, 180}
	yawSouthB = Range{-180, -135}
	yawNorth  = Range{-45, 45}
	yawWest   = Range{45, 135}
	yawEast   = Range{-135, -45}
)

// Buckets returns the classification buckets of s in evaluation order.
// Pitch buckets always come before yaw buckets.
func (s Scheme) Buckets() []Bucket {
	if s == None {
		return nil
	}
	switch s.family() {
	case familyAlignXYZ:
		return []Bucket{
			{Tag: "y_aligned", Axis: Pitch, Ranges: []Range{pitchUp, pitchDown}, State: 1},
			{Tag: "z_aligned", Axis: Yaw, Ranges: []Range{yawSouthA, yawSouthB, yawNorth}, State: 2},
			{Tag: "x_aligned", Axis: Yaw, Ranges: []Range{yawWest, yawEast}, State: 0},
		}
	case familyAlignXZ:
		return []Bucket{
			{Tag: "z_aligned", Axis: Yaw, Ranges: []Range{yawSouthA, yawSouthB, yawNorth}, State: 1},
			{Tag: "x_aligned", Axis: Yaw, Ranges: []Range{yawWest, yawEast}, State: 0},
		}
	case familyRotateVertical:
		return []Bucket{
			{Tag: "zm", Axis: Yaw, Ranges: []Range{yawSouthA, yawSouthB}, State: 3},
			{Tag: "zp", Axis: Yaw, Ranges: []Range{yawNorth}, State: 2},
			{Tag: "xm", Axis: Yaw, Ranges: []Range{yawWest}, State: 1},
			{Tag: "xp", Axis: Yaw, Ranges: []Range{yawEast}, State: 0},
		}
	}
	return []Bucket{
		{Tag: "yp", Axis: Pitch, Ranges: []Range{pitchUp}, State: 2},
		{Tag: "ym", Axis: Pitch, Ranges: []Range{pitchDown}, State: 3},
		{Tag: "zm", Axis: Yaw, Ranges: []Range{yawSouthA, yawSouthB}, State: 5},
		{Tag: "zp", Axis: Yaw, Ranges: []Range{yawNorth}, State: 4},
		{Tag: "xm", Axis: Yaw, Ranges: []Range{yawWest}, State: 1},
		{Tag: "xp", Axis: Yaw, Ranges: []Range{yawEast}, State: 0},
	}
}

// exclusions returns, for every bucket, the distinct tags of the buckets
// evaluated before it.
func exclusions(buckets []Bucket) [][]string {
	out := make([][]string, len(buckets))
	var seen []string
	for i, b := range buckets {
		out[i] = append([]string(nil), seen...)
		seen = append(seen, b.Tag)
	}
	return out
}

// TagCommands returns the commands that tag the placing entity with the
// bucket matching its rotation.
func (s Scheme) TagCommands() []string {
	buckets := s.Buckets()
	excl := exclusions(buckets)
	var cmds []string
	for i, b := range buckets {
		for _, r := range b.Ranges {
			args := make([]string, 0, len(excl[i])+2)
			for _, tag := range excl[i] {
				args = append(args, "tag=!"+tag)
			}
			if b.Axis == Pitch {
				args = append(args, fmt.Sprintf("rxm=%d", r.Min), fmt.Sprintf("rx=%d", r.Max))
			} else {
				args = append(args, fmt.Sprintf("rym=%d", r.Min), fmt.Sprintf("ry=%d", r.Max))
			}
			cmds = append(cmds, fmt.Sprintf("/tag @s[%s] add %s", strings.Join(args, ","), b.Tag))
		}
	}
	return cmds
}

// Tags simulates TagCommands for an entity with the given rotation and
// returns the tags it ends up with, in the order they were added.
func (s Scheme) Tags(pitch, yaw float64) []string {
	buckets := s.Buckets()
	excl := exclusions(buckets)
	have := map[string]bool{}
	var tags []string
	for i, b := range buckets {
		for _, r := range b.Ranges {
			blocked := false
			for _, tag := range excl[i] {
				if have[tag] {
					blocked = true
					break
				}
			}
			v := yaw
			if b.Axis == Pitch {
				v = pitch
			}
			if blocked || !r.contains(v) || have[b.Tag] {
				continue
			}
			have[b.Tag] = true
			tags = append(tags, b.Tag)
		}
	}
	return tags
}

// Classify returns the rotation state value placed for an entity with the
// given rotation. ok is false when the rotation matches no bucket, which
// cannot happen for pitch in [-90, 90] and yaw in [-180, 180].
func (s Scheme) Classify(pitch, yaw float64) (state int, ok bool) {
	tags := s.Tags(pitch, yaw)
	if len(tags) == 0 {
		return 0, false
	}
	for _, b := range s.Buckets() {
		if b.Tag == tags[0] {
			return b.State, true
		}
	}
	return 0, false
}

// Placement pairs a bucket tag with the rotation state it places.
type Placement struct {
	Tag   string
	State int
}

// Placements returns one placement per rotation state value, ordered by
// state.
func (s Scheme) Placements() []Placement {
	out := make([]Placement, s.Cardinality())
	for _, b := range s.Buckets() {
		out[b.State] = Placement{Tag: b.Tag, State: b.State}
	}
	return out
}
