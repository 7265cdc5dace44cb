// Package rotation holds the static orientation data of rotatable blocks:
// twelve named orientations, the eight rotation schemes built from them, and
// the runtime logic that sorts a placing entity's facing into one of a
// scheme's orientation buckets.
package rotation

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blockgen/internal/document"
)

// Orientation names a block orientation by the axis and sign it faces and
// by whether the model's front or top is the reference.
type Orientation string

const (
	ZPFront Orientation = "zp_front"
	ZMFront Orientation = "zm_front"
	YPFront Orientation = "yp_front"
	YMFront Orientation = "ym_front"
	XPFront Orientation = "xp_front"
	XMFront Orientation = "xm_front"

	ZPTop Orientation = "zp_top"
	ZMTop Orientation = "zm_top"
	YPTop Orientation = "yp_top"
	YMTop Orientation = "ym_top"
	XPTop Orientation = "xp_top"
	XMTop Orientation = "xm_top"
)

var transforms = map[Orientation][3]int{
	ZPFront: {0, 180, 0},
	ZMFront: {0, 0, 0},
	YPFront: {90, 0, 0},
	YMFront: {-90, 0, 0},
	XPFront: {0, -90, 0},
	XMFront: {0, 90, 0},

	ZPTop: {90, 0, 0},
	ZMTop: {-90, 0, 0},
	YPTop: {0, 0, 0},
	YMTop: {180, 0, 0},
	XPTop: {0, 0, -90},
	XMTop: {0, 0, 90},
}

// Transform returns the x/y/z rotation applied by the block's
// minecraft:transformation component for o.
func (o Orientation) Transform() [3]int {
	return transforms[o]
}

// Scheme is one of the eight rotation schemes, or None.
type Scheme int

const (
	None Scheme = iota
	AlignFrontXYZ
	AlignFrontXZ
	RotateFrontVertical
	RotateFrontBoth
	AlignTopXYZ
	AlignTopXZ
	RotateTopVertical
	RotateTopBoth
)

var schemeNames = []string{
	AlignFrontXYZ:       "align_front_xyz",
	AlignFrontXZ:        "align_front_xz",
	RotateFrontVertical: "rotate_front_vertical",
	RotateFrontBoth:     "rotate_front_both",
	AlignTopXYZ:         "align_top_xyz",
	AlignTopXZ:          "align_top_xz",
	RotateTopVertical:   "rotate_top_vertical",
	RotateTopBoth:       "rotate_top_both",
}

// Schemes lists every scheme except None in declaration order.
func Schemes() []Scheme {
	return []Scheme{
		AlignFrontXYZ, AlignFrontXZ, RotateFrontVertical, RotateFrontBoth,
		AlignTopXYZ, AlignTopXZ, RotateTopVertical, RotateTopBoth,
	}
}

// Names lists the accepted rotation_type values.
func Names() []string {
	return schemeNames[1:]
}

// ParseScheme maps a rotation_type value to its Scheme.
func ParseScheme(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if i > 0 && n == name {
			return Scheme(i), nil
		}
	}
	return None, fmt.Errorf("the rotation_type property must be one of the following: %s or undefined", strings.Join(Names(), ", "))
}

func (s Scheme) String() string {
	if s <= None || int(s) >= len(schemeNames) {
		return "none"
	}
	return schemeNames[s]
}

// family groups schemes that share bucketing logic and only differ in the
// reference face of their orientations.
type family int

const (
	familyAlignXYZ family = iota
	familyAlignXZ
	familyRotateVertical
	familyRotateBoth
)

func (s Scheme) family() family {
	switch s {
	case AlignFrontXYZ, AlignTopXYZ:
		return familyAlignXYZ
	case AlignFrontXZ, AlignTopXZ:
		return familyAlignXZ
	case RotateFrontVertical, RotateTopVertical:
		return familyRotateVertical
	}
	return familyRotateBoth
}

func (s Scheme) top() bool {
	return s >= AlignTopXYZ
}

// Members returns the orientations of s; the position of each member is the
// value of the rotation state that selects it.
func (s Scheme) Members() []Orientation {
	if s == None {
		return nil
	}
	pick := func(front, top Orientation) Orientation {
		if s.top() {
			return top
		}
		return front
	}
	var (
		xp = pick(XPFront, XPTop)
		xm = pick(XMFront, XMTop)
		yp = pick(YPFront, YPTop)
		ym = pick(YMFront, YMTop)
		zp = pick(ZPFront, ZPTop)
		zm = pick(ZMFront, ZMTop)
	)
	switch s.family() {
	case familyAlignXYZ:
		return []Orientation{xp, yp, zp}
	case familyAlignXZ:
		return []Orientation{xp, zp}
	case familyRotateVertical:
		return []Orientation{xp, xm, zp, zm}
	}
	return []Orientation{xp, xm, yp, ym, zp, zm}
}

// Cardinality is the number of values of the rotation state.
func (s Scheme) Cardinality() int {
	return len(s.Members())
}

// StateName returns the fully qualified name of the rotation state.
func StateName(namespace string) string {
	return namespace + ":rotation"
}

// State returns the rotation state definition: {"values": {"min": 0, "max": n-1}}.
func (s Scheme) State() *document.Object {
	return document.ObjectOf("values", document.ObjectOf("min", 0, "max", s.Cardinality()-1))
}

// Condition returns the Molang guard selecting rotation state value i.
func Condition(namespace string, i int) string {
	return fmt.Sprintf("q.block_property('%s') == %d", StateName(namespace), i)
}

// Permutations returns one permutation per member, guarded by its state
// value and applying the member's transform.
func (s Scheme) Permutations(namespace string) []*document.Object {
	members := s.Members()
	out := make([]*document.Object, 0, len(members))
	for i, o := range members {
		r := o.Transform()
		out = append(out, document.ObjectOf(
			"condition", Condition(namespace, i),
			"components", document.ObjectOf(
				"minecraft:transformation", document.ObjectOf(
					"rotation", []int{r[0], r[1], r[2]},
				),
			),
		))
	}
	return out
}
