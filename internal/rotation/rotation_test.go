package rotation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardinalities(t *testing.T) {
	var got []int
	for _, s := range Schemes() {
		got = append(got, s.Cardinality())
	}
	assert.Equal(t, []int{3, 2, 4, 6, 3, 2, 4, 6}, got)
	assert.Equal(t, 0, None.Cardinality())
}

func TestParseScheme(t *testing.T) {
	for _, s := range Schemes() {
		parsed, err := ParseScheme(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseScheme("rotate_sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "align_front_xyz")
	assert.Contains(t, err.Error(), "rotate_top_both")

	_, err = ParseScheme("")
	assert.Error(t, err)
}

func TestMembersUseReferenceFace(t *testing.T) {
	assert.Equal(t, []Orientation{XPFront, YPFront, ZPFront}, AlignFrontXYZ.Members())
	assert.Equal(t, []Orientation{XPTop, ZPTop}, AlignTopXZ.Members())
	assert.Equal(t, []Orientation{XPFront, XMFront, ZPFront, ZMFront}, RotateFrontVertical.Members())
	assert.Equal(t, []Orientation{XPTop, XMTop, YPTop, YMTop, ZPTop, ZMTop}, RotateTopBoth.Members())
	assert.Equal(t, [3]int{0, 180, 0}, ZPFront.Transform())
	assert.Equal(t, [3]int{0, 0, -90}, XPTop.Transform())
}

func TestStateAndPermutations(t *testing.T) {
	for _, s := range Schemes() {
		t.Run(s.String(), func(t *testing.T) {
			max, ok := document.Lookup(s.State(), "values", "max")
			require.True(t, ok)
			assert.Equal(t, document.Int(s.Cardinality()-1), max)

			perms := s.Permutations("ns")
			require.Len(t, perms, s.Cardinality())

			// Exactly one guard matches every concrete state value.
			for value := 0; value < s.Cardinality(); value++ {
				matches := 0
				for _, p := range perms {
					cond, _ := document.Lookup(p, "condition")
					text, _ := cond.(document.Scalar).AsString()
					if text == fmt.Sprintf("q.block_property('ns:rotation') == %d", value) {
						matches++
					}
				}
				assert.Equal(t, 1, matches, "state value %d", value)
			}

			rot, ok := document.Lookup(perms[0], "components", "minecraft:transformation", "rotation")
			require.True(t, ok)
			want := s.Members()[0].Transform()
			assert.True(t, document.Equal(document.ArrayOf(want[0], want[1], want[2]), rot))
		})
	}
}

func TestClassify_ExactlyOneBucketEverywhere(t *testing.T) {
	for _, s := range Schemes() {
		t.Run(s.String(), func(t *testing.T) {
			placements := s.Placements()
			for pitch := -90.0; pitch <= 90; pitch += 2.5 {
				for yaw := -179.5; yaw <= 180; yaw += 2.5 {
					tags := s.Tags(pitch, yaw)
					fired := 0
					for _, p := range placements {
						for _, tag := range tags {
							if tag == p.Tag {
								fired++
							}
						}
					}
					require.Equal(t, 1, fired, "pitch=%v yaw=%v tags=%v", pitch, yaw, tags)

					_, ok := s.Classify(pitch, yaw)
					require.True(t, ok)
				}
			}
		})
	}
}

func TestClassify_PitchBeforeYawAndBoundaries(t *testing.T) {
	testCases := []struct {
		scheme     Scheme
		pitch, yaw float64
		want       int
	}{
		{RotateFrontBoth, -75, 0, 2},  // looking up wins over the north yaw bucket
		{RotateFrontBoth, 75, 0, 3},   // looking down
		{RotateFrontBoth, 0, 180, 5},  // zm
		{RotateFrontBoth, 0, -180, 5}, // zm
		{RotateFrontBoth, 0, 45, 4},   // boundary goes to the earlier bucket (zp)
		{RotateFrontBoth, 0, 90, 1},   // xm
		{RotateFrontBoth, 0, -90, 0},  // xp
		{AlignFrontXYZ, 60, 90, 1},    // y_aligned
		{AlignFrontXYZ, 0, 135, 2},    // z_aligned
		{AlignFrontXYZ, 0, 100, 0},    // x_aligned
		{AlignTopXZ, -89, 10, 1},      // no pitch buckets
		{RotateTopVertical, 0, 135, 3},
		{RotateTopVertical, 0, -45, 2},
	}
	for _, tc := range testCases {
		got, ok := tc.scheme.Classify(tc.pitch, tc.yaw)
		require.True(t, ok)
		assert.Equal(t, tc.want, got, "%s pitch=%v yaw=%v", tc.scheme, tc.pitch, tc.yaw)
	}
}

func TestTagCommands(t *testing.T) {
	cmds := RotateFrontBoth.TagCommands()
	assert.Equal(t, []string{
		"/tag @s[rxm=-90,rx=-60] add yp",
		"/tag @s[tag=!yp,rxm=60,rx=90] add ym",
		"/tag @s[tag=!yp,tag=!ym,rym=135,ry=180] add zm",
		"/tag @s[tag=!yp,tag=!ym,rym=-180,ry=-135] add zm",
		"/tag @s[tag=!yp,tag=!ym,tag=!zm,rym=-45,ry=45] add zp",
		"/tag @s[tag=!yp,tag=!ym,tag=!zm,tag=!zp,rym=45,ry=135] add xm",
		"/tag @s[tag=!yp,tag=!ym,tag=!zm,tag=!zp,tag=!xm,rym=-135,ry=-45] add xp",
	}, cmds)

	for _, cmd := range AlignFrontXZ.TagCommands() {
		assert.False(t, strings.Contains(cmd, "rxm"), "align_xz never tests pitch: %s", cmd)
	}
	assert.Empty(t, None.TagCommands())
}

func TestPlacementsOrderedByState(t *testing.T) {
	assert.Equal(t, []Placement{
		{Tag: "xp", State: 0}, {Tag: "xm", State: 1}, {Tag: "yp", State: 2},
		{Tag: "ym", State: 3}, {Tag: "zp", State: 4}, {Tag: "zm", State: 5},
	}, RotateTopBoth.Placements())
	assert.Equal(t, []Placement{
		{Tag: "x_aligned", State: 0}, {Tag: "y_aligned", State: 1}, {Tag: "z_aligned", State: 2},
	}, AlignFrontXYZ.Placements())
}
