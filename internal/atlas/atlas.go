// Package atlas composes the texture of a generated cube attachable from
// six face images.
//
// The faces are laid out as a cube net twice as wide as it is high:
//
//	         +------+------+
//	         |  up  | down |
//	+------+------+------+------+
//	| west | north| east | south|
//	+------+------+------+------+
package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/specialistvlad/blockgen/internal/generr"
)

// Side names a cube face.
type Side string

const (
	North Side = "north"
	South Side = "south"
	East  Side = "east"
	West  Side = "west"
	Up    Side = "up"
	Down  Side = "down"
)

// AllSides lists the faces in the order they are reported in errors.
var AllSides = []Side{North, South, East, West, Up, Down}

// Sides maps each face to the file holding its image. It is comparable, so
// it can key a cache of generated atlases.
type Sides struct {
	North, South, East, West, Up, Down string
}

// Get returns the file of side s.
func (s Sides) Get(side Side) string {
	switch side {
	case North:
		return s.North
	case South:
		return s.South
	case East:
		return s.East
	case West:
		return s.West
	case Up:
		return s.Up
	case Down:
		return s.Down
	}
	return ""
}

// Set stores the file of side s.
func (s *Sides) Set(side Side, path string) {
	switch side {
	case North:
		s.North = path
	case South:
		s.South = path
	case East:
		s.East = path
	case West:
		s.West = path
	case Up:
		s.Up = path
	case Down:
		s.Down = path
	}
}

// Codec reads and writes images.
type Codec interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

// PNG is the Codec for PNG files.
type PNG struct{}

func (PNG) Decode(r io.Reader) (image.Image, error) { return png.Decode(r) }

func (PNG) Encode(w io.Writer, img image.Image) error { return png.Encode(w, img) }

// offset returns the top-left corner of side in an atlas of face edge w.
func offset(side Side, w int) image.Point {
	switch side {
	case West:
		return image.Pt(0, w)
	case North:
		return image.Pt(w, w)
	case East:
		return image.Pt(2*w, w)
	case South:
		return image.Pt(3*w, w)
	case Up:
		return image.Pt(w, 0)
	}
	return image.Pt(2*w, 0) // Down
}

// Compose builds the atlas from six decoded faces. All faces must be
// squares of the same size; the result is 4w by 2w.
func Compose(faces map[Side]image.Image) (*image.NRGBA, error) {
	first, ok := faces[AllSides[0]]
	if !ok {
		return nil, fmt.Errorf("missing the %s face", AllSides[0])
	}
	w, h := first.Bounds().Dx(), first.Bounds().Dy()
	if w != h {
		return nil, fmt.Errorf("the %s face is %dx%d; faces must be square", AllSides[0], w, h)
	}
	for _, side := range AllSides[1:] {
		img, ok := faces[side]
		if !ok {
			return nil, fmt.Errorf("missing the %s face", side)
		}
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			return nil, fmt.Errorf("the %s face is %dx%d; all faces must be %dx%d", side, b.Dx(), b.Dy(), w, h)
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, 4*w, 2*w))
	for _, side := range AllSides {
		img := faces[side]
		at := offset(side, w)
		draw.Draw(out, image.Rectangle{Min: at, Max: at.Add(image.Pt(w, w))}, img, img.Bounds().Min, draw.Src)
	}
	return out, nil
}

// Build decodes the six faces named by sides and composes them.
func Build(codec Codec, sides Sides) (*image.NRGBA, error) {
	faces := make(map[Side]image.Image, len(AllSides))
	for _, side := range AllSides {
		path := sides.Get(side)
		img, err := decodeFile(codec, path)
		if err != nil {
			return nil, generr.IOErr("Failed to open the %q texture of the cube attachable.", side).At(path, nil).Wrap(err)
		}
		faces[side] = img
	}
	out, err := Compose(faces)
	if err != nil {
		return nil, generr.Shape("The textures of a cube attachable must be squares of the same size.").
			At(sides.North, nil).Wrap(err)
	}
	return out, nil
}

func decodeFile(codec Codec, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.Decode(f)
}
