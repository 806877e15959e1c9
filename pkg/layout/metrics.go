package layout

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FixedMetrics measures text with a constant advance per rune. It needs no
// font data, which makes it the metrics of choice in tests and for
// character-cell rendering surfaces.
type FixedMetrics struct {
	Advance float64
	Height  float64
}

func (m FixedMetrics) StringWidth(s string) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * m.Advance
}

func (m FixedMetrics) LineHeight() float64 { return m.Height }

// FaceMetrics measures text with a real font face, yielding pixel-accurate
// geometry for raster and vector surfaces.
type FaceMetrics struct {
	face font.Face
}

// NewFaceMetrics wraps an existing font face.
func NewFaceMetrics(face font.Face) *FaceMetrics {
	return &FaceMetrics{face: face}
}

// GoRegular returns metrics backed by the Go Regular typeface at the given
// size in points.
func GoRegular(size float64) (*FaceMetrics, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &FaceMetrics{face: truetype.NewFace(f, &truetype.Options{Size: size})}, nil
}

func (m *FaceMetrics) StringWidth(s string) float64 {
	return float64(font.MeasureString(m.face, s)) / 64
}

func (m *FaceMetrics) LineHeight() float64 {
	return float64(m.face.Metrics().Height) / 64
}
