package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// Decode loads a PNG or JPEG stream into a MemImage. This is the one place
// the package touches the standard library's codec packages; decode/encode
// is a host collaborator concern, out of the engine's core scope, so this
// lives beside, not inside, the engine packages. It is called from
// cmd/morphology and internal/server.
func Decode(r io.Reader) (*MemImage, error) {
	src, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return fromStdImage(src), nil
}

func fromStdImage(src stdimage.Image) *MemImage {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	hasAlpha := probeAlpha(src)

	out := New(w, h, hasAlpha)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, Pixel{
				R:        float64(r>>8) * QMax / 255,
				G:        float64(g>>8) * QMax / 255,
				B:        float64(b>>8) * QMax / 255,
				A:        float64(a>>8) * QMax / 255,
				HasAlpha: hasAlpha,
			})
		}
	}
	return out
}

// probeAlpha reports whether the underlying colour model carries an alpha
// channel distinct from full-opaque.
func probeAlpha(src stdimage.Image) bool {
	switch src.ColorModel() {
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model:
		return true
	default:
		return false
	}
}

// EncodeFormat selects the output codec by file extension.
func EncodeFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return "png"
	}
}

// Encode writes m to w using the named format ("png" or "jpeg").
func Encode(w io.Writer, m *MemImage, format string) error {
	img := toStdImage(m)
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(w, img)
	}
}

func toStdImage(m *MemImage) stdimage.Image {
	out := stdimage.NewNRGBA(stdimage.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := m.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: toByte(p.R),
				G: toByte(p.G),
				B: toByte(p.B),
				A: toByte(p.A),
			})
		}
	}
	return out
}

// DecodeBytes is Decode over an in-memory buffer, for callers (such as the
// wasm build) without an io.Reader handy.
func DecodeBytes(b []byte) (*MemImage, error) {
	return Decode(bytes.NewReader(b))
}

// EncodeBytes is Encode into an in-memory buffer.
func EncodeBytes(m *MemImage, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toByte(v float64) uint8 {
	scaled := v * 255 / QMax
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled + 0.5)
}
