package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Assets loads images and fonts below a root directory and caches them so
// repeated renders do not hit the disk.
type Assets struct {
	root string

	mu     sync.RWMutex
	images map[string]image.Image
	fonts  map[string]*opentype.Font
}

func NewAssets(root string) *Assets {
	return &Assets{
		root:   root,
		images: make(map[string]image.Image),
		fonts:  make(map[string]*opentype.Font),
	}
}

func (a *Assets) Root() string {
	return a.root
}

// Path joins parts below the asset root.
func (a *Assets) Path(parts ...string) string {
	return filepath.Join(append([]string{a.root}, parts...)...)
}

// Image loads an image from disk or cache
func (a *Assets) Image(parts ...string) (image.Image, error) {
	path := a.Path(parts...)

	a.mu.RLock()
	if img, ok := a.images[path]; ok {
		a.mu.RUnlock()
		return img, nil
	}
	a.mu.RUnlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.images[path] = img
	a.mu.Unlock()

	return img, nil
}

// Font returns a face of the given size for a TTF/OTF file. The parsed font
// is cached, faces are not.
func (a *Assets) Font(size float64, parts ...string) (font.Face, error) {
	path := a.Path(parts...)

	a.mu.RLock()
	ft, ok := a.fonts[path]
	a.mu.RUnlock()

	if !ok {
		fontBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ft, err = opentype.Parse(fontBytes)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.fonts[path] = ft
		a.mu.Unlock()
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// ParseHexColor converts hex string to color.RGBA
func ParseHexColor(s string) color.RGBA {
	c := color.RGBA{0, 0, 0, 255}
	switch len(s) {
	case 7:
		fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c
}

// DrawShadow draws a radial shadow
func DrawShadow(dc *gg.Context, x, y, radius float64, alpha float64) {
	grad := gg.NewRadialGradient(x, y, 0, x, y, radius)
	grad.AddColorStop(0, color.RGBA{0, 0, 0, uint8(alpha * 255)})
	grad.AddColorStop(1, color.RGBA{0, 0, 0, 0})
	dc.SetFillStyle(grad)
	dc.DrawCircle(x, y, radius)
	dc.Fill()
}

// TintImage blends tint over every non-transparent pixel (used for defeated
// fighters).
func TintImage(img image.Image, tint color.RGBA) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := dst.At(x, y)
			if _, _, _, a := c.RGBA(); a > 0 {
				dst.Set(x, y, Blend(c, tint))
			}
		}
	}
	return dst
}

// Blend mixes tint into base by the tint's alpha, keeping base's alpha.
func Blend(base color.Color, tint color.RGBA) color.Color {
	r1, g1, b1, a1 := base.RGBA()
	r1 >>= 8
	g1 >>= 8
	b1 >>= 8
	a1 >>= 8

	alpha := float64(tint.A) / 255.0
	r := uint8(float64(r1)*(1-alpha) + float64(tint.R)*alpha)
	g := uint8(float64(g1)*(1-alpha) + float64(tint.G)*alpha)
	b := uint8(float64(b1)*(1-alpha) + float64(tint.B)*alpha)

	return color.RGBA{r, g, b, uint8(a1)}
}

// EncodePNG returns PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
