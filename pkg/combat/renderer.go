package combat

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"duel-service/pkg/battle"
	"duel-service/pkg/utils"
)

const (
	CANVAS_W = 1024
	CANVAS_H = 687

	spriteW  = 260
	barW     = 240
	barH     = 18
	bannerW  = 573
	bannerH  = 118
	fontFile = "fantesy.ttf"
)

// Class colours for placeholder sprites.
var classColors = map[battle.Archetype]string{
	battle.Rogue: "#2ECC71",
	battle.Mage:  "#9B59B6",
}

// fighter anchor points (bottom-centre of the sprite) per seat
var anchors = [2]struct{ x, y float64 }{
	{280, 560},
	{744, 560},
}

// Renderer draws duel scenes. Missing art is replaced by flat shapes so a
// bare deployment still produces an image.
type Renderer struct {
	assets *utils.Assets
}

func NewRenderer(assets *utils.Assets) *Renderer {
	return &Renderer{assets: assets}
}

// Render draws sc onto a new canvas.
func (r *Renderer) Render(sc Scene) image.Image {
	dc := gg.NewContext(CANVAS_W, CANVAS_H)

	// 1. Background
	if bg, err := r.background(); err == nil {
		bg = imaging.Fill(bg, CANVAS_W, CANVAS_H, imaging.Center, imaging.Lanczos)
		dc.DrawImage(bg, 0, 0)
	} else {
		dc.SetHexColor("#1a1a1a")
		dc.Clear()
	}

	// Dark Overlay (40% black)
	dc.SetColor(color.RGBA{0, 0, 0, 102})
	dc.DrawRectangle(0, 0, CANVAS_W, CANVAS_H)
	dc.Fill()

	// 2. Fighters, back to front
	fighters := append([]Fighter(nil), sc.Fighters[:]...)
	sort.SliceStable(fighters, func(i, j int) bool {
		return anchors[fighters[i].Seat].y < anchors[fighters[j].Seat].y
	})
	for _, f := range fighters {
		r.drawFighter(dc, f)
	}

	// 3. Banner
	r.drawBanner(dc, sc.Banner())

	return dc.Image()
}

// RenderPNG renders sc and encodes it.
func (r *Renderer) RenderPNG(sc Scene) ([]byte, error) {
	return utils.EncodePNG(r.Render(sc))
}

func (r *Renderer) drawFighter(dc *gg.Context, f Fighter) {
	arch, err := battle.ParseArchetype(f.Class)
	if err != nil {
		arch = battle.Rogue
	}
	at := anchors[f.Seat]

	sprite, err := r.assets.Image(SpriteParts(f.Frame)...)
	if err != nil {
		sprite = placeholder(arch)
	}
	sprite = imaging.Resize(sprite, spriteW, 0, imaging.Lanczos)
	if f.Seat == battle.SeatTwo {
		sprite = imaging.FlipH(sprite)
	}
	if f.Defeated {
		sprite = utils.TintImage(sprite, color.RGBA{255, 0, 0, 100})
	}

	w, h := float64(sprite.Bounds().Dx()), float64(sprite.Bounds().Dy())
	utils.DrawShadow(dc, at.x, at.y-10, w*0.4, 0.6)
	dc.DrawImage(sprite, int(at.x-w/2), int(at.y-h))

	// Bars and name above the sprite
	bx := int(at.x - barW/2)
	by := int(at.y - h - 70)
	r.drawBar(dc, bx, by, f.HP, f.MaxHP, "hp", "#E74C3C")
	r.drawBar(dc, bx, by+barH+6, f.SP, f.MaxSP, "mana", "#3498DB")

	if face, err := r.assets.Font(28, "rpgasset", "ui", fontFile); err == nil {
		dc.SetFontFace(face)
	}
	dc.SetColor(color.White)
	label := fmt.Sprintf("%s (%s)  %d/%d", f.Name, f.Class, f.HP, f.SP)
	dc.DrawStringAnchored(label, at.x, float64(by)-16, 0.5, 0.5)
}

// drawBar stretches the ui strip matching how full the bar is, or draws a
// flat bar when the strip is missing.
func (r *Renderer) drawBar(dc *gg.Context, x, y, current, max int, typePrefix, fallback string) {
	if max <= 0 {
		max = 1
	}
	percent := math.Max(0, math.Min(1, float64(current)/float64(max)))

	spriteNum := int(math.Min(5, math.Max(1, math.Round(percent*4)+1)))
	img, err := r.assets.Image("rpgasset", "ui", fmt.Sprintf("%s%d.png", typePrefix, spriteNum))
	if err == nil {
		w := int(barW * percent)
		if w < 1 {
			w = 1
		}
		img = imaging.Resize(img, w, barH, imaging.NearestNeighbor)
		dc.DrawImage(img, x, y)
		return
	}

	dc.SetColor(color.RGBA{0, 0, 0, 153})
	dc.DrawRoundedRectangle(float64(x), float64(y), barW, barH, 4)
	dc.Fill()
	if percent > 0 {
		dc.SetHexColor(fallback)
		dc.DrawRoundedRectangle(float64(x), float64(y), barW*percent, barH, 4)
		dc.Fill()
	}
}

func (r *Renderer) drawBanner(dc *gg.Context, text string) {
	bx := float64(CANVAS_W-bannerW) / 2
	by := 17.0

	if img, err := r.assets.Image("rpgasset", "ui", "banner.png"); err == nil {
		dc.DrawImage(imaging.Resize(img, bannerW, bannerH, imaging.Lanczos), int(bx), int(by))
		dc.SetColor(color.Black)
	} else {
		dc.SetColor(color.RGBA{0, 0, 0, 179})
		dc.DrawRoundedRectangle(bx, by, bannerW, bannerH, 12)
		dc.Fill()
		dc.SetColor(color.White)
	}

	if face, err := r.assets.Font(70, "rpgasset", "ui", fontFile); err == nil {
		dc.SetFontFace(face)
	}
	dc.DrawStringAnchored(text, bx+bannerW/2, by+bannerH/2, 0.5, 0.5)
}

// background returns the first image in the environment folder.
func (r *Renderer) background() (image.Image, error) {
	dir := r.assets.Path("rpgasset", "environment")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".png", ".jpg", ".jpeg":
			return r.assets.Image("rpgasset", "environment", entry.Name())
		}
	}
	return nil, fmt.Errorf("no background in %s", dir)
}

// placeholder is a flat silhouette in the class colour.
func placeholder(a battle.Archetype) image.Image {
	dc := gg.NewContext(spriteW, spriteW)
	dc.SetColor(utils.ParseHexColor(classColors[a]))
	dc.DrawEllipse(spriteW/2, spriteW*0.22, spriteW*0.16, spriteW*0.16)
	dc.Fill()
	dc.DrawRoundedRectangle(spriteW*0.3, spriteW*0.4, spriteW*0.4, spriteW*0.58, 18)
	dc.Fill()
	return dc.Image()
}
