// Package timeline draws the turn log of a match as a grid, one cell per
// turn, read left to right and top to bottom.
package timeline

import (
	"image"
	"strconv"

	"github.com/fogleman/gg"

	"duel-service/pkg/battle"
	"duel-service/pkg/utils"
)

const (
	DefaultColumns = 10
	cellSize       = 64.0
)

var (
	BgColor   = utils.ParseHexColor("#ECF0F1")
	GridColor = utils.ParseHexColor("#34495E")
	Highlight = utils.ParseHexColor("#F39C12")

	// seat colours
	SeatColors = [2]string{"#E74C3C", "#3498DB"}
)

// Render draws turns into a grid of the given width. A basic action is a
// ring, a special a filled disc and a forfeit a cross, all in the actor's
// seat colour. The last turn is highlighted.
func Render(turns []battle.Turn, columns int) image.Image {
	if columns <= 0 {
		columns = DefaultColumns
	}
	rows := (len(turns) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}
	w, h := float64(columns)*cellSize, float64(rows)*cellSize

	dc := gg.NewContext(int(w), int(h))
	dc.SetColor(BgColor)
	dc.Clear()

	// 1. Highlight Last Move
	if n := len(turns); n > 0 {
		row, col := (n-1)/columns, (n-1)%columns
		dc.SetColor(Highlight)
		dc.DrawRectangle(float64(col)*cellSize, float64(row)*cellSize, cellSize, cellSize)
		dc.Fill()
	}

	// 2. Draw Grid
	dc.SetColor(GridColor)
	dc.SetLineWidth(2)
	for i := 1; i < columns; i++ {
		pos := float64(i) * cellSize
		dc.DrawLine(pos, 0, pos, h)
	}
	for i := 1; i < rows; i++ {
		pos := float64(i) * cellSize
		dc.DrawLine(0, pos, w, pos)
	}
	dc.Stroke()

	// 3. Draw Symbols
	for i, t := range turns {
		cx := float64(i%columns)*cellSize + cellSize/2
		cy := float64(i/columns)*cellSize + cellSize/2
		radius := cellSize * 0.3

		seat := 0
		if t.Seat == battle.SeatTwo {
			seat = 1
		}
		dc.SetHexColor(SeatColors[seat])
		dc.SetLineWidth(6)

		switch {
		case t.Forfeit:
			dc.DrawLine(cx-radius, cy-radius, cx+radius, cy+radius)
			dc.DrawLine(cx+radius, cy-radius, cx-radius, cy+radius)
			dc.Stroke()
		case t.Action == battle.Special:
			dc.DrawCircle(cx, cy, radius)
			dc.Fill()
		default:
			dc.DrawCircle(cx, cy, radius)
			dc.Stroke()
		}

		dc.SetColor(GridColor)
		dc.DrawStringAnchored(strconv.Itoa(t.Number), cx-cellSize/2+4, cy-cellSize/2+4, 0, 1)
	}

	return dc.Image()
}

// RenderPNG renders turns and encodes the result.
func RenderPNG(turns []battle.Turn, columns int) ([]byte, error) {
	return utils.EncodePNG(Render(turns, columns))
}
