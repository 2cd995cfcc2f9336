package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hexfall/internal/hex"
	"hexfall/internal/render"
	"hexfall/internal/solution"
)

var (
	buttonColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
	flashColor  = color.RGBA{0xff, 0xe0, 0x40, 0xff}
)

// drawBoard 画出一帧：空格、已占格、下落中的方块
func drawBoard(dst *ebiten.Image, width, height int, st solution.Step, edge, ox, oy float64) {
	filled := make(map[hex.Offset]bool, len(st.Filled))
	for _, o := range st.Filled {
		filled[o] = true
	}
	falling := make(map[hex.Offset]bool, len(st.Unit))
	for _, o := range st.Unit {
		falling[o] = true
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			o := hex.Offset{Col: col, Row: row}
			fill := render.Free
			switch {
			case falling[o]:
				fill = render.Falling
			case filled[o]:
				fill = render.Filled
			}
			drawCell(dst, o, edge, ox, oy, fill)
		}
	}
}

// drawCell 内切圆填色，六条边描线
func drawCell(dst *ebiten.Image, o hex.Offset, edge, ox, oy float64, fill color.Color) {
	cx, cy := render.Center(o, edge)
	cx += ox
	cy += oy
	inner := float32(edge * math.Sqrt(3) / 2 * 0.9)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), inner, fill, true)

	for i := 0; i < 6; i++ {
		a0 := (30 + 60*float64(i)) * math.Pi / 180
		a1 := a0 + math.Pi/3
		vector.StrokeLine(dst,
			float32(cx+math.Cos(a0)*edge), float32(cy+math.Sin(a0)*edge),
			float32(cx+math.Cos(a1)*edge), float32(cy+math.Sin(a1)*edge),
			1, render.Outline, true)
	}
}

func drawFlash(dst *ebiten.Image, f *Flash, edge, ox, oy float64) {
	a := f.Alpha()
	c := color.RGBA{
		R: uint8(float64(flashColor.R) * a),
		G: uint8(float64(flashColor.G) * a),
		B: uint8(float64(flashColor.B) * a),
		A: uint8(255 * a),
	}
	for _, o := range f.Cells {
		cx, cy := render.Center(o, edge)
		vector.DrawFilledCircle(dst, float32(cx+ox), float32(cy+oy), float32(edge*0.4), c, true)
	}
}

// drawFooter 按钮和状态行
func (rs *ReplayScreen) drawFooter(dst *ebiten.Image) {
	labels := [...]string{"< prev", "play/pause", "next >"}
	for i, b := range buttons {
		vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y),
			float32(b.Dx()), float32(b.Dy()), buttonColor, false)
		ebitenutil.DebugPrintAt(dst, labels[i], b.Min.X+8, b.Min.Y+8)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(360, float64(WindowHeight-footerHeight+10))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, rs.status(), rs.face, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(360, float64(WindowHeight-footerHeight+30))
	op.ColorScale.ScaleWithColor(color.Gray{0xa0})
	text.Draw(dst, "space play  <- -> step  up/down game", rs.face, op)
}
