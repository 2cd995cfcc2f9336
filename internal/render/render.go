// Package render draws boards as PNG images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"hexfall/internal/game"
	"hexfall/internal/hex"
)

// 配色
var (
	Background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Outline    = color.RGBA{0x20, 0x20, 0x20, 0xff}
	Free       = color.RGBA{0xf4, 0xf1, 0xe8, 0xff}
	Filled     = color.RGBA{0xd0, 0x3a, 0x2f, 0xff}
	Falling    = color.RGBA{0x2f, 0x6f, 0xd0, 0xff}
)

var sqrt3 = math.Sqrt(3)

// Center returns the pixel centre of a cell for hexagons of the given edge
// length. Odd rows sit half a cell to the left.
func Center(o hex.Offset, edge float64) (float64, float64) {
	x := (float64(o.Col) + 1 - 0.5*float64(o.Row&1)) * sqrt3 * edge
	y := float64(o.Row)*1.5*edge + edge
	return x, y
}

// CellAt is the inverse of Center: the offset of the cell containing the
// pixel (x, y). The result may lie outside the board.
func CellAt(x, y, edge float64) hex.Offset {
	zf := (y - edge) / (1.5 * edge)
	xf := x/(sqrt3*edge) - 1 - zf/2
	yf := -xf - zf
	rx, ry, _ := cubeRound(xf, yf, zf)
	return hex.New(rx, ry).Offset()
}

// cubeRound 把浮点立方坐标取整到最近的格子
func cubeRound(xf, yf, zf float64) (int, int, int) {
	rx := math.Round(xf)
	ry := math.Round(yf)
	rz := math.Round(zf)

	dx := math.Abs(rx - xf)
	dy := math.Abs(ry - yf)
	dz := math.Abs(rz - zf)

	if dx >= dy && dx >= dz {
		rx = -ry - rz
	} else if dy >= dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return int(rx), int(ry), int(rz)
}

// Size returns the image size for a width × height board.
func Size(width, height int, edge float64) (int, int) {
	w := math.Ceil((float64(width) + 0.5) * sqrt3 * edge)
	h := math.Ceil((float64(height)*1.5 + 0.5) * edge)
	return int(w), int(h)
}

// Board draws b with the cells of u highlighted (u may be nil).
func Board(b *game.Board, u *game.Unit, edge float64) *image.RGBA {
	w, h := Size(b.Width(), b.Height(), edge)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	falling := map[hex.Offset]bool{}
	if u != nil {
		for _, o := range u.Offsets() {
			falling[o] = true
		}
	}

	r := vector.NewRasterizer(w, h)
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			o := hex.Offset{Col: col, Row: row}
			fill := Free
			switch {
			case falling[o]:
				fill = Falling
			case b.Filled(o):
				fill = Filled
			}
			cx, cy := Center(o, edge)
			polygon(r, img, cx, cy, edge, Outline)
			polygon(r, img, cx, cy, edge-1, fill)
		}
	}
	return img
}

// polygon 用光栅器填充一个尖顶六边形
func polygon(r *vector.Rasterizer, dst draw.Image, cx, cy, edge float64, c color.Color) {
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
	for i := 0; i < 6; i++ {
		a := (30 + 60*float64(i)) * math.Pi / 180
		x := float32(cx + math.Cos(a)*edge)
		y := float32(cy + math.Sin(a)*edge)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// WritePNG renders b to path.
func WritePNG(path string, b *game.Board, u *game.Unit, edge float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, Board(b, u, edge)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
