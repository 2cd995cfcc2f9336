package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hexfall/internal/render"
)

// 底部三个按钮：上一步、播放/暂停、下一步
var buttons = [...]image.Rectangle{
	image.Rect(10, WindowHeight-45, 110, WindowHeight-15),
	image.Rect(120, WindowHeight-45, 220, WindowHeight-15),
	image.Rect(230, WindowHeight-45, 330, WindowHeight-15),
}

// handleInput 键盘和鼠标
func (rs *ReplayScreen) handleInput() {
	// 空格：切换 播放/暂停
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		rs.toggle()
	}
	// 右方向：单步前进
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		rs.playing = false
		rs.advance()
	}
	// 左方向：单步后退
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		rs.playing = false
		rs.rewind()
	}
	// 上下：切换对局
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		rs.flash = nil
		rs.cursor.NextTrace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		rs.flash = nil
		rs.cursor.PrevTrace()
	}

	x, y := ebiten.CursorPosition()
	rs.updateHover(x, y)
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	p := image.Pt(x, y)
	switch {
	case p.In(buttons[0]):
		rs.playing = false
		rs.rewind()
	case p.In(buttons[1]):
		rs.toggle()
	case p.In(buttons[2]):
		rs.playing = false
		rs.advance()
	}
}

func (rs *ReplayScreen) toggle() {
	if !rs.playing && rs.cursor.AtEnd() {
		return
	}
	rs.playing = !rs.playing
}

// updateHover 把鼠标像素反算成格子坐标，棋盘外则清空
func (rs *ReplayScreen) updateHover(x, y int) {
	tf := rs.cursor.Trace()
	edge, ox, oy := boardTransform(tf.Width, tf.Height)
	o := render.CellAt(float64(x)-ox, float64(y)-oy, edge)
	if o.Col < 0 || o.Col >= tf.Width || o.Row < 0 || o.Row >= tf.Height {
		rs.hover = nil
		return
	}
	rs.hover = &o
}
