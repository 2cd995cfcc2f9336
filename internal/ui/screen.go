// Package ui is the ebiten window that replays recorded games.
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"hexfall/internal/hex"
	"hexfall/internal/render"
	"hexfall/internal/replay"
	"hexfall/internal/solution"
)

const (
	// 窗口尺寸
	WindowWidth  = 800
	WindowHeight = 600
	// 底部状态栏和按钮的高度
	footerHeight = 60
)

// ReplayScreen 实现 ebiten.Game 接口，逐帧回放轨迹
type ReplayScreen struct {
	cursor      *replay.Cursor
	playing     bool // 是否自动播放
	delay       time.Duration
	lastAdvance time.Time
	flash       *Flash      // 最近一次锁定留下的格子
	hover       *hex.Offset // 鼠标所在的格子
	face        *text.GoXFace
	offscreen   *ebiten.Image
}

// NewReplayScreen builds a screen over the given traces.
func NewReplayScreen(traces []*solution.TraceFile, delay time.Duration) (*ReplayScreen, error) {
	cur := replay.NewCursor(traces)
	if cur.Empty() {
		return nil, fmt.Errorf("no steps to replay")
	}
	return &ReplayScreen{
		cursor:      cur,
		delay:       delay,
		lastAdvance: time.Now(),
		face:        text.NewGoXFace(basicfont.Face7x13),
		offscreen:   ebiten.NewImage(WindowWidth, WindowHeight),
	}, nil
}

// Update 每帧：处理输入，然后按间隔自动前进
func (rs *ReplayScreen) Update() error {
	rs.handleInput()
	if rs.playing && time.Since(rs.lastAdvance) >= rs.delay {
		if !rs.advance() {
			rs.playing = false
		}
	}
	return nil
}

// advance 前进一帧；若这一帧锁定了方块就启动闪烁
func (rs *ReplayScreen) advance() bool {
	rs.lastAdvance = time.Now()
	if !rs.cursor.Next() {
		return false
	}
	if cells := rs.cursor.NewlyFilled(); len(cells) > 0 {
		rs.flash = NewFlash(cells, time.Now(), 3*rs.delay)
	}
	return true
}

func (rs *ReplayScreen) rewind() {
	rs.lastAdvance = time.Now()
	rs.flash = nil
	rs.cursor.Prev()
}

// Draw 先画到 offscreen，再等比缩放到窗口
func (rs *ReplayScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	rs.offscreen.Fill(color.RGBA{0x10, 0x10, 0x30, 0xff})

	tf := rs.cursor.Trace()
	edge, ox, oy := boardTransform(tf.Width, tf.Height)
	drawBoard(rs.offscreen, tf.Width, tf.Height, rs.cursor.Step(), edge, ox, oy)
	if rs.flash != nil {
		if rs.flash.Done(time.Now()) {
			rs.flash = nil
		} else {
			drawFlash(rs.offscreen, rs.flash, edge, ox, oy)
		}
	}
	rs.drawFooter(rs.offscreen)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(w)/WindowWidth, float64(h)/WindowHeight)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(w)-WindowWidth*scale)/2, (float64(h)-WindowHeight*scale)/2)
	screen.DrawImage(rs.offscreen, op)
}

// Layout 固定逻辑分辨率
func (rs *ReplayScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

func (rs *ReplayScreen) status() string {
	tf := rs.cursor.Trace()
	ti, si := rs.cursor.Index()
	st := rs.cursor.Step()
	state := map[bool]string{true: "playing", false: "paused"}[rs.playing]
	if st.Over {
		state = "game over"
	}
	s := fmt.Sprintf("problem %d seed %d (%d/%d)  step %d/%d  score %d  [%s]",
		tf.ProblemID, tf.Seed, ti+1, rs.cursor.Len(), si, len(tf.Steps)-1, st.Score, state)
	if st.Command != "" {
		s += "  " + st.Command
	}
	if rs.hover != nil {
		s += fmt.Sprintf("  cell (%d,%d)", rs.hover.Col, rs.hover.Row)
	}
	return s
}

// boardTransform 返回六边形边长以及棋盘左上角在 offscreen 中的位置
func boardTransform(width, height int) (edge, originX, originY float64) {
	areaH := float64(WindowHeight - footerHeight)
	edge = math.Min(
		WindowWidth/((float64(width)+0.5)*math.Sqrt(3)),
		areaH/(float64(height)*1.5+0.5),
	)
	w, h := render.Size(width, height, edge)
	originX = (WindowWidth - float64(w)) / 2
	originY = (areaH - float64(h)) / 2
	return edge, originX, originY
}
