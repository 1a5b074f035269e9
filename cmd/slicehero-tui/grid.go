package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/utils"
)

// grid 终端字符格与画布坐标之间的换算
// 每个字符格对应画布上 cellW x cellH 的矩形
type grid struct {
	cols, rows   int
	cellW, cellH float64
}

func newGrid(cols, rows int, canvasW, canvasH float64) grid {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return grid{
		cols:  cols,
		rows:  rows,
		cellW: canvasW / float64(cols),
		cellH: canvasH / float64(rows),
	}
}

// toCell 画布坐标所在的字符格，可能超出屏幕范围
func (g grid) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / g.cellW)), int(math.Floor(y / g.cellH))
}

// toCanvas 字符格中心的画布坐标
func (g grid) toCanvas(col, row int) components.Point {
	return components.Point{
		X: (float64(col) + 0.5) * g.cellW,
		Y: (float64(row) + 0.5) * g.cellH,
	}
}

func (g grid) contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

// cellsInCircle 返回圆覆盖的全部字符格（以格中心判定）
// 圆小于一个格时至少返回圆心所在的格
func (g grid) cellsInCircle(cx, cy, r float64) [][2]int {
	c0, r0 := g.toCell(cx-r, cy-r)
	c1, r1 := g.toCell(cx+r, cy+r)

	var cells [][2]int
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.contains(col, row) {
				continue
			}
			p := g.toCanvas(col, row)
			if math.Hypot(p.X-cx, p.Y-cy) <= r {
				cells = append(cells, [2]int{col, row})
			}
		}
	}
	if len(cells) == 0 {
		if col, row := g.toCell(cx, cy); g.contains(col, row) {
			cells = append(cells, [2]int{col, row})
		}
	}
	return cells
}

// lineCells 用 DDA 光栅化画布上的线段
func (g grid) lineCells(a, b components.Point) [][2]int {
	c0, r0 := g.toCell(a.X, a.Y)
	c1, r1 := g.toCell(b.X, b.Y)
	steps := max(abs(c1-c0), abs(r1-r0))

	cells := make([][2]int, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		if g.contains(col, row) {
			cells = append(cells, [2]int{col, row})
		}
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// toTcell 转换为终端真彩色
func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fade 按生命值把颜色向黑色衰减，终端没有透明度
func fade(c color.RGBA, life float64) tcell.Color {
	life = utils.Clamp(life, 0, 1)
	return tcell.NewRGBColor(
		int32(float64(c.R)*life),
		int32(float64(c.G)*life),
		int32(float64(c.B)*life),
	)
}
