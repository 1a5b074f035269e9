package utils

import "math"

// PointToSegmentDistance 计算点 P 到线段 AB 的最短距离
//
// 将 P 投影到 AB 所在直线，投影参数 t 限制在 [0, 1] 内，
// 再求 P 到投影点的欧氏距离。线段长度为 0 时退化为点到点距离。
//
// 参数:
//   - px, py: 待测点坐标
//   - ax, ay: 线段起点
//   - bx, by: 线段终点
//
// 返回:
//   - float64: 最短距离（>= 0）
func PointToSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = Clamp(t, 0, 1)

	projX := ax + t*dx
	projY := ay + t*dy
	return math.Hypot(px-projX, py-projY)
}

// Distance 返回两点间的欧氏距离
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// Clamp 将 v 限制在 [lo, hi] 区间内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
