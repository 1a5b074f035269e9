package utils

// TotalWeight 返回权重之和，负权重按 0 计
func TotalWeight(weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	return total
}

// WeightedIndex 按累积权重选出一个索引
//
// 算法（必须保持不变，才能保证各项出现频率等于 weight/total）：
//  1. r 为 [0, total) 内的均匀随机数
//  2. 按顺序遍历，若 r < weight 则选中该项
//  3. 否则 r -= weight，继续下一项
//
// 所有项都未命中（仅在 r 越界或权重全为 0 时发生）返回 0，即默认项。
//
// 参数:
//   - weights: 各项权重，顺序即遍历顺序
//   - r: 抽取值，通常为 rng.Float64() * TotalWeight(weights)
//
// 返回:
//   - int: 选中项的下标
func WeightedIndex(weights []float64, r float64) int {
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return 0
}
