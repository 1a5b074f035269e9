package types

import "image/color"

// CategoryData 类别关联的常量数据
type CategoryData struct {
	Score  int        // 切中得分（炸弹为负）
	Radius float64    // 碰撞半径（像素）
	Weight float64    // 生成权重
	Color  color.RGBA // 粒子/绘制颜色
}

// CategoryTable 以类别为下标的数据表
type CategoryTable [NumCategories]CategoryData

// Get 返回类别的数据，越界时返回默认类别
func (t CategoryTable) Get(c Category) CategoryData {
	if c < 0 || c >= NumCategories {
		return t[DefaultCategory]
	}
	return t[c]
}

// Weights 按表顺序返回权重列表
func (t CategoryTable) Weights() []float64 {
	w := make([]float64, NumCategories)
	for i := range t {
		w[i] = t[i].Weight
	}
	return w
}

// DefaultCategoryTable 返回内置的类别数据
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		CategoryWatermelon: {Score: 10, Radius: 40, Weight: 10, Color: color.RGBA{0xff, 0x52, 0x52, 0xff}},
		CategoryOrange:     {Score: 10, Radius: 35, Weight: 10, Color: color.RGBA{0xff, 0x98, 0x00, 0xff}},
		CategoryLemon:      {Score: 10, Radius: 35, Weight: 10, Color: color.RGBA{0xff, 0xeb, 0x3b, 0xff}},
		CategoryApple:      {Score: 10, Radius: 35, Weight: 10, Color: color.RGBA{0xf4, 0x43, 0x36, 0xff}},
		CategoryKiwi:       {Score: 20, Radius: 30, Weight: 8, Color: color.RGBA{0x8b, 0xc3, 0x4a, 0xff}},
		CategoryCoconut:    {Score: 30, Radius: 35, Weight: 8, Color: color.RGBA{0x79, 0x55, 0x48, 0xff}},
		CategoryBomb:       {Score: -50, Radius: 35, Weight: 6, Color: color.RGBA{0x00, 0x00, 0x00, 0xff}},
		CategoryIce:        {Score: 0, Radius: 30, Weight: 2, Color: color.RGBA{0x00, 0xff, 0xff, 0xff}},
		CategoryGiant:      {Score: 50, Radius: 60, Weight: 1, Color: color.RGBA{0xff, 0xd7, 0x00, 0xff}},
	}
}
