// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Category 定义水果（下落物体）的类别
// 类别集合是封闭的，每个类别的数值属性见 CategoryData
type Category int

const (
	// CategoryWatermelon 西瓜（默认类别）
	CategoryWatermelon Category = iota
	// CategoryOrange 橙子
	CategoryOrange
	// CategoryLemon 柠檬
	CategoryLemon
	// CategoryApple 苹果
	CategoryApple
	// CategoryKiwi 猕猴桃
	CategoryKiwi
	// CategoryCoconut 椰子
	CategoryCoconut
	// CategoryBomb 炸弹（危险品）
	CategoryBomb
	// CategoryIce 寒冰水果（触发慢动作）
	CategoryIce
	// CategoryGiant 巨型水果（触发狂热）
	CategoryGiant

	// NumCategories 类别总数，用于定长表
	NumCategories
)

// DefaultCategory 狂热模式替换炸弹、加权抽取兜底时使用的类别
const DefaultCategory = CategoryWatermelon

var categoryNames = [NumCategories]string{
	"watermelon", "orange", "lemon", "apple", "kiwi", "coconut", "bomb", "ice", "giant",
}

// String 返回类别名（与配置文件中的键一致）
func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory 按名称解析类别，忽略大小写
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// AllCategories 按表顺序返回全部类别
// 加权抽取按此顺序遍历
func AllCategories() []Category {
	all := make([]Category, NumCategories)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

// Kind 类别的效果种类，每个类别恰好属于一种
type Kind int

const (
	// KindPlain 普通水果：切中得分，存活模式下漏掉扣命
	KindPlain Kind = iota
	// KindHazard 危险品：切中扣分或扣命
	KindHazard
	// KindChill 寒冰：切中触发慢动作
	KindChill
	// KindFrenzy 狂热：切中触发狂热并加分
	KindFrenzy
)

// String 返回种类名
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindHazard:
		return "hazard"
	case KindChill:
		return "chill"
	case KindFrenzy:
		return "frenzy"
	default:
		return "unknown"
	}
}

// KindOf 返回类别对应的效果种类
// 种类由枚举本身决定，不可通过配置修改
func KindOf(c Category) Kind {
	switch c {
	case CategoryBomb:
		return KindHazard
	case CategoryIce:
		return KindChill
	case CategoryGiant:
		return KindFrenzy
	default:
		return KindPlain
	}
}

// IsHazard 是否为危险品
func (c Category) IsHazard() bool { return KindOf(c) == KindHazard }

// IsChill 是否为寒冰
func (c Category) IsChill() bool { return KindOf(c) == KindChill }

// IsFrenzy 是否为狂热
func (c Category) IsFrenzy() bool { return KindOf(c) == KindFrenzy }

// IsPlain 是否为普通水果
func (c Category) IsPlain() bool { return KindOf(c) == KindPlain }
