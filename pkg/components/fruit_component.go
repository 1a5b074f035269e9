package components

import "github.com/gonewx/slicehero/pkg/types"

// FruitComponent 下落物体（水果、炸弹、特殊水果）
//
// 所有权约定：
//   - PhysicsSystem 只修改运动学字段（位置、速度、旋转）
//   - SliceSystem / SliceResolver 只修改 Remove 标记
//
// 物体不会因寿命自然消失，只在掉出屏幕或被切中时标记删除，
// 由 EntityStore.Compact 统一清理。
type FruitComponent struct {
	ID       uint64         // 实体ID，0 保留为无效ID
	Category types.Category // 类别，决定得分和效果

	X, Y   float64 // 中心位置（画布坐标）
	VX, VY float64 // 速度（像素/帧）

	Rotation      float64 // 当前旋转角（弧度）
	RotationSpeed float64 // 角速度（弧度/帧）

	Radius float64 // 碰撞半径，始终 > 0
	Remove bool    // 待删除标记
}
