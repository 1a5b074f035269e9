package components

// Point 画布坐标点
type Point struct {
	X, Y float64
}

// PointerTrailComponent 指针（刀刃）轨迹
//
// Samples 按时间顺序保存最近的采样点，长度不超过上限，溢出时淘汰最旧的点。
// 最后两个采样点构成本帧的切割线段。
type PointerTrailComponent struct {
	Samples []Point // 最近采样点（旧 -> 新）

	X, Y  float64 // 当前指针位置
	Angle float64 // 刀身朝向（弧度），位移过小时保持上一帧的值

	// Valid 是否收到过采样；为 false 时渲染层不绘制刀刃
	Valid bool

	// IdleTicks 距离上次收到采样经过的帧数
	IdleTicks int
}
