//go:build !mobile

// Package mobile 是 gomobile/ebitenmobile 的绑定入口
//
// 普通构建下只导出 Dummy，真正的初始化逻辑在 mobile.go，
// 需要 -tags mobile 才会编译。
package mobile

// Dummy 供绑定工具引用
func Dummy() {}
