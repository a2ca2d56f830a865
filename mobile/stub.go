//go:build !mobile

// 普通构建时只提供 Dummy，编辑器本体不会被链接进来
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
