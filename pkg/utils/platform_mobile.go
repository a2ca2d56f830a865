//go:build mobile

package utils

// IsMobile 移动端构建总是返回 true
func IsMobile() bool {
	return true
}
