// Package embedded 提供嵌入资源的统一访问接口
//
// 默认资源（样式表等）直接嵌入本包的 data/ 目录，
// 桌面端、终端端和命令行工具都可以直接使用，无需在各自的 main 包中声明 embed.FS。
// 开发时可以调用 Init() 替换为磁盘目录（如 os.DirFS），以便热修改配置。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var builtinFS embed.FS

var dataFS fs.FS = builtinFS

// Init 替换资源文件系统
// 传入的文件系统根目录下必须包含 data/ 目录；传入 nil 恢复内置资源
func Init(data fs.FS) {
	if data == nil {
		dataFS = builtinFS
		return
	}
	dataFS = data
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开资源文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取资源文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件，模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}
