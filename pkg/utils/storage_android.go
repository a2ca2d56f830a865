//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 在 gdata 初始化前创建偏好设置目录
// gdata 在 Android 上使用 /data/data/{package}/ 但不会创建子目录
func EnsureStorageDir() error {
	root := StoragePath()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	dir := filepath.Join(root, "prefs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// StoragePath 返回应用私有目录，包名从 /proc/self/cmdline 读取
func StoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg := strings.Map(func(r rune) rune {
		if r == 0 || r == '\n' {
			return -1
		}
		return r
	}, string(data))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
