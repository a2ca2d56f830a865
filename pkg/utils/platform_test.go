//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"未设置", "", false},
		{"模拟移动端", "1", true},
		{"其他值", "yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(MobileEmulateEnv, tt.value)
			if got := IsMobile(); got != tt.want {
				t.Errorf("IsMobile() = %v, want %v", got, tt.want)
			}
		})
	}
}
