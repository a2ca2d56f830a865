package embedded

import (
	"testing"
	"testing/fstest"
)

// TestBuiltinStyles 内置样式表必须存在
func TestBuiltinStyles(t *testing.T) {
	Init(nil)

	if !Exists("data/styles.yaml") {
		t.Fatal("data/styles.yaml should be embedded")
	}

	data, err := ReadFile("./data/styles.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(data) == 0 {
		t.Error("styles.yaml should not be empty")
	}
}

// TestUnknownPrefix 测试非 data/ 前缀的路径
func TestUnknownPrefix(t *testing.T) {
	tests := []string{"assets/test.png", "styles.yaml", "../data/styles.yaml"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if _, err := ReadFile(path); err == nil {
				t.Errorf("ReadFile(%q) should fail", path)
			}
			if Exists(path) {
				t.Errorf("Exists(%q) should be false", path)
			}
		})
	}
}

// TestInitOverride 测试替换资源文件系统
func TestInitOverride(t *testing.T) {
	defer Init(nil)

	Init(fstest.MapFS{
		"data/styles.yaml": &fstest.MapFile{Data: []byte("components: {}")},
		"data/extra.yaml":  &fstest.MapFile{Data: []byte("x: 1")},
	})

	data, err := ReadFile("data/styles.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "components: {}" {
		t.Errorf("ReadFile() = %q, want override content", data)
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 matches", matches)
	}
}
