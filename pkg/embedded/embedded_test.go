package embedded

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/scene.yaml":         {Data: []byte("seed: 1\n")},
		"data/presets/calm.yaml":  {Data: []byte("seed: 2\n")},
		"data/presets/storm.yaml": {Data: []byte("seed: 3\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	defer func() { initialized = false }()
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 未初始化时所有接口返回错误
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open(SceneConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v", err)
	}
	if _, err := ReadFile(SceneConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v", err)
	}
	if _, err := Glob("data/*.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob() error = %v", err)
	}
	if Exists(SceneConfigPath) {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{name: "场景配置", path: "data/scene.yaml", want: "seed: 1\n"},
		{name: "带 ./ 前缀", path: "./data/presets/calm.yaml", want: "seed: 2\n"},
		{name: "无效前缀", path: "assets/scene.yaml", wantErr: "unknown resource path prefix"},
		{name: "文件不存在", path: "data/missing.yaml", wantErr: "not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadFile() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExistsAndGlob 存在性检查与模式匹配
func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	if !Exists(SceneConfigPath) {
		t.Error("Exists(scene.yaml) = false")
	}
	if Exists("data/nonexistent.yaml") {
		t.Error("Expected Exists() to return false for non-existent file")
	}

	matches, err := Glob("data/presets/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 || matches[0] != "data/presets/calm.yaml" {
		t.Errorf("Glob() = %v", matches)
	}

	if _, err := Glob("invalid/*.txt"); err == nil {
		t.Error("Expected error for invalid path prefix")
	}
}
