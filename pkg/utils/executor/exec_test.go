package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func newExecutor(name string, args ...string) *Executor {
	return NewExecutorContext(context.Background(), name, args...)
}

// 测试静默执行：输出不会被捕获，退出码仍然可见
func TestExecutor_RunSilent(t *testing.T) {
	skipOnWindows(t)
	if err := newExecutor("sh", "-c", "echo noisy; echo noisy >&2").RunSilent(); err != nil {
		t.Fatalf("RunSilent failed: %v", err)
	}

	// 标准输入连接到空设备，cat 会立即读到 EOF
	if err := newExecutor("cat").RunSilent(); err != nil {
		t.Fatalf("RunSilent with null stdin failed: %v", err)
	}
}

// 测试 WithDir
func TestExecutor_WithDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	if err := newExecutor("sh", "-c", "touch marker").WithDir(dir).RunSilent(); err != nil {
		t.Fatalf("RunSilent with dir failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("command should run in %q: %v", dir, err)
	}
}

// 测试非零退出码会被包装成 ExecError
func TestExecutor_RunSilent_ExitCode(t *testing.T) {
	skipOnWindows(t)
	err := newExecutor("sh", "-c", "exit 3").RunSilent()
	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExecError, got %T: %v", err, err)
	}
	if ee.ExitCode() != 3 || !ee.Exited() {
		t.Errorf("expected exit code 3, got %d", ee.ExitCode())
	}
	if !strings.Contains(ee.Error(), "exit-code: 3") {
		t.Errorf("error message should contain exit code, got: %v", ee)
	}
}

// 测试 context 取消会终止子进程
func TestExecutor_RunSilent_Canceled(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewExecutorContext(ctx, "sleep", "5").RunSilent(); err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}

// 测试命令不存在时的错误处理
func TestExecutor_RunSilent_NotFound(t *testing.T) {
	err := newExecutor("not_a_real_command_12345").RunSilent()
	if err == nil {
		t.Fatal("expected error for nonexistent command, got nil")
	}
	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
	if ee.Exited() || ee.ExitCode() != -1 {
		t.Errorf("command never started, got exit code %d", ee.ExitCode())
	}
	if !strings.Contains(ee.Error(), "exit-code: unknown") {
		t.Errorf("error message should mark unknown exit code, got: %v", ee)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound, got: %v", err)
	}
}

func TestExecutor_String(t *testing.T) {
	if got := newExecutor("npm", "run", "test").String(); got != "npm run test" {
		t.Errorf("String() = %q", got)
	}
}
