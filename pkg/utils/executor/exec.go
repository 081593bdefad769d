// Package executor 提供了一个用于执行外部命令的工具，支持静默执行和结构化错误
package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExecError 是一个结构化的命令执行错误，包含了命令和退出码
type ExecError struct {
	Cmd  string   // 执行的命令
	Args []string // 命令参数
	Err  error    // 底层错误 (通常是 *exec.ExitError)
}

// Error 实现了 error 接口，返回一个详细的错误信息
func (e *ExecError) Error() string {
	code := e.ExitCode()
	codeStr := "unknown"
	if code >= 0 {
		codeStr = fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("command execution failed: %s %s, exit-code: %s, err: %v",
		e.Cmd, strings.Join(e.Args, " "), codeStr, e.Err)
}

// Unwrap 允许使用 errors.Is 和 errors.As 来检查底层错误
func (e *ExecError) Unwrap() error {
	return e.Err
}

// ExitCode 返回底层进程的退出码，进程未能启动时返回 -1
func (e *ExecError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Exited 进程是否已启动并以非零状态退出
// 返回 false 表示命令没能启动（例如可执行文件不存在）
func (e *ExecError) Exited() bool {
	var exitErr *exec.ExitError
	return errors.As(e.Err, &exitErr)
}

// Executor 是一个命令执行器的构建器
// 一个 Executor 实例应该用于一次命令执行
type Executor struct {
	cmd *exec.Cmd
}

// NewExecutorContext 创建一个绑定 context 的命令执行器
// context 取消时子进程会被终止
func NewExecutorContext(ctx context.Context, name string, args ...string) *Executor {
	return &Executor{
		cmd: exec.CommandContext(ctx, name, args...),
	}
}

// WithDir 设置命令执行的工作目录
func (e *Executor) WithDir(dir string) *Executor {
	e.cmd.Dir = dir
	return e
}

// String 返回可读的命令行
func (e *Executor) String() string {
	return strings.Join(e.cmd.Args, " ")
}

// RunSilent 执行命令并等待结束，标准输入、输出、错误全部连接到空设备
func (e *Executor) RunSilent() error {
	// exec.Cmd 中为 nil 的标准流会被连接到 os.DevNull
	e.cmd.Stdin = nil
	e.cmd.Stdout = nil
	e.cmd.Stderr = nil

	if err := e.cmd.Run(); err != nil {
		return e.wrap(err)
	}
	return nil
}

func (e *Executor) wrap(err error) *ExecError {
	name := e.cmd.Path
	if name == "" && len(e.cmd.Args) > 0 {
		name = e.cmd.Args[0]
	}
	return &ExecError{
		Cmd:  name,
		Args: e.cmd.Args[1:],
		Err:  err,
	}
}
