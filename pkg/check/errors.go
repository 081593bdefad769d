package check

import (
	"errors"
	"fmt"

	"github.com/yeisme/covgap/pkg/coverage"
)

var (
	// ErrTestRun 测试命令以非零状态退出
	ErrTestRun = errors.New("tests failed to run")
	// ErrReportMissing 测试结束后找不到覆盖率报告
	ErrReportMissing = coverage.ErrReportNotFound

	errNoTestCommand = errors.New("no test command configured")
)

// Message 返回展示给用户的错误信息
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTestRun):
		return "Error: Tests failed to run."
	case errors.Is(err, ErrReportMissing):
		return "Coverage file not found. Make sure tests ran successfully."
	default:
		return fmt.Sprintf("Error running coverage check: %v", err)
	}
}
