// Package check 串联覆盖率检查的各个阶段：运行测试、读取报告、筛选文件、输出结果
// 任一阶段失败都会直接返回，不会输出不完整的报告
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeisme/covgap/pkg/configs"
	"github.com/yeisme/covgap/pkg/coverage"
	"github.com/yeisme/covgap/pkg/style"
	"github.com/yeisme/covgap/pkg/utils/executor"
	"github.com/yeisme/covgap/pkg/utils/log"
)

// TestRunner 运行产出覆盖率报告的测试命令
type TestRunner interface {
	RunTests(ctx context.Context, dir string, command []string) error
}

// ExecRunner 通过子进程运行测试命令，标准流全部丢弃
type ExecRunner struct{}

// RunTests 运行测试命令并等待结束，没有超时
func (ExecRunner) RunTests(ctx context.Context, dir string, command []string) error {
	if len(command) == 0 {
		return errNoTestCommand
	}
	exe := executor.NewExecutorContext(ctx, command[0], command[1:]...).WithDir(dir)
	log.Debug().Str("dir", dir).Msgf("running %s", exe)

	err := exe.RunSilent()
	if err == nil {
		return nil
	}

	var ee *executor.ExecError
	if errors.As(err, &ee) && ee.Exited() {
		log.Debug().Int("exit_code", ee.ExitCode()).Msg("test command failed")
		return fmt.Errorf("%w: %w", ErrTestRun, err)
	}
	return err
}

// Options 一次检查的参数
type Options struct {
	Folder      string               // 目标目录，原样出现在报告标题中
	Dir         string               // 工作目录，默认当前目录
	TestCommand []string             // 测试命令
	ReportPath  string               // 覆盖率报告路径，相对 Dir
	Format      configs.OutputFormat // 输出格式
	Exclude     []string             // doublestar 排除模式
	SkipTests   bool                 // 跳过测试阶段
}

// OptionsFromConfig 由配置生成检查参数
func OptionsFromConfig(folder string, cfg *configs.CheckConfig) (Options, error) {
	format, err := configs.ParseOutputFormat(cfg.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Folder:      folder,
		TestCommand: cfg.TestCommand,
		ReportPath:  cfg.ReportPath,
		Format:      format,
		Exclude:     cfg.Exclude,
		SkipTests:   cfg.SkipTests,
	}, nil
}

// Result 检查结果
type Result struct {
	Folder string           `json:"folder" yaml:"folder" toml:"folder"`
	Files  []coverage.Entry `json:"files" yaml:"files" toml:"files"`
}

// Checker 执行覆盖率检查
// Out 接收报告；进度信息在文本格式下也写入 Out，机器可读格式下写入 ErrOut
type Checker struct {
	Runner TestRunner
	Out    io.Writer
	ErrOut io.Writer
}

// NewChecker 创建使用子进程运行测试的 Checker
func NewChecker(out, errOut io.Writer) *Checker {
	return &Checker{Runner: ExecRunner{}, Out: out, ErrOut: errOut}
}

// Run 依次执行各阶段并输出报告
func (c *Checker) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts.Dir = wd
	}
	if opts.ReportPath == "" {
		opts.ReportPath = coverage.DefaultReportPath
	}
	if err := coverage.ValidatePatterns(opts.Exclude); err != nil {
		return nil, err
	}

	progress := style.NewPrinter(c.Out)
	if opts.Format.Structured() {
		progress = style.NewPrinter(c.ErrOut)
	}

	if !opts.SkipTests {
		if err := c.runTests(ctx, progress, opts); err != nil {
			return nil, err
		}
	}

	reportPath := opts.ReportPath
	if !filepath.IsAbs(reportPath) {
		reportPath = filepath.Join(opts.Dir, reportPath)
	}
	if _, err := os.Stat(reportPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReportMissing, reportPath)
		}
		return nil, err
	}

	_ = progress.Line("Parsing coverage results...")
	report, err := coverage.Load(reportPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("files", report.Len()).Str("report", reportPath).Msg("coverage report loaded")

	folder := opts.Folder
	if !filepath.IsAbs(folder) {
		folder = filepath.Join(opts.Dir, folder)
	}
	root, err := coverage.Resolve(folder)
	if err != nil {
		return nil, err
	}

	entries, err := coverage.Uncovered(report, coverage.FilterOptions{
		Root:    root,
		Cwd:     opts.Dir,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("root", root).Int("uncovered", len(entries)).Msg("coverage check finished")

	result := &Result{Folder: opts.Folder, Files: entries}
	if result.Files == nil {
		result.Files = []coverage.Entry{}
	}
	if err := Render(c.Out, result, opts.Format); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Checker) runTests(ctx context.Context, progress *style.Printer, opts Options) error {
	if len(opts.TestCommand) == 0 {
		return errNoTestCommand
	}

	_ = progress.Line("Running tests with coverage...")
	spinner := style.NewSpinner(progress.Writer(), opts.TestCommand[0])
	spinner.Start()
	err := c.Runner.RunTests(ctx, opts.Dir, opts.TestCommand)
	spinner.Stop()
	return err
}
