package coverage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry 覆盖率未达 100% 的文件
type Entry struct {
	File    string  `json:"file" yaml:"file" toml:"file"` // 相对当前工作目录的路径
	Summary Summary `json:"coverage" yaml:"coverage" toml:"coverage"`
	Totals  Totals  `json:"totals" yaml:"totals" toml:"totals"`
}

// Resolve 将路径转换为绝对路径，并解析其中已存在部分的符号链接
// 路径不存在时不会报错，不存在的尾部原样拼接
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	existing, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}

// Within 判断 path 是否位于 root 之下（或就是 root）
// 按路径分段比较，src/foo 不会匹配 src/foobar
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// Excluded 判断相对路径是否命中任一 doublestar 排除模式
func Excluded(rel string, patterns []string) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidatePatterns 检查排除模式是否合法
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// FilterOptions 控制 Uncovered 的筛选行为
type FilterOptions struct {
	Root    string   // 目标目录，已解析为绝对路径
	Cwd     string   // 输出路径相对的目录
	Exclude []string // doublestar 排除模式，匹配相对 Cwd 的路径
}

// Uncovered 按报告顺序返回 Root 下任一维度低于 100% 的文件
// 是否达标用未取整的值判断，输出的百分比保留两位小数
// 未达标的文件不在 Cwd 之下时返回错误
func Uncovered(report *Report, opts FilterOptions) ([]Entry, error) {
	if opts.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts.Cwd = cwd
	}

	var (
		entries  []Entry
		firstErr error
	)
	report.Each(func(path string, fc FileCoverage) {
		if firstErr != nil {
			return
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.Cwd, path)
		}
		resolved, err := Resolve(path)
		if err != nil {
			firstErr = err
			return
		}
		if !Within(opts.Root, resolved) {
			return
		}

		summary := fc.Summary()
		if summary.Complete() {
			return
		}

		if !Within(opts.Cwd, path) {
			firstErr = fmt.Errorf("%q is not in the subpath of %q", path, opts.Cwd)
			return
		}
		rel, err := filepath.Rel(opts.Cwd, path)
		if err != nil {
			firstErr = fmt.Errorf("relativize %s: %w", path, err)
			return
		}
		if Excluded(rel, opts.Exclude) {
			return
		}
		entries = append(entries, Entry{File: rel, Summary: summary.Rounded(), Totals: fc.Totals()})
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return entries, nil
}
