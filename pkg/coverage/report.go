// Package coverage 读取 istanbul 风格的 coverage-final.json，并计算每个文件的覆盖率
package coverage

import (
	"errors"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultReportPath 测试命令产出的覆盖率报告位置（相对于当前工作目录）
const DefaultReportPath = "coverage/coverage-final.json"

// ErrReportNotFound 覆盖率报告文件不存在
var ErrReportNotFound = errors.New("coverage report not found")

// FileCoverage 单个文件的命中计数
// 只关心 s/f/b 三个字段，statementMap 等其他字段会被忽略；缺失的字段视为空
type FileCoverage struct {
	S map[string]int64   `json:"s"` // 语句 id -> 执行次数
	F map[string]int64   `json:"f"` // 函数 id -> 调用次数
	B map[string][]int64 `json:"b"` // 分支 id -> 每条路径的执行次数
}

// Report 文件绝对路径 -> 覆盖率记录，保留报告中的键顺序
// 重复的键以最后一次出现的值为准
type Report struct {
	files *orderedmap.OrderedMap[string, FileCoverage]
}

// NewReport 创建一个空报告
func NewReport() *Report {
	return &Report{files: orderedmap.New[string, FileCoverage]()}
}

// Set 写入（或覆盖）一个文件的覆盖率记录
func (r *Report) Set(path string, fc FileCoverage) {
	r.files.Set(path, fc)
}

// Len 报告中的文件数量
func (r *Report) Len() int {
	return r.files.Len()
}

// Each 按报告中的顺序遍历所有文件
func (r *Report) Each(fn func(path string, fc FileCoverage)) {
	for pair := r.files.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Parse 从 reader 解析覆盖率报告
func Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read coverage report: %w", err)
	}
	report := NewReport()
	if err := report.files.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parse coverage report: %w", err)
	}
	return report, nil
}

// Load 读取并解析指定路径的覆盖率报告
// 文件不存在时返回 ErrReportNotFound
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, path)
		}
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return Parse(f)
}
