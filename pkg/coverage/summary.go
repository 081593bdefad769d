package coverage

import "strconv"

// Summary 单个文件三个维度的覆盖率百分比，取值 [0, 100]
type Summary struct {
	Statements float64 `json:"statements" yaml:"statements" toml:"statements"`
	Functions  float64 `json:"functions" yaml:"functions" toml:"functions"`
	Branches   float64 `json:"branches" yaml:"branches" toml:"branches"`
}

// Complete 三个维度是否都达到 100%
func (s Summary) Complete() bool {
	return s.Statements >= 100 && s.Functions >= 100 && s.Branches >= 100
}

// Rounded 返回保留两位小数后的结果
func (s Summary) Rounded() Summary {
	return Summary{
		Statements: Round2(s.Statements),
		Functions:  Round2(s.Functions),
		Branches:   Round2(s.Branches),
	}
}

// Percent 计算命中比例，total 为 0 时视为 100%
func Percent(hit, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(hit) / float64(total) * 100
}

// Round2 保留两位小数
// 按 float64 的精确值取整，恰好落在中点时取偶数，例如 3.125 得到 3.12
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Summary 计算文件的语句、函数、分支覆盖率
// 分支按路径计数：一个分支点的每条路径单独计入总数
func (fc FileCoverage) Summary() Summary {
	return Summary{
		Statements: Percent(countHits(fc.S), len(fc.S)),
		Functions:  Percent(countHits(fc.F), len(fc.F)),
		Branches:   Percent(fc.branchHits()),
	}
}

// Totals 三个维度各自的计数项数量
type Totals struct {
	Statements int `json:"statements" yaml:"statements" toml:"statements"`
	Functions  int `json:"functions" yaml:"functions" toml:"functions"`
	Branches   int `json:"branches" yaml:"branches" toml:"branches"`
}

// Totals 返回语句、函数、分支路径的数量，为 0 的维度没有可计数的项
func (fc FileCoverage) Totals() Totals {
	_, branches := fc.branchHits()
	return Totals{Statements: len(fc.S), Functions: len(fc.F), Branches: branches}
}

func countHits(counts map[string]int64) int {
	hit := 0
	for _, c := range counts {
		if c > 0 {
			hit++
		}
	}
	return hit
}

func (fc FileCoverage) branchHits() (hit, total int) {
	for _, paths := range fc.B {
		total += len(paths)
		for _, c := range paths {
			if c > 0 {
				hit++
			}
		}
	}
	return hit, total
}
