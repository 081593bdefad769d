package configs

import (
	"github.com/spf13/viper"
)

// CheckConfig 覆盖率检查配置
type CheckConfig struct {
	TestCommand []string `mapstructure:"test_command"` // 产出覆盖率报告的测试命令
	ReportPath  string   `mapstructure:"report_path"`  // 覆盖率报告路径，相对当前工作目录
	Format      string   `mapstructure:"format"`       // 输出格式: text, table, json, yaml, toml
	Exclude     []string `mapstructure:"exclude"`      // doublestar 排除模式
	SkipTests   bool     `mapstructure:"skip_tests"`   // 跳过测试，直接读取已有报告
}

func setCheckConfigDefaults(v *viper.Viper) {
	v.SetDefault("check.test_command", []string{"npm", "run", "test"})
	v.SetDefault("check.report_path", "coverage/coverage-final.json")
	v.SetDefault("check.format", string(FormatText))
	v.SetDefault("check.exclude", []string{})
	v.SetDefault("check.skip_tests", false)
}
