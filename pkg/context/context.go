// Package context 汇总一次命令执行所需的配置、viper 实例和日志记录器
package context

import (
	"context"

	"github.com/spf13/viper"
	"github.com/yeisme/covgap/pkg/configs"
	"github.com/yeisme/covgap/pkg/utils/log"
)

// GlobalFlags 根命令的全局标志
type GlobalFlags struct {
	ConfigPath string
	Debug      bool
	Verbose    bool
	Quiet      bool
}

// CovContext 命令执行上下文
type CovContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 原始配置来源
	Logger log.Logger      // 日志记录器
}

// InitCovContext 加载配置并初始化日志
// bind 在解析配置前调用，用于把命令行标志绑定到 viper 键上
func InitCovContext(ctx context.Context, flags GlobalFlags, bind func(v *viper.Viper) error) (*CovContext, error) {
	config, v, err := configs.LoadConfig(flags.ConfigPath, bind)
	if err != nil {
		return nil, err
	}

	// 命令行标志优先于配置文件
	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &CovContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}, nil
}
