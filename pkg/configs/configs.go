// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 COVGAP_CHECK_FORMAT=json
const EnvPrefix = "COVGAP"

// Config 应用配置结构
type Config struct {
	Version string      `mapstructure:"version"`
	Log     LogConfig   `mapstructure:"log"`
	App     AppConfig   `mapstructure:"app"`
	Check   CheckConfig `mapstructure:"check"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setCheckConfigDefaults(v)
}

// findConfigFile 按搜索路径查找配置文件，找不到返回空字符串
func findConfigFile() string {
	searchPaths := []string{
		".",
		"$HOME/.config/covgap",
	}

	configNames := []string{".covgap", "covgap"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					return configFile
				}
			}
		}
	}

	return ""
}

// NewViper 创建一个加载了默认值、环境变量和配置文件的 viper 实例
// configPath 为空时按搜索路径查找；没有找到配置文件不算错误
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return v, nil
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	}
	return v, nil
}

// Unmarshal 将 viper 中的配置解析为 Config
func Unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if _, err := ParseOutputFormat(config.Check.Format); err != nil {
		return nil, err
	}
	if len(config.Check.TestCommand) == 0 {
		return nil, errors.New("check.test_command must not be empty")
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	return &config, nil
}

// LoadConfig 加载配置文件并解析，同时返回使用的 viper 实例
// bind 在解析前调用，用于把命令行标志绑定到 viper 键上，可以为 nil
func LoadConfig(configPath string, bind func(v *viper.Viper) error) (*Config, *viper.Viper, error) {
	v, err := NewViper(configPath)
	if err != nil {
		return nil, nil, err
	}
	if bind != nil {
		if err := bind(v); err != nil {
			return nil, nil, err
		}
	}

	config, err := Unmarshal(v)
	if err != nil {
		return nil, nil, err
	}
	return config, v, nil
}
