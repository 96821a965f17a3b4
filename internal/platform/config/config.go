package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，保存加载后的应用配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Vote     VoteConfig     `mapstructure:"vote"`
	Batch    BatchConfig    `mapstructure:"batch"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// Driver 可选 sqlite 或 postgres
	Driver string      `mapstructure:"driver"`
	DSN    string      `mapstructure:"dsn"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// VoteConfig 定义了投票限流和投票者Cookie的配置
type VoteConfig struct {
	// IPBurstLimit / IPBurstWindowSeconds：单IP突发窗口的上限和窗口长度
	IPBurstLimit         int `mapstructure:"ipBurstLimit"`
	IPBurstWindowSeconds int `mapstructure:"ipBurstWindowSeconds"`

	// DailyLimit / DailyWindowSeconds：单投票者在单批次内的日配额。
	// 上限目前是一个与批次条目数无关的固定值，见 vote 模块中的说明。
	DailyLimit         int `mapstructure:"dailyLimit"`
	DailyWindowSeconds int `mapstructure:"dailyWindowSeconds"`

	// MemoryLimit / MemoryWindowMillis：进程内兜底限流器的阈值和窗口
	MemoryLimit        int `mapstructure:"memoryLimit"`
	MemoryWindowMillis int `mapstructure:"memoryWindowMillis"`

	// CookieMaxAgeDays 是投票者身份Cookie的有效期
	CookieMaxAgeDays int `mapstructure:"cookieMaxAgeDays"`
}

// BatchConfig 定义了批次相关的配置
type BatchConfig struct {
	// TokenLength 是分享令牌的长度
	TokenLength int `mapstructure:"tokenLength"`
}

// setDefaults 为所有配置项设置默认值，缺失配置文件时应用仍可启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "keepcut.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("vote.ipBurstLimit", 5)
	v.SetDefault("vote.ipBurstWindowSeconds", 1)
	v.SetDefault("vote.dailyLimit", 100)
	v.SetDefault("vote.dailyWindowSeconds", 86400)
	v.SetDefault("vote.memoryLimit", 5)
	v.SetDefault("vote.memoryWindowMillis", 1000)
	v.SetDefault("vote.cookieMaxAgeDays", 30)

	v.SetDefault("batch.tokenLength", 12)
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件，找不到时使用默认值
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 4. 读取配置文件；文件缺失不是错误，其余解析错误照常返回
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 5. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 6. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
