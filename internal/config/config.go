package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config wisefido-floorplan 配置
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	Log  struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	DBEnabled bool           `yaml:"db_enabled"`
	Database  DatabaseConfig `yaml:"database"`
	Redis     RedisConfig    `yaml:"redis"`
	MQTT      MQTTConfig     `yaml:"mqtt"`
	Editor    EditorConfig   `yaml:"editor"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置（房间数据来源）
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MaxIdle  int    `yaml:"max_idle"`
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig 事件流配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Stream   string `yaml:"stream"` // XADD 目标流
}

// MQTTConfig 事件推送配置（默认禁用）
type MQTTConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Broker         string        `yaml:"broker"` // 如 "tcp://localhost:1883"
	ClientID       string        `yaml:"client_id"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	TopicPrefix    string        `yaml:"topic_prefix"` // 主题：<prefix>/<editor_id>/events
	QoS            byte          `yaml:"qos"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// EditorConfig 画布几何参数
type EditorConfig struct {
	GridSize        float64 `yaml:"grid_size"`
	ItemCols        int     `yaml:"item_cols"`
	ItemRows        int     `yaml:"item_rows"`
	PaletteGutter   float64 `yaml:"palette_gutter"`
	BottomMargin    float64 `yaml:"bottom_margin"`
	DeviationMargin float64 `yaml:"deviation_margin"`
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8090")
	cfg.HTTP.ReadHeaderTimeout = time.Duration(parseInt(getEnv("HTTP_READ_HEADER_TIMEOUT_SEC", "5"), 5)) * time.Second
	cfg.HTTP.IdleTimeout = time.Duration(parseInt(getEnv("HTTP_IDLE_TIMEOUT_SEC", "120"), 120)) * time.Second
	cfg.HTTP.ShutdownTimeout = time.Duration(parseInt(getEnv("HTTP_SHUTDOWN_TIMEOUT_SEC", "5"), 5)) * time.Second
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// 默认不连库：使用内存房间数据即可联调
	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "owlrd")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Redis.Stream = getEnv("FLOORPLAN_EVENT_STREAM", "floorplan:events")

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "wisefido-floorplan")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.TopicPrefix = getEnv("MQTT_TOPIC_PREFIX", "floorplan")
	cfg.MQTT.QoS = byte(parseInt(getEnv("MQTT_QOS", "1"), 1))
	cfg.MQTT.ConnectTimeout = 10 * time.Second

	// 与前端常量一致：GRID_SIZE=20，卡片 6x3 格
	cfg.Editor.GridSize = parseFloat(getEnv("FLOORPLAN_GRID_SIZE", "20"), 20)
	cfg.Editor.ItemCols = parseInt(getEnv("FLOORPLAN_ITEM_COLS", "6"), 6)
	cfg.Editor.ItemRows = parseInt(getEnv("FLOORPLAN_ITEM_ROWS", "3"), 3)
	cfg.Editor.PaletteGutter = parseFloat(getEnv("FLOORPLAN_PALETTE_GUTTER", "30"), 30)
	cfg.Editor.BottomMargin = parseFloat(getEnv("FLOORPLAN_BOTTOM_MARGIN", "30"), 30)
	cfg.Editor.DeviationMargin = parseFloat(getEnv("FLOORPLAN_DEVIATION_MARGIN", "30"), 30)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
