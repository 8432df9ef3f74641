package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8090", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 120*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.DBEnabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "floorplan:events", cfg.Redis.Stream)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.Equal(t, 20.0, cfg.Editor.GridSize)
	assert.Equal(t, 6, cfg.Editor.ItemCols)
	assert.Equal(t, 3, cfg.Editor.ItemRows)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("FLOORPLAN_GRID_SIZE", "10")
	t.Setenv("FLOORPLAN_PALETTE_GUTTER", "12.5")
	t.Setenv("MQTT_QOS", "0")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT_SEC", "15")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, 5432, cfg.Database.Port, "invalid value falls back to default")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10.0, cfg.Editor.GridSize)
	assert.Equal(t, 12.5, cfg.Editor.PaletteGutter)
	assert.Equal(t, byte(0), cfg.MQTT.QoS)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "owlrd", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=owlrd sslmode=disable", c.GetDSN())
}
