package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"wisefido-floorplan/internal/config"
	"wisefido-floorplan/internal/editor"
	"wisefido-floorplan/internal/events"
	httpapi "wisefido-floorplan/internal/http"
	"wisefido-floorplan/internal/logger"
	"wisefido-floorplan/internal/repository"
	"wisefido-floorplan/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "wisefido-floorplan")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	// 房间数据：DB 不可用时退回内存 repo（联调用）
	var rooms repository.RoomsRepository
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := repository.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			rooms = repository.NewPostgresRoomsRepo(db)
			log.Info("DB enabled for wisefido-floorplan")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory rooms", zap.Error(err))
		}
	}
	if rooms == nil {
		rooms = repository.NewMemoryRoomsRepo()
	}

	var publishers []events.Publisher
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, events may be dropped", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		pingCancel()
		publishers = append(publishers, events.NewRedisStreamPublisher(redisClient, cfg.Redis.Stream))
	}
	if cfg.MQTT.Enabled {
		if client, err := events.NewMQTTClient(&cfg.MQTT); err == nil {
			publishers = append(publishers, events.NewMQTTPublisher(client, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS))
			log.Info("MQTT event publishing enabled", zap.String("broker", cfg.MQTT.Broker))
		} else {
			log.Warn("MQTT enabled but connection failed", zap.Error(err))
		}
	}
	publisher := events.NewMultiPublisher(publishers...)

	settings := editor.Settings{
		GridSize:        cfg.Editor.GridSize,
		ItemCols:        cfg.Editor.ItemCols,
		ItemRows:        cfg.Editor.ItemRows,
		PaletteGutter:   cfg.Editor.PaletteGutter,
		BottomMargin:    cfg.Editor.BottomMargin,
		DeviationMargin: cfg.Editor.DeviationMargin,
	}
	svc := service.NewEditorService(settings, rooms, publisher, log)

	router := httpapi.NewRouter(log)
	router.RegisterEditorRoutes(httpapi.NewEditorHandler(svc, log))
	srv := service.NewServer(cfg.HTTP, router, svc, log)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown incomplete", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Warn("failed to close event publishers", zap.Error(err))
	}
	if db != nil {
		_ = db.Close()
	}
}
