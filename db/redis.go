package db

import (
	"context"
	"fmt"
	"net"

	"go-bank-ledger/config"
	"go-bank-ledger/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis opens the client backing the redis storage driver and checks
// that the server answers.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	cfg := config.AppConfig.Redis
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	log := logger.Log.WithFields(logrus.Fields{"address": addr, "db": cfg.DB, "key": cfg.Key})

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Error("Redis did not answer ping")
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Info("Using redis storage")
	return client, nil
}
