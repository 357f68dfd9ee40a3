package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"mailtriage/internal/classify"
	"mailtriage/internal/config"
	rabbitmqClient "mailtriage/internal/platform/rabbitmq"
	redisClient "mailtriage/internal/platform/redis"
	"mailtriage/internal/stats"
	"mailtriage/internal/worker"
)

// App owns the process-scoped resources: the loaded classifier artifact and
// the optional stats pipeline (Redis counters fed by a RabbitMQ worker).
// A missing classifier artifact or LLM credential aborts startup; nothing
// degrades silently.
type App struct {
	Config     *config.Config
	Classifier *classify.Classifier

	Redis          *redis.Client
	MQConn         *amqp.Connection
	EventPublisher *rabbitmqClient.EventPublisher
	Stats          *stats.RedisStore
	StatsWorker    *worker.StatsWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, errors.New("llm api key is not configured (set LLM_API_KEY or llm.api_key)")
	}

	artifact, err := classify.Load(cfg.Classifier.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier artifact failed: %w", err)
	}

	app := &App{
		Config:     cfg,
		Classifier: classify.NewClassifier(artifact),
		StartedAt:  time.Now(),
	}

	if cfg.RabbitMQ.Enabled && !cfg.Redis.Enabled {
		return nil, errors.New("rabbitmq stats pipeline requires redis (enable redis or disable rabbitmq)")
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
		app.Stats = stats.NewRedisStore(redisCli, cfg.Redis.KeyPrefix)
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			app.closeQuietly()
			return nil, err
		}
		app.MQConn = mqConn
		app.EventPublisher = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.TriageEventQueue)

		statsWorker := worker.NewStatsWorker(mqConn, app.Stats, cfg.RabbitMQ.TriageEventQueue)
		if err := statsWorker.Start(ctx); err != nil {
			app.closeQuietly()
			return nil, fmt.Errorf("start stats worker failed: %w", err)
		}
		app.StatsWorker = statsWorker
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.StatsWorker != nil {
		a.StatsWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	return closeErr
}

func (a *App) closeQuietly() {
	_ = a.Close()
}
