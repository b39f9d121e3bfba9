package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the store connections. Redis is nil when REDIS_URL is unset.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	MongoDB  *mongo.Database
	Redis    *redis.Client

	logger zerolog.Logger
}

// InitDB opens every configured store, failing on the first one that cannot be reached.
func InitDB(ctx context.Context, cfg *Config, logger zerolog.Logger) (*DB, error) {
	db := &DB{logger: logger}

	postgresDB, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	db.Postgres = postgresDB
	logger.Info().Int("max_open_conns", cfg.DBMaxOpenConns).Msg("connected to PostgreSQL")

	mongoClient, err := initMongo(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db.Mongo = mongoClient
	db.MongoDB = mongoClient.Database(cfg.MongoDB)
	logger.Info().Str("database", cfg.MongoDB).Msg("connected to MongoDB")

	if cfg.RedisURL != "" {
		redisClient, err := initRedis(ctx, cfg)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		db.Redis = redisClient
		logger.Info().Msg("connected to Redis")
	}

	return db, nil
}

const slowQueryThreshold = 200 * time.Millisecond

// gormWriter routes gorm's log lines through zerolog.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func initPostgres(ctx context.Context, cfg *Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresConnStr), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func initMongo(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.DBConnectTimeout)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func initRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = cfg.DBConnectTimeout
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping checks the PostgreSQL pool; used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every open connection.
func (db *DB) Close() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.logger.Error().Err(err).Msg("error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Error().Err(err).Msg("error closing PostgreSQL connection")
		} else {
			db.logger.Info().Msg("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Error().Err(err).Msg("error closing MongoDB connection")
		} else {
			db.logger.Info().Msg("MongoDB connection closed")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.logger.Error().Err(err).Msg("error closing Redis connection")
		}
	}
}
