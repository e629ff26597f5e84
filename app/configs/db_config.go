package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	maxConnectRetries = 10
	connectRetryDelay = 5 * time.Second
)

func (e ENV) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

// GormConfig is shared by every dialect the app opens. TranslateError lets
// repositories match gorm.ErrDuplicatedKey instead of driver codes.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func OpenConnection(env ENV, logger *zap.Logger) (*gorm.DB, error) {
	dsn := env.DSN()

	var lastErr error
	for i := 0; i < maxConnectRetries; i++ {
		logger.Info("connecting to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxConnectRetries),
			zap.String("host", env.DBHost),
			zap.String("database", env.DBName))

		db, err := gorm.Open(mysql.Open(dsn), GormConfig())
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(25)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					logger.Info("database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			logger.Warn("failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", connectRetryDelay))
		} else {
			lastErr = err
			logger.Warn("failed to open gorm connection", zap.Error(err), zap.Duration("retry_in", connectRetryDelay))
		}

		time.Sleep(connectRetryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxConnectRetries, lastErr)
}
