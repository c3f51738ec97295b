package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp tạo router, melody và cron, đồng thời kết nối DB/Redis theo cấu hình
func InitApp(ctx context.Context, cfg *Config, loc *time.Location) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := initComponents(ctx, cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New(cron.WithLocation(loc))

	return router, m, c, nil
}

func initComponents(ctx context.Context, cfg *Config) error {
	var err error
	if cfg.StoreDriver == "postgres" {
		DB, err = ConnectDB(cfg)
		if err != nil {
			return err
		}
	}

	if cfg.UseRedis() {
		RedisClient, err = ConnectRedis(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %v", err)
		}
	}

	log.Println("All components initialized successfully")
	return nil
}
