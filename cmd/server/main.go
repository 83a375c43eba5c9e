package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/config"
	"github.com/NabievDev/NewPeople-sub000/internal/handler"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/database"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	config.Init(*configPath)
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret is not configured", token.ErrEmptySecret)
	}

	database.InitMySQL(cfg.Database.MySQL.DSN, cfg.Database.MySQL.LogLevel)
	if err := database.RunMigrate(database.DB); err != nil {
		log.Fatal("Failed to run migrations", err)
	}
	if cfg.Server.Seed {
		if err := database.Seed(database.DB, cfg.Server.SeedAdminPassword, cfg.Server.SeedModeratorPassword); err != nil {
			log.Fatal("Failed to seed database", err)
		}
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL())
	blacklist := token.NewRedisBlacklist(database.RDB)

	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	tagRepo := repository.NewTagRepository(database.DB)
	statusRepo := repository.NewStatusRepository(database.DB)
	appealRepo := repository.NewAppealRepository(database.DB)

	userService := service.NewUserService(userRepo, jwtManager, blacklist)
	h := handlers{
		user: handler.NewUserHandler(userService,
			service.NewStatisticsService(appealRepo, statusRepo, tagRepo, userRepo)),
		category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		tag:      handler.NewTagHandler(service.NewTagService(tagRepo)),
		status:   handler.NewStatusHandler(service.NewStatusService(statusRepo)),
		appeal: handler.NewAppealHandler(
			service.NewAppealService(appealRepo, categoryRepo, tagRepo, statusRepo)),
	}

	gin.SetMode(cfg.Server.Mode)
	r := setupRouter(h, cfg.CORS.AllowOrigins, jwtManager, userService, blacklist)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Warnf("关闭数据库连接失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
