package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campus-hall/config"
	"campus-hall/internal/api/handler"
	"campus-hall/internal/api/router"
	"campus-hall/internal/notify"
	"campus-hall/internal/repository"
	"campus-hall/internal/service"
	"campus-hall/pkg/database"
	"campus-hall/pkg/jwt"
	applogger "campus-hall/pkg/logger"
	"campus-hall/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，限流与 Redis 通知通道将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化通知网关
	var gateway notify.Gateway = notify.NopGateway{}
	var amqpGateway *notify.AMQPGateway
	switch cfg.Notify.Backend {
	case "redis":
		if rdb != nil {
			gateway = notify.NewRedisGateway(rdb)
		} else {
			logger.Warn("Redis 不可用，通知推送降级为空实现")
		}
	case "amqp":
		amqpGateway, err = notify.NewAMQPGateway(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			logger.Warn("RabbitMQ 连接失败，通知推送降级为空实现", zap.Error(err))
		} else {
			gateway = amqpGateway
		}
	}

	// 6. 载入静态课表
	var timetable service.TimetableSource
	switch cfg.Timetable.Source {
	case "ics":
		timetable, err = service.LoadTimetableICS(cfg.Timetable.Path)
	default:
		timetable, err = service.LoadTimetableJSON(cfg.Timetable.Path)
	}
	if err != nil {
		logger.Fatal("载入课表失败", zap.String("path", cfg.Timetable.Path), zap.Error(err))
	}

	// 7. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 8. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)

	// 8.1 研讨厅属性以配置为准（种子行由迁移写入，这里同步名称与容量）
	if hall, err := repo.Hall.Get(context.Background()); err != nil {
		logger.Fatal("查询研讨厅失败", zap.Error(err))
	} else if hall.Name != cfg.Hall.Name || hall.Capacity != cfg.Hall.Capacity {
		hall.Name = cfg.Hall.Name
		hall.Capacity = cfg.Hall.Capacity
		if err := repo.Hall.Update(context.Background(), hall); err != nil {
			logger.Fatal("同步研讨厅配置失败", zap.Error(err))
		}
		logger.Info("研讨厅配置已同步", zap.String("name", hall.Name), zap.Int("capacity", hall.Capacity))
	}

	svc := service.NewService(repo, gateway, timetable, logger)
	h := handler.NewHandler(svc)

	// 9. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 10. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 11. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 与 AMQP 连接
	if rdb != nil {
		rdb.Close()
	}
	if amqpGateway != nil {
		amqpGateway.Close()
	}

	logger.Info("服务器已关闭")
}
