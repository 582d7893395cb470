package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/shopbot/goshop/internal/api"
	"github.com/shopbot/goshop/internal/engine"
	"github.com/shopbot/goshop/internal/inject"
	"github.com/shopbot/goshop/internal/metrics"
	"github.com/shopbot/goshop/internal/store"
	"github.com/shopbot/goshop/pkg/config"
	"github.com/shopbot/goshop/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	var (
		listenAddr  = flag.String("listen", cfg.ListenAddr, "HTTP listen address")
		catalogPath = flag.String("catalog", cfg.CatalogPath, "product catalog YAML (empty = built-in)")
		logLevel    = flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
		logFile     = flag.String("log-file", cfg.LogFile, "log file path (empty = stdout only)")
		randSeed    = flag.Int64("rand-seed", cfg.RandSeed, "injector RNG seed (0 = time-based)")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{
		Level:      *logLevel,
		OutputFile: *logFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		logrus.Fatalf("初始化日志失败: %v", err)
	}

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		logrus.Fatalf("加载商品目录失败: %v", err)
	}

	reg := metrics.New()
	inv := store.NewInventory(catalog)
	orders := store.NewOrders()
	inj := inject.NewRandom(inject.Policy{
		StockFailChance:    cfg.StockFailChance,
		PaymentFailChance:  cfg.PaymentFailChance,
		FaultChance:        cfg.FaultChance,
		MinProcessingDelay: cfg.MinProcessingDelay,
		MaxProcessingDelay: cfg.MaxProcessingDelay,
		MinLookupDelay:     cfg.MinLookupDelay,
		MaxLookupDelay:     cfg.MaxLookupDelay,
	}, *randSeed)
	eng := engine.New(inv, orders, inj, reg)

	srv, err := api.New(api.Config{APIKey: cfg.APIKey}, eng, reg)
	if err != nil {
		logrus.Fatalf("初始化服务失败: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              *listenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("订单服务已启动: %s（已载入 %d 个商品）", *listenAddr, len(catalog))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("HTTP 服务异常退出: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	logrus.Info("服务已停止")
}
