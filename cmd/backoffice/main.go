package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/search"
	backofficeapp "github.com/wyfcoding/shopadmin/internal/backoffice/application"
	backofficehttp "github.com/wyfcoding/shopadmin/internal/backoffice/interfaces/http"
	catalogapp "github.com/wyfcoding/shopadmin/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/shopadmin/internal/catalog/domain"
	catalogmessaging "github.com/wyfcoding/shopadmin/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/wyfcoding/shopadmin/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/shopadmin/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/shopadmin/internal/order/application"
	orderdomain "github.com/wyfcoding/shopadmin/internal/order/domain"
	ordercatalog "github.com/wyfcoding/shopadmin/internal/order/infrastructure/catalog"
	ordermessaging "github.com/wyfcoding/shopadmin/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/shopadmin/internal/order/infrastructure/persistence/mysql"
	ordersearch "github.com/wyfcoding/shopadmin/internal/order/infrastructure/search"
	orderevents "github.com/wyfcoding/shopadmin/internal/order/interfaces/events"
	orderhttp "github.com/wyfcoding/shopadmin/internal/order/interfaces/http"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/backoffice/config.toml", "config file path")

// Config 在平台基础配置上追加 Elasticsearch 段
type Config struct {
	config.Config `mapstructure:",squash"`
	Elasticsearch config.ElasticsearchConfig `mapstructure:"elasticsearch"`
}

func main() {
	flag.Parse()

	// 1. 配置
	var cfg Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)

	// 4. 数据库
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&catalogdomain.Brand{},
			&catalogdomain.Category{},
			&catalogdomain.Product{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&outbox.Message{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	// 6. Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		ServiceName:         cfg.Server.Name,
		ElasticsearchConfig: cfg.Elasticsearch,
	}, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init elasticsearch", "error", err)
	}

	// 7. 仓储
	productRepo := catalogmysql.NewProductRepository(db.RawDB())
	categoryRepo := catalogmysql.NewCategoryRepository(db.RawDB())
	brandRepo := catalogmysql.NewBrandRepository(db.RawDB())
	orderRepo := ordermysql.NewOrderRepository(db.RawDB())

	catalogPublisher := catalogmessaging.NewOutboxPublisher(outboxMgr)
	orderPublisher := ordermessaging.NewOutboxPublisher(outboxMgr)
	var orderSearchRepo orderdomain.OrderSearchRepository
	if esClient != nil {
		orderSearchRepo = ordersearch.NewOrderSearchRepository(esClient)
	}

	// 8. 应用服务
	catalogCommandSvc := catalogapp.NewCatalogCommandService(productRepo, categoryRepo, brandRepo, catalogPublisher)
	catalogQuerySvc := catalogapp.NewCatalogQueryService(productRepo, categoryRepo, brandRepo)

	productCatalog := ordercatalog.NewProductCatalog(productRepo)
	orderCommandSvc := orderapp.NewOrderCommandService(orderRepo, productCatalog, orderPublisher)
	orderQuerySvc := orderapp.NewOrderQueryService(orderRepo, orderSearchRepo)

	registry := backofficeapp.NewRegistry(catalogQuerySvc, orderQuerySvc)
	globalSearch := backofficeapp.NewGlobalSearchService(catalogQuerySvc, orderQuerySvc)

	// 9. 搜索投影消费者
	var searchConsumer *kafka.Consumer
	if orderSearchRepo != nil {
		consumerCfg := cfg.MessageQueue.Kafka
		consumerCfg.Topic = orderdomain.OrderEventsTopic
		if consumerCfg.GroupID == "" {
			consumerCfg.GroupID = "backoffice-search"
		}
		searchConsumer = kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
		searchHandler := orderevents.NewOrderSearchHandler(orderSearchRepo, orderRepo)
		searchHandler.Subscribe(context.Background(), searchConsumer)
	}

	// 10. 接口层
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	root := r.Group("")
	cataloghttp.NewCatalogHandler(catalogCommandSvc, catalogQuerySvc).RegisterRoutes(root)
	orderhttp.NewOrderHandler(orderCommandSvc, orderQuerySvc).RegisterRoutes(root)
	backofficehttp.NewBackofficeHandler(registry, globalSearch).RegisterRoutes(root)

	// 11. 启动
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
