package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	customerapp "github.com/muhammadheryan/customer-hub/application/customer"
	orderapp "github.com/muhammadheryan/customer-hub/application/order"
	uploadapp "github.com/muhammadheryan/customer-hub/application/upload"
	userapp "github.com/muhammadheryan/customer-hub/application/user"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	redisclient "github.com/muhammadheryan/customer-hub/cmd/redis"
	_ "github.com/muhammadheryan/customer-hub/docs"
	orderRepo "github.com/muhammadheryan/customer-hub/repository/order"
	redisRepo "github.com/muhammadheryan/customer-hub/repository/redis"
	txRepo "github.com/muhammadheryan/customer-hub/repository/tx"
	userRepo "github.com/muhammadheryan/customer-hub/repository/user"
	"github.com/muhammadheryan/customer-hub/thirdparty/rabbitmq"
	"github.com/muhammadheryan/customer-hub/transport"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	"go.uber.org/zap"
)

// @title CUSTOMER-HUB API
// @version 1.0
// @description Customer administration API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize RabbitMQ publisher and the order-completed consumer
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Internal.APIURL, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo)
	CustomerApp := customerapp.NewCustomerApp(TxRepo, UserRepo, OrderRepo, publisher)
	OrderApp := orderapp.NewOrderApp(OrderRepo)
	UploadApp, err := uploadapp.NewUploadApp(cfg)
	if err != nil {
		logger.Fatal("err init upload dir", zap.Error(err))
	}

	httpTransport := transport.NewTransport(cfg, UserApp, CustomerApp, OrderApp, UploadApp, RedisRepo)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
