package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rbarros/vigia/internal/compliance/billing"
	"github.com/rbarros/vigia/internal/compliance/controller"
	gorm "github.com/rbarros/vigia/internal/compliance/db"
	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/rbarros/vigia/internal/compliance/handlers"
	"github.com/rbarros/vigia/internal/compliance/notify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	HTTPPort     int      `yaml:"HTTP_PORT"`
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	JWTSecret    string   `yaml:"JWT_SECRET"`
	Topic        string   `yaml:"TOPIC"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := gorm.NewRepository(initDatabase(cfg))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		log.Fatal("failed to initialize Kafka producer", err)
	}
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auditConsumer := events.NewConsumer(cfg.KafkaBrokers, "vigia-audit", cfg.Topic, logger)
	auditConsumer.RegisterHandler(events.AuditHandler(logger))
	auditConsumer.Start(ctx)
	defer auditConsumer.Close()

	employeeSvc := controller.NewEmployeeService(repo, producer, logger)
	certificateSvc := controller.NewCertificateService(repo, producer, logger)
	trainingSvc := controller.NewTrainingService(repo, producer, logger)
	equipmentSvc := controller.NewEquipmentService(repo, producer, logger)
	companySvc := controller.NewCompanyService(repo, producer, logger)
	reportSvc := controller.NewReportService(repo, logger)
	billingSvc := billing.NewService(repo, billing.NewSimulatedProvider(), producer, logger)
	notifier := notify.NewSender(producer, logger)

	handler := handlers.NewHandler(
		employeeSvc,
		certificateSvc,
		trainingSvc,
		equipmentSvc,
		companySvc,
		reportSvc,
		billingSvc,
		notifier,
		logger,
	)

	server := handlers.NewServer(cfg.HTTPPort, handler, cfg.JWTSecret, logger)
	go waitForShutdown(server, logger)

	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig loads configuration. Use real config tooling (e.g. Viper) in production.
func loadConfig() (*Config, error) {
	configPath := filepath.Join("internal", "compliance", "config", "config.yaml")
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initDatabase initializes the database connection.
func initDatabase(cfg *Config) *gorm.Config {
	return &gorm.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
