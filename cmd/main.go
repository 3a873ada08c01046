package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"fete/internal/advisor"
	"fete/internal/api"
	"fete/internal/monitoring"
	"fete/internal/repository"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

// Config represents the application configuration.
type Config struct {
	Database struct {
		Dialect string `yaml:"dialect"`
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`
	AuthSecret    string `yaml:"auth_secret"`
	EnableAdvisor bool   `yaml:"enable_advisor"`
	Optimizer     struct {
		MaxPoolSize int `yaml:"max_pool_size"`
	} `yaml:"optimizer"`
	MetricsConfig struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

func main() {
	flag.Parse()

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := repository.InitDB(config.Database.Dialect, config.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repository.CloseDB()

	guests := repository.NewGuestRepository(repository.GetDB())
	items := repository.NewItemRepository(repository.GetDB())
	if err := repository.SeedDefaultCatalog(items); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	metrics := monitoring.NewCollector()

	var adv *advisor.Advisor
	if config.EnableAdvisor {
		adv, err = advisor.New()
		if err != nil {
			log.Printf("Advisor disabled: %v", err)
			adv = nil
		}
	}

	planner := api.New(guests, items, metrics, adv, config.AuthSecret)
	planner.MaxPoolSize = config.Optimizer.MaxPoolSize

	if config.MetricsConfig.Enabled {
		mPort := config.MetricsConfig.Port
		if mPort == 0 {
			mPort = *metricsPort
		}
		go startMetricsServer(mPort, metrics)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: planner.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func loadConfig(path string) (*Config, error) {
	config := &Config{}
	config.Database.Dialect = "sqlite3"
	config.Database.DSN = "fete.db"
	config.Optimizer.MaxPoolSize = 20
	config.MetricsConfig.Enabled = true

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file %s not found, using defaults", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func startMetricsServer(port int, metrics *monitoring.Collector) {
	metricsRouter := gin.Default()
	handler := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	metricsRouter.GET("/metrics", gin.WrapH(handler))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
