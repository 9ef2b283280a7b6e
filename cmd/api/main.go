package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-service/internal/application"
	kafkaAdapter "github.com/mes-platform/production-service/internal/infrastructure/kafka"
	mongoRepo "github.com/mes-platform/production-service/internal/infrastructure/mongodb"
	"github.com/mes-platform/production-service/pkg/events"
	"github.com/mes-platform/production-service/pkg/kafka"
	"github.com/mes-platform/production-service/pkg/logging"
	"github.com/mes-platform/production-service/pkg/metrics"
	"github.com/mes-platform/production-service/pkg/middleware"
	"github.com/mes-platform/production-service/pkg/mongodb"
)

const serviceName = "production-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting production-service API")

	config := loadConfig()
	ctx := context.Background()

	// Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	// MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Kafka producer
	kafkaProducer := kafka.NewProducer(config.Kafka)
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := events.NewFactory("/production-service")
	eventPublisher := kafkaAdapter.NewEventPublisher(instrumentedProducer, eventFactory)

	// Repositories
	db := mongoClient.Database()
	jobRepo := mongoRepo.NewInstrumentedJobRepository(mongoRepo.NewJobRepository(db), m)
	runRepo := mongoRepo.NewRunRepository(db)
	workflowRepo := mongoRepo.NewWorkflowRepository(db)
	workcenterRepo := mongoRepo.NewWorkcenterRepository(db)
	resourceRepo := mongoRepo.NewResourceRepository(db)

	// Application service
	productionService := application.NewProductionApplicationService(
		jobRepo,
		runRepo,
		workflowRepo,
		workcenterRepo,
		resourceRepo,
		eventPublisher,
		m,
		logger,
	)

	router := gin.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Correlation-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Correlation-ID"},
		AllowCredentials: true,
	}))

	middleware.Setup(router, logger.Logger)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	{
		jobs := api.Group("/jobs")
		{
			jobs.POST("", createJobHandler(productionService, logger))
			jobs.GET("", listJobsHandler(productionService, logger))
			jobs.GET("/:jobId", getJobHandler(productionService, logger))
			jobs.PUT("/:jobId", updateJobHandler(productionService, logger))
			jobs.DELETE("/:jobId", deleteJobHandler(productionService, logger))

			// Lifecycle operations
			jobs.POST("/:jobId/release", releaseJobHandler(productionService, logger))
			jobs.POST("/:jobId/status", setJobStatusHandler(productionService, logger))
			jobs.POST("/:jobId/block", blockJobHandler(productionService, logger))
			jobs.POST("/:jobId/unblock", unblockJobHandler(productionService, logger))
			jobs.POST("/:jobId/advance", advanceStageHandler(productionService, logger))
			jobs.POST("/:jobId/complete", completeJobHandler(productionService, logger))

			// Production runs
			jobs.POST("/:jobId/runs", recordRunHandler(productionService, logger))
			jobs.GET("/:jobId/runs", listRunsHandler(productionService, logger))
		}

		schedule := api.Group("/schedule")
		{
			schedule.GET("/calendar", calendarHandler(productionService, logger))
			schedule.GET("/gantt", ganttHandler(productionService, logger))
		}

		reports := api.Group("/reports")
		{
			reports.GET("", listReportTypesHandler())
			reports.GET("/:type", reportHandler(productionService, logger))
		}

		api.GET("/workflows", listWorkflowsHandler(productionService, logger))
		api.GET("/workcenters", listWorkcentersHandler(productionService, logger))
		api.GET("/resources", listResourcesHandler(productionService, logger))
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr  string
	CORSOrigins []string
	MongoDB     *mongodb.Config
	Kafka       *kafka.Config
}

func loadConfig() *Config {
	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	kafkaConfig.ClientID = serviceName

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8010"),
		CORSOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:5173"),
			"http://localhost:3000",
		},
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "production_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
