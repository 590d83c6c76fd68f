package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelmatch/cmd"
	httpadapter "parcelmatch/internal/adapters/in/http"
	kafkain "parcelmatch/internal/adapters/in/kafka"
	"parcelmatch/internal/adapters/out/postgres/announcementrepo"
	"parcelmatch/internal/adapters/out/postgres/courierrepo"
	"parcelmatch/internal/adapters/out/postgres/notificationrepo"
	"parcelmatch/internal/adapters/out/postgres/subscriptionrepo"
	"parcelmatch/internal/generated/servers"
	"parcelmatch/internal/jobs"
	"parcelmatch/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer root.Publisher().Close()
	defer root.Hub().Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(root.Collectors()...)

	exhausted := metrics.NewMatchingExhaustedTotal()
	registry.MustRegister(exhausted)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startConsumers(ctx, root, configs, exhausted, logger)

	jobManager := jobs.NewJobManager(root.CreateRematchSweepJob())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	servers.RegisterHandlersWithBaseURL(e, httpadapter.NewServer(
		root.CreateCreateAnnouncementCommandHandler(),
		root.CreatePublishAnnouncementCommandHandler(),
		root.CreateRequestSubscriptionCommandHandler(),
		root.CreateAcceptSubscriptionCommandHandler(),
		root.CreateGetOpenAnnouncementsQueryHandler(),
		root.CreateGetCourierNotificationsQueryHandler(),
		root.Hub(),
	), "/api/v1")

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

// startConsumers wires one consumer group per topic. Consumers for topics
// left unconfigured are skipped, so a partial deployment can run without
// the whole bus.
func startConsumers(
	ctx context.Context,
	root *cmd.CompositionRoot,
	configs cmd.Config,
	exhausted prometheus.Counter,
	logger *slog.Logger,
) {
	specs := []struct {
		topic   string
		handler kafkain.HandleFunc
	}{
		{
			topic: configs.KafkaAnnouncementPublishedTopic,
			handler: kafkain.NewAnnouncementPublishedHandler(
				root.CreateMatchAnnouncementCommandHandler(),
				configs.MaxSearchRounds(),
				configs.RetryWaitDuration(),
				exhausted,
				logger,
			),
		},
		{
			topic: configs.KafkaMatchingResultsTopic,
			handler: kafkain.NewCouriersMatchedHandler(
				root.CreateDispatchNotificationsCommandHandler(),
				logger,
			),
		},
		{
			topic: configs.KafkaSubscriptionAttemptsTopic,
			handler: kafkain.NewSubscriptionRequestedHandler(
				root.CreateRegisterSubscriptionCommandHandler(),
				logger,
			),
		},
		{
			topic: configs.KafkaCourierLifecycleTopic,
			handler: kafkain.NewCourierLifecycleHandler(
				root.CreateCreateCourierCommandHandler(),
				root.CreateUpdateCourierLocationCommandHandler(),
				logger,
			),
		},
	}

	for _, spec := range specs {
		groupID := fmt.Sprintf("%s-%s", configs.KafkaConsumerGroup, spec.topic)

		consumer, err := kafkain.NewConsumer(logger, configs.KafkaBrokers(), groupID, spec.topic, spec.handler)
		if err != nil {
			log.Fatalf("Failed to create consumer for topic %s: %v", spec.topic, err)
		}

		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Consumer stopped", "error", err)
			}
		}()
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		KafkaHost:          goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup: goDotEnvVariable("KAFKA_CONSUMER_GROUP"),

		KafkaAnnouncementPublishedTopic: goDotEnvVariable("KAFKA_ANNOUNCEMENT_PUBLISHED_TOPIC"),
		KafkaMatchingResultsTopic:       goDotEnvVariable("KAFKA_MATCHING_RESULTS_TOPIC"),
		KafkaSubscriptionAttemptsTopic:  goDotEnvVariable("KAFKA_SUBSCRIPTION_ATTEMPTS_TOPIC"),
		KafkaCourierLifecycleTopic:      goDotEnvVariable("KAFKA_COURIER_LIFECYCLE_TOPIC"),

		ElasticHosts: goDotEnvVariable("ELASTIC_HOSTS"),
		ElasticIndex: goDotEnvVariable("ELASTIC_INDEX"),

		SMTPHost:           goDotEnvVariable("SMTP_HOST"),
		SMTPPort:           goDotEnvVariable("SMTP_PORT"),
		SMTPUser:           goDotEnvVariable("SMTP_USER"),
		SMTPPassword:       goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:           goDotEnvVariable("SMTP_FROM"),
		CourierEmailDomain: goDotEnvVariable("COURIER_EMAIL_DOMAIN"),

		PushGatewayURL: goDotEnvVariable("PUSH_GATEWAY_URL"),

		MatchingMaxRounds: goDotEnvVariable("MATCHING_MAX_ROUNDS"),
		MatchingRetryWait: goDotEnvVariable("MATCHING_RETRY_WAIT"),
		RematchMinAge:     goDotEnvVariable("REMATCH_MIN_AGE"),
		StreamBufferSize:  goDotEnvVariable("STREAM_BUFFER_SIZE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&announcementrepo.AnnouncementDTO{},
		&courierrepo.CourierDTO{},
		&subscriptionrepo.SubscriptionDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}
