package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	esadapter "parcelmatch/internal/adapters/out/elasticsearch"
	kafkaout "parcelmatch/internal/adapters/out/kafka"
	"parcelmatch/internal/adapters/out/notify"
	"parcelmatch/internal/adapters/out/postgres"
	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/jobs"
	"parcelmatch/internal/realtime"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires the application together: repositories, the geo
// index, the event publisher, notification channels and every command and
// query handler. Handlers carrying Prometheus counters are built once and
// reused, so their collectors register exactly once.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	geoIndex   ports.GeoIndex
	publisher  *kafkaout.Producer
	hub        *realtime.Hub
	logger     *slog.Logger

	matchHandler    commands.MatchAnnouncementCommandHandler
	dispatchHandler commands.DispatchNotificationsCommandHandler
	acceptHandler   commands.AcceptSubscriptionCommandHandler
	rematchSweepJob *jobs.RematchSweepJob
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: config.ElasticAddresses(),
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	geoIndex, err := esadapter.NewCourierGeoIndex(esClient, config.ElasticIndex)
	if err != nil {
		return nil, fmt.Errorf("create courier geo index: %w", err)
	}

	publisher, err := kafkaout.NewProducer(config.KafkaBrokers(), kafkaout.Topics{
		AnnouncementPublished: config.KafkaAnnouncementPublishedTopic,
		MatchingResults:       config.KafkaMatchingResultsTopic,
		SubscriptionAttempts:  config.KafkaSubscriptionAttemptsTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	hub := realtime.NewHub(config.StreamBufferSizeNumber(), logger)

	emailSender, err := notify.NewSMTPEmailSender(
		config.SMTPHost,
		config.SMTPPortNumber(),
		config.SMTPUser,
		config.SMTPPassword,
		config.SMTPFrom,
		courierEmailResolver(config.CourierEmailDomain),
	)
	if err != nil {
		return nil, fmt.Errorf("create email sender: %w", err)
	}

	pushSender, err := notify.NewWebhookPushSender(&http.Client{}, config.PushGatewayURL)
	if err != nil {
		return nil, fmt.Errorf("create push sender: %w", err)
	}

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		geoIndex:   geoIndex,
		publisher:  publisher,
		hub:        hub,
		logger:     logger,
	}

	root.matchHandler = commands.NewMatchAnnouncementCommandHandler(
		root.matchingUoWFactory(), geoIndex, publisher, logger)
	root.dispatchHandler = commands.NewDispatchNotificationsCommandHandler(
		root.dispatchUoWFactory(), emailSender, pushSender, hub, logger)
	root.acceptHandler = commands.NewAcceptSubscriptionCommandHandler(
		root.subscriptionUoWFactory(), logger)
	root.rematchSweepJob = jobs.NewRematchSweepJob(
		root.sweepUoWFactory(), publisher, config.RematchMinAgeDuration(), logger)

	return root, nil
}

// GeoIndex returns the courier geo index.
func (c *CompositionRoot) GeoIndex() ports.GeoIndex {
	return c.geoIndex
}

// Publisher returns the event publisher, also used for closing it on shutdown.
func (c *CompositionRoot) Publisher() *kafkaout.Producer {
	return c.publisher
}

// Hub returns the live notification stream hub.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

// Collectors returns every Prometheus collector owned by the object graph.
func (c *CompositionRoot) Collectors() []prometheus.Collector {
	collectors := make([]prometheus.Collector, 0, 8)
	collectors = append(collectors, c.matchHandler.Collectors()...)
	collectors = append(collectors, c.dispatchHandler.Collectors()...)
	collectors = append(collectors, c.acceptHandler.Collectors()...)
	collectors = append(collectors, c.rematchSweepJob.Collectors()...)
	return collectors
}

func (c *CompositionRoot) CreateCreateAnnouncementCommandHandler() commands.CreateAnnouncementCommandHandler {
	return commands.NewCreateAnnouncementCommandHandler(c.announcementUoWFactory())
}

func (c *CompositionRoot) CreatePublishAnnouncementCommandHandler() commands.PublishAnnouncementCommandHandler {
	return commands.NewPublishAnnouncementCommandHandler(c.announcementUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateMatchAnnouncementCommandHandler() commands.MatchAnnouncementCommandHandler {
	return c.matchHandler
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	return c.dispatchHandler
}

func (c *CompositionRoot) CreateRequestSubscriptionCommandHandler() commands.RequestSubscriptionCommandHandler {
	return commands.NewRequestSubscriptionCommandHandler(c.announcementUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRegisterSubscriptionCommandHandler() commands.RegisterSubscriptionCommandHandler {
	return commands.NewRegisterSubscriptionCommandHandler(c.subscriptionUoWFactory())
}

func (c *CompositionRoot) CreateAcceptSubscriptionCommandHandler() commands.AcceptSubscriptionCommandHandler {
	return c.acceptHandler
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory(), c.geoIndex, c.logger)
}

func (c *CompositionRoot) CreateGetOpenAnnouncementsQueryHandler() queries.GetOpenAnnouncementsQueryHandler {
	return queries.NewGetOpenAnnouncementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierNotificationsQueryHandler() queries.GetCourierNotificationsQueryHandler {
	return queries.NewGetCourierNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRematchSweepJob() *jobs.RematchSweepJob {
	return c.rematchSweepJob
}

func (c *CompositionRoot) announcementUoWFactory() commands.AnnouncementUoWFactory {
	return FuncAnnouncementUoWFactory(func() commands.AnnouncementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) matchingUoWFactory() commands.MatchingUoWFactory {
	return FuncMatchingUoWFactory(func() commands.MatchingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) subscriptionUoWFactory() commands.SubscriptionUoWFactory {
	return FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sweepUoWFactory() jobs.SweepUoWFactory {
	return FuncSweepUoWFactory(func() jobs.SweepUoW {
		return c.uowFactory.Create()
	})
}

// courierEmailResolver maps a courier to their relay mailbox on the
// notification domain. The mail system routes those mailboxes to whatever
// address the courier registered on the platform.
func courierEmailResolver(domain string) notify.AddressResolver {
	if domain == "" {
		domain = "couriers.parcelmatch.local"
	}

	return func(_ context.Context, courierID kernel.UUID) (string, error) {
		return fmt.Sprintf("courier-%s@%s", courierID.String(), domain), nil
	}
}

type FuncAnnouncementUoWFactory func() commands.AnnouncementUoW

func (f FuncAnnouncementUoWFactory) Create() commands.AnnouncementUoW {
	return f()
}

type FuncMatchingUoWFactory func() commands.MatchingUoW

func (f FuncMatchingUoWFactory) Create() commands.MatchingUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncSubscriptionUoWFactory func() commands.SubscriptionUoW

func (f FuncSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncSweepUoWFactory func() jobs.SweepUoW

func (f FuncSweepUoWFactory) Create() jobs.SweepUoW {
	return f()
}
