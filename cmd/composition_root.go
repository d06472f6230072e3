package cmd

import (
	"errors"
	"log/slog"

	kafkaout "shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	redisout "shipping/internal/adapters/out/redis"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the infrastructure adapters into the use case handlers.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	redisClient *redis.Client
	tokenStore  *redisout.RedisTokenStore
	dispatcher  *kafkaout.KafkaNotificationDispatcher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		redisClient: redisClient,
		tokenStore:  redisout.NewRedisTokenStore(redisClient, 0),
		dispatcher: kafkaout.NewKafkaNotificationDispatcher(
			[]string{configs.KafkaHost}, configs.KafkaNotificationTopic, logger),
	}
}

// Close releases the outbound connections held by the root.
func (c *CompositionRoot) Close() error {
	return errors.Join(
		c.dispatcher.Close(),
		c.redisClient.Close(),
	)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.dispatcher, 0)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceShipmentCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCreatePartnerCommandHandler() commands.CreatePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateVerifyPartnerCommandHandler() commands.VerifyPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyPartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateIssueReviewTokenCommandHandler() commands.IssueReviewTokenCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueReviewTokenCommandHandler(f, c.tokenStore)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f, c.tokenStore)
}

func (c *CompositionRoot) CreateNotifyOverdueShipmentsCommandHandler() commands.NotifyOverdueShipmentsCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotifyOverdueShipmentsCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentTimelineQueryHandler() queries.GetShipmentTimelineQueryHandler {
	return queries.NewGetShipmentTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllPartnersQueryHandler() queries.GetAllPartnersQueryHandler {
	return queries.NewGetAllPartnersQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
