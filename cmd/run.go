package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"carrotgamba/bot"
	"carrotgamba/config"
	"carrotgamba/database"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/services"
	"carrotgamba/infrastructure"
	"carrotgamba/repository"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting carrotgamba bot...")

	cfg := config.Get()

	catalog := entities.NewCatalog()
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("invalid catalog configuration: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), cfg.DatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	log.Info("Connecting to NATS...")
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure event stream: %w", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	gameHistoryRepo := repository.NewGameHistoryRepository(db)
	balanceHistoryRepo := repository.NewBalanceHistoryRepository(db)

	// Shared in-memory state: one lock table and one active-item registry
	// serve all services so per-user operations are fully serialized.
	locks := services.NewUserLocks()
	activeItems := services.NewActiveItemRegistry()
	rng := services.NewRandomSource()

	wagerService := services.NewWagerService(
		services.NewGameRegistry(rng),
		services.NewItemPipeline(),
		services.NewProgression(catalog),
		activeItems,
		locks,
		accountRepo,
		inventoryRepo,
		gameHistoryRepo,
		balanceHistoryRepo,
		eventPublisher,
		cfg.SessionTimeout,
	)
	itemService := services.NewItemService(
		catalog,
		services.NewCrateRoller(catalog, rng),
		activeItems,
		locks,
		inventoryRepo,
		eventPublisher,
	)
	accountService := services.NewAccountService(locks, accountRepo, balanceHistoryRepo, eventPublisher)
	statsService := services.NewStatsService(gameHistoryRepo)

	log.Info("Initializing Discord bot...")
	b, err := bot.New(
		bot.Config{Token: cfg.DiscordToken, GuildID: cfg.GuildID},
		wagerService,
		itemService,
		accountService,
		statsService,
		catalog,
	)
	if err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	defer b.Close()

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return nil
}
