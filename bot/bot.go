package bot

import (
	"fmt"
	"strings"

	"carrotgamba/bot/features/account"
	"carrotgamba/bot/features/gamba"
	"carrotgamba/bot/features/items"
	"carrotgamba/bot/features/stats"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	gamba   *gamba.Feature
	account *account.Feature
	items   *items.Feature
	stats   *stats.Feature
}

// New creates a bot instance with all features and opens the gateway.
func New(
	config Config,
	wagerService interfaces.WagerService,
	itemService interfaces.ItemService,
	accountService interfaces.AccountService,
	statsService interfaces.StatsService,
	catalog *entities.Catalog,
) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:  config,
		session: dg,
	}

	bot.gamba = gamba.NewFeature(dg, wagerService, catalog)
	bot.account = account.NewFeature(accountService)
	bot.items = items.NewFeature(itemService, catalog)
	bot.stats = stats.NewFeature(statsService, accountService)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponents)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.Info("Bot is running")
	return bot, nil
}

// handleCommands routes slash commands to their feature modules
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log.WithFields(log.Fields{
		"command": name,
		"user":    i.Member.User.ID,
		"guild":   i.GuildID,
	}).Debug("Handling slash command")

	switch name {
	case "enroll":
		b.account.HandleEnroll(s, i)
	case "daily":
		b.account.HandleDaily(s, i)
	case "weekly":
		b.account.HandleWeekly(s, i)
	case "donate":
		b.account.HandleDonate(s, i)
	case "leaderboard":
		b.account.HandleLeaderboard(s, i)
	case "gamba":
		b.gamba.HandleCommand(s, i)
	case "inventory":
		b.items.HandleInventory(s, i)
	case "use":
		b.items.HandleUse(s, i)
	case "open":
		b.items.HandleOpen(s, i)
	case "stats":
		b.stats.HandleCommand(s, i)
	}
}

// handleComponents routes component interactions by custom ID prefix
func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, gamba.CustomIDPrefix) {
		b.gamba.HandleComponent(s, i, customID)
	}
}

// Close shuts down the Discord session
func (b *Bot) Close() error {
	log.Info("Shutting down bot")
	return b.session.Close()
}
