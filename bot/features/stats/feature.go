package stats

import (
	"context"
	"fmt"
	"strconv"

	"carrotgamba/bot/common"
	"carrotgamba/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature owns the /stats slash command.
type Feature struct {
	statsService   interfaces.StatsService
	accountService interfaces.AccountService
}

// NewFeature creates the stats feature
func NewFeature(statsService interfaces.StatsService, accountService interfaces.AccountService) *Feature {
	return &Feature{statsService: statsService, accountService: accountService}
}

// HandleCommand handles the /stats slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Optional game option switches to per-game guild totals.
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "game" {
			f.respondGameStats(ctx, s, i, guildID, opt.StringValue())
			return
		}
	}

	f.respondPlayerStats(ctx, s, i, discordID, guildID)
}

func (f *Feature) respondPlayerStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID int64) {
	stats, err := f.statsService.PlayerStats(ctx, discordID, guildID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch player stats")
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	description := fmt.Sprintf("Stats for <@%d>", discordID)
	if account, err := f.accountService.GetAccount(ctx, discordID, guildID); err == nil {
		description = fmt.Sprintf(
			"Stats for <@%d>\nLevel **%d** • **%s carrots** • +%d%% passive",
			discordID, account.Level, common.FormatCarrots(account.Balance), account.PassiveMultiplierPercent)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Player stats",
		Description: description,
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Games", Value: fmt.Sprintf("%d played\n%d won / %d lost\n%.1f%% win rate",
				stats.TotalGamesPlayed, stats.TotalGamesWon, stats.TotalGamesLost, stats.WinRate()), Inline: true},
			{Name: "Carrots", Value: fmt.Sprintf("won %s\nlost %s",
				common.FormatCarrots(stats.TotalMoneyWon), common.FormatCarrots(stats.TotalMoneyLost)), Inline: true},
			{Name: "Records", Value: fmt.Sprintf("best win %s\nworst loss %s",
				common.FormatCarrots(stats.HighestSingleWin), common.FormatCarrots(stats.HighestSingleLoss)), Inline: true},
		},
	}

	respond(s, i, embed)
}

func (f *Feature) respondGameStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, gameKey string) {
	stats, err := f.statsService.GameStats(ctx, guildID, gameKey)
	if err != nil {
		log.WithError(err).Error("Failed to fetch game stats")
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s • guild totals", gameKey),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Games", Value: fmt.Sprintf("%d played\n%d won / %d lost",
				stats.TotalGamesPlayed, stats.TotalGamesWon, stats.TotalGamesLost), Inline: true},
			{Name: "Carrots", Value: fmt.Sprintf("wagered %s\nwon %s / lost %s",
				common.FormatCarrots(stats.TotalMoneyWagered),
				common.FormatCarrots(stats.TotalMoneyWon),
				common.FormatCarrots(stats.TotalMoneyLost)), Inline: true},
		},
	}

	respond(s, i, embed)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send interaction response")
	}
}

func parseIDs(i *discordgo.InteractionCreate) (discordID, guildID int64, err error) {
	if i.Member == nil || i.Member.User == nil {
		return 0, 0, fmt.Errorf("interaction outside a guild")
	}
	discordID, err = strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid user ID %s: %w", i.Member.User.ID, err)
	}
	guildID, err = strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid guild ID %s: %w", i.GuildID, err)
	}
	return discordID, guildID, nil
}
