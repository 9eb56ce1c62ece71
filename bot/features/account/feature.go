package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"carrotgamba/bot/common"
	"carrotgamba/config"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature owns enrollment, claims and the leaderboard.
type Feature struct {
	accountService interfaces.AccountService
}

// NewFeature creates the account feature
func NewFeature(accountService interfaces.AccountService) *Feature {
	return &Feature{accountService: accountService}
}

// HandleEnroll handles the /enroll slash command
func (f *Feature) HandleEnroll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, username, err := parseCaller(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.accountService.Enroll(ctx, discordID, guildID, username)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	respond(s, i, &discordgo.MessageEmbed{
		Title:       "🐰 Welcome to the warren!",
		Description: fmt.Sprintf("<@%d> enrolled with **%s carrots**.\nTry your luck with /gamba.", discordID, common.FormatCarrots(account.Balance)),
		Color:       common.ColorSuccess,
	})
}

// HandleDaily handles the /daily slash command
func (f *Feature) HandleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleClaim(s, i, "Daily", f.accountService.ClaimDaily)
}

// HandleWeekly handles the /weekly slash command
func (f *Feature) HandleWeekly(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleClaim(s, i, "Weekly", f.accountService.ClaimWeekly)
}

func (f *Feature) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, kind string, claim func(context.Context, int64, int64) (int64, int64, error)) {
	ctx := context.Background()

	discordID, guildID, _, err := parseCaller(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	granted, newBalance, err := claim(ctx, discordID, guildID)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			common.RespondWithError(s, i, "You need an account first. Use /enroll to get started.")
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	respond(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🥕 %s claim", kind),
		Description: fmt.Sprintf("<@%d> claimed **%s carrots**.\nBalance: **%s carrots**", discordID, common.FormatCarrots(granted), common.FormatCarrots(newBalance)),
		Color:       common.ColorSuccess,
	})
}

// HandleDonate handles the /donate slash command
func (f *Feature) HandleDonate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, _, err := parseCaller(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}
	if recipient == nil {
		common.RespondWithError(s, i, "Pick someone to donate to.")
		return
	}
	if recipient.Bot {
		common.RespondEphemeral(s, i, "Bots have no use for carrots.")
		return
	}
	toDiscordID, err := strconv.ParseInt(recipient.ID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	senderBalance, _, err := f.accountService.Transfer(ctx, discordID, toDiscordID, guildID, amount)
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			common.RespondWithError(s, i, "Both of you need accounts. Use /enroll to get started.")
			return
		}
		if errors.Is(err, entities.ErrInsufficientFunds) {
			common.RespondEphemeral(s, i, "You don't have that many carrots.")
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	respond(s, i, &discordgo.MessageEmbed{
		Title:       "🥕 Donation",
		Description: fmt.Sprintf("<@%d> donated **%s carrots** to <@%d>.\nYour balance: **%s carrots**", discordID, common.FormatCarrots(amount), toDiscordID, common.FormatCarrots(senderBalance)),
		Color:       common.ColorSuccess,
	})
}

// HandleLeaderboard handles the /leaderboard slash command
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	_, guildID, _, err := parseCaller(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	accounts, err := f.accountService.Leaderboard(ctx, guildID, config.Get().LeaderboardSize)
	if err != nil {
		log.WithError(err).Error("Failed to fetch leaderboard")
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	if len(accounts) == 0 {
		common.RespondEphemeral(s, i, "Nobody has enrolled yet. Be the first with /enroll!")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var board strings.Builder
	for rank, account := range accounts {
		marker := fmt.Sprintf("%d.", rank+1)
		if rank < len(medals) {
			marker = medals[rank]
		}
		fmt.Fprintf(&board, "%s <@%d> • **%s carrots** (level %d)\n",
			marker, account.DiscordID, common.FormatCarrots(account.Balance), account.Level)
	}

	respond(s, i, &discordgo.MessageEmbed{
		Title:       "🏆 Richest rabbits",
		Description: board.String(),
		Color:       common.ColorInfo,
	})
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

func parseCaller(i *discordgo.InteractionCreate) (discordID, guildID int64, username string, err error) {
	if i.Member == nil || i.Member.User == nil {
		return 0, 0, "", fmt.Errorf("interaction outside a guild")
	}
	discordID, err = strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid user ID %s: %w", i.Member.User.ID, err)
	}
	guildID, err = strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid guild ID %s: %w", i.GuildID, err)
	}
	return discordID, guildID, i.Member.User.Username, nil
}
