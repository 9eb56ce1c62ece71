package gamba

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"carrotgamba/bot/common"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type userGuildKey struct {
	discordID int64
	guildID   int64
}

// trackedRound remembers where a pending session's message lives so the
// timeout callback can update it after the fact.
type trackedRound struct {
	channelID string
	messageID string
	bet       *entities.Bet
}

// Feature owns the /gamba command and its interactive components.
type Feature struct {
	session      *discordgo.Session
	wagerService interfaces.WagerService
	catalog      *entities.Catalog

	mu     sync.Mutex
	rounds map[userGuildKey]*trackedRound
}

// NewFeature creates the gamba feature and hooks the timeout callback.
func NewFeature(session *discordgo.Session, wagerService interfaces.WagerService, catalog *entities.Catalog) *Feature {
	f := &Feature{
		session:      session,
		wagerService: wagerService,
		catalog:      catalog,
		rounds:       make(map[userGuildKey]*trackedRound),
	}
	wagerService.OnTimeout(f.handleTimeout)
	return f
}

// HandleCommand handles the /gamba slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	options := i.ApplicationCommandData().Options
	var gameKey string
	var amount int64
	initial := (*entities.GameInput)(nil)
	for _, opt := range options {
		switch opt.Name {
		case "game":
			gameKey = opt.StringValue()
		case "amount":
			amount = opt.IntValue()
		case "guess":
			initial = &entities.GameInput{Action: entities.ActionGuess, Value: int(opt.IntValue())}
		}
	}

	bet := &entities.Bet{Amount: amount, GameKey: gameKey}
	update, err := f.wagerService.StartWager(ctx, discordID, guildID, bet, initial)
	if err != nil {
		common.RespondWithError(s, i, userFacingError(err))
		return
	}

	if err := f.respond(s, i, discordID, bet, update); err != nil {
		log.WithError(err).Error("Failed to respond to gamba command")
		return
	}

	if update.Pending {
		f.trackRound(s, i, discordID, guildID, bet)
	}
}

// HandleComponent handles button and select menu inputs for live sessions
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	input, ok := parseComponentInput(i, customID)
	if !ok {
		common.RespondWithError(s, i, "Unknown interaction.")
		return
	}

	update, err := f.wagerService.AdvanceWager(ctx, discordID, guildID, input)
	if err != nil {
		if errors.Is(err, entities.ErrNoSession) {
			common.RespondWithError(s, i, "This round is not yours, or it has already ended.")
			return
		}
		common.RespondWithError(s, i, userFacingError(err))
		return
	}

	bet := f.roundBet(discordID, guildID)
	if err := f.update(s, i, discordID, bet, update); err != nil {
		log.WithError(err).Error("Failed to update gamba message")
		return
	}

	if !update.Pending {
		f.untrackRound(discordID, guildID)
	}
}

func parseComponentInput(i *discordgo.InteractionCreate, customID string) (entities.GameInput, bool) {
	switch {
	case customID == customIDHit:
		return entities.GameInput{Action: entities.ActionHit}, true
	case customID == customIDStand:
		return entities.GameInput{Action: entities.ActionStand}, true
	case customID == customIDCashout:
		return entities.GameInput{Action: entities.ActionCashout}, true
	case customID == customIDMineCount:
		values := i.MessageComponentData().Values
		if len(values) != 1 {
			return entities.GameInput{}, false
		}
		count, err := strconv.Atoi(values[0])
		if err != nil {
			return entities.GameInput{}, false
		}
		return entities.GameInput{Action: entities.ActionSelectMines, Value: count}, true
	case strings.HasPrefix(customID, customIDCellPrefix):
		idx, err := strconv.Atoi(strings.TrimPrefix(customID, customIDCellPrefix))
		if err != nil {
			return entities.GameInput{}, false
		}
		return entities.GameInput{Action: entities.ActionReveal, Value: idx}, true
	case strings.HasPrefix(customID, "gamba_guess_"):
		guess, err := strconv.Atoi(strings.TrimPrefix(customID, "gamba_guess_"))
		if err != nil {
			return entities.GameInput{}, false
		}
		return entities.GameInput{Action: entities.ActionGuess, Value: guess}, true
	default:
		return entities.GameInput{}, false
	}
}

// respond sends the initial interaction response for a started wager.
func (f *Feature) respond(s *discordgo.Session, i *discordgo.InteractionCreate, discordID int64, bet *entities.Bet, update *entities.WagerUpdate) error {
	embeds, components := f.render(discordID, bet, update)
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
}

// update edits the session message in place for a component interaction.
func (f *Feature) update(s *discordgo.Session, i *discordgo.InteractionCreate, discordID int64, bet *entities.Bet, update *entities.WagerUpdate) error {
	embeds, components := f.render(discordID, bet, update)
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
}

func (f *Feature) render(discordID int64, bet *entities.Bet, update *entities.WagerUpdate) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	if update.Pending {
		return []*discordgo.MessageEmbed{buildPendingEmbed(discordID, bet, update.State)},
			buildComponents(update.State)
	}

	embeds := []*discordgo.MessageEmbed{buildSettlementEmbed(discordID, bet, update.Settlement)}
	if levelUp := update.Settlement.LevelUp; levelUp != nil && levelUp.LeveledUp() {
		embeds = append(embeds, buildLevelUpEmbed(discordID, levelUp, f.itemName))
	}
	// Settled messages drop their components.
	return embeds, []discordgo.MessageComponent{}
}

func (f *Feature) itemName(key string) string {
	if item, err := f.catalog.Item(key); err == nil {
		return item.Name
	}
	if crate, err := f.catalog.Crate(key); err == nil {
		return crate.Name
	}
	return key
}

// trackRound records the response message so a later timeout can edit it.
func (f *Feature) trackRound(s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID int64, bet *entities.Bet) {
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch interaction response for timeout tracking")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds[userGuildKey{discordID, guildID}] = &trackedRound{
		channelID: msg.ChannelID,
		messageID: msg.ID,
		bet:       bet,
	}
}

func (f *Feature) roundBet(discordID, guildID int64) *entities.Bet {
	f.mu.Lock()
	defer f.mu.Unlock()
	if round, ok := f.rounds[userGuildKey{discordID, guildID}]; ok {
		return round.bet
	}
	return &entities.Bet{}
}

func (f *Feature) untrackRound(discordID, guildID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rounds, userGuildKey{discordID, guildID})
}

// handleTimeout rewrites the expired session's message with the forced
// settlement.
func (f *Feature) handleTimeout(discordID, guildID int64, update *entities.WagerUpdate) {
	f.mu.Lock()
	round, ok := f.rounds[userGuildKey{discordID, guildID}]
	if ok {
		delete(f.rounds, userGuildKey{discordID, guildID})
	}
	f.mu.Unlock()

	if !ok {
		return
	}

	embed := buildSettlementEmbed(discordID, round.bet, update.Settlement)
	_, err := f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    round.channelID,
		ID:         round.messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"discordID": discordID,
			"guildID":   guildID,
			"error":     err,
		}).Error("Failed to edit message for expired session")
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

// userFacingError maps domain errors to messages safe to show the player.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, entities.ErrAccountNotFound):
		return "You need an account first. Use /enroll to get started."
	case errors.Is(err, entities.ErrInsufficientFunds):
		return "You don't have enough carrots for that bet."
	case errors.Is(err, entities.ErrWagerInProgress):
		return "Finish your current game before starting another."
	case errors.Is(err, entities.ErrUnknownGame):
		return "That game doesn't exist."
	default:
		return err.Error()
	}
}
