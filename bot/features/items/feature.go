package items

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"carrotgamba/bot/common"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature owns the inventory, item activation and crate opening commands.
type Feature struct {
	itemService interfaces.ItemService
	catalog     *entities.Catalog
}

// NewFeature creates the items feature
func NewFeature(itemService interfaces.ItemService, catalog *entities.Catalog) *Feature {
	return &Feature{itemService: itemService, catalog: catalog}
}

// HandleInventory handles the /inventory slash command
func (f *Feature) HandleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	entries, err := f.itemService.ListInventory(ctx, discordID, guildID)
	if err != nil {
		log.WithError(err).Error("Failed to list inventory")
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	var items, crates strings.Builder
	for _, entry := range entries {
		if f.catalog.IsCrateKey(entry.ItemKey) {
			crate, _ := f.catalog.Crate(entry.ItemKey)
			fmt.Fprintf(&crates, "📦 **%s** x%d\n", crate.Name, entry.Quantity)
			continue
		}
		if item, err := f.catalog.Item(entry.ItemKey); err == nil {
			fmt.Fprintf(&items, "%s **%s** x%d\n", item.Icon, item.Name, entry.Quantity)
		}
	}

	var fields []*discordgo.MessageEmbedField
	if items.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Items", Value: items.String(), Inline: true})
	}
	if crates.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Crates", Value: crates.String(), Inline: true})
	}
	if active := f.itemService.ActiveItems(discordID, guildID); len(active) > 0 {
		var lines strings.Builder
		for key, uses := range active {
			fmt.Fprintf(&lines, "%s %s (%d uses left)\n", f.itemIcon(key), f.itemName(key), uses)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Active", Value: lines.String()})
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎒 Inventory",
		Color: common.ColorInfo,
	}
	if len(fields) == 0 {
		embed.Description = "Empty. Level up or open crates to fill it."
	}
	embed.Fields = fields

	respondEphemeralEmbed(s, i, embed)
}

// HandleUse handles the /use slash command
func (f *Feature) HandleUse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	itemKey := stringOption(i, "item")
	item, err := f.itemService.UseItem(ctx, discordID, guildID, itemKey)
	if err != nil {
		common.RespondWithError(s, i, userFacingItemError(err))
		return
	}

	respondEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s activated", item.Icon, item.Name),
		Description: fmt.Sprintf("%s\nUses: **%d**", item.Desc, item.MaxUses),
		Color:       common.ColorSuccess,
	})
}

// HandleOpen handles the /open slash command
func (f *Feature) HandleOpen(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, err := parseIDs(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	crateKey := stringOption(i, "crate")
	rewards, err := f.itemService.OpenCrate(ctx, discordID, guildID, crateKey)
	if err != nil {
		common.RespondWithError(s, i, userFacingItemError(err))
		return
	}

	crate, _ := f.catalog.Crate(crateKey)
	var loot strings.Builder
	for _, reward := range rewards {
		fmt.Fprintf(&loot, "%s **%s** x%d\n", f.itemIcon(reward.Key), f.itemName(reward.Key), reward.Amount)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       fmt.Sprintf("📦 %s opened!", crate.Name),
				Description: fmt.Sprintf("<@%d> found:\n%s", discordID, loot.String()),
				Color:       common.ColorSuccess,
			}},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send crate response")
	}
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

func (f *Feature) itemIcon(key string) string {
	if item, err := f.catalog.Item(key); err == nil {
		return item.Icon
	}
	return "📦"
}

func respondEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to send interaction response")
	}
}

func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
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

func userFacingItemError(err error) string {
	switch {
	case errors.Is(err, entities.ErrUnknownItem):
		return "That item doesn't exist."
	case errors.Is(err, entities.ErrUnknownCrate):
		return "That crate doesn't exist."
	case errors.Is(err, entities.ErrItemNotOwned):
		return "You don't have that in your inventory."
	case errors.Is(err, entities.ErrItemAlreadyActive):
		return "That item is already active."
	default:
		return err.Error()
	}
}
