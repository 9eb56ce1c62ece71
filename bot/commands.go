package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	gameChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Coin Toss", Value: "cointoss"},
		{Name: "Number Guess", Value: "numberguess"},
		{Name: "Blackjack", Value: "blackjack"},
		{Name: "Mines", Value: "mines"},
	}
	itemChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Second Chance Token", Value: "sc"},
		{Name: "Loss Cushion", Value: "lc"},
		{Name: "Jackpot Juice", Value: "jj"},
		{Name: "Carrot Surge", Value: "cs"},
		{Name: "Number Oracle", Value: "no"},
		{Name: "X-Ray Vision", Value: "xrv"},
	}
	crateChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Crate I", Value: "c1"},
		{Name: "Crate II", Value: "c2"},
		{Name: "Crate III", Value: "c3"},
		{Name: "Crate IV", Value: "c4"},
		{Name: "Crate V", Value: "c5"},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "enroll",
			Description: "Create your gambling account",
		},
		{
			Name:        "gamba",
			Description: "Bet carrots on a game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Which game to play",
					Required:    true,
					Choices:     gameChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Bet amount in carrots",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "Your number for Number Guess (1-10)",
					Required:    false,
				},
			},
		},
		{
			Name:        "inventory",
			Description: "Show your items, crates and active effects",
		},
		{
			Name:        "use",
			Description: "Activate an item from your inventory",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Item to activate",
					Required:    true,
					Choices:     itemChoices,
				},
			},
		},
		{
			Name:        "open",
			Description: "Open a crate from your inventory",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "crate",
					Description: "Crate to open",
					Required:    true,
					Choices:     crateChoices,
				},
			},
		},
		{
			Name:        "stats",
			Description: "Show gambling statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Show guild totals for one game instead",
					Required:    false,
					Choices:     gameChoices,
				},
			},
		},
		{
			Name:        "donate",
			Description: "Give carrots to another rabbit",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How many carrots to give",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Who to give them to",
					Required:    true,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily carrots",
		},
		{
			Name:        "weekly",
			Description: "Claim your weekly carrots",
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest rabbits in this guild",
		},
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}
