package gamba

import (
	"fmt"
	"strings"

	"carrotgamba/bot/common"
	"carrotgamba/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func gameTitle(gameKey string) string {
	switch gameKey {
	case "cointoss":
		return "🪙 Coin Toss"
	case "numberguess":
		return "🔢 Number Guess"
	case "blackjack":
		return "🃏 Blackjack"
	case "mines":
		return "💣 Mines"
	default:
		return gameKey
	}
}

func formatHand(hand entities.Hand, hideHole bool) string {
	if len(hand) == 0 {
		return "?"
	}
	parts := make([]string, 0, len(hand))
	for i, card := range hand {
		if hideHole && i == 1 {
			parts = append(parts, "🂠")
			continue
		}
		parts = append(parts, "`"+card.String()+"`")
	}
	return strings.Join(parts, " ")
}

func formatMinesGrid(cells []entities.MinesCell) string {
	var b strings.Builder
	for i, cell := range cells {
		switch cell {
		case entities.CellSafe:
			b.WriteString("🥕")
		case entities.CellMine:
			b.WriteString("💥")
		default:
			b.WriteString("⬜")
		}
		if (i+1)%5 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// buildPendingEmbed renders a suspended session awaiting player input.
func buildPendingEmbed(userID int64, bet *entities.Bet, state entities.GameState) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: gameTitle(bet.GameKey),
		Color: common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Bet: %s carrots", common.FormatCarrots(bet.Amount)),
		},
	}

	switch s := state.(type) {
	case *entities.BlackjackState:
		dealer := formatHand(s.DealerHand, !s.RevealDealer)
		dealerName := "Dealer"
		if s.RevealDealer {
			dealerName = fmt.Sprintf("Dealer (%d) 👓", s.DealerHand.Value())
		}
		embed.Description = fmt.Sprintf("<@%d> hit or stand?", userID)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Your hand (%d)", s.PlayerHand.Value()), Value: formatHand(s.PlayerHand, false), Inline: true},
			{Name: dealerName, Value: dealer, Inline: true},
		}
	case *entities.MinesState:
		if s.AwaitingSelection {
			embed.Description = fmt.Sprintf("<@%d> how many mines do you dare?", userID)
		} else {
			embed.Description = fmt.Sprintf("<@%d> pick a cell or cash out at **x%.2f**", userID, s.Multiplier())
			embed.Fields = []*discordgo.MessageEmbedField{
				{Name: fmt.Sprintf("Board (%d mines)", s.MineCount), Value: formatMinesGrid(s.Cells)},
			}
		}
	case *entities.NumberGuessState:
		candidates := make([]string, 0, len(s.Candidates))
		for _, n := range s.Candidates {
			candidates = append(candidates, fmt.Sprintf("**%d**", n))
		}
		embed.Description = fmt.Sprintf("<@%d> the oracle whispers... the winning number is among these 🔮", userID)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Candidates", Value: strings.Join(candidates, "  ")},
		}
	}

	return embed
}

// buildSettlementEmbed renders a terminal wager settlement with the payout
// breakdown ledger.
func buildSettlementEmbed(userID int64, bet *entities.Bet, settlement *entities.WagerSettlement) *discordgo.MessageEmbed {
	outcome := settlement.Outcome

	var color int
	var headline string
	switch outcome.Result {
	case entities.ResultWin:
		color = common.ColorSuccess
		headline = fmt.Sprintf("🎉 <@%d> won **%s carrots**!", userID, common.FormatCarrots(outcome.RawPayout))
	case entities.ResultLoss:
		color = common.ColorDanger
		headline = fmt.Sprintf("😔 <@%d> lost **%s carrots**.", userID, common.FormatCarrots(-outcome.RawPayout))
	case entities.ResultPush:
		color = common.ColorWarning
		headline = fmt.Sprintf("🤝 <@%d> pushed. Stake returned.", userID)
	default:
		color = common.ColorWarning
		headline = fmt.Sprintf("⏳ <@%d> took too long. Stake returned.", userID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       gameTitle(bet.GameKey),
		Description: headline,
		Color:       color,
	}

	if detail := outcomeDetail(outcome); detail != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Round", Value: detail,
		})
	}

	if len(settlement.Breakdown) > 0 {
		var ledger strings.Builder
		for _, step := range settlement.Breakdown {
			fmt.Fprintf(&ledger, "• %s: %s\n", step.Label, step.Calc)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Item effects", Value: ledger.String(),
		})
	}

	footer := fmt.Sprintf("Balance: %s carrots", common.FormatCarrots(settlement.NewBalance))
	if settlement.XPGained > 0 {
		footer += fmt.Sprintf(" • +%d XP", settlement.XPGained)
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}

	return embed
}

func outcomeDetail(outcome *entities.GameOutcome) string {
	switch {
	case outcome.Blackjack != nil:
		bj := outcome.Blackjack
		detail := fmt.Sprintf("You: %s (%d)\nDealer: %s (%d)",
			formatHand(bj.PlayerHand, false), bj.PlayerValue,
			formatHand(bj.DealerHand, false), bj.DealerValue)
		if bj.Natural {
			detail += "\n✨ Natural blackjack pays 3:2"
		}
		return detail
	case outcome.NumberGuess != nil:
		ng := outcome.NumberGuess
		return fmt.Sprintf("You guessed **%d**, the number was **%d**", ng.Guess, ng.WinningNumber)
	case outcome.Mines != nil:
		m := outcome.Mines
		detail := formatMinesGrid(m.Cells)
		if m.CashedOut {
			detail += fmt.Sprintf("\nCashed out at **x%.2f**", m.Multiplier)
		}
		return detail
	default:
		return ""
	}
}

// buildLevelUpEmbed announces gained levels and their rewards.
func buildLevelUpEmbed(userID int64, levelUp *entities.LevelUpResult, itemName func(string) string) *discordgo.MessageEmbed {
	var rewards strings.Builder
	for _, reward := range levelUp.Rewards {
		if reward.IsCurrency() {
			fmt.Fprintf(&rewards, "🥕 %s carrots\n", common.FormatCarrots(reward.Amount))
		} else {
			fmt.Fprintf(&rewards, "📦 %s x%d\n", itemName(reward.Key), reward.Amount)
		}
	}
	if levelUp.PassiveGain > 0 {
		fmt.Fprintf(&rewards, "📈 +%d%% passive multiplier\n", levelUp.PassiveGain)
	}

	return &discordgo.MessageEmbed{
		Title:       "⬆️ Level Up!",
		Description: fmt.Sprintf("<@%d> reached **level %d**", userID, levelUp.NewLevel),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rewards", Value: rewards.String()},
		},
	}
}
