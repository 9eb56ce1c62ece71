package gamba

import (
	"fmt"

	"carrotgamba/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Component custom IDs routed back to this feature.
const (
	CustomIDPrefix     = "gamba_"
	customIDHit        = "gamba_hit"
	customIDStand      = "gamba_stand"
	customIDCashout    = "gamba_cashout"
	customIDMineCount  = "gamba_mine_count"
	customIDCellPrefix = "gamba_cell_"
)

// buildComponents returns the action rows for a suspended session.
func buildComponents(state entities.GameState) []discordgo.MessageComponent {
	switch s := state.(type) {
	case *entities.BlackjackState:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Hit", Style: discordgo.PrimaryButton, CustomID: customIDHit},
					discordgo.Button{Label: "Stand", Style: discordgo.SecondaryButton, CustomID: customIDStand},
				},
			},
		}
	case *entities.MinesState:
		if s.AwaitingSelection {
			return mineCountSelect()
		}
		return minesBoard(s)
	case *entities.NumberGuessState:
		return guessButtons(s.Candidates)
	default:
		return nil
	}
}

func mineCountSelect() []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, entities.MinesMaxCount)
	for n := entities.MinesMinCount; n <= entities.MinesMaxCount; n++ {
		options = append(options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%d mines", n),
			Value:       fmt.Sprintf("%d", n),
			Description: fmt.Sprintf("%d safe cells", entities.MinesGridSize-n),
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    customIDMineCount,
					Placeholder: "How many mines?",
					Options:     options,
				},
			},
		},
	}
}

// minesBoard renders the 20-cell grid as 4 rows of 5 buttons plus a
// cash-out row. Revealed cells are disabled.
func minesBoard(s *entities.MinesState) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, 5)
	for row := 0; row < entities.MinesGridSize/5; row++ {
		buttons := make([]discordgo.MessageComponent, 0, 5)
		for col := 0; col < 5; col++ {
			idx := row*5 + col
			button := discordgo.Button{
				Label:    fmt.Sprintf("%d", idx+1),
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("%s%d", customIDCellPrefix, idx),
			}
			if s.Cells[idx] != entities.CellHidden {
				button.Disabled = true
				button.Style = discordgo.SuccessButton
			}
			buttons = append(buttons, button)
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	cashout := discordgo.Button{
		Label:    fmt.Sprintf("Cash out x%.2f", s.Multiplier()),
		Style:    discordgo.PrimaryButton,
		CustomID: customIDCashout,
		Disabled: s.SafeRevealed == 0,
	}
	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{cashout}})
	return rows
}

func guessButtons(candidates []int) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(candidates))
	for _, n := range candidates {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%d", n),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("gamba_guess_%d", n),
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}
