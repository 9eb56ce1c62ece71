package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrotgamba/domain/entities"
)

func TestCoinToss_Play(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		draw       float64
		wantResult entities.GameResult
		wantRaw    int64
	}{
		{name: "high draw wins", draw: 0.5, wantResult: entities.ResultWin, wantRaw: 100},
		{name: "low draw loses", draw: 0.49, wantResult: entities.ResultLoss, wantRaw: -100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			game := NewCoinToss(&scriptedRandom{floats: []float64{tt.draw}})
			bet := &entities.Bet{Amount: 100, GameKey: GameKeyCoinToss}

			result, err := game.Play(bet, nil)
			require.NoError(t, err)
			require.NotNil(t, result.Outcome)
			assert.Nil(t, result.State)
			assert.Equal(t, tt.wantResult, result.Outcome.Result)
			assert.Equal(t, tt.wantRaw, result.Outcome.RawPayout)
			assert.Equal(t, int64(100), result.Outcome.BasePayout)
		})
	}
}

func TestCoinToss_ResumeHasNoSession(t *testing.T) {
	t.Parallel()

	game := NewCoinToss(NewSeededRandomSource(1))
	_, err := game.Resume(nil, entities.GameInput{Action: entities.ActionHit})
	assert.ErrorIs(t, err, entities.ErrNoSession)
}
