package services

import (
	"context"
	"fmt"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/interfaces"
)

type statsService struct {
	gameHistoryRepo interfaces.GameHistoryRepository
}

// NewStatsService creates the stats service.
func NewStatsService(gameHistoryRepo interfaces.GameHistoryRepository) interfaces.StatsService {
	return &statsService{gameHistoryRepo: gameHistoryRepo}
}

func (s *statsService) PlayerStats(ctx context.Context, discordID, guildID int64) (*entities.PlayerStats, error) {
	stats, err := s.gameHistoryRepo.GetPlayerStats(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	return stats, nil
}

func (s *statsService) GameStats(ctx context.Context, guildID int64, gameKey string) (*entities.GameStats, error) {
	stats, err := s.gameHistoryRepo.GetGameStats(ctx, guildID, gameKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats: %w", err)
	}
	return stats, nil
}
