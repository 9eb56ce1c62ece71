package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"carrotgamba/config"
	"carrotgamba/domain/entities"
	"carrotgamba/domain/events"
	"carrotgamba/domain/interfaces"
)

type accountService struct {
	locks *UserLocks

	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewAccountService creates the account service.
func NewAccountService(
	locks *UserLocks,
	accountRepo interfaces.AccountRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.AccountService {
	return &accountService{
		locks:              locks,
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

func (s *accountService) Enroll(ctx context.Context, discordID, guildID int64, username string) (*entities.Account, error) {
	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	existing, err := s.accountRepo.GetByUser(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account already exists")
	}

	startingBalance := config.Get().StartingBalance
	account, err := s.accountRepo.Create(ctx, discordID, guildID, username, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         guildID,
		BalanceBefore:   0,
		BalanceAfter:    startingBalance,
		ChangeAmount:    startingBalance,
		TransactionType: entities.TransactionTypeInitial,
	}
	if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to record initial balance: %w", err)
	}

	if err := s.eventPublisher.Publish(events.AccountCreatedEvent{
		UserID:         discordID,
		GuildID:        guildID,
		Username:       username,
		InitialBalance: startingBalance,
	}); err != nil {
		log.WithError(err).Error("failed to publish account created event")
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"guild_id":   guildID,
		"balance":    startingBalance,
	}).Info("account enrolled")
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, discordID, guildID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetByUser(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrAccountNotFound
	}
	return account, nil
}

func (s *accountService) ClaimDaily(ctx context.Context, discordID, guildID int64) (int64, int64, error) {
	cfg := config.Get()
	return s.claim(ctx, discordID, guildID, entities.TransactionTypeDailyClaim, cfg.DailyClaimAmount, cfg.DailyClaimCooldown)
}

func (s *accountService) ClaimWeekly(ctx context.Context, discordID, guildID int64) (int64, int64, error) {
	cfg := config.Get()
	return s.claim(ctx, discordID, guildID, entities.TransactionTypeWeeklyClaim, cfg.WeeklyClaimAmount, cfg.WeeklyClaimCooldown)
}

func (s *accountService) claim(ctx context.Context, discordID, guildID int64, txType entities.TransactionType, amount int64, cooldown time.Duration) (int64, int64, error) {
	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	account, err := s.accountRepo.GetByUser(ctx, discordID, guildID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, 0, entities.ErrAccountNotFound
	}

	now := time.Now().UTC()
	var last *time.Time
	if txType == entities.TransactionTypeDailyClaim {
		if !account.CanClaimDaily(now, cooldown) {
			last = account.LastDailyClaim
		}
	} else {
		if !account.CanClaimWeekly(now, cooldown) {
			last = account.LastWeeklyClaim
		}
	}
	if last != nil {
		remaining := cooldown - now.Sub(*last)
		return 0, 0, fmt.Errorf("claim available in %s", remaining.Round(time.Minute))
	}

	newBalance, err := s.accountRepo.ApplyBalanceDelta(ctx, discordID, guildID, amount)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to credit claim: %w", err)
	}
	if err := s.accountRepo.SetClaimTime(ctx, discordID, guildID, txType, now); err != nil {
		return 0, 0, fmt.Errorf("failed to record claim time: %w", err)
	}

	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		GuildID:         guildID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    amount,
		TransactionType: txType,
	}
	if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
		return 0, 0, fmt.Errorf("failed to record claim history: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:          discordID,
		GuildID:         guildID,
		OldBalance:      account.Balance,
		NewBalance:      newBalance,
		TransactionType: txType,
		ChangeAmount:    amount,
	}); err != nil {
		log.WithError(err).Error("failed to publish balance change event")
	}

	return amount, newBalance, nil
}

func (s *accountService) Transfer(ctx context.Context, fromDiscordID, toDiscordID, guildID int64, amount int64) (int64, int64, error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("transfer amount must be positive")
	}
	if fromDiscordID == toDiscordID {
		return 0, 0, fmt.Errorf("cannot transfer to yourself")
	}

	// Both locks are always taken in discord ID order so two opposing
	// transfers cannot deadlock.
	first, second := fromDiscordID, toDiscordID
	if second < first {
		first, second = second, first
	}
	unlockFirst := s.locks.Lock(first, guildID)
	defer unlockFirst()
	unlockSecond := s.locks.Lock(second, guildID)
	defer unlockSecond()

	sender, err := s.accountRepo.GetByUser(ctx, fromDiscordID, guildID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get sender account: %w", err)
	}
	if sender == nil {
		return 0, 0, entities.ErrAccountNotFound
	}
	recipient, err := s.accountRepo.GetByUser(ctx, toDiscordID, guildID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get recipient account: %w", err)
	}
	if recipient == nil {
		return 0, 0, fmt.Errorf("recipient has no account: %w", entities.ErrAccountNotFound)
	}

	senderBalance, err := s.accountRepo.ApplyBalanceDelta(ctx, fromDiscordID, guildID, -amount)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to debit sender: %w", err)
	}
	recipientBalance, err := s.accountRepo.ApplyBalanceDelta(ctx, toDiscordID, guildID, amount)
	if err != nil {
		// Refund the debit so the failed credit leaves no money missing.
		if _, refundErr := s.accountRepo.ApplyBalanceDelta(ctx, fromDiscordID, guildID, amount); refundErr != nil {
			log.WithFields(log.Fields{
				"from":   fromDiscordID,
				"to":     toDiscordID,
				"guild":  guildID,
				"amount": amount,
				"error":  refundErr,
			}).Error("failed to refund sender after credit failure")
		}
		return 0, 0, fmt.Errorf("failed to credit recipient: %w", err)
	}

	outHistory := &entities.BalanceHistory{
		DiscordID:           fromDiscordID,
		GuildID:             guildID,
		BalanceBefore:       sender.Balance,
		BalanceAfter:        senderBalance,
		ChangeAmount:        -amount,
		TransactionType:     entities.TransactionTypeTransferOut,
		TransactionMetadata: map[string]any{"counterparty": toDiscordID},
	}
	if err := s.balanceHistoryRepo.Record(ctx, outHistory); err != nil {
		return 0, 0, fmt.Errorf("failed to record transfer out: %w", err)
	}
	inHistory := &entities.BalanceHistory{
		DiscordID:           toDiscordID,
		GuildID:             guildID,
		BalanceBefore:       recipient.Balance,
		BalanceAfter:        recipientBalance,
		ChangeAmount:        amount,
		TransactionType:     entities.TransactionTypeTransferIn,
		TransactionMetadata: map[string]any{"counterparty": fromDiscordID},
	}
	if err := s.balanceHistoryRepo.Record(ctx, inHistory); err != nil {
		return 0, 0, fmt.Errorf("failed to record transfer in: %w", err)
	}

	for _, event := range []events.BalanceChangeEvent{
		{UserID: fromDiscordID, GuildID: guildID, OldBalance: sender.Balance, NewBalance: senderBalance, TransactionType: entities.TransactionTypeTransferOut, ChangeAmount: -amount},
		{UserID: toDiscordID, GuildID: guildID, OldBalance: recipient.Balance, NewBalance: recipientBalance, TransactionType: entities.TransactionTypeTransferIn, ChangeAmount: amount},
	} {
		if err := s.eventPublisher.Publish(event); err != nil {
			log.WithError(err).Error("failed to publish balance change event")
		}
	}

	log.WithFields(log.Fields{
		"from":   fromDiscordID,
		"to":     toDiscordID,
		"guild":  guildID,
		"amount": amount,
	}).Info("transfer completed")
	return senderBalance, recipientBalance, nil
}

func (s *accountService) Leaderboard(ctx context.Context, guildID int64, limit int) ([]*entities.Account, error) {
	accounts, err := s.accountRepo.GetTopByBalance(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return accounts, nil
}
