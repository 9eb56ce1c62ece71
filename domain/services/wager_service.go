package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"carrotgamba/domain/entities"
	"carrotgamba/domain/events"
	"carrotgamba/domain/interfaces"
)

// wagerSession is one suspended interactive game round.
type wagerSession struct {
	id    string
	bet   *entities.Bet
	game  Game
	state entities.GameState
	pctx  *PlayContext
	timer *time.Timer
}

type wagerService struct {
	registry    *GameRegistry
	pipeline    *ItemPipeline
	progression *Progression
	activeItems *ActiveItemRegistry
	locks       *UserLocks

	accountRepo        interfaces.AccountRepository
	inventoryRepo      interfaces.InventoryRepository
	gameHistoryRepo    interfaces.GameHistoryRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher

	sessionTimeout time.Duration

	sessionMu sync.Mutex
	sessions  map[userGuildKey]*wagerSession

	timeoutFn func(discordID, guildID int64, update *entities.WagerUpdate)
}

// NewWagerService creates the wager orchestrator. All balance movement,
// history recording and progression for settled wagers flows through it.
func NewWagerService(
	registry *GameRegistry,
	pipeline *ItemPipeline,
	progression *Progression,
	activeItems *ActiveItemRegistry,
	locks *UserLocks,
	accountRepo interfaces.AccountRepository,
	inventoryRepo interfaces.InventoryRepository,
	gameHistoryRepo interfaces.GameHistoryRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	sessionTimeout time.Duration,
) interfaces.WagerService {
	return &wagerService{
		registry:           registry,
		pipeline:           pipeline,
		progression:        progression,
		activeItems:        activeItems,
		locks:              locks,
		accountRepo:        accountRepo,
		inventoryRepo:      inventoryRepo,
		gameHistoryRepo:    gameHistoryRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		sessionTimeout:     sessionTimeout,
		sessions:           make(map[userGuildKey]*wagerSession),
	}
}

func (s *wagerService) OnTimeout(fn func(discordID, guildID int64, update *entities.WagerUpdate)) {
	s.timeoutFn = fn
}

func (s *wagerService) GameKeys() []string {
	return s.registry.Keys()
}

func (s *wagerService) MinBet(gameKey string) (int64, error) {
	game, err := s.registry.Get(gameKey)
	if err != nil {
		return 0, err
	}
	return game.MinBet(), nil
}

func (s *wagerService) StartWager(ctx context.Context, discordID, guildID int64, bet *entities.Bet, initial *entities.GameInput) (*entities.WagerUpdate, error) {
	game, err := s.registry.Get(bet.GameKey)
	if err != nil {
		return nil, err
	}
	if err := bet.Validate(game.MinBet()); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	key := userGuildKey{discordID: discordID, guildID: guildID}
	if s.getSession(key) != nil {
		return nil, entities.ErrWagerInProgress
	}

	account, err := s.accountRepo.GetByUser(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrAccountNotFound
	}
	// The stake is only debited at settlement; affordability is checked
	// up front so the debit cannot fail later.
	if err := account.ValidateBetAmount(bet.Amount); err != nil {
		return nil, err
	}

	active := s.activeItems.Get(discordID, guildID)
	pctx := buildPlayContext(game.Key(), active, initial)

	result, err := game.Play(bet, pctx)
	if err != nil {
		return nil, err
	}

	if result.State != nil {
		session := &wagerSession{
			id:    uuid.New().String(),
			bet:   bet,
			game:  game,
			state: result.State,
			pctx:  pctx,
		}
		session.timer = time.AfterFunc(s.sessionTimeout, func() {
			s.expireSession(key, session.id)
		})
		s.putSession(key, session)
		return &entities.WagerUpdate{SessionID: session.id, Pending: true, State: result.State}, nil
	}

	return s.settle(ctx, account, bet, game, pctx, result.Outcome, active)
}

func (s *wagerService) AdvanceWager(ctx context.Context, discordID, guildID int64, input entities.GameInput) (*entities.WagerUpdate, error) {
	unlock := s.locks.Lock(discordID, guildID)
	defer unlock()

	key := userGuildKey{discordID: discordID, guildID: guildID}
	session := s.getSession(key)
	if session == nil {
		return nil, entities.ErrNoSession
	}

	result, err := session.game.Resume(session.state, input)
	if err != nil {
		// Invalid input leaves the session live; the timer keeps running.
		return nil, err
	}

	// Selections made mid-session feed a potential second-chance replay.
	switch input.Action {
	case entities.ActionSelectMines:
		session.pctx.MineCount = input.Value
	case entities.ActionGuess:
		session.pctx.Guess = input.Value
		session.pctx.HasGuess = true
	}

	if result.State != nil {
		session.state = result.State
		session.timer.Reset(s.sessionTimeout)
		return &entities.WagerUpdate{SessionID: session.id, Pending: true, State: result.State}, nil
	}

	session.timer.Stop()
	s.deleteSession(key)

	session.game.FillPayouts(result.Outcome, session.bet)

	account, err := s.accountRepo.GetByUser(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrAccountNotFound
	}

	active := s.activeItems.Get(discordID, guildID)
	return s.settle(ctx, account, session.bet, session.game, session.pctx, result.Outcome, active)
}

// expireSession forcibly resolves a timed-out session as Timeout: the
// stake is returned, the pipeline does not run and nothing is consumed.
func (s *wagerService) expireSession(key userGuildKey, sessionID string) {
	unlock := s.locks.Lock(key.discordID, key.guildID)
	defer unlock()

	session := s.getSession(key)
	if session == nil || session.id != sessionID {
		// The session settled between the timer firing and the lock.
		return
	}
	s.deleteSession(key)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	account, err := s.accountRepo.GetByUser(ctx, key.discordID, key.guildID)
	if err != nil || account == nil {
		log.WithError(err).WithFields(log.Fields{
			"discord_id": key.discordID,
			"guild_id":   key.guildID,
		}).Error("failed to load account for session timeout")
		return
	}

	outcome := entities.TimeoutOutcome(session.game.Key())
	update, err := s.settle(ctx, account, session.bet, session.game, session.pctx, outcome, nil)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"discord_id": key.discordID,
			"guild_id":   key.guildID,
			"game":       session.game.Key(),
		}).Error("failed to settle timed-out session")
		return
	}

	if s.timeoutFn != nil {
		s.timeoutFn(key.discordID, key.guildID, update)
	}
}

// settle applies the item pipeline, moves the balance, records history
// and progression, and publishes events. Called with the user lock held.
func (s *wagerService) settle(
	ctx context.Context,
	account *entities.Account,
	bet *entities.Bet,
	game Game,
	pctx *PlayContext,
	outcome *entities.GameOutcome,
	active *entities.ActiveItemSet,
) (*entities.WagerUpdate, error) {
	var breakdown []entities.EffectStep
	if outcome.Result != entities.ResultTimeout {
		outcome, breakdown = s.pipeline.Apply(outcome, bet, active, game, pctx)
		consumeHints(game.Key(), active, pctx)
	}

	delta := outcome.RawPayout
	newBalance := account.Balance
	if delta != 0 {
		var err error
		newBalance, err = s.accountRepo.ApplyBalanceDelta(ctx, account.DiscordID, account.GuildID, delta)
		if err != nil {
			return nil, fmt.Errorf("failed to apply wager settlement: %w", err)
		}
	}

	record := &entities.GameRecord{
		DiscordID: account.DiscordID,
		GuildID:   account.GuildID,
		GameKey:   outcome.GameKey,
		Result:    outcome.Result,
		BetAmount: bet.Amount,
		Payout:    delta,
	}
	if err := s.gameHistoryRepo.RecordGameResult(ctx, record); err != nil {
		// Fire-and-record: the settlement stands even if the sink fails.
		log.WithError(err).WithFields(log.Fields{
			"discord_id": account.DiscordID,
			"guild_id":   account.GuildID,
			"game":       outcome.GameKey,
		}).Error("failed to record game result")
	}

	history := &entities.BalanceHistory{
		DiscordID:       account.DiscordID,
		GuildID:         account.GuildID,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    delta,
		TransactionType: entities.TransactionTypeForResult(outcome.Result),
		TransactionMetadata: map[string]any{
			"game_key":    outcome.GameKey,
			"bet_amount":  bet.Amount,
			"result":      string(outcome.Result),
			"base_payout": outcome.BasePayout,
		},
	}
	if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to record balance history: %w", err)
	}

	xp := s.progression.CalculateXP(account.Balance, bet.Amount, outcome.Result, account.Level)
	var levelUp *entities.LevelUpResult
	if xp > 0 {
		levelUp = s.progression.ApplyXP(account.Level, account.XP, xp)
		if err := s.accountRepo.UpdateProgression(ctx, account.DiscordID, account.GuildID, levelUp.NewLevel, levelUp.XPRemaining); err != nil {
			return nil, fmt.Errorf("failed to update progression: %w", err)
		}
		if levelUp.LeveledUp() {
			var err error
			newBalance, err = s.grantLevelRewards(ctx, account, levelUp, newBalance)
			if err != nil {
				return nil, err
			}
			s.publish(events.LevelUpEvent{
				UserID:   account.DiscordID,
				GuildID:  account.GuildID,
				OldLevel: levelUp.OldLevel,
				NewLevel: levelUp.NewLevel,
			})
		}
	}

	if delta != 0 {
		s.publish(events.BalanceChangeEvent{
			UserID:          account.DiscordID,
			GuildID:         account.GuildID,
			OldBalance:      account.Balance,
			NewBalance:      newBalance,
			TransactionType: entities.TransactionTypeForResult(outcome.Result),
			ChangeAmount:    delta,
		})
	}
	s.publish(events.WagerSettledEvent{
		UserID:    account.DiscordID,
		GuildID:   account.GuildID,
		GameKey:   outcome.GameKey,
		Result:    outcome.Result,
		BetAmount: bet.Amount,
		Payout:    delta,
		XPGained:  xp,
	})

	return &entities.WagerUpdate{
		Settlement: &entities.WagerSettlement{
			Outcome:    outcome,
			Breakdown:  breakdown,
			NewBalance: newBalance,
			XPGained:   xp,
			LevelUp:    levelUp,
		},
	}, nil
}

// grantLevelRewards credits carrot rewards, adds item/crate rewards to
// the inventory and raises the passive multiplier. Returns the balance
// after carrot grants.
func (s *wagerService) grantLevelRewards(ctx context.Context, account *entities.Account, levelUp *entities.LevelUpResult, balance int64) (int64, error) {
	for _, reward := range levelUp.Rewards {
		if reward.IsCurrency() {
			before := balance
			newBalance, err := s.accountRepo.ApplyBalanceDelta(ctx, account.DiscordID, account.GuildID, reward.Amount)
			if err != nil {
				return balance, fmt.Errorf("failed to credit level reward: %w", err)
			}
			balance = newBalance
			history := &entities.BalanceHistory{
				DiscordID:       account.DiscordID,
				GuildID:         account.GuildID,
				BalanceBefore:   before,
				BalanceAfter:    balance,
				ChangeAmount:    reward.Amount,
				TransactionType: entities.TransactionTypeLevelReward,
				TransactionMetadata: map[string]any{
					"old_level": levelUp.OldLevel,
					"new_level": levelUp.NewLevel,
				},
			}
			if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
				return balance, fmt.Errorf("failed to record level reward history: %w", err)
			}
			continue
		}
		if err := s.inventoryRepo.AddItems(ctx, account.DiscordID, account.GuildID, reward.Key, int(reward.Amount)); err != nil {
			return balance, fmt.Errorf("failed to grant level reward %q: %w", reward.Key, err)
		}
	}

	if levelUp.PassiveGain > 0 {
		if err := s.accountRepo.ApplyPassiveGain(ctx, account.DiscordID, account.GuildID, levelUp.PassiveGain); err != nil {
			return balance, fmt.Errorf("failed to apply passive gain: %w", err)
		}
	}
	return balance, nil
}

func (s *wagerService) publish(event events.Event) {
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("event_type", event.Type()).Error("failed to publish event")
	}
}

func (s *wagerService) getSession(key userGuildKey) *wagerSession {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.sessions[key]
}

func (s *wagerService) putSession(key userGuildKey, session *wagerSession) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.sessions[key] = session
}

func (s *wagerService) deleteSession(key userGuildKey) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	delete(s.sessions, key)
}

// buildPlayContext derives the pre-play context from the active set and
// the initial input, per game.
func buildPlayContext(gameKey string, active *entities.ActiveItemSet, initial *entities.GameInput) *PlayContext {
	pctx := &PlayContext{}
	switch gameKey {
	case GameKeyNumberGuess:
		pctx.Oracle = active.Has(entities.ItemNumberOracle)
		if initial != nil && initial.Action == entities.ActionGuess {
			pctx.Guess = initial.Value
			pctx.HasGuess = true
		}
	case GameKeyBlackjack:
		pctx.XRay = active.Has(entities.ItemXRayVision)
	case GameKeyMines:
		if initial != nil && initial.Action == entities.ActionSelectMines {
			pctx.MineCount = initial.Value
		}
	}
	return pctx
}

// consumeHints burns the visibility items that shaped this round once it
// reaches a terminal playable outcome.
func consumeHints(gameKey string, active *entities.ActiveItemSet, pctx *PlayContext) {
	if gameKey == GameKeyNumberGuess && pctx.Oracle {
		active.Consume(entities.ItemNumberOracle, 1)
	}
	if gameKey == GameKeyBlackjack && pctx.XRay {
		active.Consume(entities.ItemXRayVision, 1)
	}
}
