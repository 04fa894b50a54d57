package game

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/alvadroide/Devshop-Tycoon/internal/catalog"
	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/player"
	"github.com/alvadroide/Devshop-Tycoon/internal/telemetry"
)

// Engine owns the game rules. Every operation runs as one serialized
// load -> accrue income -> validate -> mutate -> persist sequence under a
// single mutex, so two concurrent actions against the singleton player can
// never interleave; whichever commits last wins.
type Engine struct {
	mu sync.Mutex

	players player.Repo
	catalog *catalog.Registry
	balance config.Balance
	clock   Clock
	events  telemetry.Repository
}

func NewEngine(players player.Repo, reg *catalog.Registry, balance config.Balance, clock Clock, events telemetry.Repository) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{
		players: players,
		catalog: reg,
		balance: balance,
		clock:   clock,
		events:  events,
	}
}

// Definitions returns the full catalog for client display.
func (e *Engine) Definitions() (map[string]catalog.ContractDefinition, map[string]catalog.StoreItemDefinition) {
	return e.catalog.Contracts(), e.catalog.Items()
}

// GetState reconciles passive income and returns the current snapshot.
func (e *Engine) GetState(ctx context.Context) (player.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadAndAccrue(ctx)
	if err != nil {
		return player.Snapshot{}, err
	}
	if err := e.players.Save(ctx, s); err != nil {
		return player.Snapshot{}, err
	}
	return s.BuildSnapshot(e.balance), nil
}

// DoContract validates and applies a single unit of work.
func (e *Engine) DoContract(ctx context.Context, contractID string) (player.Snapshot, error) {
	def, ok := e.catalog.Contract(contractID)
	if !ok {
		return player.Snapshot{}, ErrUnknownContract
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadAndAccrue(ctx)
	if err != nil {
		return player.Snapshot{}, err
	}

	if s.Energy < def.EnergyCost {
		// Time passed regardless; the accrued income commits even though
		// the contract itself is rejected.
		if err := e.players.Save(ctx, s); err != nil {
			return player.Snapshot{}, err
		}
		return player.Snapshot{}, ErrInsufficientEnergy
	}

	s.Energy -= def.EnergyCost
	s.Money += int(math.Floor(float64(def.MoneyReward) * e.rewardMultiplier(s)))
	s.XP += def.XPReward

	s, leveled := ApplyLevelUp(s, e.balance)

	if err := e.players.Save(ctx, s); err != nil {
		return player.Snapshot{}, err
	}

	e.record(telemetry.EventContractCompleted, telemetry.EventMetadata{"contract_id": contractID})
	if leveled {
		e.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": s.Level})
	}
	return s.BuildSnapshot(e.balance), nil
}

// BuyItem validates and applies a single purchase, branching per item
// behavior.
func (e *Engine) BuyItem(ctx context.Context, itemID string) (player.Snapshot, error) {
	def, ok := e.catalog.Item(itemID)
	if !ok {
		return player.Snapshot{}, ErrUnknownItem
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadAndAccrue(ctx)
	if err != nil {
		return player.Snapshot{}, err
	}

	fail := func(verdict error) (player.Snapshot, error) {
		// Same rule as contracts: accrued income survives the rejection.
		if err := e.players.Save(ctx, s); err != nil {
			return player.Snapshot{}, err
		}
		return player.Snapshot{}, verdict
	}

	switch def.Effect {
	case catalog.EffectRefill:
		if s.Money < def.Cost {
			return fail(ErrInsufficientFunds)
		}
		s.Money -= def.Cost
		s.Energy = s.MaxEnergy

	case catalog.EffectStatUpgrade, catalog.EffectMultiplier:
		if s.Upgrades[def.ID] {
			return fail(ErrAlreadyOwned)
		}
		if s.Money < def.Cost {
			return fail(ErrInsufficientFunds)
		}
		s.Money -= def.Cost
		s.Upgrades[def.ID] = true
		if def.Effect == catalog.EffectStatUpgrade {
			s.MaxEnergy += def.MaxEnergyBonus
		}

	case catalog.EffectHire:
		cost := HireCost(def.BaseCost, e.balance.HireCostGrowth, s.JuniorDevs)
		if s.Money < cost {
			return fail(ErrInsufficientFunds)
		}
		s.Money -= cost
		s.JuniorDevs++

	default:
		return player.Snapshot{}, fmt.Errorf("unhandled effect kind %q for item %q", def.Effect, def.ID)
	}

	if err := e.players.Save(ctx, s); err != nil {
		return player.Snapshot{}, err
	}

	e.record(telemetry.EventItemPurchased, telemetry.EventMetadata{"item_id": itemID})
	if def.Effect == catalog.EffectHire {
		e.record(telemetry.EventDevHired, telemetry.EventMetadata{"junior_devs": s.JuniorDevs})
	}
	return s.BuildSnapshot(e.balance), nil
}

// Reset restores the record to defaults. Pending passive income is discarded:
// no reconciliation runs before the wipe.
func (e *Engine) Reset(ctx context.Context) (player.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := player.Defaults(e.balance, e.clock.Now())
	if err := e.players.Save(ctx, s); err != nil {
		return player.Snapshot{}, err
	}
	e.record(telemetry.EventGameReset, telemetry.EventMetadata{})
	return s.BuildSnapshot(e.balance), nil
}

// loadAndAccrue is the shared first step of every operation. Callers hold
// e.mu.
func (e *Engine) loadAndAccrue(ctx context.Context) (player.State, error) {
	s, err := e.players.Load(ctx)
	if err != nil {
		return player.State{}, err
	}
	s, earned := AccruePassiveIncome(s, e.clock.Now(), e.balance.IncomePerDev)
	if earned > 0 {
		e.record(telemetry.EventPassiveIncome, telemetry.EventMetadata{"amount": earned})
	}
	return s, nil
}

// rewardMultiplier folds every owned multiplier upgrade into a single factor.
// With the stock catalog this is 1.5 when faster_pc is owned, 1.0 otherwise.
func (e *Engine) rewardMultiplier(s player.State) float64 {
	m := 1.0
	for id, owned := range s.Upgrades {
		if !owned {
			continue
		}
		item, ok := e.catalog.Item(id)
		if ok && item.Effect == catalog.EffectMultiplier && item.RewardMultiplier > 0 {
			m *= item.RewardMultiplier
		}
	}
	return m
}

func (e *Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.events == nil {
		return
	}
	_ = e.events.RecordEvent(t, md)
}

// HireCost is the geometric price of the next hire:
// floor(baseCost * growth^owned).
func HireCost(baseCost int, growth float64, owned int) int {
	return int(math.Floor(float64(baseCost) * math.Pow(growth, float64(owned))))
}
