package catalog

const (
	ContractFixBug       = "fix_bug"
	ContractBuildWebsite = "build_website"
	ContractDataAnalysis = "data_analysis"
)

const (
	ItemCoffee         = "coffee"
	ItemErgonomicChair = "ergonomic_chair"
	ItemFasterPC       = "faster_pc"
	ItemDevJunior      = "dev_junior"
)

// EffectKind is the closed set of store item behaviors. The store resolver
// dispatches on it with an exhaustive switch.
type EffectKind string

const (
	// EffectRefill restores energy to max on purchase, repeatable.
	EffectRefill EffectKind = "instant_refill"
	// EffectStatUpgrade permanently raises max energy, one purchase ever.
	EffectStatUpgrade EffectKind = "stat_upgrade"
	// EffectMultiplier scales contract money rewards, one purchase ever.
	EffectMultiplier EffectKind = "multiplier_upgrade"
	// EffectHire adds a passive-income worker; price grows per unit owned.
	EffectHire EffectKind = "hire"
)

type ContractDefinition struct {
	ID          string `json:"-" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	EnergyCost  int    `json:"energy_cost" yaml:"energy_cost"`
	MoneyReward int    `json:"money_reward" yaml:"money_reward"`
	XPReward    int    `json:"xp_reward" yaml:"xp_reward"`
}

type StoreItemDefinition struct {
	ID                string     `json:"-" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	EffectDescription string     `json:"effect_description" yaml:"effect_description"`
	Effect            EffectKind `json:"effect" yaml:"effect"`

	// Cost is the fixed price; BaseCost the pre-growth price of hires.
	// Exactly one of the two is set, depending on Effect.
	Cost     int `json:"cost,omitempty" yaml:"cost"`
	BaseCost int `json:"base_cost,omitempty" yaml:"base_cost"`

	// Effect parameters, consumed by the resolvers.
	MaxEnergyBonus   int     `json:"max_energy_bonus,omitempty" yaml:"max_energy_bonus"`
	RewardMultiplier float64 `json:"reward_multiplier,omitempty" yaml:"reward_multiplier"`
}

// Registry is the immutable contract and store item catalog. Lookups for
// unknown identifiers return ok=false; rejecting them is the resolvers' job.
type Registry struct {
	contracts map[string]ContractDefinition
	items     map[string]StoreItemDefinition
}

func NewRegistry(contracts []ContractDefinition, items []StoreItemDefinition) *Registry {
	r := &Registry{
		contracts: make(map[string]ContractDefinition, len(contracts)),
		items:     make(map[string]StoreItemDefinition, len(items)),
	}
	for _, c := range contracts {
		r.contracts[c.ID] = c
	}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

// DefaultRegistry returns the stock catalog.
func DefaultRegistry() *Registry {
	return NewRegistry(
		[]ContractDefinition{
			{ID: ContractFixBug, Name: "Fix a Bug", EnergyCost: 10, MoneyReward: 50, XPReward: 10},
			{ID: ContractBuildWebsite, Name: "Build Simple Website", EnergyCost: 30, MoneyReward: 200, XPReward: 50},
			{ID: ContractDataAnalysis, Name: "Analyze Data", EnergyCost: 50, MoneyReward: 450, XPReward: 100},
		},
		[]StoreItemDefinition{
			{ID: ItemCoffee, Name: "Coffee", Cost: 25, Effect: EffectRefill, EffectDescription: "Restores all energy"},
			{ID: ItemErgonomicChair, Name: "Ergonomic Chair", Cost: 300, Effect: EffectStatUpgrade, MaxEnergyBonus: 25, EffectDescription: "+25 Max Energy"},
			{ID: ItemFasterPC, Name: "Faster PC", Cost: 1000, Effect: EffectMultiplier, RewardMultiplier: 1.5, EffectDescription: "+50% money per contract"},
			{ID: ItemDevJunior, Name: "Hire Junior Dev", BaseCost: 500, Effect: EffectHire, EffectDescription: "Earns $10/sec (automatic)"},
		},
	)
}

func (r *Registry) Contract(id string) (ContractDefinition, bool) {
	c, ok := r.contracts[id]
	return c, ok
}

func (r *Registry) Item(id string) (StoreItemDefinition, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Contracts returns a copy of the contract catalog keyed by id.
func (r *Registry) Contracts() map[string]ContractDefinition {
	out := make(map[string]ContractDefinition, len(r.contracts))
	for k, v := range r.contracts {
		out[k] = v
	}
	return out
}

// Items returns a copy of the store item catalog keyed by id.
func (r *Registry) Items() map[string]StoreItemDefinition {
	out := make(map[string]StoreItemDefinition, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	return out
}
