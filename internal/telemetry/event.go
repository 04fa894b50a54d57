package telemetry

import "time"

type EventType string

const (
	EventContractCompleted EventType = "contract_completed"
	EventItemPurchased     EventType = "item_purchased"
	EventDevHired          EventType = "dev_hired"
	EventLevelUp           EventType = "level_up"
	EventPassiveIncome     EventType = "passive_income_accrued"
	EventGameReset         EventType = "game_reset"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
