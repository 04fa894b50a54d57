package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period             string            `json:"period"`
	EventCounts        map[EventType]int `json:"event_counts"`
	ContractsCompleted int               `json:"contracts_completed"`
	ContractsByID      map[string]int    `json:"contracts_by_id"`
	ItemsPurchased     int               `json:"items_purchased"`
	PurchasesByItem    map[string]int    `json:"purchases_by_item"`
	DevsHired          int               `json:"devs_hired"`
	LevelsGained       int               `json:"levels_gained"`
	PassiveIncomeTotal int               `json:"passive_income_total"`
	Resets             int               `json:"resets"`
}

// CalculateStats computes play stats from recorded events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:          since.Format("2006-01-02"),
		EventCounts:     make(map[EventType]int),
		ContractsByID:   make(map[string]int),
		PurchasesByItem: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventContractCompleted:
			stats.ContractsCompleted++
			if id, ok := metadata["contract_id"].(string); ok {
				stats.ContractsByID[id]++
			}
		case EventItemPurchased:
			stats.ItemsPurchased++
			if id, ok := metadata["item_id"].(string); ok {
				stats.PurchasesByItem[id]++
			}
		case EventDevHired:
			stats.DevsHired++
		case EventLevelUp:
			stats.LevelsGained++
		case EventPassiveIncome:
			if amount, ok := metadata["amount"].(float64); ok {
				stats.PassiveIncomeTotal += int(amount)
			}
		case EventGameReset:
			stats.Resets++
		}
	}

	return stats, nil
}
