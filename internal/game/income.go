package game

import (
	"math"
	"time"

	"github.com/alvadroide/Devshop-Tycoon/internal/player"
)

// AccruePassiveIncome settles currency earned from elapsed wall-clock time
// and owned junior devs, then stamps LastUpdated. Pure function: the caller
// supplies now.
//
// A record that has never been reconciled (zero LastUpdated) is stamped
// without any backlog payout, so a freshly created player cannot collect a
// retroactive windfall. A negative elapsed interval is treated as zero.
func AccruePassiveIncome(s player.State, now time.Time, incomePerDev int) (player.State, int) {
	if s.LastUpdated.IsZero() {
		s.LastUpdated = now
		return s, 0
	}

	elapsed := now.Sub(s.LastUpdated).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	rate := s.JuniorDevs * incomePerDev
	earned := int(math.Floor(elapsed * float64(rate)))
	if earned > 0 {
		s.Money += earned
	}
	s.LastUpdated = now
	return s, earned
}
