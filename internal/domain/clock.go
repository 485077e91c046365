package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// reportZone is Taiwan time (UTC+8, no DST). Report dates follow the
// forecast's own calendar, not the host's.
var reportZone = time.FixedZone("CST", 8*60*60)

var reportClock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the clock that stamps ReportDocument.GeneratedAt and
// returns a func that puts the previous one back. A nil c selects the real
// clock.
func SetClock(c clockwork.Clock) (restore func()) {
	prev := reportClock
	if c == nil {
		c = clockwork.NewRealClock()
	}
	reportClock = c
	return func() { reportClock = prev }
}

// generatedAt is the report timestamp in Taiwan time, to the second.
func generatedAt() time.Time {
	return reportClock.Now().In(reportZone).Truncate(time.Second)
}
