package device

import (
	"time"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// Session is one contiguous on-period between a TurnOn and the following
// TurnOff, as booked into the Registry.
type Session struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
	EnergyWh float64       `json:"energy_wh"`
}

// PowerAccount holds the time and energy bookkeeping of one device.
//
// Invariant: since is meaningful exactly when on is true; it is reset to
// the zero time whenever the account stops.
type PowerAccount struct {
	ratedWatts  float64
	on          bool
	since       time.Time
	accumulated time.Duration
}

func newPowerAccount(ratedWatts float64) PowerAccount {
	return PowerAccount{ratedWatts: ratedWatts}
}

// start opens a session at now. It reports false if one was already open.
func (a *PowerAccount) start(now time.Time) bool {
	if a.on {
		return false
	}
	a.on = true
	a.since = now
	return true
}

// stop closes the open session at now and returns it.
// It reports false if no session was open.
func (a *PowerAccount) stop(now time.Time) (Session, bool) {
	if !a.on {
		return Session{}, false
	}
	elapsed := clock.Elapsed(a.since, now)
	s := Session{
		Start:    a.since,
		End:      now,
		Duration: elapsed,
		EnergyWh: energyWh(a.ratedWatts, elapsed),
	}
	a.accumulated += elapsed
	a.on = false
	a.since = time.Time{}
	return s, true
}

// RatedWatts returns the nameplate power fixed at construction.
func (a PowerAccount) RatedWatts() float64 { return a.ratedWatts }

// Active reports whether a session is open.
func (a PowerAccount) Active() bool { return a.on }

// SessionStart returns the start of the open session, if any.
func (a PowerAccount) SessionStart() (time.Time, bool) {
	return a.since, a.on
}

// Accumulated returns the on-time of all completed sessions.
func (a PowerAccount) Accumulated() time.Duration { return a.accumulated }

// Live returns the length of the open session at now, or zero.
func (a PowerAccount) Live(now time.Time) time.Duration {
	if !a.on {
		return 0
	}
	return clock.Elapsed(a.since, now)
}

// OnDuration returns the completed on-time plus the open session.
func (a PowerAccount) OnDuration(now time.Time) time.Duration {
	return a.accumulated + a.Live(now)
}

// EnergyWh returns rated watts × total on-hours, including the open session.
func (a PowerAccount) EnergyWh(now time.Time) float64 {
	return energyWh(a.ratedWatts, a.OnDuration(now))
}

func energyWh(watts float64, d time.Duration) float64 {
	return watts * d.Hours()
}
