package device

import "fmt"

// Kind identifies which appliance variant a Device is.
// The set is closed; every switch over Kind is expected to be exhaustive.
type Kind string

// Kind constants.
const (
	KindBulb       Kind = "bulb"
	KindThermostat Kind = "thermostat"
	KindOutlet     Kind = "outlet"
)

// AllKinds returns all valid kinds.
func AllKinds() []Kind {
	return []Kind{KindBulb, KindThermostat, KindOutlet}
}

// ParseKind converts a configuration string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := validKinds[k]; ok {
		return k, nil
	}
	return "", invalid("kind", fmt.Sprintf("%q", s), "must be bulb, thermostat or outlet")
}

// Label returns the human readable name used in status lines.
func (k Kind) Label() string {
	switch k {
	case KindBulb:
		return "Bulb"
	case KindThermostat:
		return "Thermostat"
	case KindOutlet:
		return "Outlet"
	default:
		return string(k)
	}
}

// Mode is a thermostat operating mode.
type Mode string

// Mode constants.
const (
	ModeOff     Mode = "off"
	ModeHeating Mode = "heating"
	ModeCooling Mode = "cooling"
)

// AllModes returns all valid thermostat modes.
func AllModes() []Mode {
	return []Mode{ModeOff, ModeHeating, ModeCooling}
}

// ParseMode converts a mode string into a Mode. Matching is case-sensitive.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := validModes[m]; ok {
		return m, nil
	}
	return "", invalid("mode", fmt.Sprintf("%q", s), "must be heating, cooling or off")
}

// Pre-computed validation sets.
var (
	validKinds map[Kind]struct{}
	validModes map[Mode]struct{}
)

func init() {
	validKinds = make(map[Kind]struct{}, len(AllKinds()))
	for _, k := range AllKinds() {
		validKinds[k] = struct{}{}
	}

	validModes = make(map[Mode]struct{}, len(AllModes()))
	for _, m := range AllModes() {
		validModes[m] = struct{}{}
	}
}
