package domain

import "time"

// Color scheme presets recognized by the settings sub-flow.
const (
	SchemeClassic = "classic"
	SchemeOcean   = "ocean"
	SchemeEmber   = "ember"
	SchemeMono    = "mono"
)

// SchemeNames lists the recognized color scheme presets in menu order.
func SchemeNames() []string {
	return []string{SchemeClassic, SchemeOcean, SchemeEmber, SchemeMono}
}

// ValidScheme reports whether name is a recognized preset.
func ValidScheme(name string) bool {
	for _, s := range SchemeNames() {
		if name == s {
			return true
		}
	}
	return false
}

// PrimesBudget returns the wall-clock budget for the primes flow.
func (c Config) PrimesBudget() time.Duration {
	sec := c.Governor.PrimesBudgetSeconds
	if sec <= 0 {
		sec = 30
	}
	return time.Duration(sec) * time.Second
}
