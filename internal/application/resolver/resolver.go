// Package resolver maps free-text user input to canonical intents.
//
// Matching is deliberately lossy: rules are case-insensitive substring
// checks evaluated top to bottom, and the first hit wins. Rule order is
// part of the contract - multi-word aliases sit above the bare fallbacks
// so that "run primes" or "pi benchy" never fall through to a broader
// rule. A sentence containing both "pi" and "prime" resolves by rule
// order, not semantic intent; that priority-based ambiguity is accepted.
package resolver

import (
	"strings"

	"github.com/doeshing/gensuite/internal/domain"
)

// Rule pairs a predicate with the intent it yields.
type Rule struct {
	Name   string
	Intent domain.Intent
	Match  func(input string) bool
}

func containsAny(subs ...string) func(string) bool {
	return func(input string) bool {
		for _, s := range subs {
			if strings.Contains(input, s) {
				return true
			}
		}
		return false
	}
}

var rules = []Rule{
	{Name: "exit", Intent: domain.IntentExit, Match: containsAny("exit", "quit", "bye")},
	{Name: "help", Intent: domain.IntentHelp, Match: containsAny("help", "setting", "option")},
	{Name: "home", Intent: domain.IntentHome, Match: containsAny("home", "menu")},
	{Name: "run-primes", Intent: domain.IntentPrimes, Match: containsAny("run primes")},
	{Name: "run-pi", Intent: domain.IntentPi, Match: containsAny("run pi")},
	{Name: "pi-benchy", Intent: domain.IntentPi, Match: containsAny("pi benchy")},
	{Name: "prime-benchy", Intent: domain.IntentPrimes, Match: containsAny("prime benchy")},
	{Name: "bench", Intent: domain.IntentBench, Match: containsAny("bench")},
	{Name: "primes", Intent: domain.IntentPrimes, Match: containsAny("prime")},
	{Name: "pi", Intent: domain.IntentPi, Match: containsAny("pi")},
}

// Rules exposes the ordered rule list; precedence is index order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Resolve maps one line of free text to an intent. A pure function of the
// input and the fixed rule order.
func Resolve(input string) domain.Intent {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return domain.IntentUnknown
	}
	for _, r := range rules {
		if r.Match(in) {
			return r.Intent
		}
	}
	return domain.IntentUnknown
}

// ResolveArgs joins CLI arguments into a single phrase and resolves it.
// An empty argument list means "enter the interactive session".
func ResolveArgs(args []string) domain.Intent {
	if len(args) == 0 {
		return domain.IntentInteractive
	}
	return Resolve(strings.Join(args, " "))
}
