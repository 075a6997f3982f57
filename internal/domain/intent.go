package domain

// Intent is a canonical user intention produced by the command resolver.
type Intent string

const (
	IntentInteractive Intent = "interactive"
	IntentHelp        Intent = "help"
	IntentExit        Intent = "exit"
	IntentHome        Intent = "home"
	IntentPi          Intent = "pi"
	IntentPrimes      Intent = "primes"
	IntentBench       Intent = "bench"
	IntentUnknown     Intent = "unknown"
)
