package checkout

// State is one step of the checkout flow. A checkout never moves backwards
// and a failed draft never advances.
type State string

const (
	StateIdle               State = "idle"
	StateCreatingTempOrder  State = "creating_temp_order"
	StateCreatingPreference State = "creating_payment_preference"
	StateRedirected         State = "redirected_to_payment"
	StateConfirming         State = "confirming_payment"
	StateConfirmed          State = "confirmed"
	StateFailed             State = "failed"
)

var transitions = map[State][]State{
	StateIdle:               {StateCreatingTempOrder},
	StateCreatingTempOrder:  {StateCreatingPreference, StateFailed},
	StateCreatingPreference: {StateRedirected, StateFailed},
	StateRedirected:         {StateConfirming, StateFailed},
	StateConfirming:         {StateConfirmed, StateFailed, StateConfirming},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state ends the flow.
func (s State) IsTerminal() bool {
	return s == StateConfirmed || s == StateFailed
}
