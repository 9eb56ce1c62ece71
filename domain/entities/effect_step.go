package entities

// EffectStep is one entry of the payout breakdown ledger: which item fired
// and how it changed the running payout (e.g. "x 0.5", "+ 10%").
type EffectStep struct {
	Label string
	Calc  string
}
