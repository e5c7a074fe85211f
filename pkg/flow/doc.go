// Package flow implements the rescue session state machine.
//
// A Flow walks a user from the trigger conversation (CHAT, collecting the
// activating event, belief and consequence) through reframing lenses (LENS)
// and micro-actions (ACTION) to the result screen (RESULT). The current stage
// is a single Stage value, so only valid combinations of stage data exist.
//
// Content comes from a ports.ContentGenerator. While a generation call is
// outstanding the flow rejects every mutating call with domain.ErrPending.
// Finishing a flow returns the SessionData record; persisting it is up to the
// caller (see package session).
package flow
