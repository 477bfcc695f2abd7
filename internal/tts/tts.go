// Package tts wraps the speech synthesis providers. Synthesis is a soft
// dependency of the interview: a misconfigured or failing provider produces
// a degraded result with empty audio, never a hard failure, so the text
// reply still reaches the candidate.
package tts

// Speech is the result of one synthesis call. Degraded marks a reply that
// carries no audio because the provider was missing credentials or failed.
type Speech struct {
	Audio    []byte
	Degraded bool
}
