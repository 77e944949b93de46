package quiz

import "math/rand"

// DrawRound picks up to n questions for a subject, shuffled by the
// injected random source.
func DrawRound(rng *rand.Rand, subject string, n int) []Question {
	pool := BySubject(subject)
	if len(pool) == 0 {
		return nil
	}
	order := rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	round := make([]Question, 0, n)
	for _, idx := range order[:n] {
		round = append(round, pool[idx])
	}
	return round
}
