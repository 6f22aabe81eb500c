package cards

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/randutil"
)

func newTestRNG() *rand.Rand {
	return randutil.New(42)
}
