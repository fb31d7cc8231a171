package seed

import (
	"fmt"
	"io"
	"math/rand"
	"time"
)

// NewSeededRNG creates a seeded random number generator.
// If seed is 0, uses current time and prints the seed to errOut for reproducibility.
func NewSeededRNG(seed int64, errOut io.Writer) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
		if errOut != nil {
			fmt.Fprintf(errOut, "Using seed: %d\n", seed)
		}
	}
	return rand.New(rand.NewSource(seed))
}
