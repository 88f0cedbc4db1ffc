package universe

import (
	"math/rand/v2"
	"time"
)

//RandSource is the uniform random source used for seeding and spaceship injection
type RandSource interface {
	//Float64 returns a value in [0, 1)
	Float64() float64
}

//NewRandSource creates the deterministic source for the seed
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//NewTimeRandSource creates the source seeded with the current time
func NewTimeRandSource() RandSource {
	return NewRandSource(time.Now().UnixNano())
}
