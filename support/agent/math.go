package agent

import (
	"math"
	"math/rand"
)

// RateIterator spaces events as a Poisson process with a given average number of events per epoch.
type RateIterator struct {
	rnd           *rand.Rand
	rate          float64
	nextOccurence float64
}

func NewRateIterator(rate float64, seed int64) *RateIterator {
	ri := &RateIterator{
		rnd:           rand.New(rand.NewSource(seed)),
		rate:          rate,
		nextOccurence: 1.0,
	}
	ri.chooseNext()
	return ri
}

// Calls f once for each event landing in this epoch. That is `rate` times on average,
// but any epoch may see zero or many calls.
func (ri *RateIterator) Tick(f func() error) error {
	ri.nextOccurence -= 1.0
	for ri.nextOccurence < 1.0 {
		if err := f(); err != nil {
			return err
		}
		ri.chooseNext()
	}
	return nil
}

// Same as Tick, for rates that depend on changing quantities such as a sector count.
func (ri *RateIterator) TickWithRate(rate float64, f func() error) error {
	if ri.rate <= 0 && rate > 0 {
		// no occurrence is pending while the rate is zero
		ri.rate = rate
		ri.nextOccurence = 1.0
		ri.chooseNext()
	}
	ri.rate = rate
	return ri.Tick(f)
}

func (ri *RateIterator) chooseNext() {
	if ri.rate <= 0 {
		ri.nextOccurence = math.Inf(1)
		return
	}
	ri.nextOccurence += -math.Log(1-ri.rnd.Float64()) / ri.rate
}

// Removes a random element from the slice, returning it and the remaining slice.
// Order of the remaining elements is not preserved.
func PopRandom(list []uint64, rnd *rand.Rand) (uint64, []uint64) {
	idx := rnd.Intn(len(list))
	result := list[idx]
	list[idx] = list[len(list)-1]
	return result, list[:len(list)-1]
}
