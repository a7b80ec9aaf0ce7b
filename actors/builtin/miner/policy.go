package miner

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/filecoin-project/miner-actors/actors/builtin"
)

// The period over which all a miner's active sectors will be challenged.
const ProvingPeriod = abi.ChainEpoch(builtin.EpochsInDay) // 24 hours

// The number of epochs after the proving period start during which a windowed PoSt is accepted.
const WindowedPoStChallengeDuration = abi.ChainEpoch(60)

// Lookback from the current epoch for state view for PoSt challenges.
const PoStLookback = abi.ChainEpoch(1)

// Lookback from the current epoch for state view for leader elections.
const ElectionLookback = PoStLookback

// Staging period for a miner worker key change.
const WorkerKeyChangeDelay = 2 * ElectionLookback

// Number of epochs between publishing the precommit and when the challenge for interactive PoRep is drawn
// used to ensure it is not predictable by miner.
const PreCommitChallengeDelay = abi.ChainEpoch(1)

// An approximation to chain state finality.
const ChainFinalityish = abi.ChainEpoch(900)

// Number of epochs after a temporary fault declaration before the fault takes effect.
const DeclaredFaultEffectiveDelay = abi.ChainEpoch(20)

// Number of sector candidates a windowed PoSt submission must carry.
var NumWindowedPoStSectors = 2

// Multiplier applied to a sector's spacetime to compute its precommit deposit.
var PreCommitDepositFactor = big.NewInt(1)

// Deposit required to precommit a sector of the given size for the given number of epochs.
func PreCommitDeposit(sectorSize abi.SectorSize, duration abi.ChainEpoch) abi.TokenAmount {
	spacetime := big.Mul(big.NewIntUnsigned(uint64(sectorSize)), big.NewInt(int64(duration)))
	return big.Mul(spacetime, PreCommitDepositFactor)
}

// SealDurationTable holds the maximum duration to allow for the sealing process, per seal proof type.
// A table is not modified after construction, so one may be shared between actors and goroutines.
type SealDurationTable struct {
	durations map[abi.RegisteredSealProof]abi.ChainEpoch
}

// NewSealDurationTable builds a table from a copy of the given durations.
func NewSealDurationTable(durations map[abi.RegisteredSealProof]abi.ChainEpoch) *SealDurationTable {
	table := make(map[abi.RegisteredSealProof]abi.ChainEpoch, len(durations))
	for proof, d := range durations { // nolint:nomaprange
		table[proof] = d
	}
	return &SealDurationTable{durations: table}
}

func (t *SealDurationTable) MaxSealDuration(proof abi.RegisteredSealProof) (abi.ChainEpoch, bool) {
	d, ok := t.durations[proof]
	return d, ok
}

var defaultSealDurations = NewSealDurationTable(map[abi.RegisteredSealProof]abi.ChainEpoch{
	abi.RegisteredSealProof_StackedDrg2KiBV1:   abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg8MiBV1:   abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg512MiBV1: abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg32GiBV1:  abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg64GiBV1:  abi.ChainEpoch(10000),

	abi.RegisteredSealProof_StackedDrg2KiBV1_1:   abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg8MiBV1_1:   abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg512MiBV1_1: abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg32GiBV1_1:  abi.ChainEpoch(10000),
	abi.RegisteredSealProof_StackedDrg64GiBV1_1:  abi.ChainEpoch(10000),
})

// The table used by an Actor that is not given one.
func DefaultSealDurations() *SealDurationTable {
	return defaultSealDurations
}

func MaxSealDuration(proof abi.RegisteredSealProof) (abi.ChainEpoch, bool) {
	return defaultSealDurations.MaxSealDuration(proof)
}
