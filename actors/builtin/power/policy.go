package power

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// Number of consecutive windowed PoSt failures after which a miner is removed from the power table.
const WindowedPostFailureLimit = 3

// Pledge collateral required per unit of sector spacetime or deal weight.
var PledgeFactor = big.NewInt(1) // PARAM_FINISH

// The power a sector contributes to consensus. This is presently independent of
// the sector's duration and deal weight.
func ConsensusPowerForWeight(weight *SectorStorageWeightDesc) abi.StoragePower {
	return abi.NewStoragePower(int64(weight.SectorSize))
}

// The pledge collateral requirement for a sector, proportional to its size, duration and deal weight.
func PledgeForWeight(weight *SectorStorageWeightDesc) abi.TokenAmount {
	spacetime := big.Mul(big.NewIntUnsigned(uint64(weight.SectorSize)), big.NewInt(int64(weight.Duration)))
	return big.Mul(big.Add(spacetime, weight.DealWeight), PledgeFactor)
}
