package market

import "github.com/filecoin-project/go-state-types/abi"

// Bounds (inclusive) on deal duration
func dealDurationBounds(_ abi.PaddedPieceSize) (min abi.ChainEpoch, max abi.ChainEpoch) {
	return abi.ChainEpoch(1), abi.ChainEpoch(540 * 2880)
}
