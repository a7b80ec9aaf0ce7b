package market

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
)

// Note: Deal Collateral is only released and returned to clients and miners
// when the storage deal stops counting towards power. In the current iteration,
// it will be released when the sector containing the storage deals expires,
// even though some storage deals can expire earlier than the sector does.
type DealProposal struct {
	PieceCID  cid.Cid `checked:"true"` // CommP
	PieceSize abi.PaddedPieceSize
	Client    addr.Address
	Provider  addr.Address

	// Nominal start epoch. Deal payment is linear between StartEpoch and EndEpoch,
	// with total amount StoragePricePerEpoch * (EndEpoch - StartEpoch).
	// Storage deal must appear in a sealed (proven) sector no later than StartEpoch,
	// otherwise it is invalid.
	StartEpoch abi.ChainEpoch
	EndEpoch   abi.ChainEpoch
}

func (p *DealProposal) Duration() abi.ChainEpoch {
	return p.EndEpoch - p.StartEpoch
}

// The spacetime committed by the deal, size times duration.
func (p *DealProposal) Weight() abi.DealWeight {
	return big.Mul(big.NewIntUnsigned(uint64(p.PieceSize)), big.NewInt(int64(p.Duration())))
}

type DealState struct {
	SectorStartEpoch abi.ChainEpoch // -1 if not yet included in proven sector
}
