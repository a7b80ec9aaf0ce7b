package market

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.PublishStorageDeals,
		3:                         a.VerifyDealsOnSectorProveCommit,
		4:                         a.ComputeDataCommitment,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.StorageMarketActorCodeID
}

func (a Actor) IsSingleton() bool {
	return true
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

////////////////////////////////////////////////////////////////////////////////
// Actor methods
////////////////////////////////////////////////////////////////////////////////

func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to create market state")
	rt.State().Create(st)
	return nil
}

type PublishStorageDealsParams struct {
	Deals []DealProposal
}

type PublishStorageDealsReturn struct {
	IDs []abi.DealID
}

// Publish a new set of storage deals (not yet included in a sector).
// All deals must name the same provider, and the caller must be that provider's worker.
func (a Actor) PublishStorageDeals(rt runtime.Runtime, params *PublishStorageDealsParams) *PublishStorageDealsReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	if len(params.Deals) == 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "empty deals parameter")
	}

	providerRaw := params.Deals[0].Provider
	provider, ok := rt.ResolveAddress(providerRaw)
	if !ok {
		rt.Abortf(exitcode.ErrNotFound, "failed to resolve provider address %v", providerRaw)
	}
	codeID, ok := rt.GetActorCodeCID(provider)
	builtin.RequireParam(rt, ok, "no code ID for address %v", provider)
	if !codeID.Equals(builtin.StorageMinerActorCodeID) {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal provider %v is not a storage miner actor", provider)
	}

	_, worker := builtin.RequestMinerControlAddrs(rt, provider)
	if worker != rt.Message().Caller() {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is not worker %v of provider %v", rt.Message().Caller(), worker, provider)
	}

	resolvedDeals := make([]DealProposal, 0, len(params.Deals))
	for di, deal := range params.Deals {
		dealProvider, ok := rt.ResolveAddress(deal.Provider)
		if !ok || dealProvider != provider {
			rt.Abortf(exitcode.ErrIllegalArgument, "deal %d has provider %v, all deals must share provider %v", di, deal.Provider, provider)
		}
		client, ok := rt.ResolveAddress(deal.Client)
		if !ok {
			rt.Abortf(exitcode.ErrNotFound, "failed to resolve client address %v", deal.Client)
		}
		deal.Provider = provider
		deal.Client = client
		validateDeal(rt, &deal)
		resolvedDeals = append(resolvedDeals, deal)
	}

	newDealIds := make([]abi.DealID, 0, len(resolvedDeals))
	var st State
	rt.State().Transaction(&st, func() {
		proposals, err := AsDealProposalArray(adt.AsStore(rt), st.Proposals)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load proposals")

		// All storage proposals will be added in an atomic transaction; this operation will be unrolled if any of them fails.
		for i := range resolvedDeals {
			id := st.generateStorageDealID()
			err = proposals.Set(id, &resolvedDeals[i])
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to set deal %d", id)
			newDealIds = append(newDealIds, id)
		}

		st.Proposals, err = proposals.Root()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush proposals")
	})

	return &PublishStorageDealsReturn{IDs: newDealIds}
}

type VerifyDealsOnSectorProveCommitParams struct {
	DealIDs      []abi.DealID
	SectorExpiry abi.ChainEpoch
}

// Verify that a given set of storage deals is valid for a sector currently being ProveCommitted,
// update the market's internal state accordingly, and return DealWeight of the set of storage deals given.
// Note: in the case of a capacity-commitment sector (one with zero deals), this function should succeed vacuously.
// The weight is defined as the sum, over all deals in the set, of the product of its size
// with its duration.
func (a Actor) VerifyDealsOnSectorProveCommit(rt runtime.Runtime, params *VerifyDealsOnSectorProveCommitParams) *abi.DealWeight {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	minerAddr := rt.Message().Caller()
	totalWeight := big.Zero()

	var st State
	rt.State().Transaction(&st, func() {
		states, err := AsDealStateArray(adt.AsStore(rt), st.States)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load deal states")
		proposals, err := AsDealProposalArray(adt.AsStore(rt), st.Proposals)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load proposals")

		for _, dealID := range params.DealIDs {
			proposal, found, err := proposals.Get(dealID)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get deal %d", dealID)
			if !found {
				rt.Abortf(exitcode.ErrNotFound, "no such deal %d", dealID)
			}
			deal, _, err := states.Get(dealID)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get deal state %d", dealID)

			validateDealCanActivate(rt, minerAddr, params.SectorExpiry, deal, proposal)

			deal.SectorStartEpoch = rt.CurrEpoch()
			err = states.Set(dealID, deal)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to set deal state %d", dealID)

			totalWeight = big.Add(totalWeight, proposal.Weight())
		}
		st.States, err = states.Root()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush deal states")
	})
	return &totalWeight
}

type ComputeDataCommitmentParams struct {
	DealIDs    []abi.DealID
	SectorType abi.RegisteredSealProof
}

func (a Actor) ComputeDataCommitment(rt runtime.Runtime, params *ComputeDataCommitmentParams) *cbg.CborCid {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)

	var st State
	rt.State().Readonly(&st)
	deals, err := st.getProposals(adt.AsStore(rt), params.DealIDs)
	builtin.RequireNoErr(rt, err, exitcode.ErrNotFound, "failed to load deals for data commitment")

	pieces := make([]abi.PieceInfo, 0, len(deals))
	for _, deal := range deals {
		pieces = append(pieces, abi.PieceInfo{
			PieceCID: deal.PieceCID,
			Size:     deal.PieceSize,
		})
	}

	commd, err := rt.Syscalls().ComputeUnsealedSectorCID(params.SectorType, pieces)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to compute unsealed sector CID")

	return (*cbg.CborCid)(&commd)
}

////////////////////////////////////////////////////////////////////////////////
// Checks
////////////////////////////////////////////////////////////////////////////////

func validateDealCanActivate(rt runtime.Runtime, minerAddr addr.Address, sectorExpiration abi.ChainEpoch, deal *DealState, proposal *DealProposal) {
	if proposal.Provider != minerAddr {
		rt.Abortf(exitcode.ErrForbidden, "deal has incorrect miner as its provider")
	}

	if deal.SectorStartEpoch != epochUndefined {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal has already appeared in proven sector")
	}

	if rt.CurrEpoch() > proposal.StartEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal start epoch %d has already elapsed", proposal.StartEpoch)
	}

	if proposal.EndEpoch > sectorExpiration {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal would outlive its containing sector (%d > %d)", proposal.EndEpoch, sectorExpiration)
	}
}

func validateDeal(rt runtime.Runtime, proposal *DealProposal) {
	if !proposal.PieceCID.Defined() {
		rt.Abortf(exitcode.ErrIllegalArgument, "proposal PieceCID undefined")
	}

	if err := proposal.PieceSize.Validate(); err != nil {
		rt.Abortf(exitcode.ErrIllegalArgument, "proposal piece size is invalid: %v", err)
	}

	if proposal.EndEpoch <= proposal.StartEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "proposal end before proposal start")
	}

	if rt.CurrEpoch() > proposal.StartEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal start epoch has already elapsed")
	}

	minDuration, maxDuration := dealDurationBounds(proposal.PieceSize)
	if proposal.Duration() < minDuration || proposal.Duration() > maxDuration {
		rt.Abortf(exitcode.ErrIllegalArgument, "deal duration out of bounds")
	}
}
