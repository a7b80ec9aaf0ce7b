package market

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

type DealSummary struct {
	Provider         address.Address
	StartEpoch       abi.ChainEpoch
	EndEpoch         abi.ChainEpoch
	SectorStartEpoch abi.ChainEpoch
}

type StateSummary struct {
	Deals map[abi.DealID]*DealSummary
}

// Checks internal invariants of market state.
func CheckStateInvariants(st *State, store adt.Store, currEpoch abi.ChainEpoch) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}

	proposals, err := AsDealProposalArray(store, st.Proposals)
	if err != nil {
		return nil, acc, err
	}

	dealSummaries := make(map[abi.DealID]*DealSummary)
	var proposal DealProposal
	err = proposals.ForEach(&proposal, func(dealID int64) error {
		acc.Require(abi.DealID(dealID) < st.NextID, "deal id %d at or beyond next id %d", dealID, st.NextID)
		acc.Require(proposal.StartEpoch < proposal.EndEpoch, "deal %d starts at %d, not before end %d", dealID, proposal.StartEpoch, proposal.EndEpoch)
		acc.Require(proposal.Provider.Protocol() == address.ID, "deal %d provider %v is not an ID address", dealID, proposal.Provider)
		dealSummaries[abi.DealID(dealID)] = &DealSummary{
			Provider:         proposal.Provider,
			StartEpoch:       proposal.StartEpoch,
			EndEpoch:         proposal.EndEpoch,
			SectorStartEpoch: epochUndefined,
		}
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	states, err := AsDealStateArray(store, st.States)
	if err != nil {
		return nil, acc, err
	}
	var dealState DealState
	err = states.ForEach(&dealState, func(dealID int64) error {
		acc.Require(dealState.SectorStartEpoch >= 0, "deal %d state start epoch undefined: %v", dealID, dealState)
		acc.Require(dealState.SectorStartEpoch <= currEpoch, "deal %d activated in the future at %d", dealID, dealState.SectorStartEpoch)

		summary, found := dealSummaries[abi.DealID(dealID)]
		acc.Require(found, "no deal proposal for deal state %d", dealID)
		if found {
			summary.SectorStartEpoch = dealState.SectorStartEpoch
			acc.Require(dealState.SectorStartEpoch <= summary.StartEpoch, "deal %d activated after its start epoch", dealID)
		}
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	return &StateSummary{Deals: dealSummaries}, acc, nil
}
