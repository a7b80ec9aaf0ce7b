package market

import (
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

const epochUndefined = abi.ChainEpoch(-1)

// Bitwidth of the deal proposal and state AMTs.
const (
	ProposalsAmtBitwidth = 5
	StatesAmtBitwidth    = 6
)

type State struct {
	Proposals cid.Cid // AMT[DealID]DealProposal
	States    cid.Cid // AMT[DealID]DealState; only deals activated in a proven sector have an entry

	NextID abi.DealID
}

func ConstructState(store adt.Store) (*State, error) {
	emptyProposalsArrayCid, err := adt.StoreEmptyArray(store, ProposalsAmtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty proposals array")
	}
	emptyStatesArrayCid, err := adt.StoreEmptyArray(store, StatesAmtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty states array")
	}

	return &State{
		Proposals: emptyProposalsArrayCid,
		States:    emptyStatesArrayCid,
		NextID:    abi.DealID(0),
	}, nil
}

func (st *State) generateStorageDealID() abi.DealID {
	ret := st.NextID
	st.NextID = st.NextID + abi.DealID(1)
	return ret
}

// A specialization of an array to deal proposals.
type DealArray struct {
	*adt.Array
}

// Interprets a store as a deal proposal array with root `r`.
func AsDealProposalArray(s adt.Store, r cid.Cid) (*DealArray, error) {
	a, err := adt.AsArray(s, r, ProposalsAmtBitwidth)
	if err != nil {
		return nil, err
	}
	return &DealArray{a}, nil
}

// Gets the deal for a key. The entry must have been previously initialized.
func (t *DealArray) Get(id abi.DealID) (*DealProposal, bool, error) {
	var value DealProposal
	found, err := t.Array.Get(uint64(id), &value)
	return &value, found, err
}

func (t *DealArray) Set(k abi.DealID, value *DealProposal) error {
	return t.Array.Set(uint64(k), value)
}

// A specialization of an array to deal states.
type DealMetaArray struct {
	*adt.Array
}

// Interprets a store as a deal state array with root `r`.
func AsDealStateArray(s adt.Store, r cid.Cid) (*DealMetaArray, error) {
	a, err := adt.AsArray(s, r, StatesAmtBitwidth)
	if err != nil {
		return nil, err
	}
	return &DealMetaArray{a}, nil
}

// Gets the deal state for a key. A deal without an entry has not been activated.
func (m *DealMetaArray) Get(id abi.DealID) (*DealState, bool, error) {
	var dealState DealState
	found, err := m.Array.Get(uint64(id), &dealState)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to get deal state for deal %d", id)
	}
	if !found {
		return &DealState{SectorStartEpoch: epochUndefined}, false, nil
	}
	return &dealState, true, nil
}

func (m *DealMetaArray) Set(k abi.DealID, dealState *DealState) error {
	return m.Array.Set(uint64(k), dealState)
}

// Loads the proposals for a set of deal IDs, failing if any is missing.
func (st *State) getProposals(store adt.Store, dealIDs []abi.DealID) ([]*DealProposal, error) {
	proposals, err := AsDealProposalArray(store, st.Proposals)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load proposals")
	}
	out := make([]*DealProposal, 0, len(dealIDs))
	for _, id := range dealIDs {
		proposal, found, err := proposals.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get deal %d", id)
		}
		if !found {
			return nil, errors.Errorf("no such deal %d", id)
		}
		out = append(out, proposal)
	}
	return out, nil
}
