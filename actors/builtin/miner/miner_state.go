package miner

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

// Bitwidth of the AMTs holding active sectors and the proving set snapshot.
const SectorsAmtBitwidth = 5

// Balance of Miner Actor should be greater than or equal to
// the sum of PreCommitDeposits of all precommitted sectors.
type State struct {
	PreCommittedSectors cid.Cid           // Map, HAMT[SectorNumber]SectorPreCommitOnChainInfo
	Sectors             cid.Cid           // Array, AMT[SectorNumber]SectorOnChainInfo (sparse)
	FaultSet            bitfield.BitField // Sectors whose declared temporary fault is in effect
	ProvingSet          cid.Cid           // Array, AMT[SectorNumber]SectorOnChainInfo, snapshot of Sectors challenged by the next PoSt

	Info      MinerInfo
	PoStState PoStState
}

// Static information about miner.
type MinerInfo struct {
	// Account that owns this miner.
	// - Income and returned collateral are paid to this address.
	// - This address is also allowed to change the worker address for the miner.
	Owner addr.Address // Must be an ID-address.

	// Worker account for this miner.
	// This will be the key that is used to sign blocks created by this miner, and
	// sign messages sent on behalf of this miner to commit sectors, submit PoSts, and
	// other day to day miner activities.
	Worker addr.Address // Must be an ID-address.

	PendingWorkerKey *WorkerKeyChange

	// Libp2p identity that should be used when connecting to this miner.
	PeerId abi.PeerID

	// Amount of space in each sector committed to the network by this miner.
	SectorSize abi.SectorSize
}

type WorkerKeyChange struct {
	NewWorker   addr.Address // Must be an ID address
	EffectiveAt abi.ChainEpoch
}

type PoStState struct {
	// Epoch at which the current proving period's challenge window opens.
	// Nil until the miner proves its first sector.
	ProvingPeriodStart     *abi.ChainEpoch
	NumConsecutiveFailures int64
}

type SectorPreCommitInfo struct {
	SealProof     abi.RegisteredSealProof
	SectorNumber  abi.SectorNumber
	SealedCID     cid.Cid `checked:"true"` // CommR
	SealRandEpoch abi.ChainEpoch
	DealIDs       []abi.DealID
	Expiration    abi.ChainEpoch
}

type SectorPreCommitOnChainInfo struct {
	Info             SectorPreCommitInfo
	PreCommitDeposit abi.TokenAmount
	PreCommitEpoch   abi.ChainEpoch
}

type SectorOnChainInfo struct {
	Info              SectorPreCommitInfo
	ActivationEpoch   abi.ChainEpoch // Epoch at which SectorProveCommit is accepted
	DealWeight        abi.DealWeight // Integral of active deals over sector lifetime
	PledgeRequirement abi.TokenAmount
	DeclaredFault     *SectorFault // Nil unless a temporary fault has been declared
}

// A declared temporary fault. It takes effect DeclaredFaultEffectiveDelay epochs after
// declaration and lasts for Duration epochs.
type SectorFault struct {
	DeclaredEpoch abi.ChainEpoch
	Duration      abi.ChainEpoch
}

func (f *SectorFault) EffectiveBegin() abi.ChainEpoch {
	return f.DeclaredEpoch + DeclaredFaultEffectiveDelay
}

func (f *SectorFault) EffectiveEnd() abi.ChainEpoch {
	return f.EffectiveBegin() + f.Duration
}

func ConstructState(store adt.Store, info MinerInfo) (*State, error) {
	emptyMapCid, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct empty precommit map")
	}
	emptyArrayCid, err := adt.StoreEmptyArray(store, SectorsAmtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct empty sectors array")
	}

	return &State{
		PreCommittedSectors: emptyMapCid,
		Sectors:             emptyArrayCid,
		FaultSet:            bitfield.New(),
		ProvingSet:          emptyArrayCid,
		Info:                info,
		PoStState: PoStState{
			ProvingPeriodStart:     nil,
			NumConsecutiveFailures: 0,
		},
	}, nil
}

func (st *State) GetWorker() addr.Address {
	return st.Info.Worker
}

func (st *State) GetSectorSize() abi.SectorSize {
	return st.Info.SectorSize
}

// Whether the current epoch falls after the start of the proving period, when the challenge is known.
func (st *State) InChallengeWindow(currEpoch abi.ChainEpoch) bool {
	pps := st.PoStState.ProvingPeriodStart
	return pps != nil && currEpoch > *pps
}

//
// Precommitted sectors
//

func (st *State) PutPrecommittedSector(store adt.Store, info *SectorPreCommitOnChainInfo) error {
	precommitted, err := adt.AsMap(store, st.PreCommittedSectors, builtin.DefaultHamtBitwidth)
	if err != nil {
		return err
	}

	err = precommitted.Put(sectorKey(info.Info.SectorNumber), info)
	if err != nil {
		return errors.Wrapf(err, "failed to store precommitment for %v", info)
	}
	st.PreCommittedSectors, err = precommitted.Root()
	return err
}

func (st *State) GetPrecommittedSector(store adt.Store, sectorNo abi.SectorNumber) (*SectorPreCommitOnChainInfo, bool, error) {
	precommitted, err := adt.AsMap(store, st.PreCommittedSectors, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, err
	}

	var info SectorPreCommitOnChainInfo
	found, err := precommitted.Get(sectorKey(sectorNo), &info)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to load precommitment for %v", sectorNo)
	}
	return &info, found, nil
}

func (st *State) HasPrecommittedSector(store adt.Store, sectorNo abi.SectorNumber) (bool, error) {
	precommitted, err := adt.AsMap(store, st.PreCommittedSectors, builtin.DefaultHamtBitwidth)
	if err != nil {
		return false, err
	}
	return precommitted.Has(sectorKey(sectorNo))
}

func (st *State) DeletePrecommittedSectors(store adt.Store, sectorNos ...abi.SectorNumber) error {
	precommitted, err := adt.AsMap(store, st.PreCommittedSectors, builtin.DefaultHamtBitwidth)
	if err != nil {
		return err
	}

	for _, sectorNo := range sectorNos {
		err = precommitted.Delete(sectorKey(sectorNo))
		if err != nil {
			return errors.Wrapf(err, "failed to delete precommitment for %v", sectorNo)
		}
	}
	st.PreCommittedSectors, err = precommitted.Root()
	return err
}

//
// Sectors
//

func (st *State) HasSectorNo(store adt.Store, sectorNo abi.SectorNumber) (bool, error) {
	sectors, err := adt.AsArray(store, st.Sectors, SectorsAmtBitwidth)
	if err != nil {
		return false, err
	}

	var info SectorOnChainInfo
	found, err := sectors.Get(uint64(sectorNo), &info)
	if err != nil {
		return false, errors.Wrapf(err, "failed to get sector %v", sectorNo)
	}
	return found, nil
}

func (st *State) PutSector(store adt.Store, sector *SectorOnChainInfo) error {
	sectors, err := adt.AsArray(store, st.Sectors, SectorsAmtBitwidth)
	if err != nil {
		return err
	}

	if err := sectors.Set(uint64(sector.Info.SectorNumber), sector); err != nil {
		return errors.Wrapf(err, "failed to put sector %v", sector)
	}
	st.Sectors, err = sectors.Root()
	return err
}

func (st *State) GetSector(store adt.Store, sectorNo abi.SectorNumber) (*SectorOnChainInfo, bool, error) {
	sectors, err := adt.AsArray(store, st.Sectors, SectorsAmtBitwidth)
	if err != nil {
		return nil, false, err
	}

	var info SectorOnChainInfo
	found, err := sectors.Get(uint64(sectorNo), &info)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to get sector %v", sectorNo)
	}
	return &info, found, nil
}

func (st *State) DeleteSectors(store adt.Store, sectorNos ...abi.SectorNumber) error {
	sectors, err := adt.AsArray(store, st.Sectors, SectorsAmtBitwidth)
	if err != nil {
		return err
	}
	for _, sectorNo := range sectorNos {
		if err = sectors.Delete(uint64(sectorNo)); err != nil {
			return errors.Wrapf(err, "failed to delete sector %v", sectorNo)
		}
	}

	st.Sectors, err = sectors.Root()
	return err
}

// Iterates sectors.
// The pointer provided to the callback is not safe for re-use. Copy the pointed-to value in full to hold a reference.
func (st *State) ForEachSector(store adt.Store, f func(*SectorOnChainInfo) error) error {
	return forEachSectorIn(store, st.Sectors, f)
}

// Iterates the proving set snapshot, with the same pointer caveat as ForEachSector.
func (st *State) ForEachProvingSector(store adt.Store, f func(*SectorOnChainInfo) error) error {
	return forEachSectorIn(store, st.ProvingSet, f)
}

func (st *State) SectorCount(store adt.Store) (uint64, error) {
	sectors, err := adt.AsArray(store, st.Sectors, SectorsAmtBitwidth)
	if err != nil {
		return 0, err
	}
	return sectors.Length(), nil
}

// Snapshots the active sectors as the set challenged by the next windowed PoSt.
func (st *State) SnapshotProvingSet() {
	st.ProvingSet = st.Sectors
}

//
// Faults
//

func (st *State) AddFaults(sectorNos ...abi.SectorNumber) error {
	merged, err := bitfield.MergeBitFields(st.FaultSet, sectorSet(sectorNos))
	if err != nil {
		return errors.Wrap(err, "failed to add faults")
	}
	st.FaultSet = merged
	return nil
}

func (st *State) RemoveFaults(sectorNos ...abi.SectorNumber) error {
	remaining, err := bitfield.SubtractBitField(st.FaultSet, sectorSet(sectorNos))
	if err != nil {
		return errors.Wrap(err, "failed to remove faults")
	}
	st.FaultSet = remaining
	return nil
}

func (st *State) IsFaulty(sectorNo abi.SectorNumber) (bool, error) {
	return st.FaultSet.IsSet(uint64(sectorNo))
}

//
// Misc helpers
//

func (st *State) ApplyPendingWorkerKey(currEpoch abi.ChainEpoch) bool {
	pending := st.Info.PendingWorkerKey
	if pending == nil || pending.EffectiveAt > currEpoch {
		return false
	}
	st.Info.Worker = pending.NewWorker
	st.Info.PendingWorkerKey = nil
	return true
}

func forEachSectorIn(store adt.Store, root cid.Cid, f func(*SectorOnChainInfo) error) error {
	sectors, err := adt.AsArray(store, root, SectorsAmtBitwidth)
	if err != nil {
		return err
	}
	var sector SectorOnChainInfo
	return sectors.ForEach(&sector, func(idx int64) error {
		return f(&sector)
	})
}

func sectorKey(e abi.SectorNumber) abi.Keyer {
	return abi.UIntKey(uint64(e))
}

func sectorSet(sectorNos []abi.SectorNumber) bitfield.BitField {
	nums := make([]uint64, len(sectorNos))
	for i, n := range sectorNos {
		nums[i] = uint64(n)
	}
	return bitfield.NewFromSet(nums)
}

