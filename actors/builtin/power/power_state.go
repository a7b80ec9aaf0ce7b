package power

import (
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

// Bitwidth of the AMTs holding each epoch's cron events.
const CronQueueAmtBitwidth = 6

type State struct {
	// Sum of the nominal power of all miners.
	TotalNetworkPower abi.StoragePower
	MinerCount        int64

	// A queue of events to be triggered by cron, indexed by epoch.
	CronEventQueue cid.Cid // Multimap, (HAMT[ChainEpoch]AMT[CronEvent]

	// Last chain epoch OnEpochTickEnd was called on
	LastEpochTick abi.ChainEpoch

	// Claimed power and associated pledge requirements for each miner.
	Claims cid.Cid // Map, HAMT[address]Claim

	// Miners having failed to prove storage.
	PoStDetectedFaultMiners cid.Cid // Set, HAMT[addr.Address]struct{}
}

type Claim struct {
	// Sum of power for a miner's sectors.
	Power abi.StoragePower
	// Sum of pledge requirement for a miner's sectors.
	Pledge abi.TokenAmount
}

type CronEvent struct {
	MinerAddr       addr.Address
	CallbackPayload []byte
}

func ConstructState(store adt.Store) (*State, error) {
	emptyClaimsCid, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty claims map")
	}
	emptyCronQueueCid, err := adt.StoreEmptyMultimap(store, builtin.DefaultHamtBitwidth, CronQueueAmtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty cron queue")
	}
	emptyFaultsSet, err := adt.MakeEmptySet(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty detected faults set")
	}
	emptyFaultsCid, err := emptyFaultsSet.Root()
	if err != nil {
		return nil, errors.Wrap(err, "failed to flush detected faults set")
	}

	return &State{
		TotalNetworkPower:       abi.NewStoragePower(0),
		CronEventQueue:          emptyCronQueueCid,
		LastEpochTick:           -1,
		Claims:                  emptyClaimsCid,
		PoStDetectedFaultMiners: emptyFaultsCid,
	}, nil
}

// Parameters may be negative to subtract.
func (st *State) AddToClaim(s adt.Store, miner addr.Address, power abi.StoragePower, pledge abi.TokenAmount) error {
	claim, ok, err := st.GetClaim(s, miner)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("no claim for actor %v", miner)
	}

	claim.Power = big.Add(claim.Power, power)
	claim.Pledge = big.Add(claim.Pledge, pledge)
	if claim.Power.LessThan(big.Zero()) {
		return errors.Errorf("negative claimed power %v for miner %v", claim.Power, miner)
	}
	if claim.Pledge.LessThan(big.Zero()) {
		return errors.Errorf("negative claimed pledge %v for miner %v", claim.Pledge, miner)
	}

	faulty, err := st.HasDetectedFault(s, miner)
	if err != nil {
		return err
	}
	if !faulty {
		st.TotalNetworkPower = big.Add(st.TotalNetworkPower, power)
	}
	return st.setClaim(s, miner, claim)
}

// Computes the power we infer the miner to have, which is zero while the miner is in detected fault.
func (st *State) NominalPower(s adt.Store, minerAddr addr.Address) (abi.StoragePower, error) {
	claim, found, err := st.GetClaim(s, minerAddr)
	if err != nil {
		return big.Zero(), err
	}
	if !found {
		return big.Zero(), errors.Errorf("no claim for actor %v", minerAddr)
	}
	faulty, err := st.HasDetectedFault(s, minerAddr)
	if err != nil {
		return big.Zero(), err
	}
	if faulty {
		return big.Zero(), nil
	}
	return claim.Power, nil
}

func (st *State) HasDetectedFault(s adt.Store, a addr.Address) (bool, error) {
	faultyMiners, err := adt.AsSet(s, st.PoStDetectedFaultMiners, builtin.DefaultHamtBitwidth)
	if err != nil {
		return false, errors.Wrap(err, "failed to load detected faults")
	}
	found, err := faultyMiners.Has(abi.AddrKey(a))
	if err != nil {
		return false, errors.Wrapf(err, "failed to get detected faults for address %v from set %s", a, st.PoStDetectedFaultMiners)
	}
	return found, nil
}

func (st *State) putDetectedFault(s adt.Store, a addr.Address) error {
	faultyMiners, err := adt.AsSet(s, st.PoStDetectedFaultMiners, builtin.DefaultHamtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load detected faults")
	}
	if err := faultyMiners.Put(abi.AddrKey(a)); err != nil {
		return errors.Wrapf(err, "failed to put detected fault for miner %s in set %s", a, st.PoStDetectedFaultMiners)
	}
	st.PoStDetectedFaultMiners, err = faultyMiners.Root()
	return err
}

func (st *State) deleteDetectedFault(s adt.Store, a addr.Address) error {
	faultyMiners, err := adt.AsSet(s, st.PoStDetectedFaultMiners, builtin.DefaultHamtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load detected faults")
	}
	if _, err := faultyMiners.TryDelete(abi.AddrKey(a)); err != nil {
		return errors.Wrapf(err, "failed to delete detected fault for miner %s from set %s", a, st.PoStDetectedFaultMiners)
	}
	st.PoStDetectedFaultMiners, err = faultyMiners.Root()
	return err
}

func (st *State) appendCronEvent(store adt.Store, epoch abi.ChainEpoch, event *CronEvent) error {
	mmap, err := adt.AsMultimap(store, st.CronEventQueue, builtin.DefaultHamtBitwidth, CronQueueAmtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load cron event queue")
	}
	if err = mmap.Add(epochKey(epoch), event); err != nil {
		return errors.Wrapf(err, "failed to store cron event at epoch %v for miner %v", epoch, event.MinerAddr)
	}
	st.CronEventQueue, err = mmap.Root()
	return err
}

// Loads the events enrolled at an epoch. Events for miners no longer holding a claim are dropped.
func (st *State) loadCronEvents(store adt.Store, epoch abi.ChainEpoch) ([]CronEvent, error) {
	mmap, err := adt.AsMultimap(store, st.CronEventQueue, builtin.DefaultHamtBitwidth, CronQueueAmtBitwidth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cron event queue")
	}
	var events []CronEvent
	var ev CronEvent
	err = mmap.ForEach(epochKey(epoch), &ev, func(i int64) error {
		if _, found, err := st.GetClaim(store, ev.MinerAddr); err != nil {
			return errors.Wrapf(err, "failed to find claimed power for %v for cron event", ev.MinerAddr)
		} else if found {
			events = append(events, CronEvent{
				MinerAddr:       ev.MinerAddr,
				CallbackPayload: append([]byte(nil), ev.CallbackPayload...),
			})
		}
		return nil
	})
	return events, err
}

func (st *State) clearCronEvents(store adt.Store, epoch abi.ChainEpoch) error {
	mmap, err := adt.AsMultimap(store, st.CronEventQueue, builtin.DefaultHamtBitwidth, CronQueueAmtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load cron event queue")
	}
	if err = mmap.RemoveAll(epochKey(epoch)); err != nil {
		return errors.Wrapf(err, "failed to clear cron events at %v", epoch)
	}
	st.CronEventQueue, err = mmap.Root()
	return err
}

func (st *State) GetClaim(s adt.Store, a addr.Address) (*Claim, bool, error) {
	hm, err := adt.AsMap(s, st.Claims, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to load claims")
	}

	var out Claim
	found, err := hm.Get(abi.AddrKey(a), &out)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to get claim for address %v from store %s", a, st.Claims)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

func (st *State) setClaim(s adt.Store, a addr.Address, claim *Claim) error {
	hm, err := adt.AsMap(s, st.Claims, builtin.DefaultHamtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load claims")
	}
	if err := hm.Put(abi.AddrKey(a), claim); err != nil {
		return errors.Wrapf(err, "failed to put claim with address %s power %v in store %s", a, claim, st.Claims)
	}
	st.Claims, err = hm.Root()
	return err
}

func (st *State) deleteClaim(s adt.Store, a addr.Address) error {
	hm, err := adt.AsMap(s, st.Claims, builtin.DefaultHamtBitwidth)
	if err != nil {
		return errors.Wrap(err, "failed to load claims")
	}
	if err := hm.Delete(abi.AddrKey(a)); err != nil {
		return errors.Wrapf(err, "failed to delete claim at address %s from store %s", a, st.Claims)
	}
	st.Claims, err = hm.Root()
	return err
}

func epochKey(e abi.ChainEpoch) abi.Keyer {
	return abi.IntKey(int64(e))
}

func init() {
	// Check that ChainEpoch is indeed a signed integer to confirm that epochKey is making the right interpretation.
	var e abi.ChainEpoch
	if reflect.TypeOf(e).Kind() != reflect.Int64 {
		panic("incorrect chain epoch encoding")
	}
}
