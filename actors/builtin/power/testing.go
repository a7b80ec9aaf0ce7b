package power

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

type MinerCronEvent struct {
	Epoch   abi.ChainEpoch
	Payload []byte
}

type CronEventsByAddress map[address.Address][]MinerCronEvent
type ClaimsByAddress map[address.Address]Claim

type StateSummary struct {
	Crons  CronEventsByAddress
	Claims ClaimsByAddress
}

// Checks internal invariants of power state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}

	acc.Require(st.TotalNetworkPower.GreaterThanEqual(big.Zero()), "total network power is negative %v", st.TotalNetworkPower)
	acc.Require(st.MinerCount >= 0, "miner count is negative %d", st.MinerCount)

	crons, err := CheckCronInvariants(st, store, acc)
	if err != nil {
		return nil, acc, err
	}

	claims, err := CheckClaimInvariants(st, store, acc)
	if err != nil {
		return nil, acc, err
	}

	return &StateSummary{
		Crons:  crons,
		Claims: claims,
	}, acc, nil
}

func CheckCronInvariants(st *State, store adt.Store, acc *builtin.MessageAccumulator) (CronEventsByAddress, error) {
	queue, err := adt.AsMultimap(store, st.CronEventQueue, builtin.DefaultHamtBitwidth, CronQueueAmtBitwidth)
	if err != nil {
		return nil, err
	}

	byAddress := make(CronEventsByAddress)
	err = queue.ForAll(func(ekey string, arr *adt.Array) error {
		epoch, err := abi.ParseIntKey(ekey)
		acc.Require(err == nil, "non-int key in cron array")
		if err != nil {
			return nil // error noted above
		}

		acc.Require(abi.ChainEpoch(epoch) > st.LastEpochTick, "cron event at epoch %d not after last tick %d",
			epoch, st.LastEpochTick)

		var event CronEvent
		return arr.ForEach(&event, func(i int64) error {
			byAddress[event.MinerAddr] = append(byAddress[event.MinerAddr], MinerCronEvent{
				Epoch:   abi.ChainEpoch(epoch),
				Payload: append([]byte(nil), event.CallbackPayload...),
			})
			return nil
		})
	})
	acc.RequireNoError(err, "error attempting to read through power actor cron tasks")

	return byAddress, nil
}

func CheckClaimInvariants(st *State, store adt.Store, acc *builtin.MessageAccumulator) (ClaimsByAddress, error) {
	claims, err := adt.AsMap(store, st.Claims, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}

	nominalPower := abi.NewStoragePower(0)
	byAddress := make(ClaimsByAddress)
	var claim Claim
	err = claims.ForEach(&claim, func(key string) error {
		addr, err := address.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		byAddress[addr] = claim
		acc.Require(claim.Power.GreaterThanEqual(big.Zero()), "miner %v has negative power %v", addr, claim.Power)
		acc.Require(claim.Pledge.GreaterThanEqual(big.Zero()), "miner %v has negative pledge %v", addr, claim.Pledge)

		faulty, err := st.HasDetectedFault(store, addr)
		if err != nil {
			return err
		}
		if !faulty {
			nominalPower = big.Add(nominalPower, claim.Power)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	acc.Require(int64(len(byAddress)) == st.MinerCount, "claim count %d does not match miner count %d", len(byAddress), st.MinerCount)
	acc.Require(nominalPower.Equals(st.TotalNetworkPower),
		"sum of nominal power in claims %v does not match recorded total %v", nominalPower, st.TotalNetworkPower)

	faults, err := adt.AsSet(store, st.PoStDetectedFaultMiners, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	err = faults.ForEach(func(key string) error {
		addr, err := address.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		_, found := byAddress[addr]
		acc.Require(found, "detected fault for miner %v without a claim", addr)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return byAddress, nil
}
