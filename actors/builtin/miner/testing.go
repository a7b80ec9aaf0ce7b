package miner

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

type StateSummary struct {
	ActiveSectors       uint64
	PrecommittedSectors uint64
	Faults              uint64
	ProvingSetSize      uint64
	// Power and pledge of sectors without a fault in effect, as the miner's claim should hold.
	ClaimedPower  abi.StoragePower
	ClaimedPledge abi.TokenAmount
}

// Checks internal invariants of miner state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		ClaimedPower:  big.Zero(),
		ClaimedPledge: big.Zero(),
	}

	checkMinerInfo(&st.Info, acc)

	active := make(map[abi.SectorNumber]*SectorOnChainInfo)
	err := st.ForEachSector(store, func(sector *SectorOnChainInfo) error {
		copied := *sector
		active[sector.Info.SectorNumber] = &copied
		acc.Require(sector.ActivationEpoch <= sector.Info.Expiration, "sector %d activated at %d after expiration %d",
			sector.Info.SectorNumber, sector.ActivationEpoch, sector.Info.Expiration)
		acc.Require(!sector.PledgeRequirement.LessThan(abi.NewTokenAmount(0)), "sector %d has negative pledge %v",
			sector.Info.SectorNumber, sector.PledgeRequirement)
		if sector.DeclaredFault != nil {
			acc.Require(sector.DeclaredFault.Duration > 0, "sector %d has non-positive fault duration %d",
				sector.Info.SectorNumber, sector.DeclaredFault.Duration)
		}
		summary.ActiveSectors++
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	precommitted, err := adt.AsMap(store, st.PreCommittedSectors, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, acc, err
	}
	var precommit SectorPreCommitOnChainInfo
	err = precommitted.ForEach(&precommit, func(key string) error {
		sectorNo, err := abi.ParseUIntKey(key)
		if err != nil {
			return err
		}
		acc.Require(sectorNo == uint64(precommit.Info.SectorNumber), "precommit keyed by %d has sector number %d",
			sectorNo, precommit.Info.SectorNumber)
		_, isActive := active[precommit.Info.SectorNumber]
		acc.Require(!isActive, "sector %d is both precommitted and active", precommit.Info.SectorNumber)
		acc.Require(precommit.PreCommitEpoch < precommit.Info.Expiration, "precommit %d expires at %d before its precommit epoch %d",
			precommit.Info.SectorNumber, precommit.Info.Expiration, precommit.PreCommitEpoch)
		summary.PrecommittedSectors++
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	faulty := make(map[abi.SectorNumber]bool)
	err = st.FaultSet.ForEach(func(i uint64) error {
		faulty[abi.SectorNumber(i)] = true
		sector, isActive := active[abi.SectorNumber(i)]
		acc.Require(isActive, "faulty sector %d is not active", i)
		if isActive {
			acc.Require(sector.DeclaredFault != nil, "faulty sector %d has no declared fault", i)
		}
		summary.Faults++
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	for sectorNo, sector := range active { // nolint:nomaprange
		if faulty[sectorNo] {
			continue
		}
		summary.ClaimedPower = big.Add(summary.ClaimedPower, power.ConsensusPowerForWeight(asStorageWeightDesc(st.Info.SectorSize, sector)))
		summary.ClaimedPledge = big.Add(summary.ClaimedPledge, sector.PledgeRequirement)
	}

	err = st.ForEachProvingSector(store, func(sector *SectorOnChainInfo) error {
		summary.ProvingSetSize++
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	if summary.ActiveSectors > 0 {
		acc.Require(st.PoStState.ProvingPeriodStart != nil, "miner with %d active sectors has no proving period", summary.ActiveSectors)
	}
	acc.Require(st.PoStState.NumConsecutiveFailures >= 0, "negative consecutive PoSt failures %d", st.PoStState.NumConsecutiveFailures)

	return summary, acc, nil
}

func checkMinerInfo(info *MinerInfo, acc *builtin.MessageAccumulator) {
	acc.Require(info.Owner.Protocol() == address.ID, "owner address %v is not an ID address", info.Owner)
	acc.Require(info.Worker.Protocol() == address.ID, "worker address %v is not an ID address", info.Worker)
	if info.PendingWorkerKey != nil {
		acc.Require(info.PendingWorkerKey.NewWorker.Protocol() == address.ID, "pending worker address %v is not an ID address",
			info.PendingWorkerKey.NewWorker)
	}
	acc.Require(info.SectorSize > 0, "sector size %d is not positive", info.SectorSize)
}
