package miner

import (
	"bytes"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p-core/peer"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/market"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

// Miner-specific exit codes.
const (
	ErrPoStTooLate = exitcode.FirstActorSpecificExitCode + iota
	ErrPoStTooEarly
	ErrOwnerNotSignable
	ErrMinerNotAccount
	ErrMinerNotBLS
)

type CronEventType int64

const (
	CronEventWindowedPoStExpiration CronEventType = iota
	CronEventWorkerKeyChange
	CronEventPreCommitExpiry
	CronEventSectorExpiry
	CronEventTempFault
)

type CronEventPayload struct {
	EventType CronEventType
	Sectors   *bitfield.BitField
}

type SectorStorageWeightDesc = power.SectorStorageWeightDesc

type Actor struct {
	// Nil selects DefaultSealDurations.
	SealDurations *SealDurationTable
}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.ControlAddresses,
		3:                         a.ChangeWorkerAddress,
		4:                         a.ChangePeerID,
		5:                         a.SubmitWindowedPoSt,
		6:                         a.OnDeleteMiner,
		7:                         a.PreCommitSector,
		8:                         a.ProveCommitSector,
		9:                         a.ExtendSectorExpiration,
		10:                        a.TerminateSectors,
		11:                        a.DeclareTemporaryFaults,
		12:                        a.OnDeferredCronEvent,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.StorageMinerActorCodeID
}

func (a Actor) maxSealDuration(proof abi.RegisteredSealProof) (abi.ChainEpoch, bool) {
	if a.SealDurations == nil {
		return MaxSealDuration(proof)
	}
	return a.SealDurations.MaxSealDuration(proof)
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

/////////////////
// Constructor //
/////////////////

// Storage miner actors are created exclusively by the storage power actor. In order to break a circular dependency
// between the two, the construction parameters are defined in the power actor.
type ConstructorParams = power.MinerConstructorParams

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	owner := resolveOwnerAddress(rt, params.OwnerAddr)
	worker := resolveWorkerAddress(rt, params.WorkerAddr)
	checkPeerInfo(rt, params.PeerId)

	if params.SectorSize == 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "sector size must be positive")
	}

	info := MinerInfo{
		Owner:            owner,
		Worker:           worker,
		PendingWorkerKey: nil,
		PeerId:           params.PeerId,
		SectorSize:       params.SectorSize,
	}
	state, err := ConstructState(adt.AsStore(rt), info)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct initial state")
	rt.State().Create(state)
	return nil
}

/////////////
// Control //
/////////////

type GetControlAddressesReturn struct {
	Owner  addr.Address
	Worker addr.Address
}

func (a Actor) ControlAddresses(rt runtime.Runtime, _ *abi.EmptyValue) *GetControlAddressesReturn {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	return &GetControlAddressesReturn{
		Owner:  st.Info.Owner,
		Worker: st.Info.Worker,
	}
}

type ChangeWorkerAddressParams struct {
	NewWorker addr.Address
}

// Stages a worker key change, applied by a cron callback after WorkerKeyChangeDelay epochs.
func (a Actor) ChangeWorkerAddress(rt runtime.Runtime, params *ChangeWorkerAddressParams) *abi.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Info.Owner)

	worker := resolveWorkerAddress(rt, params.NewWorker)
	effectiveEpoch := rt.CurrEpoch() + WorkerKeyChangeDelay

	rt.State().Transaction(&st, func() {
		// This may replace another pending key change.
		st.Info.PendingWorkerKey = &WorkerKeyChange{
			NewWorker:   worker,
			EffectiveAt: effectiveEpoch,
		}
	})

	a.enrollCronEvent(rt, effectiveEpoch, &CronEventPayload{
		EventType: CronEventWorkerKeyChange,
	})
	return nil
}

type ChangePeerIDParams struct {
	NewID abi.PeerID
}

func (a Actor) ChangePeerID(rt runtime.Runtime, params *ChangePeerIDParams) *abi.EmptyValue {
	checkPeerInfo(rt, params.NewID)

	var st State
	rt.State().Transaction(&st, func() {
		rt.ValidateImmediateCallerIs(st.Info.Worker)
		st.Info.PeerId = params.NewID
	})
	return nil
}

//////////////////
// WindowedPoSt //
//////////////////

type SubmitWindowedPoStParams struct {
	Candidates []proof.PoStCandidate
	Proofs     []proof.PoStProof
}

// Invoked by miner's worker address to submit their fallback post
func (a Actor) SubmitWindowedPoSt(rt runtime.Runtime, params *SubmitWindowedPoStParams) *abi.EmptyValue {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)

	var st State
	rt.State().Transaction(&st, func() {
		rt.ValidateImmediateCallerIs(st.Info.Worker)

		pps := st.PoStState.ProvingPeriodStart
		if pps == nil {
			rt.Abortf(exitcode.ErrIllegalState, "miner has no proving period")
		}
		if currEpoch > *pps+WindowedPoStChallengeDuration {
			rt.Abortf(ErrPoStTooLate, "PoSt at %d after challenge window closed at %d", currEpoch, *pps+WindowedPoStChallengeDuration)
		}
		if currEpoch <= *pps {
			rt.Abortf(ErrPoStTooEarly, "PoSt at %d before challenge window opens after %d", currEpoch, *pps)
		}

		a.verifyWindowedPoSt(rt, store, &st, params)

		// Work out the next proving period and snapshot the sectors it will challenge.
		nextStart := *pps + ProvingPeriod
		st.PoStState = PoStState{
			ProvingPeriodStart:     &nextStart,
			NumConsecutiveFailures: 0,
		}
		st.SnapshotProvingSet()
	})

	_, code := rt.Send(
		builtin.StoragePowerActorAddr,
		builtin.MethodsPower.OnMinerWindowedPoStSuccess,
		nil,
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to notify power of windowed PoSt success")
	return nil
}

func (a Actor) verifyWindowedPoSt(rt runtime.Runtime, store adt.Store, st *State, params *SubmitWindowedPoStParams) {
	if hasDuplicateTickets(params.Candidates) {
		rt.Abortf(exitcode.ErrIllegalArgument, "duplicate challenge index in PoSt candidates")
	}
	if len(params.Candidates) != NumWindowedPoStSectors {
		rt.Abortf(exitcode.ErrIllegalArgument, "expected %d PoSt candidates, got %d", NumWindowedPoStSectors, len(params.Candidates))
	}

	currEpoch := rt.CurrEpoch()
	var challenged []proof.SectorInfo
	err := st.ForEachProvingSector(store, func(snapshot *SectorOnChainInfo) error {
		sectorNo := snapshot.Info.SectorNumber
		// Fault bookkeeping lives on the current record, the snapshot may predate a declaration.
		current, found, err := st.GetSector(store, sectorNo)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		faulty, err := st.IsFaulty(sectorNo)
		if err != nil {
			return err
		}
		if faulty && current.DeclaredFault == nil {
			rt.Abortf(exitcode.ErrIllegalState, "sector %d in fault set without a declared fault", sectorNo)
		}
		if faulty || faultActiveAt(current.DeclaredFault, currEpoch) {
			return nil
		}
		challenged = append(challenged, proof.SectorInfo{
			SealProof:    snapshot.Info.SealProof,
			SectorNumber: sectorNo,
			SealedCID:    snapshot.Info.SealedCID,
		})
		return nil
	})
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load proving set")

	minerActorID, err := addr.IDFromAddress(rt.Message().Receiver())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "runtime provided bad receiver address %v", rt.Message().Receiver())

	randomness := rt.GetRandomness(crypto.DomainSeparationTag_WindowedPoStChallengeSeed, *st.PoStState.ProvingPeriodStart, receiverEntropy(rt))

	err = rt.Syscalls().VerifyPoSt(proof.WindowPoStVerifyInfo{
		Randomness:        abi.PoStRandomness(randomness),
		Candidates:        params.Candidates,
		Proofs:            params.Proofs,
		ChallengedSectors: challenged,
		Prover:            abi.ActorID(minerActorID),
	})
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid PoSt %+v", params)
}

///////////////////////
// Sector Commitment //
///////////////////////

type PreCommitSectorParams = SectorPreCommitInfo

// Proposals must be posted on chain via sma.PublishStorageDeals before PreCommitSector.
// Optimization: PreCommitSector could contain a list of deals that are not published yet.
func (a Actor) PreCommitSector(rt runtime.Runtime, params *PreCommitSectorParams) *abi.EmptyValue {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)

	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Info.Worker)

	if params.Expiration <= currEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "sector expiration %d must be after now (%d)", params.Expiration, currEpoch)
	}
	proofSectorSize, err := params.SealProof.SectorSize()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid seal proof %d", params.SealProof)
	if proofSectorSize != st.Info.SectorSize {
		rt.Abortf(exitcode.ErrIllegalArgument, "seal proof sector size %d does not match miner sector size %d", proofSectorSize, st.Info.SectorSize)
	}
	maxSeal, ok := a.maxSealDuration(params.SealProof)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "no max seal duration for proof type %d", params.SealProof)
	}
	if params.SealRandEpoch > currEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "seal challenge epoch %d must be before now %d", params.SealRandEpoch, currEpoch)
	}
	if !params.SealedCID.Defined() {
		rt.Abortf(exitcode.ErrIllegalArgument, "sealed CID undefined")
	}

	active, err := st.HasSectorNo(store, params.SectorNumber)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check sector %d", params.SectorNumber)
	if active {
		rt.Abortf(exitcode.ErrIllegalArgument, "sector %d already committed", params.SectorNumber)
	}
	pending, err := st.HasPrecommittedSector(store, params.SectorNumber)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check precommit for sector %d", params.SectorNumber)
	if pending {
		rt.Abortf(exitcode.ErrIllegalArgument, "sector %d already precommitted", params.SectorNumber)
	}

	depositReq := PreCommitDeposit(st.Info.SectorSize, params.Expiration-currEpoch)
	builtin.ConfirmPaymentAndRefundChange(rt, depositReq)

	rt.State().Transaction(&st, func() {
		err := st.PutPrecommittedSector(store, &SectorPreCommitOnChainInfo{
			Info:             *params,
			PreCommitDeposit: depositReq,
			PreCommitEpoch:   currEpoch,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to write precommit for sector %d", params.SectorNumber)
	})

	// Request deferred callback to clean up the precommit if it is never proven.
	expiryBound := currEpoch + maxSeal + 1
	a.enrollCronEvent(rt, expiryBound, &CronEventPayload{
		EventType: CronEventPreCommitExpiry,
		Sectors:   sectorSetPtr(params.SectorNumber),
	})
	return nil
}

type ProveCommitSectorParams struct {
	SectorNumber abi.SectorNumber
	Proof        []byte
}

func (a Actor) ProveCommitSector(rt runtime.Runtime, params *ProveCommitSectorParams) *abi.EmptyValue {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)
	sectorNo := params.SectorNumber

	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Info.Worker)

	precommit, found, err := st.GetPrecommittedSector(store, sectorNo)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get precommitted sector %d", sectorNo)
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no precommitted sector %d", sectorNo)
	}

	interactiveEpoch := precommit.PreCommitEpoch + PreCommitChallengeDelay
	if currEpoch < interactiveEpoch {
		rt.Abortf(exitcode.ErrIllegalArgument, "too early to prove sector %d: %d < %d", sectorNo, currEpoch, interactiveEpoch)
	}
	maxSeal, ok := a.maxSealDuration(precommit.Info.SealProof)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "no max seal duration for proof type %d", precommit.Info.SealProof)
	}
	if currEpoch > precommit.PreCommitEpoch+maxSeal {
		rt.Abortf(exitcode.ErrIllegalArgument, "too late to prove sector %d: %d > %d", sectorNo, currEpoch, precommit.PreCommitEpoch+maxSeal)
	}

	a.verifySeal(rt, st.Info.SectorSize, &precommit.Info, interactiveEpoch, params.Proof)

	// Check (and activate) storage deals associated to sector. Abort if checks failed.
	ret, code := rt.Send(
		builtin.StorageMarketActorAddr,
		builtin.MethodsMarket.VerifyDealsOnSectorProveCommit,
		&market.VerifyDealsOnSectorProveCommitParams{
			DealIDs:      precommit.Info.DealIDs,
			SectorExpiry: precommit.Info.Expiration,
		},
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to verify deals and get deal weight")
	var dealWeight abi.DealWeight
	err = ret.Into(&dealWeight)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to unmarshal deal weight")

	ret, code = rt.Send(
		builtin.StoragePowerActorAddr,
		builtin.MethodsPower.OnSectorProveCommit,
		&power.OnSectorProveCommitParams{
			Weight: SectorStorageWeightDesc{
				SectorSize: st.Info.SectorSize,
				Duration:   precommit.Info.Expiration - currEpoch,
				DealWeight: dealWeight,
			},
		},
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to notify power actor")
	var pledge abi.TokenAmount
	err = ret.Into(&pledge)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to unmarshal pledge requirement")

	// Add sector and pledge lock-up to miner state
	firstSector := false
	rt.State().Transaction(&st, func() {
		err := st.PutSector(store, &SectorOnChainInfo{
			Info:              precommit.Info,
			ActivationEpoch:   currEpoch,
			DealWeight:        dealWeight,
			PledgeRequirement: pledge,
			DeclaredFault:     nil,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store sector %d", sectorNo)

		err = st.DeletePrecommittedSectors(store, sectorNo)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to delete precommit for sector %d", sectorNo)

		// The first proven sector opens the miner's proving schedule.
		if st.PoStState.ProvingPeriodStart == nil {
			firstSector = true
			start := currEpoch + ProvingPeriod
			st.PoStState.ProvingPeriodStart = &start
		}

		if !st.InChallengeWindow(currEpoch) {
			st.SnapshotProvingSet()
		}
	})

	// Request deferred Cron check for sector expiry.
	a.enrollCronEvent(rt, precommit.Info.Expiration, &CronEventPayload{
		EventType: CronEventSectorExpiry,
		Sectors:   sectorSetPtr(sectorNo),
	})

	if firstSector {
		a.enrollCronEvent(rt, *st.PoStState.ProvingPeriodStart+WindowedPoStChallengeDuration, &CronEventPayload{
			EventType: CronEventWindowedPoStExpiration,
		})
	}

	// Return PreCommit deposit to worker upon successful ProveCommit.
	_, code = rt.Send(st.Info.Worker, builtin.MethodSend, nil, precommit.PreCommitDeposit)
	builtin.RequireSuccess(rt, code, "failed to refund precommit deposit")
	return nil
}

func (a Actor) verifySeal(rt runtime.Runtime, sectorSize abi.SectorSize, info *SectorPreCommitInfo, interactiveEpoch abi.ChainEpoch, sealProof []byte) {
	maxSeal, ok := a.maxSealDuration(info.SealProof)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "no max seal duration for proof type %d", info.SealProof)
	}
	if info.SealRandEpoch < rt.CurrEpoch()-ChainFinalityish-maxSeal {
		rt.Abortf(exitcode.ErrIllegalArgument, "seal epoch %d too old, expected >= %d", info.SealRandEpoch, rt.CurrEpoch()-ChainFinalityish-maxSeal)
	}

	ret, code := rt.Send(
		builtin.StorageMarketActorAddr,
		builtin.MethodsMarket.ComputeDataCommitment,
		&market.ComputeDataCommitmentParams{
			DealIDs:    info.DealIDs,
			SectorType: info.SealProof,
		},
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to compute data commitment for sector %d of size %d", info.SectorNumber, sectorSize)
	var unsealedCID cbg.CborCid
	err := ret.Into(&unsealedCID)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to unmarshal data commitment")

	minerActorID, err := addr.IDFromAddress(rt.Message().Receiver())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "runtime provided non-ID receiver address %v", rt.Message().Receiver())

	entropy := receiverEntropy(rt)
	svInfoRandomness := rt.GetRandomness(crypto.DomainSeparationTag_SealRandomness, info.SealRandEpoch, entropy)
	svInfoInteractiveRandomness := rt.GetRandomness(crypto.DomainSeparationTag_InteractiveSealChallengeSeed, interactiveEpoch, entropy)

	svInfo := proof.SealVerifyInfo{
		SealProof: info.SealProof,
		SectorID: abi.SectorID{
			Miner:  abi.ActorID(minerActorID),
			Number: info.SectorNumber,
		},
		DealIDs:               info.DealIDs,
		Randomness:            abi.SealRandomness(svInfoRandomness),
		InteractiveRandomness: abi.InteractiveSealRandomness(svInfoInteractiveRandomness),
		Proof:                 sealProof,
		SealedCID:             info.SealedCID,
		UnsealedCID:           cid.Cid(unsealedCID),
	}
	err = rt.Syscalls().VerifySeal(svInfo)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid seal for sector %d", info.SectorNumber)
}

/////////////////////////
// Sector Modification //
/////////////////////////

type ExtendSectorExpirationParams struct {
	SectorNumber  abi.SectorNumber
	NewExpiration abi.ChainEpoch
}

func (a Actor) ExtendSectorExpiration(rt runtime.Runtime, params *ExtendSectorExpirationParams) *abi.EmptyValue {
	store := adt.AsStore(rt)
	sectorNo := params.SectorNumber

	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Info.Worker)

	sector, found, err := st.GetSector(store, sectorNo)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load sector %d", sectorNo)
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no such sector %d", sectorNo)
	}

	extensionLength := params.NewExpiration - sector.Info.Expiration
	if extensionLength < 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "cannot reduce sector expiration from %d to %d", sector.Info.Expiration, params.NewExpiration)
	}

	prevWeight := asStorageWeightDesc(st.Info.SectorSize, sector)
	newWeight := SectorStorageWeightDesc{
		SectorSize: prevWeight.SectorSize,
		Duration:   prevWeight.Duration + extensionLength,
		DealWeight: prevWeight.DealWeight,
	}

	faulty, err := st.IsFaulty(sectorNo)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check fault for sector %d", sectorNo)

	var newPledge abi.TokenAmount
	if faulty {
		// The claim holds nothing for a sector whose fault is in effect.
		// Fault end adds back the extended weight and this pledge.
		newPledge = power.PledgeForWeight(&newWeight)
	} else {
		ret, code := rt.Send(
			builtin.StoragePowerActorAddr,
			builtin.MethodsPower.OnSectorModifyWeightDesc,
			&power.OnSectorModifyWeightDescParams{
				PrevWeight: *prevWeight,
				PrevPledge: sector.PledgeRequirement,
				NewWeight:  newWeight,
			},
			big.Zero(),
		)
		builtin.RequireSuccess(rt, code, "failed to modify sector weight")
		err = ret.Into(&newPledge)
		builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to unmarshal new pledge")
	}

	// Store new sector expiry.
	rt.State().Transaction(&st, func() {
		sector.Info.Expiration = params.NewExpiration
		sector.PledgeRequirement = newPledge
		err := st.PutSector(store, sector)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update sector %d", sectorNo)
	})

	a.enrollCronEvent(rt, params.NewExpiration, &CronEventPayload{
		EventType: CronEventSectorExpiry,
		Sectors:   sectorSetPtr(sectorNo),
	})
	return nil
}

type TerminateSectorsParams struct {
	Sectors *bitfield.BitField
}

// Removes sectors before their expiration. A nil set terminates every active sector.
func (a Actor) TerminateSectors(rt runtime.Runtime, params *TerminateSectorsParams) *abi.EmptyValue {
	store := adt.AsStore(rt)

	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Info.Worker)

	var sectorNos []abi.SectorNumber
	if params.Sectors == nil {
		err := st.ForEachSector(store, func(sector *SectorOnChainInfo) error {
			sectorNos = append(sectorNos, sector.Info.SectorNumber)
			return nil
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to enumerate sectors")
	} else {
		var err error
		sectorNos, err = sectorNumbers(params.Sectors)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to read sectors to terminate")
		for _, sectorNo := range sectorNos {
			found, err := st.HasSectorNo(store, sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check sector %d", sectorNo)
			if !found {
				rt.Abortf(exitcode.ErrNotFound, "no such sector %d", sectorNo)
			}
		}
	}

	a.removeSectors(rt, sectorNos, power.SectorTerminationManual)
	return nil
}

////////////
// Faults //
////////////

type DeclareTemporaryFaultsParams struct {
	Sectors  bitfield.BitField
	Duration abi.ChainEpoch
}

func (a Actor) DeclareTemporaryFaults(rt runtime.Runtime, params *DeclareTemporaryFaultsParams) *abi.EmptyValue {
	if params.Duration <= 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "non-positive fault duration %d", params.Duration)
	}
	sectorNos, err := sectorNumbers(&params.Sectors)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to read faulted sectors")

	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)
	fault := SectorFault{
		DeclaredEpoch: currEpoch,
		Duration:      params.Duration,
	}

	var st State
	rt.State().Transaction(&st, func() {
		rt.ValidateImmediateCallerIs(st.Info.Worker)

		for _, sectorNo := range sectorNos {
			sector, found, err := st.GetSector(store, sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load sector %d", sectorNo)
			if !found {
				rt.Abortf(exitcode.ErrNotFound, "no such sector %d", sectorNo)
			}
			if sector.DeclaredFault != nil {
				rt.Abortf(exitcode.ErrIllegalArgument, "sector %d already has a declared fault", sectorNo)
			}

			declared := fault
			sector.DeclaredFault = &declared
			err = st.PutSector(store, sector)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update sector %d", sectorNo)
		}
	})

	// Request deferred Cron invocation to update temporary fault state.
	payload := &CronEventPayload{
		EventType: CronEventTempFault,
		Sectors:   &params.Sectors,
	}
	a.enrollCronEvent(rt, fault.EffectiveBegin(), payload)
	a.enrollCronEvent(rt, fault.EffectiveEnd(), payload)
	return nil
}

//////////
// Cron //
//////////

func (a Actor) OnDeferredCronEvent(rt runtime.Runtime, payload *CronEventPayload) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.StoragePowerActorAddr)

	switch payload.EventType {
	case CronEventWindowedPoStExpiration:
		a.checkPoStProvenAndReschedule(rt)
	case CronEventWorkerKeyChange:
		a.commitWorkerKeyChange(rt)
	case CronEventPreCommitExpiry:
		a.checkPrecommitExpiry(rt, payload.Sectors)
	case CronEventSectorExpiry:
		a.checkSectorExpiry(rt, payload.Sectors)
	case CronEventTempFault:
		a.checkTemporaryFaultEvents(rt, payload.Sectors)
	default:
		rt.Abortf(exitcode.ErrIllegalArgument, "unknown cron event type %d", payload.EventType)
	}
	return nil
}

func (a Actor) OnDeleteMiner(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.StoragePowerActorAddr)
	rt.DeleteActor(builtin.BurntFundsActorAddr)
	return nil
}

func (a Actor) checkPoStProvenAndReschedule(rt runtime.Runtime) {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)

	var st State
	failed := false
	reschedule := false
	rt.State().Transaction(&st, func() {
		pps := st.PoStState.ProvingPeriodStart
		if pps == nil {
			return
		}

		count, err := st.SectorCount(store)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to count sectors")
		if count == 0 {
			// Nothing left to prove, the next proven sector opens a fresh proving period.
			st.PoStState.ProvingPeriodStart = nil
			return
		}

		// A successful submission moves the period start past the current epoch.
		if currEpoch > *pps {
			failed = true
			nextStart := *pps + ProvingPeriod
			st.PoStState.ProvingPeriodStart = &nextStart
			st.PoStState.NumConsecutiveFailures++
			st.SnapshotProvingSet()
		}
		reschedule = true
	})

	if reschedule {
		a.enrollCronEvent(rt, *st.PoStState.ProvingPeriodStart+WindowedPoStChallengeDuration, &CronEventPayload{
			EventType: CronEventWindowedPoStExpiration,
		})
	}

	if failed {
		rt.Log(rtt.INFO, "miner %v missed windowed PoSt, %d consecutive failures", rt.Message().Receiver(), st.PoStState.NumConsecutiveFailures)
		// May delete this actor.
		_, code := rt.Send(
			builtin.StoragePowerActorAddr,
			builtin.MethodsPower.OnMinerWindowedPoStFailure,
			&power.OnMinerWindowedPoStFailureParams{
				NumConsecutiveFailures: st.PoStState.NumConsecutiveFailures,
			},
			big.Zero(),
		)
		builtin.RequireSuccess(rt, code, "failed to notify power of windowed PoSt failure")
	}
}

func (a Actor) commitWorkerKeyChange(rt runtime.Runtime) {
	var st State
	rt.State().Transaction(&st, func() {
		if st.ApplyPendingWorkerKey(rt.CurrEpoch()) {
			rt.Log(rtt.INFO, "miner %v worker changed to %v", rt.Message().Receiver(), st.Info.Worker)
		}
	})
}

func (a Actor) checkPrecommitExpiry(rt runtime.Runtime, sectors *bitfield.BitField) {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)
	sectorNos, err := sectorNumbers(sectors)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to read expiring precommits")

	depositToBurn := abi.NewTokenAmount(0)
	var st State
	rt.State().Transaction(&st, func() {
		var expired []abi.SectorNumber
		for _, sectorNo := range sectorNos {
			precommit, found, err := st.GetPrecommittedSector(store, sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load precommit %d", sectorNo)
			if !found {
				// Already proven.
				continue
			}
			// A reused sector number may have a newer precommit that is still within its seal window.
			if maxSeal, ok := a.maxSealDuration(precommit.Info.SealProof); ok && currEpoch <= precommit.PreCommitEpoch+maxSeal {
				continue
			}
			expired = append(expired, sectorNo)
			depositToBurn = big.Add(depositToBurn, precommit.PreCommitDeposit)
		}
		if len(expired) == 0 {
			return
		}
		err := st.DeletePrecommittedSectors(store, expired...)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to delete expired precommits")
	})

	if depositToBurn.GreaterThan(big.Zero()) {
		_, code := rt.Send(builtin.BurntFundsActorAddr, builtin.MethodSend, nil, depositToBurn)
		builtin.RequireSuccess(rt, code, "failed to burn funds")
	}
}

func (a Actor) checkSectorExpiry(rt runtime.Runtime, sectors *bitfield.BitField) {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)
	sectorNos, err := sectorNumbers(sectors)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to read expiring sectors")

	var st State
	rt.State().Readonly(&st)

	var expired []abi.SectorNumber
	for _, sectorNo := range sectorNos {
		sector, found, err := st.GetSector(store, sectorNo)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load sector %d", sectorNo)
		// Terminated or extended sectors are skipped.
		if !found || sector.Info.Expiration > currEpoch {
			continue
		}
		expired = append(expired, sectorNo)
	}

	a.removeSectors(rt, expired, power.SectorTerminationExpired)
}

func (a Actor) checkTemporaryFaultEvents(rt runtime.Runtime, sectors *bitfield.BitField) {
	currEpoch := rt.CurrEpoch()
	store := adt.AsStore(rt)
	sectorNos, err := sectorNumbers(sectors)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to read faulted sectors")

	var beginWeights, endWeights []SectorStorageWeightDesc
	beginPledge := abi.NewTokenAmount(0)
	endPledge := abi.NewTokenAmount(0)

	var st State
	rt.State().Transaction(&st, func() {
		for _, sectorNo := range sectorNos {
			sector, found, err := st.GetSector(store, sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load sector %d", sectorNo)
			if !found || sector.DeclaredFault == nil {
				continue
			}
			faulty, err := st.IsFaulty(sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check fault for sector %d", sectorNo)

			fault := sector.DeclaredFault
			if currEpoch >= fault.EffectiveEnd() {
				if faulty {
					err = st.RemoveFaults(sectorNo)
					builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to clear fault for sector %d", sectorNo)
					endWeights = append(endWeights, *asStorageWeightDesc(st.Info.SectorSize, sector))
					endPledge = big.Add(endPledge, sector.PledgeRequirement)
				}
				sector.DeclaredFault = nil
				err = st.PutSector(store, sector)
				builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update sector %d", sectorNo)
			} else if currEpoch >= fault.EffectiveBegin() && !faulty {
				err = st.AddFaults(sectorNo)
				builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to add fault for sector %d", sectorNo)
				beginWeights = append(beginWeights, *asStorageWeightDesc(st.Info.SectorSize, sector))
				beginPledge = big.Add(beginPledge, sector.PledgeRequirement)
			}
		}
	})

	if len(beginWeights) > 0 {
		_, code := rt.Send(
			builtin.StoragePowerActorAddr,
			builtin.MethodsPower.OnSectorTemporaryFaultEffectiveBegin,
			&power.OnSectorTemporaryFaultEffectiveBeginParams{
				Weights: beginWeights,
				Pledge:  beginPledge,
			},
			big.Zero(),
		)
		builtin.RequireSuccess(rt, code, "failed to begin fault")
	}

	if len(endWeights) > 0 {
		_, code := rt.Send(
			builtin.StoragePowerActorAddr,
			builtin.MethodsPower.OnSectorTemporaryFaultEffectiveEnd,
			&power.OnSectorTemporaryFaultEffectiveEndParams{
				Weights: endWeights,
				Pledge:  endPledge,
			},
			big.Zero(),
		)
		builtin.RequireSuccess(rt, code, "failed to end fault")
	}
}

////////////////////////////////////////////////////////////////////////////////
// Utility functions & helpers
////////////////////////////////////////////////////////////////////////////////

// Removes active sectors and reports the power they carried. Faulted sectors already
// had their power and pledge withdrawn when the fault took effect.
func (a Actor) removeSectors(rt runtime.Runtime, sectorNos []abi.SectorNumber, terminationType power.SectorTermination) {
	if len(sectorNos) == 0 {
		return
	}
	store := adt.AsStore(rt)

	var weights []SectorStorageWeightDesc
	pledge := abi.NewTokenAmount(0)
	var st State
	rt.State().Transaction(&st, func() {
		for _, sectorNo := range sectorNos {
			sector, found, err := st.GetSector(store, sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load sector %d", sectorNo)
			builtin.RequireState(rt, found, "sector %d not found for removal", sectorNo)

			faulty, err := st.IsFaulty(sectorNo)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check fault for sector %d", sectorNo)
			if !faulty {
				weights = append(weights, *asStorageWeightDesc(st.Info.SectorSize, sector))
				pledge = big.Add(pledge, sector.PledgeRequirement)
			}
		}

		err := st.DeleteSectors(store, sectorNos...)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to delete sectors")
		err = st.RemoveFaults(sectorNos...)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to remove faults")
	})

	_, code := rt.Send(
		builtin.StoragePowerActorAddr,
		builtin.MethodsPower.OnSectorTerminate,
		&power.OnSectorTerminateParams{
			TerminationType: terminationType,
			Weights:         weights,
			Pledge:          pledge,
		},
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to notify power of sector termination")
}

func (a Actor) enrollCronEvent(rt runtime.Runtime, eventEpoch abi.ChainEpoch, callbackPayload *CronEventPayload) {
	payload := new(bytes.Buffer)
	err := callbackPayload.MarshalCBOR(payload)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to serialize cron payload")

	_, code := rt.Send(
		builtin.StoragePowerActorAddr,
		builtin.MethodsPower.EnrollCronEvent,
		&power.EnrollCronEventParams{
			EventEpoch: eventEpoch,
			Payload:    payload.Bytes(),
		},
		big.Zero(),
	)
	builtin.RequireSuccess(rt, code, "failed to enroll cron event")
}

// Resolves an address to an ID address and verifies that it is address of an account or multisig actor.
func resolveOwnerAddress(rt runtime.Runtime, raw addr.Address) addr.Address {
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "unable to resolve address %v", raw)
	}

	ownerCode, ok := rt.GetActorCodeCID(resolved)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "no code for address %v", resolved)
	}
	if !builtin.IsSignableActor(ownerCode) {
		rt.Abortf(ErrOwnerNotSignable, "owner actor type must be a principal, was %v", ownerCode)
	}
	return resolved
}

// Resolves an address to an ID address and verifies that it is address of an account actor with an associated BLS key.
// The worker must be BLS since the worker key will be used alongside a BLS-VRF.
func resolveWorkerAddress(rt runtime.Runtime, raw addr.Address) addr.Address {
	resolved, ok := rt.ResolveAddress(raw)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "unable to resolve address %v", raw)
	}

	workerCode, ok := rt.GetActorCodeCID(resolved)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "no code for address %v", resolved)
	}
	if !workerCode.Equals(builtin.AccountActorCodeID) {
		rt.Abortf(ErrMinerNotAccount, "worker actor type must be an account, was %v", workerCode)
	}

	if raw.Protocol() != addr.BLS {
		ret, code := rt.Send(resolved, builtin.MethodsAccount.PubkeyAddress, nil, big.Zero())
		builtin.RequireSuccess(rt, code, "failed to fetch account pubkey from %v", resolved)
		var pubkey addr.Address
		err := ret.Into(&pubkey)
		builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to deserialize address result: %v", ret)
		if pubkey.Protocol() != addr.BLS {
			rt.Abortf(ErrMinerNotBLS, "worker account %v must have BLS pubkey, was %v", resolved, pubkey.Protocol())
		}
	}
	return resolved
}

func checkPeerInfo(rt runtime.Runtime, peerID abi.PeerID) {
	if _, err := peer.IDFromBytes(peerID); err != nil {
		rt.Abortf(exitcode.ErrIllegalArgument, "invalid peer ID: %s", err)
	}
}

func hasDuplicateTickets(candidates []proof.PoStCandidate) bool {
	seen := make(map[int64]struct{}, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.ChallengeIndex]; ok {
			return true
		}
		seen[candidate.ChallengeIndex] = struct{}{}
	}
	return false
}

func faultActiveAt(fault *SectorFault, epoch abi.ChainEpoch) bool {
	return fault != nil && epoch >= fault.EffectiveBegin() && epoch < fault.EffectiveEnd()
}

func receiverEntropy(rt runtime.Runtime) []byte {
	var buf bytes.Buffer
	receiver := rt.Message().Receiver()
	err := receiver.MarshalCBOR(&buf)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to marshal address for randomness")
	return buf.Bytes()
}

func sectorNumbers(sectors *bitfield.BitField) ([]abi.SectorNumber, error) {
	if sectors == nil {
		return nil, nil
	}
	var out []abi.SectorNumber
	err := sectors.ForEach(func(i uint64) error {
		out = append(out, abi.SectorNumber(i))
		return nil
	})
	return out, err
}

func sectorSetPtr(sectorNo abi.SectorNumber) *bitfield.BitField {
	bf := bitfield.NewFromSet([]uint64{uint64(sectorNo)})
	return &bf
}

func asStorageWeightDesc(sectorSize abi.SectorSize, sectorInfo *SectorOnChainInfo) *SectorStorageWeightDesc {
	return &SectorStorageWeightDesc{
		SectorSize: sectorSize,
		DealWeight: sectorInfo.DealWeight,
		Duration:   sectorInfo.Info.Expiration - sectorInfo.ActivationEpoch,
	}
}
