package power

import (
	"bytes"
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	initact "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

type SectorTermination int64

const (
	SectorTerminationExpired SectorTermination = iota // Implicit termination after the sector's expiration
	SectorTerminationManual                           // Unscheduled explicit termination by the miner
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateMiner,
		3:                         a.DeleteMiner,
		4:                         a.OnSectorProveCommit,
		5:                         a.OnSectorTerminate,
		6:                         a.OnSectorTemporaryFaultEffectiveBegin,
		7:                         a.OnSectorTemporaryFaultEffectiveEnd,
		8:                         a.OnSectorModifyWeightDesc,
		9:                         a.OnMinerWindowedPoStSuccess,
		10:                        a.OnMinerWindowedPoStFailure,
		11:                        a.EnrollCronEvent,
		12:                        a.OnEpochTickEnd,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.StoragePowerActorCodeID
}

func (a Actor) IsSingleton() bool {
	return true
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

// Storage miner actor constructor params are defined here so the power actor can send them to the init actor
// to instantiate miners.
type MinerConstructorParams struct {
	OwnerAddr  addr.Address
	WorkerAddr addr.Address
	SectorSize abi.SectorSize
	PeerId     abi.PeerID
}

type SectorStorageWeightDesc struct {
	SectorSize abi.SectorSize
	Duration   abi.ChainEpoch
	DealWeight abi.DealWeight
}

////////////////////////////////////////////////////////////////////////////////
// Actor methods
////////////////////////////////////////////////////////////////////////////////

func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to create storage power state")
	rt.State().Create(st)
	return nil
}

type CreateMinerParams struct {
	Owner      addr.Address
	Worker     addr.Address
	SectorSize abi.SectorSize
	Peer       abi.PeerID
}

type CreateMinerReturn struct {
	IDAddress     addr.Address // The canonical ID-based address for the actor.
	RobustAddress addr.Address // A more expensive but re-org-safe address for the newly created actor.
}

func (a Actor) CreateMiner(rt runtime.Runtime, params *CreateMinerParams) *CreateMinerReturn {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)

	ctorParams := MinerConstructorParams{
		OwnerAddr:  params.Owner,
		WorkerAddr: params.Worker,
		SectorSize: params.SectorSize,
		PeerId:     params.Peer,
	}
	ctorParamBuf := new(bytes.Buffer)
	err := ctorParams.MarshalCBOR(ctorParamBuf)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to serialize miner constructor params %v", ctorParams)

	ret, code := rt.Send(
		builtin.InitActorAddr,
		builtin.MethodsInit.Exec,
		&initact.ExecParams{
			CodeCID:           builtin.StorageMinerActorCodeID,
			ConstructorParams: ctorParamBuf.Bytes(),
		},
		rt.Message().ValueReceived(), // Pass on any value to the new actor.
	)
	builtin.RequireSuccess(rt, code, "failed to init new actor")
	var addresses initact.ExecReturn
	err = ret.Into(&addresses)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to unmarshal exec return value")

	var st State
	rt.State().Transaction(&st, func() {
		err = st.setClaim(adt.AsStore(rt), addresses.IDAddress, &Claim{abi.NewStoragePower(0), abi.NewTokenAmount(0)})
		abortIfError(rt, err, "failed to put power in claimed table while creating miner")
		st.MinerCount += 1
	})
	return &CreateMinerReturn{
		IDAddress:     addresses.IDAddress,
		RobustAddress: addresses.RobustAddress,
	}
}

type DeleteMinerParams struct {
	Miner addr.Address
}

// Removes a miner holding no power. Only the miner's owner or worker may request deletion.
func (a Actor) DeleteMiner(rt runtime.Runtime, params *DeleteMinerParams) *abi.EmptyValue {
	nominal, ok := rt.ResolveAddress(params.Miner)
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "failed to resolve address %v", params.Miner)
	}

	ownerAddr, workerAddr := builtin.RequestMinerControlAddrs(rt, nominal)
	rt.ValidateImmediateCallerIs(ownerAddr, workerAddr)

	var st State
	rt.State().Readonly(&st)
	claim, found, err := st.GetClaim(adt.AsStore(rt), nominal)
	abortIfError(rt, err, "failed to load miner claim for deletion")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "failed to find miner %v claim for deletion", nominal)
	}
	if claim.Power.GreaterThan(big.Zero()) {
		rt.Abortf(exitcode.ErrForbidden, "deletion requested for miner %v with power %v", nominal, claim.Power)
	}

	a.deleteMinerActor(rt, nominal)
	return nil
}

type OnSectorProveCommitParams struct {
	Weight SectorStorageWeightDesc
}

// Returns the computed pledge collateral requirement, which is now committed.
func (a Actor) OnSectorProveCommit(rt runtime.Runtime, params *OnSectorProveCommitParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	var pledge abi.TokenAmount
	var st State
	rt.State().Transaction(&st, func() {
		power := ConsensusPowerForWeight(&params.Weight)
		pledge = PledgeForWeight(&params.Weight)
		err := st.AddToClaim(adt.AsStore(rt), rt.Message().Caller(), power, pledge)
		abortIfError(rt, err, "failed to add power for sector")
	})

	return &pledge
}

type OnSectorTerminateParams struct {
	TerminationType SectorTermination
	Weights         []SectorStorageWeightDesc
	Pledge          abi.TokenAmount
}

func (a Actor) OnSectorTerminate(rt runtime.Runtime, params *OnSectorTerminateParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	minerAddr := rt.Message().Caller()

	var st State
	rt.State().Transaction(&st, func() {
		power := consensusPowerForWeights(params.Weights)
		err := st.AddToClaim(adt.AsStore(rt), minerAddr, power.Neg(), params.Pledge.Neg())
		abortIfError(rt, err, "failed to deduct claimed power for terminated sectors")
	})
	rt.Log(rtt.DEBUG, "miner %v terminated %d sectors (type %d)", minerAddr, len(params.Weights), params.TerminationType)
	return nil
}

type OnSectorTemporaryFaultEffectiveBeginParams struct {
	Weights []SectorStorageWeightDesc
	Pledge  abi.TokenAmount
}

func (a Actor) OnSectorTemporaryFaultEffectiveBegin(rt runtime.Runtime, params *OnSectorTemporaryFaultEffectiveBeginParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	var st State
	rt.State().Transaction(&st, func() {
		power := consensusPowerForWeights(params.Weights)
		err := st.AddToClaim(adt.AsStore(rt), rt.Message().Caller(), power.Neg(), params.Pledge.Neg())
		abortIfError(rt, err, "failed to deduct claimed power for faulted sectors")
	})
	return nil
}

type OnSectorTemporaryFaultEffectiveEndParams struct {
	Weights []SectorStorageWeightDesc
	Pledge  abi.TokenAmount
}

func (a Actor) OnSectorTemporaryFaultEffectiveEnd(rt runtime.Runtime, params *OnSectorTemporaryFaultEffectiveEndParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	var st State
	rt.State().Transaction(&st, func() {
		power := consensusPowerForWeights(params.Weights)
		err := st.AddToClaim(adt.AsStore(rt), rt.Message().Caller(), power, params.Pledge)
		abortIfError(rt, err, "failed to add claimed power for recovered sectors")
	})
	return nil
}

type OnSectorModifyWeightDescParams struct {
	PrevWeight SectorStorageWeightDesc
	PrevPledge abi.TokenAmount
	NewWeight  SectorStorageWeightDesc
}

// Returns new pledge collateral requirement, now committed in place of the old.
func (a Actor) OnSectorModifyWeightDesc(rt runtime.Runtime, params *OnSectorModifyWeightDescParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	var newPledge abi.TokenAmount
	var st State
	rt.State().Transaction(&st, func() {
		prevPower := ConsensusPowerForWeight(&params.PrevWeight)
		err := st.AddToClaim(adt.AsStore(rt), rt.Message().Caller(), prevPower.Neg(), params.PrevPledge.Neg())
		abortIfError(rt, err, "failed to deduct claimed power for sector")

		newPower := ConsensusPowerForWeight(&params.NewWeight)
		newPledge = PledgeForWeight(&params.NewWeight)
		err = st.AddToClaim(adt.AsStore(rt), rt.Message().Caller(), newPower, newPledge)
		abortIfError(rt, err, "failed to add power for sector")
	})

	return &newPledge
}

func (a Actor) OnMinerWindowedPoStSuccess(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	minerAddr := rt.Message().Caller()

	var st State
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)
		hasFault, err := st.HasDetectedFault(store, minerAddr)
		abortIfError(rt, err, "failed to check miner for detected fault")
		if !hasFault {
			return
		}
		err = st.deleteDetectedFault(store, minerAddr)
		abortIfError(rt, err, "failed to delete miner detected fault")

		// Restore the miner's claimed power to the network total.
		claim, found, err := st.GetClaim(store, minerAddr)
		abortIfError(rt, err, "failed to load claim for miner %v", minerAddr)
		if !found {
			rt.Abortf(exitcode.ErrNotFound, "no claim for miner %v", minerAddr)
		}
		st.TotalNetworkPower = big.Add(st.TotalNetworkPower, claim.Power)
	})
	return nil
}

type OnMinerWindowedPoStFailureParams struct {
	NumConsecutiveFailures int64
}

func (a Actor) OnMinerWindowedPoStFailure(rt runtime.Runtime, params *OnMinerWindowedPoStFailureParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	minerAddr := rt.Message().Caller()

	var st State
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)
		faulty, err := st.HasDetectedFault(store, minerAddr)
		abortIfError(rt, err, "failed to check if miner was faulty already")
		if faulty {
			return
		}

		claim, found, err := st.GetClaim(store, minerAddr)
		abortIfError(rt, err, "failed to get miner power from claimed power table for windowed PoSt failure")
		if !found {
			rt.Abortf(exitcode.ErrNotFound, "failed to find miner %v in claimed power table for windowed PoSt failure", minerAddr)
		}

		err = st.putDetectedFault(store, minerAddr)
		abortIfError(rt, err, "failed to put miner fault")

		// Ensure we only deduct this once.
		st.TotalNetworkPower = big.Sub(st.TotalNetworkPower, claim.Power)
	})

	if params.NumConsecutiveFailures > WindowedPostFailureLimit {
		rt.Log(rtt.INFO, "deleting miner %v after %d consecutive windowed PoSt failures", minerAddr, params.NumConsecutiveFailures)
		a.deleteMinerActor(rt, minerAddr)
	}
	return nil
}

type EnrollCronEventParams struct {
	EventEpoch abi.ChainEpoch
	Payload    []byte
}

func (a Actor) EnrollCronEvent(rt runtime.Runtime, params *EnrollCronEventParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.StorageMinerActorCodeID)
	minerEvent := CronEvent{
		MinerAddr:       rt.Message().Caller(),
		CallbackPayload: params.Payload,
	}

	// Ensure it is not possible to enter a large negative number which would cause problems in cron processing.
	if params.EventEpoch < 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "cron event epoch %d cannot be less than zero", params.EventEpoch)
	}

	var st State
	rt.State().Transaction(&st, func() {
		err := st.appendCronEvent(adt.AsStore(rt), params.EventEpoch, &minerEvent)
		abortIfError(rt, err, "failed to enroll cron event")
	})
	return nil
}

// Called by Cron.
func (a Actor) OnEpochTickEnd(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.CronActorAddr)

	a.processDeferredCronEvents(rt)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Method utility functions
////////////////////////////////////////////////////////////////////////////////

func (a Actor) processDeferredCronEvents(rt runtime.Runtime) {
	rtEpoch := rt.CurrEpoch()

	var cronEvents []CronEvent
	var st State
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)

		for epoch := st.LastEpochTick + 1; epoch <= rtEpoch; epoch++ {
			epochEvents, err := st.loadCronEvents(store, epoch)
			abortIfError(rt, err, "failed to load cron events at %v", epoch)

			cronEvents = append(cronEvents, epochEvents...)

			if len(epochEvents) > 0 {
				err = st.clearCronEvents(store, epoch)
				abortIfError(rt, err, "failed to clear cron events at %v", epoch)
			}
		}

		st.LastEpochTick = rtEpoch
	})

	for _, event := range cronEvents {
		_, code := rt.Send(
			event.MinerAddr,
			builtin.MethodsMiner.OnDeferredCronEvent,
			runtime.CBORBytes(event.CallbackPayload),
			abi.NewTokenAmount(0),
		)
		// A failing miner callback must not stall the cron queue for every other miner.
		if !code.IsSuccess() {
			rt.Log(rtt.ERROR, "OnDeferredCronEvent failed for miner %s: exitcode %d", event.MinerAddr, code)
		}
	}
}

func (a Actor) deleteMinerActor(rt runtime.Runtime, miner addr.Address) {
	var st State
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)
		err := st.deleteClaim(store, miner)
		abortIfError(rt, err, "failed to delete %v from claimed power table", miner)

		st.MinerCount -= 1
		err = st.deleteDetectedFault(store, miner)
		abortIfError(rt, err, "failed to delete detected fault for %v", miner)
	})

	// Delete the actor, burning any balance it has (sector pre-commit deposits).
	_, code := rt.Send(
		miner,
		builtin.MethodsMiner.OnDeleteMiner,
		nil,
		abi.NewTokenAmount(0),
	)
	builtin.RequireSuccess(rt, code, "failed to delete miner actor")
}

func consensusPowerForWeights(weights []SectorStorageWeightDesc) abi.StoragePower {
	power := big.Zero()
	for i := range weights {
		power = big.Add(power, ConsensusPowerForWeight(&weights[i]))
	}
	return power
}

func abortIfError(rt runtime.Runtime, err error, msg string, args ...interface{}) {
	if err != nil {
		rt.Abortf(exitcode.ErrIllegalState, "%s: %v", fmt.Sprintf(msg, args...), err)
	}
}
