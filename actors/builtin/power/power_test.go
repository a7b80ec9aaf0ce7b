package power_test

import (
	"bytes"
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	initact "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/mock"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

const sectorSize = abi.SectorSize(2048)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, power.Actor{})
}

func TestConstruction(t *testing.T) {
	actor := newHarness(t)
	owner := tutil.NewIDAddr(t, 101)
	miner := tutil.NewIDAddr(t, 103)
	actr := tutil.NewActorAddr(t, "actor")

	builder := mock.NewBuilder(context.Background(), builtin.StoragePowerActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("simple construction", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		st := getState(rt)
		assert.Equal(t, int64(0), st.MinerCount)
		assert.Equal(t, abi.NewStoragePower(0), st.TotalNetworkPower)
		assert.Equal(t, abi.ChainEpoch(-1), st.LastEpochTick)
		actor.checkState(rt)
	})

	t.Run("create miner", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		actor.createMiner(rt, owner, owner, miner, actr, abi.PeerID("miner"), abi.NewTokenAmount(10))

		st := getState(rt)
		assert.Equal(t, int64(1), st.MinerCount)
		assert.Equal(t, abi.NewStoragePower(0), st.TotalNetworkPower)

		claims, err := adt.AsMap(rt.AdtStore(), st.Claims, builtin.DefaultHamtBitwidth)
		require.NoError(t, err)
		keys, err := claims.CollectKeys()
		require.NoError(t, err)
		assert.Equal(t, 1, len(keys))
		var actualClaim power.Claim
		found, err := claims.Get(abi.AddrKey(miner), &actualClaim)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, power.Claim{Power: big.Zero(), Pledge: big.Zero()}, actualClaim) // miner has not proven anything
		actor.checkState(rt)
	})

	t.Run("create miner requires signable caller", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.CreateMiner, &power.CreateMinerParams{Owner: owner, Worker: owner, SectorSize: sectorSize})
		})
	})
}

func TestPowerAndPledgeAccounting(t *testing.T) {
	actor := newHarness(t)
	owner := tutil.NewIDAddr(t, 101)
	miner1 := tutil.NewIDAddr(t, 111)
	miner2 := tutil.NewIDAddr(t, 112)

	builder := mock.NewBuilder(context.Background(), builtin.StoragePowerActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	weight := power.SectorStorageWeightDesc{SectorSize: sectorSize, Duration: 100, DealWeight: big.NewInt(1000)}

	t.Run("prove commit adds power and returns pledge", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		actor.createMinerBasic(rt, owner, miner2)

		pledge := actor.onSectorProveCommit(rt, miner1, weight)
		// 2048 * 100 + 1000
		assert.Equal(t, abi.NewTokenAmount(205800), pledge)
		actor.onSectorProveCommit(rt, miner2, weight)

		st := getState(rt)
		assert.Equal(t, abi.NewStoragePower(2*int64(sectorSize)), st.TotalNetworkPower)
		claim := actor.getClaim(rt, miner1)
		assert.Equal(t, abi.NewStoragePower(int64(sectorSize)), claim.Power)
		assert.Equal(t, pledge, claim.Pledge)
		actor.checkState(rt)
	})

	t.Run("modify weight desc swaps pledge", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		pledge := actor.onSectorProveCommit(rt, miner1, weight)

		newWeight := weight
		newWeight.Duration = 200
		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		ret := rt.Call(actor.OnSectorModifyWeightDesc, &power.OnSectorModifyWeightDescParams{
			PrevWeight: weight,
			PrevPledge: pledge,
			NewWeight:  newWeight,
		}).(*abi.TokenAmount)
		rt.Verify()

		assert.Equal(t, power.PledgeForWeight(&newWeight), *ret)
		claim := actor.getClaim(rt, miner1)
		assert.Equal(t, *ret, claim.Pledge)
		assert.Equal(t, abi.NewStoragePower(int64(sectorSize)), claim.Power)
		actor.checkState(rt)
	})

	t.Run("temporary faults remove and restore power", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		pledge := actor.onSectorProveCommit(rt, miner1, weight)

		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.Call(actor.OnSectorTemporaryFaultEffectiveBegin, &power.OnSectorTemporaryFaultEffectiveBeginParams{
			Weights: []power.SectorStorageWeightDesc{weight},
			Pledge:  pledge,
		})
		rt.Verify()
		assert.Equal(t, big.Zero(), getState(rt).TotalNetworkPower)
		assert.Equal(t, big.Zero(), actor.getClaim(rt, miner1).Pledge)

		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.Call(actor.OnSectorTemporaryFaultEffectiveEnd, &power.OnSectorTemporaryFaultEffectiveEndParams{
			Weights: []power.SectorStorageWeightDesc{weight},
			Pledge:  pledge,
		})
		rt.Verify()
		assert.Equal(t, abi.NewStoragePower(int64(sectorSize)), getState(rt).TotalNetworkPower)
		assert.Equal(t, pledge, actor.getClaim(rt, miner1).Pledge)
		actor.checkState(rt)
	})

	t.Run("terminate removes power", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		pledge := actor.onSectorProveCommit(rt, miner1, weight)

		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.Call(actor.OnSectorTerminate, &power.OnSectorTerminateParams{
			TerminationType: power.SectorTerminationManual,
			Weights:         []power.SectorStorageWeightDesc{weight},
			Pledge:          pledge,
		})
		rt.Verify()

		claim := actor.getClaim(rt, miner1)
		assert.Equal(t, big.Zero(), claim.Power)
		assert.Equal(t, big.Zero(), claim.Pledge)
		actor.checkState(rt)
	})

	t.Run("terminating more power than claimed fails", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)

		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			rt.Call(actor.OnSectorTerminate, &power.OnSectorTerminateParams{
				TerminationType: power.SectorTerminationExpired,
				Weights:         []power.SectorStorageWeightDesc{weight},
				Pledge:          big.Zero(),
			})
		})
	})

	t.Run("non-miner caller is rejected", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.OnSectorProveCommit, &power.OnSectorProveCommitParams{Weight: weight})
		})
	})
}

func TestWindowedPoStFaults(t *testing.T) {
	actor := newHarness(t)
	owner := tutil.NewIDAddr(t, 101)
	miner := tutil.NewIDAddr(t, 111)
	weight := power.SectorStorageWeightDesc{SectorSize: sectorSize, Duration: 100, DealWeight: big.Zero()}

	builder := mock.NewBuilder(context.Background(), builtin.StoragePowerActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("detected fault zeroes nominal power until success", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner)
		actor.onSectorProveCommit(rt, miner, weight)

		actor.onWindowedPoStFailure(rt, miner, 1)
		st := getState(rt)
		assert.Equal(t, big.Zero(), st.TotalNetworkPower)
		nominal, err := st.NominalPower(rt.AdtStore(), miner)
		require.NoError(t, err)
		assert.Equal(t, big.Zero(), nominal)
		actor.checkState(rt)

		// a second failure does not deduct twice
		actor.onWindowedPoStFailure(rt, miner, 2)
		assert.Equal(t, big.Zero(), getState(rt).TotalNetworkPower)

		rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.Call(actor.OnMinerWindowedPoStSuccess, nil)
		rt.Verify()

		st = getState(rt)
		assert.Equal(t, abi.NewStoragePower(int64(sectorSize)), st.TotalNetworkPower)
		faulty, err := st.HasDetectedFault(rt.AdtStore(), miner)
		require.NoError(t, err)
		assert.False(t, faulty)
		actor.checkState(rt)
	})

	t.Run("miner is deleted after too many failures", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner)

		rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.ExpectSend(miner, builtin.MethodsMiner.OnDeleteMiner, nil, big.Zero(), nil, exitcode.Ok)
		rt.Call(actor.OnMinerWindowedPoStFailure, &power.OnMinerWindowedPoStFailureParams{
			NumConsecutiveFailures: power.WindowedPostFailureLimit + 1,
		})
		rt.Verify()

		st := getState(rt)
		assert.Equal(t, int64(0), st.MinerCount)
		_, found, err := st.GetClaim(rt.AdtStore(), miner)
		require.NoError(t, err)
		assert.False(t, found)
		actor.checkState(rt)
	})
}

func TestDeleteMiner(t *testing.T) {
	actor := newHarness(t)
	owner := tutil.NewIDAddr(t, 101)
	worker := tutil.NewIDAddr(t, 102)
	miner := tutil.NewIDAddr(t, 111)

	builder := mock.NewBuilder(context.Background(), builtin.StoragePowerActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("owner deletes powerless miner", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMiner(rt, owner, worker, miner, tutil.NewActorAddr(t, "m"), abi.PeerID("peer"), big.Zero())

		rt.SetCaller(owner, builtin.AccountActorCodeID)
		rt.ExpectSend(miner, builtin.MethodsMiner.ControlAddresses, nil, big.Zero(), &builtin.MinerAddrs{Owner: owner, Worker: worker}, exitcode.Ok)
		rt.ExpectValidateCallerAddr(owner, worker)
		rt.ExpectSend(miner, builtin.MethodsMiner.OnDeleteMiner, nil, big.Zero(), nil, exitcode.Ok)
		rt.Call(actor.DeleteMiner, &power.DeleteMinerParams{Miner: miner})
		rt.Verify()

		assert.Equal(t, int64(0), getState(rt).MinerCount)
		actor.checkState(rt)
	})

	t.Run("miner with power cannot be deleted", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMiner(rt, owner, worker, miner, tutil.NewActorAddr(t, "m"), abi.PeerID("peer"), big.Zero())
		actor.onSectorProveCommit(rt, miner, power.SectorStorageWeightDesc{SectorSize: sectorSize, Duration: 10, DealWeight: big.Zero()})

		rt.SetCaller(worker, builtin.AccountActorCodeID)
		rt.ExpectSend(miner, builtin.MethodsMiner.ControlAddresses, nil, big.Zero(), &builtin.MinerAddrs{Owner: owner, Worker: worker}, exitcode.Ok)
		rt.ExpectValidateCallerAddr(owner, worker)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.DeleteMiner, &power.DeleteMinerParams{Miner: miner})
		})
	})

	t.Run("stranger cannot delete miner", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMiner(rt, owner, worker, miner, tutil.NewActorAddr(t, "m"), abi.PeerID("peer"), big.Zero())

		rt.SetCaller(tutil.NewIDAddr(t, 999), builtin.AccountActorCodeID)
		rt.ExpectSend(miner, builtin.MethodsMiner.ControlAddresses, nil, big.Zero(), &builtin.MinerAddrs{Owner: owner, Worker: worker}, exitcode.Ok)
		rt.ExpectValidateCallerAddr(owner, worker)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.DeleteMiner, &power.DeleteMinerParams{Miner: miner})
		})
	})
}

func TestCron(t *testing.T) {
	actor := newHarness(t)
	owner := tutil.NewIDAddr(t, 101)
	miner1 := tutil.NewIDAddr(t, 111)
	miner2 := tutil.NewIDAddr(t, 112)

	builder := mock.NewBuilder(context.Background(), builtin.StoragePowerActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("event scheduled in null round called next round", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		actor.createMinerBasic(rt, owner, miner2)

		//  0 - genesis
		//  1 - block - registers events
		//  2 - null  - has event
		//  3 - null
		//  4 - block - has event

		rt.SetEpoch(1)
		actor.enrollCronEvent(rt, miner1, 2, []byte{0x1, 0x3})
		actor.enrollCronEvent(rt, miner2, 4, []byte{0x2, 0x3})
		actor.checkState(rt)

		rt.SetEpoch(4)
		rt.ExpectSend(miner1, builtin.MethodsMiner.OnDeferredCronEvent, runtime.CBORBytes([]byte{0x1, 0x3}), big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(miner2, builtin.MethodsMiner.OnDeferredCronEvent, runtime.CBORBytes([]byte{0x2, 0x3}), big.Zero(), nil, exitcode.Ok)
		actor.onEpochTickEnd(rt)

		st := getState(rt)
		assert.Equal(t, abi.ChainEpoch(4), st.LastEpochTick)
		summary, _, err := power.CheckStateInvariants(st, rt.AdtStore())
		require.NoError(t, err)
		assert.Empty(t, summary.Crons)
	})

	t.Run("handles failed call", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)
		actor.createMinerBasic(rt, owner, miner2)

		rt.SetEpoch(1)
		actor.enrollCronEvent(rt, miner1, 2, []byte{})
		actor.enrollCronEvent(rt, miner2, 2, []byte{})

		rt.SetEpoch(2)
		// First send fails
		rt.ExpectSend(miner1, builtin.MethodsMiner.OnDeferredCronEvent, runtime.CBORBytes([]byte{}), big.Zero(), nil, exitcode.ErrIllegalState)
		// Subsequent one still invoked
		rt.ExpectSend(miner2, builtin.MethodsMiner.OnDeferredCronEvent, runtime.CBORBytes([]byte{}), big.Zero(), nil, exitcode.Ok)
		actor.onEpochTickEnd(rt)
		rt.ExpectLogsContain("OnDeferredCronEvent failed for miner")
	})

	t.Run("events for deleted miners are dropped", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		actor.createMinerBasic(rt, owner, miner1)

		rt.SetEpoch(1)
		actor.enrollCronEvent(rt, miner1, 3, []byte{0x7})

		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.ExpectSend(miner1, builtin.MethodsMiner.OnDeleteMiner, nil, big.Zero(), nil, exitcode.Ok)
		rt.Call(actor.OnMinerWindowedPoStFailure, &power.OnMinerWindowedPoStFailureParams{
			NumConsecutiveFailures: power.WindowedPostFailureLimit + 1,
		})
		rt.Verify()

		rt.SetEpoch(3)
		actor.onEpochTickEnd(rt)
	})

	t.Run("negative event epoch is rejected", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(miner1, builtin.StorageMinerActorCodeID)
		rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.EnrollCronEvent, &power.EnrollCronEventParams{EventEpoch: -1})
		})
	})

	t.Run("only cron may tick", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(owner, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.CronActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.OnEpochTickEnd, nil)
		})
	})
}

type spActorHarness struct {
	power.Actor
	t *testing.T
}

func newHarness(t *testing.T) *spActorHarness {
	return &spActorHarness{
		Actor: power.Actor{},
		t:     t,
	}
}

func (h *spActorHarness) constructAndVerify(rt *mock.Runtime) {
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Actor.Constructor, nil)
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *spActorHarness) createMinerBasic(rt *mock.Runtime, owner, miner addr.Address) {
	label := miner.String()
	h.createMiner(rt, owner, owner, miner, tutil.NewActorAddr(h.t, label), abi.PeerID(label), big.Zero())
}

func (h *spActorHarness) createMiner(rt *mock.Runtime, owner, worker, miner, robust addr.Address, peer abi.PeerID, value abi.TokenAmount) {
	st := getState(rt)
	prevMinerCount := st.MinerCount

	rt.SetReceived(value)
	rt.SetBalance(value)
	rt.SetCaller(owner, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)

	createMinerRet := &power.CreateMinerReturn{
		IDAddress:     miner,  // miner actor id address
		RobustAddress: robust, // should be long miner actor address
	}

	msgParams := &initact.ExecParams{
		CodeCID:           builtin.StorageMinerActorCodeID,
		ConstructorParams: initCreateMinerBytes(h.t, owner, worker, peer),
	}
	rt.ExpectSend(builtin.InitActorAddr, builtin.MethodsInit.Exec, msgParams, value, createMinerRet, 0)
	params := &power.CreateMinerParams{
		Owner:      owner,
		Worker:     worker,
		SectorSize: sectorSize,
		Peer:       peer,
	}
	ret := rt.Call(h.Actor.CreateMiner, params).(*power.CreateMinerReturn)
	rt.Verify()
	assert.Equal(h.t, createMinerRet, ret)

	rt.SetAddressActorType(miner, builtin.StorageMinerActorCodeID)
	rt.SetReceived(big.Zero())
	assert.Equal(h.t, prevMinerCount+1, getState(rt).MinerCount)
}

func (h *spActorHarness) onSectorProveCommit(rt *mock.Runtime, miner addr.Address, weight power.SectorStorageWeightDesc) abi.TokenAmount {
	rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
	rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
	ret := rt.Call(h.Actor.OnSectorProveCommit, &power.OnSectorProveCommitParams{Weight: weight}).(*abi.TokenAmount)
	rt.Verify()
	return *ret
}

func (h *spActorHarness) onWindowedPoStFailure(rt *mock.Runtime, miner addr.Address, failures int64) {
	rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
	rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
	rt.Call(h.Actor.OnMinerWindowedPoStFailure, &power.OnMinerWindowedPoStFailureParams{NumConsecutiveFailures: failures})
	rt.Verify()
}

func (h *spActorHarness) enrollCronEvent(rt *mock.Runtime, miner addr.Address, epoch abi.ChainEpoch, payload []byte) {
	rt.ExpectValidateCallerType(builtin.StorageMinerActorCodeID)
	rt.SetCaller(miner, builtin.StorageMinerActorCodeID)
	rt.Call(h.Actor.EnrollCronEvent, &power.EnrollCronEventParams{
		EventEpoch: epoch,
		Payload:    payload,
	})
	rt.Verify()
}

func (h *spActorHarness) onEpochTickEnd(rt *mock.Runtime) {
	rt.SetCaller(builtin.CronActorAddr, builtin.CronActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.CronActorAddr)
	rt.Call(h.Actor.OnEpochTickEnd, nil)
	rt.Verify()
}

func (h *spActorHarness) getClaim(rt *mock.Runtime, miner addr.Address) *power.Claim {
	st := getState(rt)
	claim, found, err := st.GetClaim(rt.AdtStore(), miner)
	require.NoError(h.t, err)
	require.True(h.t, found)
	return claim
}

func (h *spActorHarness) checkState(rt *mock.Runtime) {
	st := getState(rt)
	_, msgs, err := power.CheckStateInvariants(st, rt.AdtStore())
	require.NoError(h.t, err)
	assert.True(h.t, msgs.IsEmpty(), msgs.Messages())
}

func initCreateMinerBytes(t testing.TB, owner, worker addr.Address, peer abi.PeerID) []byte {
	params := &power.MinerConstructorParams{
		OwnerAddr:  owner,
		WorkerAddr: worker,
		SectorSize: sectorSize,
		PeerId:     peer,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, params.MarshalCBOR(buf))
	return buf.Bytes()
}

func getState(rt *mock.Runtime) *power.State {
	var st power.State
	rt.GetState(&st)
	return &st
}
