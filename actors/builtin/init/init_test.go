package init_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/mock"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, init_.Actor{})
}

func TestConstructor(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 1000)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt := builder.Build(t)
	actor.constructAndVerify(rt)

	t.Run("rejects non-system caller", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetCaller(tutil.NewIDAddr(t, 1001), builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.Constructor, &init_.ConstructorParams{NetworkName: "mock"})
		})
	})
}

func TestExec(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 1000)
	anne := tutil.NewIDAddr(t, 1001)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	var fakeParams = runtime.CBORBytes([]byte{'D', 'E', 'A', 'D', 'B', 'E', 'E', 'F'})

	t.Run("abort actors that cannot call exec", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(anne, builtin.AccountActorCodeID)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, builtin.AccountActorCodeID, []byte{})
		})
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, builtin.StorageMinerActorCodeID, []byte{})
		})
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, cid.Undef, []byte{})
		})
	})

	t.Run("power actor cannot exec singletons", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(builtin.StoragePowerActorAddr, builtin.StoragePowerActorCodeID)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, builtin.StorageMarketActorCodeID, fakeParams)
		})
	})

	t.Run("happy path exec create 2 storage miners", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		// only the storage power actor can create a miner
		rt.SetCaller(builtin.StoragePowerActorAddr, builtin.StoragePowerActorCodeID)
		balance := abi.NewTokenAmount(100)
		rt.SetBalance(balance)
		rt.SetReceived(balance)

		// re-org-stable address of the storage miner actor
		uniqueAddr1 := tutil.NewActorAddr(t, "miner")
		rt.SetNewActorAddress(uniqueAddr1)

		expectedIDAddr1 := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.StorageMinerActorCodeID, expectedIDAddr1)
		rt.ExpectSend(expectedIDAddr1, builtin.MethodConstructor, fakeParams, balance, nil, exitcode.Ok)
		execRet1 := actor.execAndVerify(rt, builtin.StorageMinerActorCodeID, fakeParams)
		assert.Equal(t, uniqueAddr1, execRet1.RobustAddress)
		assert.Equal(t, expectedIDAddr1, execRet1.IDAddress)

		var st init_.State
		rt.GetState(&st)
		actualIDAddr, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, expectedIDAddr1, actualIDAddr)

		// the next ID address is incremented. 100 -> 101
		rt.SetBalance(big.Zero())
		rt.SetReceived(big.Zero())
		uniqueAddr2 := tutil.NewActorAddr(t, "miner2")
		rt.SetNewActorAddress(uniqueAddr2)
		expectedIDAddr2 := tutil.NewIDAddr(t, 101)
		rt.ExpectCreateActor(builtin.StorageMinerActorCodeID, expectedIDAddr2)
		rt.ExpectSend(expectedIDAddr2, builtin.MethodConstructor, fakeParams, big.Zero(), nil, exitcode.Ok)
		execRet2 := actor.execAndVerify(rt, builtin.StorageMinerActorCodeID, fakeParams)
		assert.Equal(t, uniqueAddr2, execRet2.RobustAddress)
		assert.Equal(t, expectedIDAddr2, execRet2.IDAddress)

		rt.GetState(&st)
		actualIDAddr2, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr2)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, expectedIDAddr2, actualIDAddr2)

		// an unknown address does not resolve
		_, found, err = st.ResolveAddress(rt.AdtStore(), tutil.NewActorAddr(t, "flurbo"))
		require.NoError(t, err)
		assert.False(t, found)

		// ID addresses pass through
		idAddr, found, err := st.ResolveAddress(rt.AdtStore(), anne)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, anne, idAddr)
	})

	t.Run("sending to constructor failure", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(builtin.StoragePowerActorAddr, builtin.StoragePowerActorCodeID)
		uniqueAddr := tutil.NewActorAddr(t, "miner")
		rt.SetNewActorAddress(uniqueAddr)

		expectedIDAddr := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.StorageMinerActorCodeID, expectedIDAddr)
		rt.ExpectSend(expectedIDAddr, builtin.MethodConstructor, fakeParams, big.Zero(), nil, exitcode.ErrIllegalState)
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			actor.execAndVerify(rt, builtin.StorageMinerActorCodeID, fakeParams)
		})

		// since the send failed the uniqueAddr should not resolve
		var st init_.State
		rt.GetState(&st)
		_, found, err := st.ResolveAddress(rt.AdtStore(), uniqueAddr)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, abi.ActorID(builtin.FirstNonSingletonActorId), st.NextID)
	})
}

type initHarness struct {
	init_.Actor
	t testing.TB
}

func (h *initHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &init_.ConstructorParams{NetworkName: "mock"})
	assert.Nil(h.t, ret)
	rt.Verify()

	var st init_.State
	rt.GetState(&st)
	emptyMap, err := adt.AsMap(rt.AdtStore(), st.AddressMap, builtin.DefaultHamtBitwidth)
	require.NoError(h.t, err)
	keys, err := emptyMap.CollectKeys()
	require.NoError(h.t, err)
	assert.Empty(h.t, keys)
	assert.Equal(h.t, abi.ActorID(builtin.FirstNonSingletonActorId), st.NextID)
	assert.Equal(h.t, "mock", st.NetworkName)
}

func (h *initHarness) execAndVerify(rt *mock.Runtime, codeID cid.Cid, constructorParams []byte) *init_.ExecReturn {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.Exec, &init_.ExecParams{
		CodeCID:           codeID,
		ConstructorParams: constructorParams,
	}).(*init_.ExecReturn)
	rt.Verify()
	return ret
}
