package cron_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/cron"
	"github.com/filecoin-project/miner-actors/support/mock"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, cron.Actor{})
}

func TestConstructor(t *testing.T) {
	actor := cronHarness{cron.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 100)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("construct with empty entries", func(t *testing.T) {
		rt := builder.Build(t)

		var nilCronEntries = []cron.Entry(nil)
		actor.constructAndVerify(rt, nilCronEntries...)

		var st cron.State
		rt.GetState(&st)
		assert.Equal(t, nilCronEntries, st.Entries)
	})

	t.Run("construct with non-empty entries", func(t *testing.T) {
		rt := builder.Build(t)

		var entries = []cron.Entry{
			{Receiver: tutil.NewIDAddr(t, 1001), MethodNum: abi.MethodNum(1001)},
			{Receiver: tutil.NewIDAddr(t, 1002), MethodNum: abi.MethodNum(1002)},
			{Receiver: tutil.NewIDAddr(t, 1003), MethodNum: abi.MethodNum(1003)},
			{Receiver: tutil.NewIDAddr(t, 1004), MethodNum: abi.MethodNum(1004)},
		}
		actor.constructAndVerify(rt, entries...)

		var st cron.State
		rt.GetState(&st)
		assert.Equal(t, entries, st.Entries)

		_, msgs := cron.CheckStateInvariants(&st)
		assert.True(t, msgs.IsEmpty(), msgs.Messages())
	})

	t.Run("built-in entries target the power actor tick", func(t *testing.T) {
		entries := cron.BuiltInEntries()
		assert.Equal(t, []cron.Entry{{Receiver: builtin.StoragePowerActorAddr, MethodNum: builtin.MethodsPower.OnEpochTickEnd}}, entries)
		_, msgs := cron.CheckStateInvariants(cron.ConstructState(entries))
		assert.True(t, msgs.IsEmpty(), msgs.Messages())
	})

	t.Run("non-system caller is rejected", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetCaller(tutil.NewIDAddr(t, 1001), builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.Constructor, &cron.ConstructorParams{})
		})
	})
}

func TestEpochTick(t *testing.T) {
	actor := cronHarness{cron.Actor{}, t}

	receiver := tutil.NewIDAddr(t, 100)
	builder := mock.NewBuilder(context.Background(), receiver).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("epoch tick with empty entries", func(t *testing.T) {
		rt := builder.Build(t)

		actor.constructAndVerify(rt)
		actor.epochTickAndVerify(rt)
	})

	t.Run("epoch tick with non-empty entries continues past failures", func(t *testing.T) {
		rt := builder.Build(t)

		entry1 := cron.Entry{Receiver: tutil.NewIDAddr(t, 1001), MethodNum: abi.MethodNum(1001)}
		entry2 := cron.Entry{Receiver: tutil.NewIDAddr(t, 1002), MethodNum: abi.MethodNum(1002)}
		entry3 := cron.Entry{Receiver: tutil.NewIDAddr(t, 1003), MethodNum: abi.MethodNum(1003)}
		entry4 := cron.Entry{Receiver: tutil.NewIDAddr(t, 1004), MethodNum: abi.MethodNum(1004)}

		actor.constructAndVerify(rt, entry1, entry2, entry3, entry4)
		rt.ExpectSend(entry1.Receiver, entry1.MethodNum, nil, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(entry2.Receiver, entry2.MethodNum, nil, big.Zero(), nil, exitcode.ErrIllegalArgument)
		rt.ExpectSend(entry3.Receiver, entry3.MethodNum, nil, big.Zero(), nil, exitcode.ErrInsufficientFunds)
		rt.ExpectSend(entry4.Receiver, entry4.MethodNum, nil, big.Zero(), nil, exitcode.ErrForbidden)
		actor.epochTickAndVerify(rt)

		rt.ExpectLogsContain("cron entry t01002 method 1002 failed")
		rt.ExpectLogsContain("cron entry t01004 method 1004 failed")
	})

	t.Run("only the cron address may tick", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.CronActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.EpochTick, nil)
		})
	})
}

type cronHarness struct {
	cron.Actor
	t testing.TB
}

func (h *cronHarness) constructAndVerify(rt *mock.Runtime, entries ...cron.Entry) {
	params := cron.ConstructorParams{Entries: entries}
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &params)
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *cronHarness) epochTickAndVerify(rt *mock.Runtime) {
	rt.SetCaller(builtin.CronActorAddr, builtin.CronActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.CronActorAddr)
	ret := rt.Call(h.EpochTick, nil)
	assert.Nil(h.t, ret)
	rt.Verify()
}
