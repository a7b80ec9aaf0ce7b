package vm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/runtime"
)

// ApplyOk applies a message and requires it to succeed, returning its result.
func ApplyOk(t testing.TB, v *VM, from, to address.Address, value abi.TokenAmount, method abi.MethodNum, params interface{}) cbor.Marshaler {
	ret, code := v.ApplyMessage(from, to, value, method, params)
	require.Equal(t, exitcode.Ok, code, "message to %v method %d failed", to, method)
	return ret
}

// ApplyCode applies a message and requires the given exit code.
func ApplyCode(t testing.TB, v *VM, from, to address.Address, value abi.TokenAmount, method abi.MethodNum, params interface{}, expected exitcode.ExitCode) cbor.Marshaler {
	ret, code := v.ApplyMessage(from, to, value, method, params)
	require.Equal(t, expected, code, "message to %v method %d", to, method)
	return ret
}

// CronTick runs the cron actor's epoch tick at the VM's current epoch.
func CronTick(t testing.TB, v *VM) {
	ApplyOk(t, v, builtin.CronActorAddr, builtin.CronActorAddr, big.Zero(), builtin.MethodsCron.EpochTick, nil)
}

// AdvanceTillEpoch returns a VM at the target epoch, ticking cron at every epoch in between,
// the target included.
func AdvanceTillEpoch(t testing.TB, v *VM, target abi.ChainEpoch) *VM {
	for v.GetEpoch() < target {
		next, err := v.WithEpoch(v.GetEpoch() + 1)
		require.NoError(t, err)
		v = next
		CronTick(t, v)
	}
	return v
}

//
// Invocation expectations
//

func ExpectObject(v cbor.Marshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val cbor.Marshaler
}

func ExpectAttoFil(amount big.Int) *big.Int                    { return &amount }
func ExpectAddress(addr address.Address) *address.Address      { return &addr }
func ExpectBytes(b []byte) *objectExpectation                  { return ExpectObject(runtime.CBORBytes(b)) }
func ExpectExitCode(code exitcode.ExitCode) *exitcode.ExitCode { return &code }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj interface{}) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	paramBuf1 := new(bytes.Buffer)
	oe.val.MarshalCBOR(paramBuf1) // nolint: errcheck
	marshaller, ok := obj.(cbor.Marshaler)
	if !ok {
		return false
	}
	paramBuf2 := new(bytes.Buffer)
	if marshaller != nil {
		marshaller.MarshalCBOR(paramBuf2) // nolint: errcheck
	}
	return bytes.Equal(paramBuf1.Bytes(), paramBuf2.Bytes())
}

type ExpectInvocation struct {
	To       address.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *address.Address
	Value          *abi.TokenAmount
	Params         *objectExpectation
	Ret            *objectExpectation
	SubInvocations []ExpectInvocation
}

func (ei ExpectInvocation) Matches(t testing.TB, invocations *Invocation) {
	ei.matches(t, "", invocations)
}

func (ei ExpectInvocation) matches(t testing.TB, breadcrumb string, invocation *Invocation) {
	identifier := fmt.Sprintf("%s[%s:%d]", breadcrumb, invocation.Msg.to, invocation.Msg.method)

	// mismatch of to or method probably indicates skipped message or messages out of order. halt.
	require.Equal(t, ei.To, invocation.Msg.to, "%s unexpected `to` address", identifier)
	require.Equal(t, ei.Method, invocation.Msg.method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.Msg.from, "%s unexpected from address", identifier)
	}
	if ei.Value != nil {
		assert.True(t, ei.Value.Equals(invocation.Msg.value), "%s unexpected value %v", identifier, invocation.Msg.value)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Msg.params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Msg.params)
	}
	if ei.SubInvocations != nil {
		for i, invk := range invocation.SubInvocations {
			subidentifier := fmt.Sprintf("%s%d:", identifier, i)
			require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subidentifier, invk.Msg.to, invk.Msg.method)
			ei.SubInvocations[i].matches(t, subidentifier, invk)
		}
		missingInvocations := len(ei.SubInvocations) - len(invocation.SubInvocations)
		if missingInvocations > 0 {
			missingIndex := len(invocation.SubInvocations)
			missingExpect := ei.SubInvocations[missingIndex]
			require.Failf(t, "missing invocation", "%s%d: expected invocation [%s:%d]", identifier, missingIndex, missingExpect.To, missingExpect.Method)
		}
	}

	// expect results
	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode", identifier)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret, invocation.Ret)
	}
}

func ParamsForInvocation(t testing.TB, vm *VM, idxs ...int) interface{} {
	invocations := vm.Invocations()
	var invocation *Invocation
	for _, idx := range idxs {
		require.Greater(t, len(invocations), idx)
		invocation = invocations[idx]
		invocations = invocation.SubInvocations
	}
	require.NotNil(t, invocation)
	return invocation.Msg.params
}
