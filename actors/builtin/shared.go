package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/filecoin-project/miner-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// Default bitwidths for the HAMTs and AMTs in actor state.
const (
	DefaultHamtBitwidth = 5
	DefaultAmtBitwidth  = 3
)

// Aborts with an ErrIllegalState if predicate is not true.
func RequireState(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalState, msg, args...)
	}
}

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, code exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// Aborts with ErrInsufficientFunds if the value received does not cover required.
// Any excess over required is returned to the caller.
func ConfirmPaymentAndRefundChange(rt runtime.Runtime, required abi.TokenAmount) {
	received := rt.Message().ValueReceived()
	if received.LessThan(required) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "insufficient funds received: %v, required %v", received, required)
	}

	if received.GreaterThan(required) {
		_, code := rt.Send(rt.Message().Caller(), MethodSend, nil, big.Sub(received, required))
		RequireSuccess(rt, code, "failed to transfer refund")
	}
}

func RequestMinerControlAddrs(rt runtime.Runtime, minerAddr addr.Address) (ownerAddr addr.Address, workerAddr addr.Address) {
	ret, code := rt.Send(minerAddr, MethodsMiner.ControlAddresses, nil, abi.NewTokenAmount(0))
	RequireSuccess(rt, code, "failed fetching control addresses")
	var addrs MinerAddrs
	err := ret.Into(&addrs)
	RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to decode control addresses")

	return addrs.Owner, addrs.Worker
}

// This type duplicates the Miner.ControlAddresses return type, to work around a circular dependency between actors.
type MinerAddrs struct {
	Owner  addr.Address
	Worker addr.Address
}
