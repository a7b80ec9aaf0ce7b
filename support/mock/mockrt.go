package mock

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	goruntime "runtime"
	"runtime/debug"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/ipld"
)

// A mock runtime for unit testing of actors in isolation.
// The mock allows the test to set the runtime context directly as observable by an actor, supports
// the storage interface, and mocks out side-effect-inducing calls.
type Runtime struct {
	// Execution context
	ctx           context.Context
	epoch         abi.ChainEpoch
	receiver      addr.Address
	caller        addr.Address
	callerType    cid.Cid
	valueReceived abi.TokenAmount
	idAddresses   map[addr.Address]addr.Address
	actorCodeCIDs map[addr.Address]cid.Cid
	newActorAddr  addr.Address

	// Actor state
	state   cid.Cid
	balance abi.TokenAmount

	// VM implementation
	inCall        bool
	store         map[cid.Cid][]byte
	inTransaction bool
	// Maps (references to) loaded state objs to their expected cid.
	// Used for detecting modifications to state outside of transactions.
	stateUsedObjs map[cbor.Marshaler]cid.Cid
	hashfunc      func(data []byte) [32]byte

	// Expectations
	t                              testing.TB
	expectValidateCallerAny        bool
	expectValidateCallerAddr       []addr.Address
	expectValidateCallerType       []cid.Cid
	expectRandomness               []*expectRandomness
	expectSends                    []*expectedMessage
	expectCreateActor              *expectCreateActor
	expectDeleteActor              *addr.Address
	expectVerifySeal               *expectVerifySeal
	expectVerifyPoSt               *expectVerifyPoSt
	expectComputeUnsealedSectorCID *expectComputeUnsealedSectorCID

	logs []string
}

type expectRandomness struct {
	// Expected parameters.
	tag     crypto.DomainSeparationTag
	epoch   abi.ChainEpoch
	entropy []byte
	// Result.
	out abi.Randomness
}

type expectedMessage struct {
	// expectedMessage values
	to     addr.Address
	method abi.MethodNum
	params cbor.Marshaler
	value  abi.TokenAmount

	// returns from applying expectedMessage
	sendReturn runtime.SendReturn
	exitCode   exitcode.ExitCode
}

func (m *expectedMessage) Equal(to addr.Address, method abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount) bool {
	// avoid nil vs. zero/empty discrepancies that would disappear in serialization
	paramBuf1 := new(bytes.Buffer)
	if m.params != nil {
		m.params.MarshalCBOR(paramBuf1) // nolint: errcheck
	}
	paramBuf2 := new(bytes.Buffer)
	if params != nil {
		params.MarshalCBOR(paramBuf2) // nolint: errcheck
	}

	return m.to == to && m.method == method && m.value.Equals(value) && bytes.Equal(paramBuf1.Bytes(), paramBuf2.Bytes())
}

func (m *expectedMessage) String() string {
	return fmt.Sprintf("to: %v method: %v value: %v params: %v sendReturn: %v exitCode: %v", m.to, m.method, m.value, m.params, m.sendReturn, m.exitCode)
}

type expectCreateActor struct {
	// Expected code CID.
	codeId cid.Cid
	// Returned address.
	address addr.Address
}

type expectVerifySeal struct {
	seal   proof.SealVerifyInfo
	result error
}

type expectVerifyPoSt struct {
	post   proof.WindowPoStVerifyInfo
	result error
}

type expectComputeUnsealedSectorCID struct {
	reg       abi.RegisteredSealProof
	pieces    []abi.PieceInfo
	cid       cid.Cid
	resultErr error
}

var _ runtime.Runtime = &Runtime{}
var _ runtime.StateHandle = &Runtime{}
var _ runtime.Syscalls = &Runtime{}
var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()

///// Implementation of the runtime API /////

func (rt *Runtime) Message() runtime.Message {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) CurrEpoch() abi.ChainEpoch {
	rt.requireInCall()
	return rt.epoch
}

func (rt *Runtime) ValidateImmediateCallerAcceptAny() {
	rt.requireInCall()
	if !rt.expectValidateCallerAny {
		rt.failTest("unexpected validate-caller-any")
	}
	rt.expectValidateCallerAny = false
}

func (rt *Runtime) ValidateImmediateCallerIs(addrs ...addr.Address) {
	rt.requireInCall()
	rt.checkArgument(len(addrs) > 0, "addrs must be non-empty")
	// Check and clear expectations.
	if len(rt.expectValidateCallerAddr) == 0 {
		rt.failTest("unexpected validate caller addrs")
		return
	}
	if !reflect.DeepEqual(rt.expectValidateCallerAddr, addrs) {
		rt.failTest("unexpected validate caller addrs %v, expected %v", addrs, rt.expectValidateCallerAddr)
		return
	}
	defer func() {
		rt.expectValidateCallerAddr = nil
	}()

	// Implement method.
	for _, expected := range addrs {
		if rt.caller == expected {
			return
		}
	}
	rt.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", rt.caller, addrs)
}

func (rt *Runtime) ValidateImmediateCallerType(types ...cid.Cid) {
	rt.requireInCall()
	rt.checkArgument(len(types) > 0, "types must be non-empty")

	// Check and clear expectations.
	if len(rt.expectValidateCallerType) == 0 {
		rt.failTest("unexpected validate caller code")
	}
	if !reflect.DeepEqual(rt.expectValidateCallerType, types) {
		rt.failTest("unexpected validate caller code %v, expected %v", types, rt.expectValidateCallerType)
	}
	defer func() {
		rt.expectValidateCallerType = nil
	}()

	// Implement method.
	for _, expected := range types {
		if rt.callerType.Equals(expected) {
			return
		}
	}
	rt.Abortf(exitcode.ErrForbidden, "caller type %v forbidden, allowed: %v", rt.callerType, types)
}

func (rt *Runtime) CurrentBalance() abi.TokenAmount {
	rt.requireInCall()
	return rt.balance
}

func (rt *Runtime) ResolveAddress(address addr.Address) (ret addr.Address, ok bool) {
	rt.requireInCall()
	if address.Protocol() == addr.ID {
		return address, true
	}
	resolved, ok := rt.idAddresses[address]
	return resolved, ok
}

func (rt *Runtime) GetActorCodeCID(addr addr.Address) (ret cid.Cid, ok bool) {
	rt.requireInCall()
	ret, ok = rt.actorCodeCIDs[addr]
	return
}

func (rt *Runtime) GetRandomness(tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte) abi.Randomness {
	rt.requireInCall()
	if len(rt.expectRandomness) == 0 {
		rt.failTestNow("unexpected call to get randomness for tag %v, epoch %v", tag, epoch)
	}
	if epoch > rt.epoch {
		rt.failTestNow("attempt to get randomness from future\n"+
			"         requested epoch: %d greater than current epoch %d\n", epoch, rt.epoch)
	}
	expectation := rt.expectRandomness[0]
	if tag != expectation.tag || epoch != expectation.epoch || !bytes.Equal(entropy, expectation.entropy) {
		rt.failTest("get randomness does not match expectation.\n"+
			"Call     - tag: %d, epoch: %d, entropy: %v\n"+
			"Expected - tag: %d, epoch: %d, entropy: %v", tag, epoch, entropy, expectation.tag, expectation.epoch, expectation.entropy)
	}
	defer func() {
		rt.expectRandomness = rt.expectRandomness[1:]
	}()
	return expectation.out
}

func (rt *Runtime) State() runtime.StateHandle {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) Store() runtime.Store {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	return rt
}

func (rt *Runtime) Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount) (runtime.SendReturn, exitcode.ExitCode) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if len(rt.expectSends) == 0 {
		rt.failTestNow("unexpected send to: %v method: %v, value: %v, params: %v", toAddr, methodNum, value, params)
	}
	expectedMsg := rt.expectSends[0]

	if !expectedMsg.Equal(toAddr, methodNum, params, value) {
		toName := "unknown"
		toMeth := "unknown"
		if code, ok := rt.actorCodeCIDs[toAddr]; ok && builtin.IsBuiltinActor(code) {
			toName = builtin.ActorNameByCode(code)
			toMeth = getMethodName(code, methodNum)
		}
		rt.failTestNow("send does not match expectation.\n"+
			"Call     - to: %v (%s) method: %v (%s) value: %v params: %v\n"+
			"Expected - %v", toAddr, toName, methodNum, toMeth, value, params, expectedMsg)
	}

	if value.GreaterThan(rt.balance) {
		rt.Abortf(exitcode.SysErrInsufficientFunds, "cannot send value: %v exceeds balance: %v", value, rt.balance)
	}

	// pop the expectedMessage from the queue and modify the mockrt balance to reflect the send.
	defer func() {
		rt.expectSends = rt.expectSends[1:]
		if expectedMsg.exitCode.IsSuccess() {
			rt.balance = big.Sub(rt.balance, value)
		}
	}()
	return expectedMsg.sendReturn, expectedMsg.exitCode
}

func (rt *Runtime) NewActorAddress() addr.Address {
	rt.requireInCall()
	if rt.newActorAddr == addr.Undef {
		rt.failTestNow("unexpected call to new actor address")
	}
	defer func() { rt.newActorAddr = addr.Undef }()
	return rt.newActorAddr
}

func (rt *Runtime) CreateActor(codeId cid.Cid, address addr.Address) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if rt.expectCreateActor == nil {
		rt.failTestNow("unexpected call to create actor")
	}
	if !rt.expectCreateActor.codeId.Equals(codeId) || rt.expectCreateActor.address != address {
		rt.failTest("unexpected actor being created, expected code: %s address: %s, actual code: %s address: %s",
			rt.expectCreateActor.codeId, rt.expectCreateActor.address, codeId, address)
	}
	defer func() {
		rt.expectCreateActor = nil
	}()
}

func (rt *Runtime) DeleteActor(beneficiary addr.Address) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if rt.expectDeleteActor == nil {
		rt.failTestNow("unexpected call to delete actor with beneficiary %s", beneficiary)
	}
	if *rt.expectDeleteActor != beneficiary {
		rt.failTestNow("unexpected delete actor beneficiary, expected %s, got %s", rt.expectDeleteActor, beneficiary)
	}
	rt.expectDeleteActor = nil
}

func (rt *Runtime) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	rt.requireInCall()
	rt.t.Logf("Mock Runtime Abort ExitCode: %v Reason: %s", errExitCode, fmt.Sprintf(msg, args...))
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (rt *Runtime) Syscalls() runtime.Syscalls {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) Context() context.Context {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	return rt.ctx
}

func (rt *Runtime) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	rt.logs = append(rt.logs, fmt.Sprintf(msg, args...))
}

func (rt *Runtime) checkArgument(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.SysErrorIllegalArgument, msg, args...)
	}
}

///// Store implementation /////

func (rt *Runtime) Get(c cid.Cid, o cbor.Unmarshaler) bool {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	data, found := rt.store[c]
	if found {
		err := o.UnmarshalCBOR(bytes.NewReader(data))
		if err != nil {
			rt.Abortf(exitcode.ErrSerialization, err.Error())
		}
	}
	return found
}

func (rt *Runtime) Put(o cbor.Marshaler) cid.Cid {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	key, data, err := ipld.MarshalCBOR(o)
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, err.Error())
	}
	rt.store[key] = data
	return key
}

///// Message implementation /////

func (rt *Runtime) Caller() addr.Address {
	return rt.caller
}

func (rt *Runtime) Receiver() addr.Address {
	return rt.receiver
}

func (rt *Runtime) ValueReceived() abi.TokenAmount {
	return rt.valueReceived
}

///// State handle implementation /////

func (rt *Runtime) Create(obj cbor.Marshaler) {
	if rt.state.Defined() {
		rt.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	rt.state = rt.Store().Put(obj)
	rt.stateUsedObjs[obj] = rt.state
}

func (rt *Runtime) Readonly(st cbor.Unmarshaler) {
	found := rt.Store().Get(rt.state, st)
	if !found {
		rt.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", rt.state)
	}
	rt.stateUsedObjs[st.(cbor.Marshaler)] = rt.state
}

func (rt *Runtime) Transaction(st cbor.Er, f func()) {
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	rt.checkStateObjectsUnmodified()
	rt.Readonly(st)
	rt.inTransaction = true
	defer func() { rt.inTransaction = false }()
	f()
	rt.state = rt.Put(st)
	rt.stateUsedObjs[st] = rt.state
}

///// Syscalls implementation /////

func (rt *Runtime) VerifySignature(sig crypto.Signature, signer addr.Address, plaintext []byte) error {
	rt.failTestNow("unexpected syscall to verify signature %v, signer %s", sig, signer)
	return nil
}

func (rt *Runtime) HashBlake2b(data []byte) [32]byte {
	return rt.hashfunc(data)
}

func (rt *Runtime) ComputeUnsealedSectorCID(reg abi.RegisteredSealProof, pieces []abi.PieceInfo) (cid.Cid, error) {
	exp := rt.expectComputeUnsealedSectorCID
	if exp == nil {
		rt.failTestNow("unexpected syscall to ComputeUnsealedSectorCID %v", reg)
		return cid.Undef, nil
	}
	if exp.reg != reg {
		rt.failTest("unexpected ComputeUnsealedSectorCID proof, expected: %v, got: %v", exp.reg, reg)
	}
	if !reflect.DeepEqual(exp.pieces, pieces) {
		rt.failTest("unexpected ComputeUnsealedSectorCID pieces, expected: %v, got: %v", exp.pieces, pieces)
	}
	rt.expectComputeUnsealedSectorCID = nil
	return exp.cid, exp.resultErr
}

func (rt *Runtime) VerifySeal(seal proof.SealVerifyInfo) error {
	exp := rt.expectVerifySeal
	if exp == nil {
		rt.failTestNow("unexpected syscall to verify seal %v", seal)
		return nil
	}
	if !reflect.DeepEqual(exp.seal, seal) {
		rt.failTest("unexpected seal verification\n"+
			"        : %v\n"+
			"expected: %v",
			seal, exp.seal)
	}
	rt.expectVerifySeal = nil
	return exp.result
}

func (rt *Runtime) VerifyPoSt(vi proof.WindowPoStVerifyInfo) error {
	exp := rt.expectVerifyPoSt
	if exp == nil {
		rt.failTestNow("unexpected syscall to verify PoSt %v", vi)
		return nil
	}
	if !reflect.DeepEqual(exp.post, vi) {
		rt.failTest("unexpected PoSt verification\n"+
			"        : %v\n"+
			"expected: %v",
			vi, exp.post)
	}
	rt.expectVerifyPoSt = nil
	return exp.result
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

///// Inspection facilities /////

func (rt *Runtime) AdtStore() adt.Store {
	return adt.AsStore(rt)
}

func (rt *Runtime) GetReceiver() addr.Address {
	return rt.receiver
}

func (rt *Runtime) StateRoot() cid.Cid {
	return rt.state
}

func (rt *Runtime) GetState(o cbor.Unmarshaler) {
	data, found := rt.store[rt.state]
	if !found {
		rt.failTestNow("can't find state at root %v", rt.state) // something internal is messed up
	}
	err := o.UnmarshalCBOR(bytes.NewReader(data))
	if err != nil {
		rt.failTestNow("error loading state: %v", err)
	}
}

func (rt *Runtime) GetBalance() abi.TokenAmount {
	return rt.balance
}

func (rt *Runtime) GetEpoch() abi.ChainEpoch {
	return rt.epoch
}

///// Mocking facilities /////

func (rt *Runtime) SetCaller(address addr.Address, actorType cid.Cid) {
	rt.caller = address
	rt.callerType = actorType
	rt.actorCodeCIDs[address] = actorType
}

func (rt *Runtime) SetAddressActorType(address addr.Address, actorType cid.Cid) {
	rt.actorCodeCIDs[address] = actorType
}

func (rt *Runtime) SetBalance(amt abi.TokenAmount) {
	rt.balance = amt
}

func (rt *Runtime) SetReceived(amt abi.TokenAmount) {
	rt.valueReceived = amt
}

func (rt *Runtime) SetEpoch(epoch abi.ChainEpoch) {
	rt.epoch = epoch
}

func (rt *Runtime) ReplaceState(o cbor.Marshaler) {
	rt.state = rt.Put(o)
}

func (rt *Runtime) AddIDAddress(src addr.Address, target addr.Address) {
	rt.require(target.Protocol() == addr.ID, "target must use ID address protocol")
	rt.idAddresses[src] = target
}

func (rt *Runtime) SetNewActorAddress(actAddr addr.Address) {
	rt.require(actAddr.Protocol() == addr.Actor, "new actor address must be protocol: Actor, got protocol: %v", actAddr.Protocol())
	rt.newActorAddr = actAddr
}

func (rt *Runtime) ExpectValidateCallerAny() {
	rt.expectValidateCallerAny = true
}

func (rt *Runtime) ExpectValidateCallerAddr(addrs ...addr.Address) {
	rt.require(len(addrs) > 0, "addrs must be non-empty")
	rt.expectValidateCallerAddr = addrs[:]
}

func (rt *Runtime) ExpectValidateCallerType(types ...cid.Cid) {
	rt.require(len(types) > 0, "types must be non-empty")
	rt.expectValidateCallerType = types[:]
}

func (rt *Runtime) ExpectGetRandomness(tag crypto.DomainSeparationTag, epoch abi.ChainEpoch, entropy []byte, out abi.Randomness) {
	rt.expectRandomness = append(rt.expectRandomness, &expectRandomness{
		tag:     tag,
		epoch:   epoch,
		entropy: entropy,
		out:     out,
	})
}

func (rt *Runtime) ExpectSend(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount, ret cbor.Marshaler, exitCode exitcode.ExitCode) {
	// Adapt nil to Empty as convenience for the caller (otherwise we would require non-nil here).
	if ret == nil {
		ret = abi.Empty
	}
	rt.expectSends = append(rt.expectSends, &expectedMessage{
		to:         toAddr,
		method:     methodNum,
		params:     params,
		value:      value,
		sendReturn: ReturnWrapper{ret},
		exitCode:   exitCode,
	})
}

func (rt *Runtime) ExpectCreateActor(codeId cid.Cid, address addr.Address) {
	rt.expectCreateActor = &expectCreateActor{
		codeId:  codeId,
		address: address,
	}
}

func (rt *Runtime) ExpectDeleteActor(beneficiary addr.Address) {
	rt.expectDeleteActor = &beneficiary
}

func (rt *Runtime) ExpectVerifySeal(seal proof.SealVerifyInfo, result error) {
	rt.expectVerifySeal = &expectVerifySeal{
		seal:   seal,
		result: result,
	}
}

func (rt *Runtime) ExpectVerifyPoSt(post proof.WindowPoStVerifyInfo, result error) {
	rt.expectVerifyPoSt = &expectVerifyPoSt{
		post:   post,
		result: result,
	}
}

func (rt *Runtime) ExpectComputeUnsealedSectorCID(reg abi.RegisteredSealProof, pieces []abi.PieceInfo, cid cid.Cid, err error) {
	rt.expectComputeUnsealedSectorCID = &expectComputeUnsealedSectorCID{
		reg, pieces, cid, err,
	}
}

func (rt *Runtime) ExpectLogsContain(substr string) {
	for _, msg := range rt.logs {
		if strings.Contains(msg, substr) {
			return
		}
	}
	rt.failTest("logs contain %d message(s) and do not contain \"%s\"", len(rt.logs), substr)
}

func (rt *Runtime) ClearLogs() {
	rt.logs = []string{}
}

// Verifies that expected calls were received, and resets all expectations.
func (rt *Runtime) Verify() {
	rt.t.Helper()
	if rt.expectValidateCallerAny {
		rt.failTest("expected ValidateCallerAny, not received")
	}
	if len(rt.expectValidateCallerAddr) > 0 {
		rt.failTest("expected ValidateCallerAddr %v, not received", rt.expectValidateCallerAddr)
	}
	if len(rt.expectValidateCallerType) > 0 {
		rt.failTest("expected ValidateCallerType %v, not received", rt.expectValidateCallerType)
	}
	if len(rt.expectRandomness) > 0 {
		rt.failTest("expected randomness %v, not received", rt.expectRandomness)
	}
	if len(rt.expectSends) > 0 {
		rt.failTest("expected all message to be send, unsent messages %v", rt.expectSends)
	}
	if rt.expectCreateActor != nil {
		rt.failTest("expected actor to be created, uncreated actor code: %v, address %v",
			rt.expectCreateActor.codeId, rt.expectCreateActor.address)
	}
	if rt.expectDeleteActor != nil {
		rt.failTest("expected actor to be deleted with beneficiary %v", *rt.expectDeleteActor)
	}
	if rt.expectVerifySeal != nil {
		rt.failTest("expected seal verification %v, not received", rt.expectVerifySeal.seal)
	}
	if rt.expectVerifyPoSt != nil {
		rt.failTest("expected PoSt verification %v, not received", rt.expectVerifyPoSt.post)
	}
	if rt.expectComputeUnsealedSectorCID != nil {
		rt.failTest("expected ComputeUnsealedSectorCID %v, not received", rt.expectComputeUnsealedSectorCID.reg)
	}

	rt.Reset()
}

// Resets expectations
func (rt *Runtime) Reset() {
	rt.expectValidateCallerAny = false
	rt.expectValidateCallerAddr = nil
	rt.expectValidateCallerType = nil
	rt.expectRandomness = nil
	rt.expectSends = nil
	rt.expectCreateActor = nil
	rt.expectDeleteActor = nil
	rt.expectVerifySeal = nil
	rt.expectVerifyPoSt = nil
	rt.expectComputeUnsealedSectorCID = nil
}

// Calls f() expecting it to invoke Runtime.Abortf() with a specified exit code.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	rt.ExpectAbortContainsMessage(expected, "", f)
}

// Calls f() expecting it to invoke Runtime.Abortf() with a specified exit code and message.
func (rt *Runtime) ExpectAbortContainsMessage(expected exitcode.ExitCode, substr string, f func()) {
	rt.t.Helper()
	prevState := rt.state
	prevBalance := rt.balance

	defer func() {
		rt.t.Helper()
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
		}
		if substr != "" && !strings.Contains(a.msg, substr) {
			rt.failTest("abort expected message\n'%s'\nto contain\n'%s'\n", a.msg, substr)
		}
		// Roll back state and value transfers.
		rt.state = prevState
		rt.balance = prevBalance
		rt.inCall = false
		rt.inTransaction = false
	}()
	f()
}

func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	rt.verifyExportedMethodType(meth)

	// There's no panic recovery here. If an abort is expected, this call will be inside an ExpectAbort block.
	// If not expected, the panic will escape and cause the test to fail.

	rt.inCall = true
	rt.stateUsedObjs = map[cbor.Marshaler]cid.Cid{}
	defer func() {
		rt.inCall = false
		rt.stateUsedObjs = nil
	}()
	var arg reflect.Value
	if params != nil {
		arg = reflect.ValueOf(params)
	} else {
		arg = reflect.ValueOf(abi.Empty)
	}
	ret := meth.Call([]reflect.Value{reflect.ValueOf(rt), arg})
	rt.checkStateObjectsUnmodified()
	return ret[0].Interface()
}

// Checks that state objects weren't modified outside of transaction.
func (rt *Runtime) checkStateObjectsUnmodified() {
	for obj, expectedKey := range rt.stateUsedObjs { // nolint:nomaprange
		// Recompute the CID of the object and check it's the same as was recorded
		// when the object was loaded.
		finalKey, _, err := ipld.MarshalCBOR(obj)
		if err != nil {
			rt.Abortf(exitcode.SysErrorIllegalActor, "error marshalling state object for validation: %v", err)
		}
		if finalKey != expectedKey {
			rt.Abortf(exitcode.SysErrorIllegalActor, "State mutated outside of transaction scope")
		}
	}
}

func (rt *Runtime) verifyExportedMethodType(meth reflect.Value) {
	t := meth.Type()
	rt.require(t.Kind() == reflect.Func, "%v is not a function", meth)
	rt.require(t.NumIn() == 2, "exported method %v must have two parameters, got %v", meth, t.NumIn())
	rt.require(t.In(0) == typeOfRuntimeInterface, "exported method first parameter must be runtime, got %v", t.In(0))
	rt.require(t.In(1).Kind() == reflect.Ptr, "exported method second parameter must be pointer to params, got %v", t.In(1))
	rt.require(t.In(1).Implements(typeOfCborUnmarshaler), "exported method second parameter must be CBOR-unmarshalable params, got %v", t.In(1))
	rt.require(t.NumOut() == 1, "exported method must return a single value")
	rt.require(t.Out(0).Implements(typeOfCborMarshaler), "exported method must return CBOR-marshalable value")
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.Fail()
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.FailNow()
}

type ReturnWrapper struct {
	V cbor.Marshaler
}

func (r ReturnWrapper) Into(o cbor.Unmarshaler) error {
	b := bytes.Buffer{}
	err := r.V.MarshalCBOR(&b)
	if err != nil {
		return err
	}
	err = o.UnmarshalCBOR(&b)
	return err
}

func getMethodName(code cid.Cid, num abi.MethodNum) string {
	actor, ok := exported.DefaultRegistry().Lookup(code)
	if !ok {
		return "<unknown actor>"
	}
	exports := actor.Exports()
	if len(exports) <= int(num) || exports[num] == nil {
		return "<invalid>"
	}
	name := goruntime.FuncForPC(reflect.ValueOf(exports[num]).Pointer()).Name()
	name = strings.TrimSuffix(name, "-fm")
	return name[strings.LastIndexByte(name, '.')+1:]
}
