package vm

import (
	"bytes"
	"context"
	"encoding/binary"
	"reflect"
	"runtime/debug"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/states"
	"github.com/filecoin-project/miner-actors/support/ipld"
)

// Context for an individual message invocation, including inter-actor sends.
type invocationContext struct {
	rt               *VM
	topLevel         *topLevelContext
	msg              InternalMessage // The message being processed
	fromActor        *states.Actor   // The immediate calling actor
	toActor          *states.Actor   // The actor to which message is addressed
	emptyObject      cid.Cid
	allowSideEffects bool
	callerValidated  bool
	// Maps (references to) loaded state objs to their expected cid.
	// Used for detecting modifications to state outside of transactions.
	stateUsedObjs map[cbor.Marshaler]cid.Cid
	stats         *CallStats
}

// Context for a top-level invocation sequence
type topLevelContext struct {
	originatorStableAddress address.Address // Stable (public key) address of the top-level message sender.
	originatorCallSeq       uint64          // Call sequence number of the top-level message.
	newActorAddressCount    uint64          // Count of calls to NewActorAddress (mutable).
	statsSource             StatsSource     // optional source of external statistics that can be used to profile calls
}

func newInvocationContext(rt *VM, topLevel *topLevelContext, msg InternalMessage, fromActor *states.Actor, emptyObject cid.Cid) invocationContext {
	// The toActor is loaded during invoke().
	return invocationContext{
		rt:               rt,
		topLevel:         topLevel,
		msg:              msg,
		fromActor:        fromActor,
		toActor:          nil,
		emptyObject:      emptyObject,
		allowSideEffects: true,
		callerValidated:  false,
		stateUsedObjs:    map[cbor.Marshaler]cid.Cid{},
		stats:            NewCallStats(topLevel.statsSource),
	}
}

var _ runtime.StateHandle = (*invocationContext)(nil)

// Loads the receiver's state into obj. The actor is re-read on every load since a nested call may
// have replaced its head.
func (ic *invocationContext) loadState(obj cbor.Unmarshaler) cid.Cid {
	head := ic.loadActor().Head
	if !head.Defined() {
		ic.Abortf(exitcode.SysErrorIllegalActor, "actor %v has no state, must construct first", ic.msg.to)
	}
	if err := ic.rt.store.Get(ic.rt.ctx, head, obj); err != nil {
		panic(errors.Wrapf(err, "failed to load state %s of actor %v", head, ic.msg.to))
	}
	return head
}

// Writes obj as the receiver's new state and returns its CID.
func (ic *invocationContext) putState(obj cbor.Marshaler) cid.Cid {
	actr := ic.loadActor()
	head, err := ic.rt.store.Put(ic.rt.ctx, obj)
	if err != nil {
		ic.Abortf(exitcode.ErrIllegalState, "failed to store state of actor %v: %v", ic.msg.to, err)
	}
	actr.Head = head
	if err := ic.rt.setActor(ic.msg.to, actr); err != nil {
		panic(errors.Wrapf(err, "failed to update actor %v", ic.msg.to))
	}
	return head
}

func (ic *invocationContext) loadActor() *states.Actor {
	actr, found, err := ic.rt.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(errors.Errorf("no actor at %v", ic.msg.to))
	}
	return actr
}

// Create implements runtime.StateHandle.
func (ic *invocationContext) Create(obj cbor.Marshaler) {
	if head := ic.loadActor().Head; head.Defined() && !head.Equals(ic.emptyObject) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "state of actor %v already constructed", ic.msg.to)
	}
	ic.stateUsedObjs[obj] = ic.putState(obj)
}

// Readonly implements runtime.StateHandle.
func (ic *invocationContext) Readonly(obj cbor.Unmarshaler) {
	ic.stateUsedObjs[obj.(cbor.Marshaler)] = ic.loadState(obj)
}

// Transaction implements runtime.StateHandle. The function may mutate obj but may not send,
// nor open another transaction.
func (ic *invocationContext) Transaction(obj cbor.Er, f func()) {
	if obj == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "nil state object for transaction")
	}
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "nested state transaction")
	}
	ic.checkStateObjectsUnmodified()
	ic.loadState(obj)

	ic.allowSideEffects = false
	f()
	ic.allowSideEffects = true

	ic.stateUsedObjs[obj] = ic.putState(obj)
}

/////////////////////////////////////////////
//          Runtime methods
/////////////////////////////////////////////

var _ runtime.Runtime = (*invocationContext)(nil)

func (ic *invocationContext) Message() runtime.Message {
	return ic.msg
}

func (ic *invocationContext) State() runtime.StateHandle {
	return ic
}

func (ic *invocationContext) Store() runtime.Store {
	return &storeWrapper{rt: ic.rt}
}

func (ic *invocationContext) CurrEpoch() abi.ChainEpoch {
	return ic.rt.currentEpoch
}

func (ic *invocationContext) CurrentBalance() abi.TokenAmount {
	return ic.loadActor().Balance
}

func (ic *invocationContext) GetActorCodeCID(a address.Address) (cid.Cid, bool) {
	entry, found, err := ic.rt.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return entry.Code, true
}

// Randomness is a hash of its inputs. Epochs after the current one have no randomness yet.
func (ic *invocationContext) GetRandomness(tag crypto.DomainSeparationTag, randEpoch abi.ChainEpoch, entropy []byte) abi.Randomness {
	if randEpoch > ic.rt.currentEpoch {
		ic.Abortf(exitcode.ErrIllegalArgument, "randomness requested for future epoch %d at %d", randEpoch, ic.rt.currentEpoch)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, int64(tag)); err != nil {
		panic(err)
	}
	if err := binary.Write(&buf, binary.BigEndian, int64(randEpoch)); err != nil {
		panic(err)
	}
	buf.Write(entropy)
	digest := ic.Syscalls().HashBlake2b(buf.Bytes())
	return digest[:]
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...address.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, addr := range addrs {
		if ic.msg.from == addr {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, t := range types {
		if ic.fromActor != nil && t.Equals(ic.fromActor.Code) {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller %v type forbidden, allowed: %v", ic.msg.from, types)
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	ic.rt.Abortf(errExitCode, msg, args...)
}

func (ic *invocationContext) assertf(condition bool, msg string, args ...interface{}) {
	if !condition {
		panic(errors.Errorf(msg, args...))
	}
}

func (ic *invocationContext) ResolveAddress(address address.Address) (address.Address, bool) {
	return ic.rt.NormalizeAddress(address)
}

func (ic *invocationContext) NewActorAddress() address.Address {
	var buf bytes.Buffer

	b1, err := ic.topLevel.originatorStableAddress.Marshal()
	if err != nil {
		panic(err)
	}
	buf.Write(b1)

	if err := binary.Write(&buf, binary.BigEndian, ic.topLevel.originatorCallSeq); err != nil {
		panic(err)
	}
	if err := binary.Write(&buf, binary.BigEndian, ic.topLevel.newActorAddressCount); err != nil {
		panic(err)
	}
	ic.topLevel.newActorAddressCount++

	actorAddress, err := address.NewActorAddress(buf.Bytes())
	if err != nil {
		panic(err)
	}
	return actorAddress
}

// Send implements runtime.Runtime. The callee runs in its own invocation context, and its call
// statistics are attributed to the callee's method.
func (ic *invocationContext) Send(toAddr address.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount) (runtime.SendReturn, exitcode.ExitCode) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "send from %v inside a state transaction", ic.msg.to)
	}
	sender := ic.loadActor()

	msg := InternalMessage{
		from:   ic.msg.to,
		to:     toAddr,
		value:  value,
		method: methodNum,
	}
	// Keep a nil params interface nil, rather than a typed nil.
	if params != nil {
		msg.params = params
	}

	callee := newInvocationContext(ic.rt, ic.topLevel, msg, sender, ic.emptyObject)
	ret, code := callee.invoke()
	if callee.toActor != nil {
		ic.stats.MergeSubStat(callee.toActor.Code, msg.method, callee.stats)
	}
	return ret, code
}

// CreateActor implements runtime.Runtime. Only the init actor may create actors.
func (ic *invocationContext) CreateActor(codeID cid.Cid, addr address.Address) {
	if ic.msg.to != builtin.InitActorAddr {
		ic.Abortf(exitcode.SysErrForbidden, "actor %v is not permitted to create actors", ic.msg.to)
	}
	ic.createActor(codeID, addr)
}

// Installs an actor of the given code at an unused ID address, with empty state and no balance.
func (ic *invocationContext) createActor(codeID cid.Cid, addr address.Address) {
	name := builtin.ActorNameByCode(codeID)
	if _, ok := ic.rt.registry.Lookup(codeID); !ok {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "no built-in actor with code %v", codeID)
	}
	if builtin.IsSingletonActor(codeID) {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "cannot create another %s", name)
	}
	if _, found, err := ic.rt.GetActor(addr); err != nil {
		panic(err)
	} else if found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "an actor already exists at %v", addr)
	}

	ic.rt.Log(rt.DEBUG, "creating %s at %v", name, addr)
	if err := ic.rt.setActor(addr, &states.Actor{
		Head:    ic.emptyObject,
		Code:    codeID,
		Balance: big.Zero(),
	}); err != nil {
		panic(err)
	}
}

// DeleteActor implements runtime.Runtime.
func (ic *invocationContext) DeleteActor(beneficiary address.Address) {
	receiver := ic.msg.to
	receiverActor, found, err := ic.rt.GetActor(receiver)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrorIllegalActor, "delete non-existent actor %v", receiver)
	}

	beneficiaryID, found := ic.rt.NormalizeAddress(beneficiary)
	if !found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "beneficiary %v not found", beneficiary)
	}
	if beneficiaryID == receiver {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "beneficiary must not be the deleted actor")
	}

	// Transfer any remaining balance to the beneficiary.
	if receiverActor.Balance.GreaterThan(big.Zero()) {
		ic.rt.transfer(receiver, beneficiaryID, receiverActor.Balance)
	}

	if err := ic.rt.deleteActor(receiver); err != nil {
		panic(err)
	}
}

func (ic *invocationContext) Context() context.Context {
	return ic.rt.ctx
}

func (ic *invocationContext) Syscalls() runtime.Syscalls {
	return ic.rt.syscalls
}

func (ic *invocationContext) Log(level rt.LogLevel, msg string, args ...interface{}) {
	ic.rt.Log(level, msg, args...)
}

type returnWrapper struct {
	inner cbor.Marshaler
}

func (r returnWrapper) Into(o cbor.Unmarshaler) error {
	if r.inner == nil {
		return errors.New("nil return value, expected abi.Empty")
	}
	b := bytes.Buffer{}
	if err := r.inner.MarshalCBOR(&b); err != nil {
		return err
	}
	return o.UnmarshalCBOR(&b)
}

/////////////////////////////////////////////
//          storeWrapper
/////////////////////////////////////////////

type storeWrapper struct {
	rt *VM
}

func (s storeWrapper) Get(c cid.Cid, o cbor.Unmarshaler) bool {
	err := s.rt.store.Get(s.rt.ctx, c, o)
	// assume all errors are not found errors (bad assumption, but ok for testing)
	return err == nil
}

func (s storeWrapper) Put(x cbor.Marshaler) cid.Cid {
	c, err := s.rt.store.Put(s.rt.ctx, x)
	if err != nil {
		s.rt.Abortf(exitcode.ErrIllegalState, "could not put object in store")
	}
	return c
}

/////////////////////////////////////////////
//          invocation
/////////////////////////////////////////////

// Runs the message to completion. An abort from this or any nested invocation is trapped here and
// becomes the returned exit code, after every state change made since the invocation began is
// rolled back. Other panics propagate.
func (ic *invocationContext) invoke() (ret returnWrapper, code exitcode.ExitCode) {
	priorRoot, err := ic.rt.checkpoint()
	if err != nil {
		panic(err)
	}
	ic.rt.startInvocation(&ic.msg)

	defer func() {
		ic.stats.Capture()
		r := recover()
		if r == nil {
			return
		}
		if err := ic.rt.rollback(priorRoot); err != nil {
			panic(err)
		}
		a, ok := r.(abort)
		if !ok {
			debug.PrintStack()
			panic(r)
		}
		ic.rt.Log(rt.WARN, "%v: %v -> %v method %d value %v", a, ic.msg.from, ic.msg.to, ic.msg.method, ic.msg.value)
		ic.rt.endInvocation(a.code, abi.Empty)
		ret, code = returnWrapper{abi.Empty}, a.code
	}()

	if ic.msg.from.Protocol() != address.ID {
		panic(errors.Errorf("sender %v is not an ID address", ic.msg.from))
	}
	ic.toActor, ic.msg.to = ic.resolveTarget(ic.msg.to)
	ic.transferValue()

	if ic.msg.method == builtin.MethodSend {
		ic.rt.endInvocation(exitcode.Ok, abi.Empty)
		return returnWrapper{abi.Empty}, exitcode.Ok
	}

	out, err := ic.dispatch(ic.rt.getActorImpl(ic.toActor.Code), ic.msg.method, ic.msg.params)
	if err != nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "could not dispatch: %v", err)
	}
	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "method %d of %v returned without validating its caller",
			ic.msg.method, builtin.ActorNameByCode(ic.toActor.Code))
	}

	var result cbor.Marshaler = abi.Empty
	if out != nil {
		var ok bool
		if result, ok = out.(cbor.Marshaler); !ok {
			ic.Abortf(exitcode.SysErrorIllegalActor, "method %d returned %T, which is not CBOR marshalable", ic.msg.method, out)
		}
	}
	ic.checkStateObjectsUnmodified()

	ic.rt.endInvocation(exitcode.Ok, result)
	return returnWrapper{inner: result}, exitcode.Ok
}

// Moves the message value from sender to receiver.
func (ic *invocationContext) transferValue() {
	value := ic.msg.value
	if value.NilOrZero() {
		return
	}
	if value.LessThan(big.Zero()) {
		ic.Abortf(exitcode.SysErrForbidden, "negative value %v from %v to %v", value, ic.msg.from, ic.msg.to)
	}
	if ic.fromActor.Balance.LessThan(value) {
		ic.Abortf(exitcode.SysErrInsufficientFunds, "sender %v balance %v cannot cover %v to %v",
			ic.msg.from, ic.fromActor.Balance, value, ic.msg.to)
	}
	ic.toActor, ic.fromActor = ic.rt.transfer(ic.msg.from, ic.msg.to, value)
}

func (ic *invocationContext) dispatch(actor exported.BuiltinActor, method abi.MethodNum, arg interface{}) (interface{}, error) {
	exports := actor.Exports()
	if uint64(method) >= uint64(len(exports)) || exports[method] == nil {
		return nil, errors.Errorf("method %d undefined for %s", method, builtin.ActorNameByCode(actor.Code()))
	}

	ventry := reflect.ValueOf(exports[method])
	param, err := methodArgument(ventry.Type().In(1), arg)
	if err != nil {
		return nil, errors.Wrapf(err, "method %d of %s", method, builtin.ActorNameByCode(actor.Code()))
	}
	// The invocation context is passed as the actor's runtime.
	args := []reflect.Value{reflect.ValueOf(ic), param}

	out := ventry.Call(args)

	// Only single objects may be returned.
	if len(out) > 1 {
		return nil, errors.Errorf("method %d of %s returned more than one value", method, builtin.ActorNameByCode(actor.Code()))
	}

	// method returns unit
	if len(out) == 0 || (out[0].Kind() != reflect.Struct && out[0].IsNil()) {
		return nil, nil
	}

	return out[0].Interface(), nil
}

// Loads the target actor, returning it with its ID address. A key address with no actor yet gets
// a new account actor. Any other unknown address aborts.
func (ic *invocationContext) resolveTarget(target address.Address) (*states.Actor, address.Address) {
	idAddr, found := ic.rt.NormalizeAddress(target)
	if !found {
		if target.Protocol() != address.SECP256K1 && target.Protocol() != address.BLS {
			ic.Abortf(exitcode.SysErrInvalidReceiver, "no actor at %v and no key to create an account for", target)
		}
		idAddr = ic.createImplicitAccount(target)
	}

	targetActor, found, err := ic.rt.GetActor(idAddr)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "address %v maps to %v which has no actor", target, idAddr)
	}
	return targetActor, idAddr
}

// Assigns an ID to the key address in the init actor's table and constructs an account actor there.
func (ic *invocationContext) createImplicitAccount(key address.Address) address.Address {
	initActor, found, err := ic.rt.GetActor(builtin.InitActorAddr)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrSenderInvalid, "init actor not found")
	}
	var initState init_.State
	if err := ic.rt.store.Get(ic.rt.ctx, initActor.Head, &initState); err != nil {
		panic(err)
	}
	idAddr, err := initState.MapAddressToNewID(ic.rt.store, key)
	if err != nil {
		panic(err)
	}
	if initActor.Head, err = ic.rt.store.Put(ic.rt.ctx, &initState); err != nil {
		panic(err)
	}
	if err := ic.rt.setActor(builtin.InitActorAddr, initActor); err != nil {
		panic(err)
	}

	ic.createActor(builtin.AccountActorCodeID, idAddr)

	// The system constructs the account with its key address.
	ctorMsg := InternalMessage{
		from:   builtin.SystemActorAddr,
		to:     idAddr,
		value:  big.Zero(),
		method: builtin.MethodsAccount.Constructor,
		params: &key,
	}
	ctorCtx := newInvocationContext(ic.rt, ic.topLevel, ctorMsg, nil, ic.emptyObject)
	_, code := ctorCtx.invoke()
	ic.stats.MergeSubStat(builtin.AccountActorCodeID, builtin.MethodsAccount.Constructor, ctorCtx.stats)
	if code.IsError() {
		ic.Abortf(code, "failed to construct account for %v", key)
	}
	return idAddr
}

// Checks that state objects weren't modified outside of transaction.
func (ic *invocationContext) checkStateObjectsUnmodified() {
	for obj, expectedKey := range ic.stateUsedObjs { // nolint:nomaprange
		// Recompute the CID of the object and check it's the same as was recorded
		// when the object was loaded.
		finalKey, _, err := ipld.MarshalCBOR(obj)
		if err != nil {
			ic.Abortf(exitcode.SysErrorIllegalActor, "error marshalling state object for validation: %v", err)
		}
		if finalKey != expectedKey {
			ic.Abortf(exitcode.SysErrorIllegalActor, "State mutated outside of transaction scope")
		}
	}
}

// Builds the value passed as a method's parameter of type t. Messages carry either the typed
// parameter itself or its CBOR encoding, and nil selects the zero value.
func methodArgument(t reflect.Type, arg interface{}) (reflect.Value, error) {
	var raw []byte
	switch a := arg.(type) {
	case nil:
		return reflect.New(t).Elem(), nil
	case []byte:
		raw = a
	case runtime.CBORBytes:
		raw = a
	default:
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(t) {
			return reflect.Value{}, errors.Errorf("expected parameter %v, got %T", t, arg)
		}
		return v, nil
	}
	obj, err := decodeBytes(t, raw)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(obj), nil
}

func decodeBytes(t reflect.Type, argBytes []byte) (interface{}, error) {
	if t.Kind() != reflect.Ptr {
		return nil, errors.New("method argument cannot be decoded")
	}
	auxv := reflect.New(t.Elem())
	unmarsh, ok := auxv.Interface().(cbor.Unmarshaler)
	if !ok {
		return nil, errors.New("method argument cannot be decoded")
	}
	// Empty bytes decode to the zero value.
	if len(argBytes) == 0 {
		return unmarsh, nil
	}
	if err := unmarsh.UnmarshalCBOR(bytes.NewBuffer(argBytes)); err != nil {
		return nil, err
	}
	return unmarsh, nil
}
