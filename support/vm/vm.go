package vm

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/states"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

var log = logging.Logger("vm")

// VM is a simplified message execution framework for the purposes of testing inter-actor communication.
// The VM maintains actor state and can be used to simulate message validation for a single block or tipset.
// The VM does not track gas charges, provide working proofs, validate message nonces and many other things
// that a compliant VM needs to do.
type VM struct {
	ctx   context.Context
	store adt.Store

	currentEpoch abi.ChainEpoch

	registry  *exported.Registry
	syscalls  runtime.Syscalls
	stateRoot cid.Cid      // The last committed root.
	tree      *states.Tree // The current (not necessarily committed) tree.

	emptyObject  cid.Cid
	callSequence uint64

	logs            []string
	invocationStack []*Invocation
	invocations     []*Invocation

	statsSource   StatsSource
	statsByMethod StatsByCall
}

type InternalMessage struct {
	from   address.Address
	to     address.Address
	value  abi.TokenAmount
	method abi.MethodNum
	params interface{}
}

type Invocation struct {
	Msg            *InternalMessage
	Exitcode       exitcode.ExitCode
	Ret            cbor.Marshaler
	SubInvocations []*Invocation
}

// NewVM creates a new runtime for executing messages.
func NewVM(ctx context.Context, registry *exported.Registry, store adt.Store) *VM {
	tree, err := states.NewTree(store)
	if err != nil {
		panic(err)
	}
	root, err := tree.Flush()
	if err != nil {
		panic(err)
	}

	emptyObject, err := store.Put(ctx, []struct{}{})
	if err != nil {
		panic(err)
	}

	return &VM{
		ctx:           ctx,
		store:         store,
		registry:      registry,
		syscalls:      &tutil.MockSyscalls{},
		tree:          tree,
		stateRoot:     root,
		emptyObject:   emptyObject,
		statsByMethod: make(StatsByCall),
	}
}

// NewVMAtEpoch creates a runtime over an existing state tree, such as one imported from a CAR file.
func NewVMAtEpoch(ctx context.Context, registry *exported.Registry, store adt.Store, stateRoot cid.Cid, epoch abi.ChainEpoch) (*VM, error) {
	tree, err := states.LoadTree(store, stateRoot)
	if err != nil {
		return nil, err
	}

	emptyObject, err := store.Put(ctx, []struct{}{})
	if err != nil {
		return nil, err
	}

	return &VM{
		ctx:           ctx,
		store:         store,
		registry:      registry,
		syscalls:      &tutil.MockSyscalls{},
		tree:          tree,
		stateRoot:     stateRoot,
		emptyObject:   emptyObject,
		currentEpoch:  epoch,
		statsByMethod: make(StatsByCall),
	}, nil
}

// WithEpoch returns a VM over the committed state of this one, at a new epoch.
func (vm *VM) WithEpoch(epoch abi.ChainEpoch) (*VM, error) {
	root, err := vm.checkpoint()
	if err != nil {
		return nil, err
	}

	tree, err := states.LoadTree(vm.store, root)
	if err != nil {
		return nil, err
	}

	return &VM{
		ctx:           vm.ctx,
		store:         vm.store,
		registry:      vm.registry,
		syscalls:      vm.syscalls,
		tree:          tree,
		stateRoot:     root,
		emptyObject:   vm.emptyObject,
		currentEpoch:  epoch,
		callSequence:  vm.callSequence,
		statsSource:   vm.statsSource,
		statsByMethod: make(StatsByCall),
	}, nil
}

// Replaces the syscalls offered to actors, e.g. to reject proofs.
func (vm *VM) SetSyscalls(s runtime.Syscalls) {
	vm.syscalls = s
}

func (vm *VM) rollback(root cid.Cid) error {
	tree, err := states.LoadTree(vm.store, root)
	if err != nil {
		return errors.Wrapf(err, "failed to load node for %s", root)
	}

	// reset the root node
	vm.tree = tree
	vm.stateRoot = root
	return nil
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	root, err := vm.tree.Flush()
	if err != nil {
		return cid.Undef, err
	}
	vm.stateRoot = root
	return root, nil
}

func (vm *VM) GetActor(a address.Address) (*states.Actor, bool, error) {
	na, found := vm.NormalizeAddress(a)
	if !found {
		return nil, false, nil
	}
	return vm.tree.GetActor(na)
}

// setActor overwrites the actor at an ID address whether it previously existed or not.
func (vm *VM) setActor(key address.Address, a *states.Actor) error {
	if err := vm.tree.SetActor(key, a); err != nil {
		return errors.Wrap(err, "setting actor in state tree failed")
	}
	return nil
}

// SetActorState stores the state and updates the addressed actor
func (vm *VM) SetActorState(key address.Address, state cbor.Marshaler) error {
	stateCid, err := vm.store.Put(vm.ctx, state)
	if err != nil {
		return err
	}
	a, found, err := vm.GetActor(key)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("could not find actor %s to set state", key)
	}
	a.Head = stateCid
	return vm.setActor(key, a)
}

func (vm *VM) deleteActor(key address.Address) error {
	return vm.tree.DeleteActor(key)
}

func (vm *VM) NormalizeAddress(addr address.Address) (address.Address, bool) {
	// short-circuit if the address is already an ID address
	if addr.Protocol() == address.ID {
		return addr, true
	}

	// resolve the target address via the InitActor, and attempt to load state.
	initActorEntry, found, err := vm.tree.GetActor(builtin.InitActorAddr)
	if err != nil {
		panic(errors.Wrapf(err, "failed to load init actor"))
	}
	if !found {
		panic(errors.New("no init actor"))
	}

	var state init_.State
	if err := vm.store.Get(vm.ctx, initActorEntry.Head, &state); err != nil {
		panic(err)
	}

	idAddr, found, err := state.ResolveAddress(vm.store, addr)
	if err != nil {
		panic(err)
	}
	return idAddr, found
}

// ApplyMessage applies the message to the current state.
// State changes are committed only if the message succeeds, apart from the sender's call sequence number.
func (vm *VM) ApplyMessage(from, to address.Address, value abi.TokenAmount, method abi.MethodNum, params interface{}) (cbor.Marshaler, exitcode.ExitCode) {
	fromID, ok := vm.NormalizeAddress(from)
	if !ok {
		return nil, exitcode.SysErrSenderInvalid
	}

	fromActor, found, err := vm.GetActor(fromID)
	if err != nil {
		panic(err)
	}
	if !found {
		// Execution error; sender does not exist at time of message execution.
		return nil, exitcode.SysErrSenderInvalid
	}

	fromActor.CallSeqNum++
	if err := vm.setActor(fromID, fromActor); err != nil {
		panic(err)
	}

	// The sequence number bump persists even if the message fails.
	priorRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}

	topLevel := topLevelContext{
		originatorStableAddress: from,
		// this should be nonce, but we only care that it creates a unique stable address
		originatorCallSeq:    vm.callSequence,
		newActorAddressCount: 0,
		statsSource:          vm.statsSource,
	}
	vm.callSequence++

	imsg := InternalMessage{
		from:   fromID,
		to:     to,
		value:  value,
		method: method,
		params: params,
	}

	ctx := newInvocationContext(vm, &topLevel, imsg, fromActor, vm.emptyObject)
	ret, exitCode := ctx.invoke()

	if ctx.toActor != nil {
		vm.statsByMethod.MergeStats(ctx.toActor.Code, imsg.method, ctx.stats)
	}

	// Top level messages can fail for more reasons than internal ones, so roll back here as well as
	// within the invocation context.
	if exitCode != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			panic(err)
		}
	} else {
		if _, err := vm.checkpoint(); err != nil {
			panic(err)
		}
	}

	return ret.inner, exitCode
}

func (vm *VM) StateRoot() cid.Cid {
	return vm.stateRoot
}

func (vm *VM) GetState(addr address.Address, out cbor.Unmarshaler) error {
	act, found, err := vm.GetActor(addr)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("actor %v not found", addr)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

func (vm *VM) GetStateTree() (*states.Tree, error) {
	root, err := vm.checkpoint()
	if err != nil {
		return nil, err
	}
	return states.LoadTree(vm.store, root)
}

func (vm *VM) GetTotalActorBalance() (abi.TokenAmount, error) {
	tree, err := vm.GetStateTree()
	if err != nil {
		return big.Zero(), err
	}
	total := big.Zero()
	err = tree.ForEach(func(_ address.Address, actor *states.Actor) error {
		total = big.Add(total, actor.Balance)
		return nil
	})
	if err != nil {
		return big.Zero(), err
	}
	return total, nil
}

// Checks state invariants across all actors, expecting the given total balance.
func (vm *VM) CheckStateInvariants(expectedBalanceTotal abi.TokenAmount) (*builtin.MessageAccumulator, error) {
	tree, err := vm.GetStateTree()
	if err != nil {
		return nil, err
	}
	return states.CheckStateInvariants(tree, expectedBalanceTotal, vm.currentEpoch)
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

// Get the chain epoch for this vm
func (vm *VM) GetEpoch() abi.ChainEpoch {
	return vm.currentEpoch
}

// Get call stats
func (vm *VM) GetCallStats() StatsByCall {
	return vm.statsByMethod
}

// transfer debits money from one account and credits it to another.
// It panics if the amount is negative, either actor is missing, or the debited actor is short of funds.
func (vm *VM) transfer(debitFrom address.Address, creditTo address.Address, amount abi.TokenAmount) (*states.Actor, *states.Actor) {
	if amount.LessThan(big.Zero()) {
		panic("unreachable: negative funds transfer not allowed")
	}

	fromActor, found, err := vm.GetActor(debitFrom)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("unreachable: debit account %v not found", debitFrom))
	}
	if fromActor.Balance.LessThan(amount) {
		panic("unreachable: insufficient balance on debit account")
	}

	fromActor.Balance = big.Sub(fromActor.Balance, amount)
	if err := vm.setActor(debitFrom, fromActor); err != nil {
		panic(err)
	}

	toActor, found, err := vm.GetActor(creditTo)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("unreachable: credit account %v not found", creditTo))
	}

	toActor.Balance = big.Add(toActor.Balance, amount)
	if err := vm.setActor(creditTo, toActor); err != nil {
		panic(err)
	}
	return toActor, fromActor
}

func (vm *VM) getActorImpl(code cid.Cid) exported.BuiltinActor {
	actorImpl, ok := vm.registry.Lookup(code)
	if !ok {
		vm.Abortf(exitcode.SysErrInvalidReceiver, "actor implementation not found for code %v", code)
	}
	return actorImpl
}

//
// stats
//

func (vm *VM) SetStatsSource(s StatsSource) {
	vm.statsSource = s
}

func (vm *VM) GetStatsSource() StatsSource {
	return vm.statsSource
}

//
// invocation tracking
//

func (vm *VM) startInvocation(msg *InternalMessage) {
	invocation := Invocation{Msg: msg}
	if len(vm.invocationStack) > 0 {
		parent := vm.invocationStack[len(vm.invocationStack)-1]
		parent.SubInvocations = append(parent.SubInvocations, &invocation)
	} else {
		vm.invocations = append(vm.invocations, &invocation)
	}
	vm.invocationStack = append(vm.invocationStack, &invocation)
}

func (vm *VM) endInvocation(code exitcode.ExitCode, ret cbor.Marshaler) {
	curIndex := len(vm.invocationStack) - 1
	current := vm.invocationStack[curIndex]
	current.Exitcode = code
	current.Ret = ret

	vm.invocationStack = vm.invocationStack[:curIndex]
}

func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

func (vm *VM) LastInvocation() *Invocation {
	return vm.invocations[len(vm.invocations)-1]
}

//
// logging and aborts
//

// Log records an actor log line and forwards it to the vm logger.
func (vm *VM) Log(level rt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	vm.logs = append(vm.logs, line)

	switch level {
	case rt.DEBUG:
		log.Debugw(line, "epoch", vm.currentEpoch)
	case rt.INFO:
		log.Infow(line, "epoch", vm.currentEpoch)
	case rt.WARN:
		log.Warnw(line, "epoch", vm.currentEpoch)
	default:
		log.Errorw(line, "epoch", vm.currentEpoch)
	}
}

func (vm *VM) GetLogs() []string {
	return vm.logs
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%d): %s", a.code, a.msg)
}

func (vm *VM) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

//
// implement runtime.Message for InternalMessage
//

var _ runtime.Message = (*InternalMessage)(nil)

// ValueReceived implements runtime.Message.
func (msg InternalMessage) ValueReceived() abi.TokenAmount {
	return msg.value
}

// Caller implements runtime.Message.
func (msg InternalMessage) Caller() address.Address {
	return msg.from
}

// Receiver implements runtime.Message.
func (msg InternalMessage) Receiver() address.Address {
	return msg.to
}

func (msg InternalMessage) Method() abi.MethodNum {
	return msg.method
}

func (msg InternalMessage) Params() interface{} {
	return msg.params
}
