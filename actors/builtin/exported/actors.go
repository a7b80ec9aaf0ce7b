package exported

import (
	"sync"

	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"

	"github.com/filecoin-project/miner-actors/actors/builtin/account"
	"github.com/filecoin-project/miner-actors/actors/builtin/cron"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/market"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/builtin/system"
	"github.com/filecoin-project/miner-actors/actors/runtime"
)

var _ runtime.VMActor = BuiltinActor{}

// A built-in actor with its method table captured once at registration.
type BuiltinActor struct {
	actor   runtime.VMActor
	exports []interface{}
}

// Code is the CodeID (cid) of the actor.
func (b BuiltinActor) Code() cid.Cid {
	return b.actor.Code()
}

// Exports returns a copy of the actor's callable methods, indexed by method number.
func (b BuiltinActor) Exports() []interface{} {
	return append([]interface{}(nil), b.exports...)
}

// State returns a new, empty state object for the actor.
func (b BuiltinActor) State() cbor.Er {
	return b.actor.State()
}

// Actor returns the registered actor implementation.
func (b BuiltinActor) Actor() runtime.VMActor {
	return b.actor
}

func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		cron.Actor{},
		init_.Actor{},
		market.Actor{},
		miner.Actor{},
		power.Actor{},
		system.Actor{},
	}
}

// Registry maps actor code CIDs to actor implementations. It is not modified after construction.
type Registry struct {
	actors map[cid.Cid]BuiltinActor
}

// NewRegistry registers the given actors. An actor replaces any earlier one with the same code.
func NewRegistry(actors ...runtime.VMActor) *Registry {
	r := &Registry{actors: make(map[cid.Cid]BuiltinActor, len(actors))}
	for _, a := range actors {
		exports := a.Exports()
		r.actors[a.Code()] = BuiltinActor{
			actor:   a,
			exports: append([]interface{}(nil), exports...),
		}
	}
	return r
}

func (r *Registry) Lookup(code cid.Cid) (BuiltinActor, bool) {
	a, ok := r.actors[code]
	return a, ok
}

// Codes of all registered actors, in no particular order.
func (r *Registry) Codes() []cid.Cid {
	codes := make([]cid.Cid, 0, len(r.actors))
	for c := range r.actors { // nolint:nomaprange
		codes = append(codes, c)
	}
	return codes
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry of all built-in actors.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(BuiltinActors()...)
	})
	return defaultRegistry
}
