package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var SystemActorCodeID cid.Cid
var InitActorCodeID cid.Cid
var CronActorCodeID cid.Cid
var AccountActorCodeID cid.Cid
var StoragePowerActorCodeID cid.Cid
var StorageMinerActorCodeID cid.Cid
var StorageMarketActorCodeID cid.Cid

// Set of actor code types that can represent external signing parties.
var CallerTypesSignable []cid.Cid

var builtinActors map[cid.Cid]string

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	builtinActors = make(map[cid.Cid]string)

	for id, name := range map[*cid.Cid]string{
		&SystemActorCodeID:        "fil/1/system",
		&InitActorCodeID:          "fil/1/init",
		&CronActorCodeID:          "fil/1/cron",
		&AccountActorCodeID:       "fil/1/account",
		&StoragePowerActorCodeID:  "fil/1/storagepower",
		&StorageMinerActorCodeID:  "fil/1/storageminer",
		&StorageMarketActorCodeID: "fil/1/storagemarket",
	} {
		c, err := builder.Sum([]byte(name))
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = name
	}

	CallerTypesSignable = []cid.Cid{AccountActorCodeID}
}

// IsBuiltinActor returns true if the code belongs to an actor defined in this repo.
func IsBuiltinActor(code cid.Cid) bool {
	_, isBuiltin := builtinActors[code]
	return isBuiltin
}

// ActorNameByCode returns the (string) name of the actor given a cid code.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}

	name, ok := builtinActors[code]
	if !ok {
		return "<unknown>"
	}
	return name
}

// IsSingletonActor returns true if the code belongs to a singleton actor.
func IsSingletonActor(code cid.Cid) bool {
	return code.Equals(SystemActorCodeID) ||
		code.Equals(InitActorCodeID) ||
		code.Equals(CronActorCodeID) ||
		code.Equals(StoragePowerActorCodeID) ||
		code.Equals(StorageMarketActorCodeID)
}

// IsAccountActor returns true if the code belongs to an account actor.
func IsAccountActor(code cid.Cid) bool {
	return code.Equals(AccountActorCodeID)
}

// IsStorageMinerActor returns true if the code belongs to a storage miner actor.
func IsStorageMinerActor(code cid.Cid) bool {
	return code.Equals(StorageMinerActorCodeID)
}

// IsSignableActor returns true if the code belongs to an actor that represents an external signing party.
func IsSignableActor(code cid.Cid) bool {
	for _, c := range CallerTypesSignable {
		if c.Equals(code) {
			return true
		}
	}
	return false
}
