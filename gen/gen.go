package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/account"
	"github.com/filecoin-project/miner-actors/actors/builtin/cron"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/market"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/builtin/system"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
	"github.com/filecoin-project/miner-actors/actors/states"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/runtime/proof/cbor_gen.go", "proof",
		proof.SectorInfo{},
		proof.PoStCandidate{},
		proof.PoStProof{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cbor_gen.go", "builtin",
		builtin.MinerAddrs{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/system/cbor_gen.go", "system",
		// actor state
		system.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/init/cbor_gen.go", "init",
		// actor state
		init_.State{},
		// method params
		init_.ConstructorParams{},
		init_.ExecParams{},
		init_.ExecReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cron/cbor_gen.go", "cron",
		// actor state
		cron.State{},
		cron.Entry{},
		// method params
		cron.ConstructorParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/market/cbor_gen.go", "market",
		// actor state
		market.State{},
		market.DealProposal{},
		market.DealState{},
		// method params
		market.PublishStorageDealsParams{},
		market.PublishStorageDealsReturn{},
		market.VerifyDealsOnSectorProveCommitParams{},
		market.ComputeDataCommitmentParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/power/cbor_gen.go", "power",
		// actor state
		power.State{},
		power.Claim{},
		power.CronEvent{},
		// method params
		power.MinerConstructorParams{},
		power.SectorStorageWeightDesc{},
		power.CreateMinerParams{},
		power.CreateMinerReturn{},
		power.DeleteMinerParams{},
		power.OnSectorProveCommitParams{},
		power.OnSectorTerminateParams{},
		power.OnSectorTemporaryFaultEffectiveBeginParams{},
		power.OnSectorTemporaryFaultEffectiveEndParams{},
		power.OnSectorModifyWeightDescParams{},
		power.OnMinerWindowedPoStFailureParams{},
		power.EnrollCronEventParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/miner/cbor_gen.go", "miner",
		// actor state
		miner.State{},
		miner.MinerInfo{},
		miner.WorkerKeyChange{},
		miner.PoStState{},
		miner.SectorPreCommitInfo{},
		miner.SectorPreCommitOnChainInfo{},
		miner.SectorOnChainInfo{},
		miner.SectorFault{},
		miner.CronEventPayload{},
		// method params and returns
		miner.GetControlAddressesReturn{},
		miner.ChangeWorkerAddressParams{},
		miner.ChangePeerIDParams{},
		miner.SubmitWindowedPoStParams{},
		miner.ProveCommitSectorParams{},
		miner.ExtendSectorExpirationParams{},
		miner.TerminateSectorsParams{},
		miner.DeclareTemporaryFaultsParams{},
	); err != nil {
		panic(err)
	}
}
