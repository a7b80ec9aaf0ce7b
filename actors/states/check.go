package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/account"
	"github.com/filecoin-project/miner-actors/actors/builtin/cron"
	init_ "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/market"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
)

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors thar are particularly troublesome to recover from should propagate as Go errors.
func CheckStateInvariants(tree *Tree, expectedBalanceTotal abi.TokenAmount, priorEpoch abi.ChainEpoch) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	totalFIl := big.Zero()
	var initState *init_.State
	var cronSummary *cron.StateSummary
	var marketSummary *market.StateSummary
	var powerSummary *power.StateSummary
	var accountSummaries []*account.StateSummary
	minerSummaries := make(map[addr.Address]*miner.StateSummary)

	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		acc := acc.WithPrefix("%v ", key) // Intentional shadow
		if key.Protocol() != addr.ID {
			acc.Addf("unexpected address protocol in state tree root: %v", key)
		}
		totalFIl = big.Add(totalFIl, actor.Balance)

		switch actor.Code {
		case builtin.SystemActorCodeID:

		case builtin.InitActorCodeID:
			var st init_.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			initState = &st
		case builtin.CronActorCodeID:
			var st cron.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := cron.CheckStateInvariants(&st)
			acc.WithPrefix("cron: ").AddAll(msgs)
			cronSummary = summary
		case builtin.AccountActorCodeID:
			var st account.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := account.CheckStateInvariants(&st, key)
			acc.WithPrefix("account: ").AddAll(msgs)
			accountSummaries = append(accountSummaries, summary)
		case builtin.StoragePowerActorCodeID:
			var st power.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs, err := power.CheckStateInvariants(&st, tree.Store)
			if err != nil {
				return err
			}
			acc.WithPrefix("power: ").AddAll(msgs)
			powerSummary = summary
		case builtin.StorageMinerActorCodeID:
			var st miner.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs, err := miner.CheckStateInvariants(&st, tree.Store)
			if err != nil {
				return err
			}
			acc.WithPrefix("miner: ").AddAll(msgs)
			minerSummaries[key] = summary
		case builtin.StorageMarketActorCodeID:
			var st market.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs, err := market.CheckStateInvariants(&st, tree.Store, priorEpoch)
			if err != nil {
				return err
			}
			acc.WithPrefix("market: ").AddAll(msgs)
			marketSummary = summary
		default:
			acc.Addf("unexpected actor code CID %v", actor.Code)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	if initState != nil {
		CheckAccountsAgainstInit(acc, tree, initState, accountSummaries)
	}
	if cronSummary != nil {
		acc.Require(cronSummary.EntryCount > 0, "cron table is empty")
	}
	if powerSummary != nil {
		CheckMinersAgainstPower(acc, minerSummaries, powerSummary)
	}
	if marketSummary != nil {
		CheckDealsAgainstMiners(acc, minerSummaries, marketSummary)
	}

	acc.Require(totalFIl.Equals(expectedBalanceTotal),
		"total token balance is %v, expected %v", totalFIl, expectedBalanceTotal)

	return acc, nil
}

// Every account's public key must map back to its own ID in the init actor's address table.
func CheckAccountsAgainstInit(acc *builtin.MessageAccumulator, tree *Tree, initState *init_.State, accounts []*account.StateSummary) {
	acc = acc.WithPrefix("init: ")
	for _, summary := range accounts {
		if summary.PubKeyAddr.Protocol() != addr.BLS && summary.PubKeyAddr.Protocol() != addr.SECP256K1 {
			continue
		}
		idAddr, found, err := initState.ResolveAddress(tree.Store, summary.PubKeyAddr)
		if err != nil {
			acc.Addf("failed to resolve account %v: %v", summary.PubKeyAddr, err)
			continue
		}
		if !found {
			// Accounts created at genesis without an init mapping are legal.
			continue
		}
		actor, found, err := tree.GetActor(idAddr)
		acc.RequireNoError(err, "failed to load account %v", idAddr)
		acc.Require(found, "account %v resolves to missing actor %v", summary.PubKeyAddr, idAddr)
		if found {
			acc.Require(actor.Code.Equals(builtin.AccountActorCodeID), "account %v resolves to non-account actor %v",
				summary.PubKeyAddr, idAddr)
		}
	}
}

func CheckMinersAgainstPower(acc *builtin.MessageAccumulator, minerSummaries map[addr.Address]*miner.StateSummary, powerSummary *power.StateSummary) {
	acc = acc.WithPrefix("power: ")
	for a := range minerSummaries {
		_, found := powerSummary.Claims[a]
		acc.Require(found, "miner %v has no power claim", a)
	}
	for a := range powerSummary.Claims {
		_, found := minerSummaries[a]
		acc.Require(found, "claim for %v has no miner actor", a)
	}
	for a, summary := range minerSummaries {
		if claim, found := powerSummary.Claims[a]; found {
			acc.Require(claim.Power.Equals(summary.ClaimedPower), "miner %v claims power %v, sectors hold %v",
				a, claim.Power, summary.ClaimedPower)
			acc.Require(claim.Pledge.Equals(summary.ClaimedPledge), "miner %v claims pledge %v, sectors hold %v",
				a, claim.Pledge, summary.ClaimedPledge)
		}
		if summary.ActiveSectors == 0 {
			continue
		}
		acc.Require(len(powerSummary.Crons[a]) > 0, "miner %v with %d active sectors has no cron event",
			a, summary.ActiveSectors)
	}
}

func CheckDealsAgainstMiners(acc *builtin.MessageAccumulator, minerSummaries map[addr.Address]*miner.StateSummary, marketSummary *market.StateSummary) {
	acc = acc.WithPrefix("market: ")
	for dealID, deal := range marketSummary.Deals {
		if deal.SectorStartEpoch < 0 {
			continue
		}
		_, found := minerSummaries[deal.Provider]
		acc.Require(found, "activated deal %d provider %v is not a miner", dealID, deal.Provider)
	}
}
