package states_test

import (
	"strings"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/states"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestCheckMinersAgainstPower(t *testing.T) {
	minerAddr := tutil.NewIDAddr(t, 1000)
	minerSummaries := func() map[address.Address]*miner.StateSummary {
		return map[address.Address]*miner.StateSummary{
			minerAddr: {
				ActiveSectors: 1,
				ClaimedPower:  abi.NewStoragePower(2048),
				ClaimedPledge: abi.NewTokenAmount(1000),
			},
		}
	}
	powerSummary := func(claim power.Claim) *power.StateSummary {
		return &power.StateSummary{
			Crons:  power.CronEventsByAddress{minerAddr: {{}}},
			Claims: power.ClaimsByAddress{minerAddr: claim},
		}
	}

	t.Run("matching claim", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckMinersAgainstPower(acc, minerSummaries(), powerSummary(power.Claim{
			Power:  abi.NewStoragePower(2048),
			Pledge: abi.NewTokenAmount(1000),
		}))
		assert.True(t, acc.IsEmpty(), strings.Join(acc.Messages(), "\n"))
	})

	t.Run("claim pledge drifted from sectors", func(t *testing.T) {
		acc := &builtin.MessageAccumulator{}
		states.CheckMinersAgainstPower(acc, minerSummaries(), powerSummary(power.Claim{
			Power:  abi.NewStoragePower(2048),
			Pledge: big.NewInt(1500),
		}))
		assert.Len(t, acc.Messages(), 1)
		assert.Contains(t, acc.Messages()[0], "claims pledge")
	})

	t.Run("claim power held for a faulty sector", func(t *testing.T) {
		summaries := minerSummaries()
		summaries[minerAddr].ClaimedPower = big.Zero()
		summaries[minerAddr].ClaimedPledge = big.Zero()
		acc := &builtin.MessageAccumulator{}
		states.CheckMinersAgainstPower(acc, summaries, powerSummary(power.Claim{
			Power:  abi.NewStoragePower(2048),
			Pledge: big.Zero(),
		}))
		assert.Len(t, acc.Messages(), 1)
		assert.Contains(t, acc.Messages()[0], "claims power")
	})
}
