package agent

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	vm "github.com/filecoin-project/miner-actors/support/vm"
)

var log = logging.Logger("agent")

// Sim drives a VM forward one epoch at a time, applying the messages its agents produce
// followed by a cron tick.
type Sim struct {
	Config   SimConfig
	Accounts []address.Address
	Agents   []Agent

	v             *vm.VM
	rnd           *rand.Rand
	statsByMethod vm.StatsByCall
	pendingAgents []Agent
}

// Read access to the VM for agents, plus a hook to register agents created by a message.
type SimState interface {
	GetEpoch() abi.ChainEpoch
	GetState(addr address.Address, out cbor.Unmarshaler) error
	Store() adt.Store
	AddAgent(a Agent)
}

type Agent interface {
	Tick(v SimState) ([]message, error)
}

type SimConfig struct {
	AccountCount          int
	AccountInitialBalance abi.TokenAmount
	Seed                  int64
}

type ReturnHandler func(v SimState, msg message, ret cbor.Marshaler) error

type message struct {
	From          address.Address
	To            address.Address
	Value         abi.TokenAmount
	Method        abi.MethodNum
	Params        interface{}
	ReturnHandler ReturnHandler
}

func NewSim(ctx context.Context, t testing.TB, config SimConfig) *Sim {
	v := vm.NewVMWithSingletons(ctx, t)
	return &Sim{
		Config:   config,
		Accounts: vm.CreateAccounts(ctx, t, v, config.AccountCount, config.AccountInitialBalance, config.Seed),
		v:        v,
		rnd:      rand.New(rand.NewSource(config.Seed)),
	}
}

// Tick collects messages from all agents, applies them in random order and runs cron.
// Any message failure ends the simulation with an error carrying the VM logs.
func (s *Sim) Tick() error {
	var err error
	var blockMessages []message

	for _, agent := range s.Agents {
		msgs, err := agent.Tick(s)
		if err != nil {
			return err
		}
		blockMessages = append(blockMessages, msgs...)
	}

	s.rnd.Shuffle(len(blockMessages), func(i, j int) {
		blockMessages[i], blockMessages[j] = blockMessages[j], blockMessages[i]
	})

	for _, msg := range blockMessages {
		ret, code := s.v.ApplyMessage(msg.From, msg.To, msg.Value, msg.Method, msg.Params)
		if code != exitcode.Ok {
			return errors.Errorf("exitcode %d: message failed: %v\n%s\n", code, msg, strings.Join(s.v.GetLogs(), "\n"))
		}

		if msg.ReturnHandler != nil {
			if err := msg.ReturnHandler(s, msg, ret); err != nil {
				return err
			}
		}
	}

	_, code := s.v.ApplyMessage(builtin.CronActorAddr, builtin.CronActorAddr, big.Zero(), builtin.MethodsCron.EpochTick, nil)
	if code != exitcode.Ok {
		return errors.Errorf("exitcode %d: cron message failed:\n%s\n", code, strings.Join(s.v.GetLogs(), "\n"))
	}

	s.statsByMethod = s.v.GetCallStats()

	// agents created this epoch start acting next epoch
	if len(s.pendingAgents) > 0 {
		log.Debugw("adding agents", "count", len(s.pendingAgents), "epoch", s.v.GetEpoch())
		s.Agents = append(s.Agents, s.pendingAgents...)
		s.pendingAgents = nil
	}

	s.v, err = s.v.WithEpoch(s.v.GetEpoch() + 1)
	return err
}

// Checks the state invariants of every actor. No funds enter or leave the simulated system,
// so the total balance is always what the accounts started with.
func (s *Sim) CheckInvariants() (*builtin.MessageAccumulator, error) {
	expected := big.Mul(s.Config.AccountInitialBalance, big.NewInt(int64(s.Config.AccountCount)))
	return s.v.CheckStateInvariants(expected)
}

func (s *Sim) AddAgent(a Agent) {
	s.pendingAgents = append(s.pendingAgents, a)
}

func (s *Sim) GetEpoch() abi.ChainEpoch {
	return s.v.GetEpoch()
}

func (s *Sim) GetState(addr address.Address, out cbor.Unmarshaler) error {
	return s.v.GetState(addr, out)
}

func (s *Sim) Store() adt.Store {
	return s.v.Store()
}

func (s *Sim) GetCallStats() vm.StatsByCall {
	return s.statsByMethod
}

func (s *Sim) GetVM() *vm.VM {
	return s.v
}

// Miner agents among the sim's agents.
func (s *Sim) Miners() []*MinerAgent {
	var miners []*MinerAgent
	for _, a := range s.Agents {
		if m, ok := a.(*MinerAgent); ok {
			miners = append(miners, m)
		}
	}
	return miners
}
