package builtin

import (
	"io"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"

	"github.com/filecoin-project/miner-actors/actors/runtime"
)

type stateMock struct{}

func (s *stateMock) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{0x80})
	return err
}

func (s *stateMock) UnmarshalCBOR(r io.Reader) error {
	*s = stateMock{}
	return nil
}

type actorMock struct {
	code cid.Cid
}

func (a actorMock) Exports() []interface{} {
	return []interface{}{
		MethodConstructor: a.Constructor,
	}
}

func (a actorMock) Code() cid.Cid {
	return a.code
}

func (a actorMock) State() cbor.Er { return new(stateMock) }

func (a actorMock) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.Log(GetActorLogLevel(a, rtt.DEBUG), "constructed")
	return nil
}

func TestActorLogLevel(t *testing.T) {
	miner := actorMock{code: StorageMinerActorCodeID}
	cron := actorMock{code: CronActorCodeID}
	levels := []rtt.LogLevel{rtt.DEBUG, rtt.INFO, rtt.WARN, rtt.ERROR}

	t.Run("unset actor falls back to default", func(t *testing.T) {
		for _, def := range levels {
			assert.Equal(t, def, GetActorLogLevel(cron, def))
		}
	})

	t.Run("configured level overrides any default", func(t *testing.T) {
		for _, lvl := range levels {
			SetActorsLogLevel(lvl, miner)
			for _, def := range levels {
				assert.Equal(t, lvl, GetActorLogLevel(miner, def))
			}
		}
		// Other actors are unaffected.
		assert.Equal(t, rtt.WARN, GetActorLogLevel(cron, rtt.WARN))
	})
}
