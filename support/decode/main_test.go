package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestDecodeInput(t *testing.T) {
	data := []byte{0x01, 0xfe, 0x42}

	b, err := decodeInput(hex.EncodeToString(data), false)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	encoded, err := multibase.Encode(multibase.Base64, data)
	require.NoError(t, err)
	b, err = decodeInput(encoded, true)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	_, err = decodeInput("not hex", false)
	assert.Error(t, err)
}

func TestDecodeBitField(t *testing.T) {
	bf := bitfield.NewFromSet([]uint64{3, 7, 1000})
	buf := new(bytes.Buffer)
	require.NoError(t, bf.MarshalCBOR(buf))
	// strip the single byte CBOR header of a short byte string
	encoded := buf.Bytes()
	require.Equal(t, byte(0x40|(len(encoded)-1)), encoded[0])

	var out bytes.Buffer
	require.NoError(t, decodeBitField(&out, encoded[1:]))
	assert.Equal(t, "3 sectors\n3\n7\n1000\n", out.String())

	out.Reset()
	require.NoError(t, decodeCronPayload(&out, cronPayloadBytes(t, miner.CronEventSectorExpiry, &bf)))
	assert.Equal(t, "event: sector expiry\n3 sectors\n3\n7\n1000\n", out.String())
}

func TestDecodeInt(t *testing.T) {
	amount := big.Mul(big.NewInt(12345), big.NewInt(1e18))
	b, err := amount.Bytes()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, decodeInt(&out, b))
	assert.Equal(t, amount.String()+"\n", out.String())
}

func TestDecodeCronPayloadWithoutSectors(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, decodeCronPayload(&out, cronPayloadBytes(t, miner.CronEventWindowedPoStExpiration, nil)))
	assert.Equal(t, "event: windowed post expiration\n", out.String())

	out.Reset()
	require.NoError(t, decodeCronPayload(&out, cronPayloadBytes(t, miner.CronEventType(42), nil)))
	assert.Equal(t, "event: unknown (42)\n", out.String())
}

func TestDecodeSector(t *testing.T) {
	sector := miner.SectorOnChainInfo{
		Info: miner.SectorPreCommitInfo{
			SealProof:    abi.RegisteredSealProof_StackedDrg2KiBV1,
			SectorNumber: 12000,
			SealedCID:    tutil.MakeCID("sealed"),
			DealIDs:      []abi.DealID{1, 2},
			Expiration:   50000,
		},
		ActivationEpoch:   300,
		DealWeight:        big.NewInt(2048),
		PledgeRequirement: big.Zero(),
		DeclaredFault:     &miner.SectorFault{DeclaredEpoch: 400, Duration: 10},
	}
	buf := new(bytes.Buffer)
	require.NoError(t, sector.MarshalCBOR(buf))

	var out bytes.Buffer
	require.NoError(t, decodeSector(&out, buf.Bytes()))
	assert.Contains(t, out.String(), "sector: 12,000\n")
	assert.Contains(t, out.String(), "expiration: 50,000\n")
	assert.Contains(t, out.String(), "sealed cid: "+tutil.MakeCID("sealed").String()+"\n")
	assert.Contains(t, out.String(), "declared fault: 400+10\n")
}

func cronPayloadBytes(t *testing.T, eventType miner.CronEventType, sectors *bitfield.BitField) []byte {
	buf := new(bytes.Buffer)
	payload := miner.CronEventPayload{EventType: eventType, Sectors: sectors}
	require.NoError(t, payload.MarshalCBOR(buf))
	return buf.Bytes()
}
