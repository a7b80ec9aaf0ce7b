// Command decode prints the content of encoded miner actor data found in logs and test output.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/multiformats/go-multibase"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
)

var multibaseFlag = &cli.BoolFlag{
	Name:  "multibase",
	Usage: "input is multibase encoded instead of hex",
}

var bfDecodeCmd = &cli.Command{
	Name:        "bf",
	Description: "decode a sector bitfield",
	Flags:       []cli.Flag{multibaseFlag},
	Action:      runDecode(decodeBitField),
}

var intDecodeCmd = &cli.Command{
	Name:        "int",
	Description: "decode a big.Int such as a token amount or power",
	Flags:       []cli.Flag{multibaseFlag},
	Action:      runDecode(decodeInt),
}

var cronDecodeCmd = &cli.Command{
	Name:        "cron",
	Description: "decode a miner cron event payload",
	Flags:       []cli.Flag{multibaseFlag},
	Action:      runDecode(decodeCronPayload),
}

var sectorDecodeCmd = &cli.Command{
	Name:        "sector",
	Description: "decode a miner's on-chain sector info",
	Flags:       []cli.Flag{multibaseFlag},
	Action:      runDecode(decodeSector),
}

func main() {
	app := &cli.App{
		Name:        "decode",
		Usage:       "Decode a hex encoded data structure",
		Description: "Decode a hex encoded data structure",
		Commands: []*cli.Command{
			bfDecodeCmd,
			intDecodeCmd,
			cronDecodeCmd,
			sectorDecodeCmd,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var printer = message.NewPrinter(language.English)

type decodeFunc func(w io.Writer, b []byte) error

func runDecode(f decodeFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		b, err := decodeInput(ctx.Args().First(), ctx.Bool(multibaseFlag.Name))
		if err != nil {
			return err
		}
		return f(ctx.App.Writer, b)
	}
}

func decodeInput(s string, isMultibase bool) ([]byte, error) {
	if isMultibase {
		_, b, err := multibase.Decode(s)
		return b, err
	}
	return hex.DecodeString(s)
}

func decodeBitField(w io.Writer, b []byte) error {
	bf, err := bitfield.NewFromBytes(b)
	if err != nil {
		return err
	}
	return printSectors(w, bf)
}

func decodeInt(w io.Writer, b []byte) error {
	i, err := big.FromBytes(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, i)
	return err
}

var cronEventNames = map[miner.CronEventType]string{
	miner.CronEventWindowedPoStExpiration: "windowed post expiration",
	miner.CronEventWorkerKeyChange:        "worker key change",
	miner.CronEventPreCommitExpiry:        "precommit expiry",
	miner.CronEventSectorExpiry:           "sector expiry",
	miner.CronEventTempFault:              "temporary fault",
}

func decodeCronPayload(w io.Writer, b []byte) error {
	var payload miner.CronEventPayload
	if err := payload.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return err
	}

	name, ok := cronEventNames[payload.EventType]
	if !ok {
		name = fmt.Sprintf("unknown (%d)", payload.EventType)
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", name); err != nil {
		return err
	}
	if payload.Sectors == nil {
		return nil
	}
	return printSectors(w, *payload.Sectors)
}

func decodeSector(w io.Writer, b []byte) error {
	var sector miner.SectorOnChainInfo
	if err := sector.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return err
	}

	info := sector.Info
	printer.Fprintf(w, "sector: %d\n", uint64(info.SectorNumber))
	printer.Fprintf(w, "seal proof: %d\n", int64(info.SealProof))
	printer.Fprintf(w, "sealed cid: %s\n", info.SealedCID)
	printer.Fprintf(w, "deals: %v\n", info.DealIDs)
	printer.Fprintf(w, "activation: %d\n", int64(sector.ActivationEpoch))
	printer.Fprintf(w, "expiration: %d\n", int64(info.Expiration))
	printer.Fprintf(w, "deal weight: %s\n", sector.DealWeight)
	printer.Fprintf(w, "pledge: %s\n", sector.PledgeRequirement)
	if sector.DeclaredFault != nil {
		printer.Fprintf(w, "declared fault: %d+%d\n", int64(sector.DeclaredFault.DeclaredEpoch), int64(sector.DeclaredFault.Duration))
	}
	return nil
}

func printSectors(w io.Writer, bf bitfield.BitField) error {
	count, err := bf.Count()
	if err != nil {
		return err
	}
	printer.Fprintf(w, "%d sectors\n", count)
	return bf.ForEach(func(u uint64) error {
		_, err := fmt.Fprintln(w, u)
		return err
	})
}
