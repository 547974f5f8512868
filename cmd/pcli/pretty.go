package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/urfave/cli/v2"
)

type sszUnmarshaler interface {
	UnmarshalSSZ(buf []byte) error
}

// prettyTypes maps the pretty subcommands to the container they decode.
var prettyTypes = []struct {
	name  string
	usage string
	new   func() sszUnmarshaler
}{
	{"attestation", "Pretty print a Attestation", func() sszUnmarshaler { return &ethpb.Attestation{} }},
	{"attestation_data", "Pretty print a AttestationData", func() sszUnmarshaler { return &ethpb.AttestationData{} }},
	{"pending_attestation", "Pretty print a PendingAttestation", func() sszUnmarshaler { return &ethpb.PendingAttestation{} }},
	{"block", "Pretty print a BeaconBlock", func() sszUnmarshaler { return &ethpb.BeaconBlock{} }},
	{"block_body", "Pretty print a BlockBody", func() sszUnmarshaler { return &ethpb.BeaconBlockBody{} }},
	{"block_header", "Pretty print a BlockHeader", func() sszUnmarshaler { return &ethpb.BeaconBlockHeader{} }},
	{"checkpoint", "Pretty print a Checkpoint", func() sszUnmarshaler { return &ethpb.Checkpoint{} }},
	{"deposit", "Pretty print a Deposit", func() sszUnmarshaler { return &ethpb.Deposit{} }},
	{"deposit_data", "Pretty print a DepositData", func() sszUnmarshaler { return &ethpb.DepositData{} }},
	{"eth1_data", "Pretty print a Eth1Data", func() sszUnmarshaler { return &ethpb.Eth1Data{} }},
	{"validator", "Pretty print a Validator", func() sszUnmarshaler { return &ethpb.Validator{} }},
	{"state", "Pretty print a BeaconState", func() sszUnmarshaler { return &ethpb.BeaconState{} }},
}

func prettyCommand() *cli.Command {
	var sszPath string
	subcommands := make([]*cli.Command, 0, len(prettyTypes))
	for _, pt := range prettyTypes {
		pt := pt
		subcommands = append(subcommands, &cli.Command{
			Name:  pt.name,
			Usage: pt.usage,
			Action: func(c *cli.Context) error {
				return prettyPrint(c.App.Writer, sszPath, pt.new())
			},
		})
	}
	return &cli.Command{
		Name:    "pretty",
		Aliases: []string{"p"},
		Usage:   "pretty-print SSZ data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "ssz-path",
				Usage:       "Path to file(ssz)",
				Required:    true,
				Destination: &sszPath,
			},
		},
		Subcommands: subcommands,
	}
}

// dataFetcher fetches and unmarshals data from file to provided data structure.
func dataFetcher(fPath string, data sszUnmarshaler) error {
	rawFile, err := os.ReadFile(fPath) // #nosec G304
	if err != nil {
		return err
	}
	return data.UnmarshalSSZ(rawFile)
}

func prettyPrint(w io.Writer, sszPath string, data sszUnmarshaler) error {
	if err := dataFetcher(sszPath, data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, pretty.Sprint(data))
	return err
}
