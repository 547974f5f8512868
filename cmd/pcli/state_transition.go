package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/d4l3k/messagediff.v1"
)

func stateTransitionCommand() *cli.Command {
	var blockPath string
	var preStatePath string
	var expectedPostStatePath string
	return &cli.Command{
		Name:     "state-transition",
		Category: "state-transition",
		Usage:    "Subcommand to run manual state transitions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "block-path",
				Usage:       "Path to block file(ssz)",
				Destination: &blockPath,
			},
			&cli.StringFlag{
				Name:        "pre-state-path",
				Usage:       "Path to pre state file(ssz)",
				Destination: &preStatePath,
			},
			&cli.StringFlag{
				Name:        "expected-post-state-path",
				Usage:       "Path to expected post state file(ssz)",
				Destination: &expectedPostStatePath,
			},
		},
		Action: func(c *cli.Context) error {
			reader := bufio.NewReader(c.App.Reader)
			var err error
			if blockPath == "" {
				if blockPath, err = promptPath(reader, "Block"); err != nil {
					return err
				}
			}
			if preStatePath == "" {
				if preStatePath, err = promptPath(reader, "Pre State"); err != nil {
					return err
				}
			}
			return runStateTransition(c.Context, blockPath, preStatePath, expectedPostStatePath)
		},
	}
}

func promptPath(reader *bufio.Reader, what string) (string, error) {
	log.Infof("%s path not provided for state transition. Please provide path", what)
	text, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if text = strings.TrimSpace(text); text == "" {
		return "", errors.Errorf("empty %s path given", strings.ToLower(what))
	}
	return text, nil
}

func runStateTransition(ctx context.Context, blockPath, preStatePath, expectedPostStatePath string) error {
	block := &ethpb.BeaconBlock{}
	if err := dataFetcher(blockPath, block); err != nil {
		return errors.Wrap(err, "could not read block")
	}
	blkRoot, err := block.HashTreeRoot()
	if err != nil {
		return err
	}
	preState := &ethpb.BeaconState{}
	if err := dataFetcher(preStatePath, preState); err != nil {
		return errors.Wrap(err, "could not read pre state")
	}
	stateObj, err := state.InitializeFromProtoUnsafe(preState)
	if err != nil {
		return err
	}
	preStateRoot, err := stateObj.HashTreeRoot(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"blockSlot":    fmt.Sprintf("%d", block.Slot),
		"preStateSlot": fmt.Sprintf("%d", stateObj.Slot()),
	}).Infof(
		"Performing state transition with a block root of %#x and pre state root of %#x",
		blkRoot,
		preStateRoot,
	)
	postState, err := transition.ExecuteStateTransition(ctx, stateObj, block)
	if err != nil {
		return err
	}
	postRoot, err := postState.HashTreeRoot(ctx)
	if err != nil {
		return err
	}
	log.Infof("Finished state transition with post state root of %#x", postRoot)

	// Diff the state if a post state is provided.
	if expectedPostStatePath != "" {
		expectedState := &ethpb.BeaconState{}
		if err := dataFetcher(expectedPostStatePath, expectedState); err != nil {
			return errors.Wrap(err, "could not read expected post state")
		}
		expectedRoot, err := expectedState.HashTreeRoot()
		if err != nil {
			return err
		}
		if expectedRoot != postRoot {
			diff, _ := messagediff.PrettyDiff(expectedState, postState.ToProto())
			log.Errorf("Derived state differs from provided post state: %s", diff)
		}
	}
	return nil
}
