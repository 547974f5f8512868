package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/blockchain"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/db"
	"github.com/prysmaticlabs/gasper/beacon-chain/db/kv"
	"github.com/prysmaticlabs/gasper/cmd/flags"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/monitoring/backup"
	"github.com/prysmaticlabs/gasper/monitoring/prometheus"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/runtime"
	"github.com/prysmaticlabs/gasper/runtime/interop"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	numValidatorsFlag = &cli.Uint64Flag{
		Name:  "num-validators",
		Usage: "Number of validators in the deterministic genesis state",
		Value: 64,
	}
	numEpochsFlag = &cli.Uint64Flag{
		Name:  "num-epochs",
		Usage: "Number of epochs of blocks to generate on every fork",
		Value: 4,
	}
	participationFlag = &cli.Uint64Flag{
		Name:  "participation",
		Usage: "Percentage of active validators voting in every block",
		Value: 100,
	}
	forksFlag = &cli.Uint64Flag{
		Name:  "forks",
		Usage: "Number of forks diverging at genesis, applied concurrently",
		Value: 1,
	}
	clearDBFlag = &cli.BoolFlag{
		Name:  "clear-db",
		Usage: "Removes the database in the data directory before the simulation",
	}
	graphOutFlag = &cli.StringFlag{
		Name:  "graph-out",
		Usage: "Writes the block tree in graphviz dot format to this path",
	}
	httpAddrFlag = &cli.StringFlag{
		Name:  "http-addr",
		Usage: "Serves /metrics, /heads and /tree on this address after the simulation until interrupted",
	}
)

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Generates forks from a deterministic genesis and applies them through the fork-head service",
		Flags: []cli.Flag{
			flags.DataDirFlag,
			numValidatorsFlag,
			numEpochsFlag,
			participationFlag,
			forksFlag,
			clearDBFlag,
			graphOutFlag,
			httpAddrFlag,
		},
		Action: func(c *cli.Context) error {
			return simulate(c.Context, &simulateConfig{
				dataDir:       c.String(flags.DataDirFlag.Name),
				numValidators: c.Uint64(numValidatorsFlag.Name),
				numEpochs:     c.Uint64(numEpochsFlag.Name),
				participation: c.Uint64(participationFlag.Name),
				forks:         c.Uint64(forksFlag.Name),
				clearDB:       c.Bool(clearDBFlag.Name),
				graphOut:      c.String(graphOutFlag.Name),
				httpAddr:      c.String(httpAddrFlag.Name),
			})
		},
	}
}

type simulateConfig struct {
	dataDir       string
	numValidators uint64
	numEpochs     uint64
	participation uint64
	forks         uint64
	clearDB       bool
	graphOut      string
	httpAddr      string
}

func openDB(ctx context.Context, dataDir string, clear bool) (db.Database, error) {
	beaconDB, err := db.NewDB(ctx, dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}
	if !clear {
		return beaconDB, nil
	}
	log.WithField("path", dataDir).Warn("Removing database")
	if err := beaconDB.ClearDB(); err != nil {
		return nil, errors.Wrap(err, "could not clear database")
	}
	// Cached advanced states belong to the removed chain.
	transition.SkipSlotCache.Clear()
	if err := beaconDB.Close(); err != nil {
		return nil, err
	}
	return db.NewDB(ctx, dataDir)
}

func simulate(ctx context.Context, cfg *simulateConfig) error {
	if cfg.dataDir == "" {
		return errors.New("no data directory")
	}
	if cfg.forks == 0 {
		return errors.New("at least one fork is required")
	}
	genesis, _, err := interop.GenerateGenesisState(ctx, 0, cfg.numValidators)
	if err != nil {
		return errors.Wrap(err, "could not generate genesis state")
	}
	beaconDB, err := openDB(ctx, cfg.dataDir, cfg.clearDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := beaconDB.Close(); err != nil {
			log.WithError(err).Error("Could not close database")
		}
	}()

	registry := runtime.NewServiceRegistry()
	svc, err := blockchain.NewService(ctx, blockchain.WithDatabase(beaconDB), blockchain.WithGenesisState(genesis))
	if err != nil {
		return err
	}
	if err := registry.RegisterService(svc); err != nil {
		return err
	}
	defer registry.StopAll()
	svc.Start()
	if err := registry.Healthy(); err != nil {
		return err
	}
	genesisRoot := svc.GenesisBlockRoot()
	log.WithField("genesisRoot", fmt.Sprintf("%#x", genesisRoot[:8])).Info("Chain service started")

	numBlocks := cfg.numEpochs * uint64(params.BeaconConfig().SlotsPerEpoch)
	forks := make([][]*ethpb.BeaconBlock, cfg.forks)
	for i := range forks {
		conf := interop.DefaultBlockGenConfig()
		conf.Participation = cfg.participation
		conf.Graffiti = [32]byte{'f', 'o', 'r', 'k', byte(i)}
		blks, _, err := interop.GenerateChain(ctx, genesis, numBlocks, conf)
		if err != nil {
			return errors.Wrapf(err, "could not generate fork %d", i)
		}
		forks[i] = blks
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, fork := range forks {
		fork := fork
		g.Go(func() error {
			for _, b := range fork {
				if _, err := svc.ReceiveBlock(gctx, b); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "could not apply blocks")
	}

	heads, err := svc.HeadRoots(ctx)
	if err != nil {
		return err
	}
	for _, h := range heads {
		res, err := svc.ChainFinality(ctx, h)
		if err != nil {
			return err
		}
		j, _ := res.LatestJustified()
		f, _ := res.LatestFinalized()
		log.WithFields(logrus.Fields{
			"head":           fmt.Sprintf("%#x", h[:8]),
			"justifiedEpoch": j.Epoch,
			"finalizedEpoch": f.Epoch,
			"justifiedCount": len(res.JustifiedCheckpoints()),
		}).Info("Chain finality")
	}
	fields := logrus.Fields{
		"blocks":   humanize.Comma(int64(numBlocks * cfg.forks)),
		"forks":    len(heads),
		"duration": time.Since(start).Round(time.Millisecond),
	}
	if info, err := os.Stat(path.Join(cfg.dataDir, kv.DatabaseFileName)); err == nil {
		fields["dbSize"] = humanize.Bytes(uint64(info.Size()))
	}
	log.WithFields(fields).Info("Simulation finished")

	if cfg.graphOut != "" {
		graph, err := svc.TreeGraph(ctx)
		if err != nil {
			return errors.Wrap(err, "could not render block tree")
		}
		if err := os.WriteFile(cfg.graphOut, []byte(graph.String()), 0600); err != nil {
			return errors.Wrap(err, "could not write block tree")
		}
		log.WithField("path", cfg.graphOut).Info("Wrote block tree")
	}
	if cfg.httpAddr != "" {
		return serve(ctx, cfg.httpAddr, registry, svc, beaconDB)
	}
	return nil
}

// serve registers the prometheus service with the chain pages and the database
// backup hook, and blocks until the process is interrupted or ctx is done.
func serve(ctx context.Context, addr string, registry *runtime.ServiceRegistry, svc *blockchain.Service, beaconDB db.Database) error {
	promSvc := prometheus.NewService(
		addr,
		registry,
		prometheus.Handler{Path: "/heads", Handler: svc.HeadsHandler},
		prometheus.Handler{Path: "/tree", Handler: svc.TreeHandler},
		prometheus.Handler{Path: "/db/backup", Handler: backup.Handler(beaconDB, "")},
	)
	if err := registry.RegisterService(promSvc); err != nil {
		return err
	}
	promSvc.Start()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.WithField("address", addr).Info("Serving metrics and chain pages, interrupt to exit")
	<-ctx.Done()
	return registry.Healthy()
}
