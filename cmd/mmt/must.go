// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mmt/cmd/mmt/httpserver"
	"github.com/vechain/mmt/genesis"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/logdb"
	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/metrics"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/runtime"
	"github.com/vechain/mmt/state"
)

var genesisIDKey = []byte("genesis-id")

func initLogger(ctx *cli.Context) {
	log.SetDefault(log.NewHandler(os.Stderr, ctx.Int(verbosityFlag.Name), ctx.Bool(jsonLogsFlag.Name)))
}

// initMetrics enables prometheus metrics and starts the exposition server.
// The returned func stops the server.
func initMetrics(ctx *cli.Context) (func(), error) {
	if !ctx.Bool(enableMetricsFlag.Name) {
		return func() {}, nil
	}
	metrics.InitializePrometheusMetrics()
	srv, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "start metrics server")
	}
	logger.Info("metrics server started", "url", srv.URL())
	return srv.Close, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.LoadCustomGenesis(path)
	if err != nil {
		return nil, err
	}
	return genesis.NewCustomNet(gen)
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return "", err
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

// ledger bundles the databases and the runtime of one instance.
type ledger struct {
	gene   *genesis.Genesis
	dir    string
	mainDB *lvldb.LevelDB
	logDB  *logdb.LogDB
	stater *state.Stater
	rt     *runtime.Runtime
}

func (l *ledger) Close() {
	if l.rt != nil {
		l.rt.Close()
	}
	if l.logDB != nil {
		logger.Debug("closing log database...")
		l.logDB.Close()
	}
	if l.mainDB != nil {
		if stats, err := l.mainDB.Stats(); err == nil {
			logger.Debug("closing main database...", "reads", stats.Reads, "writes", stats.Writes, "compactions", stats.Compactions)
		}
		l.mainDB.Close()
	}
}

// openLedger opens the instance of the selected genesis, building the genesis
// state on first use. An empty dir opens an in-memory instance.
func openLedger(gene *genesis.Genesis, dir string) (l *ledger, err error) {
	l = &ledger{gene: gene, dir: dir}
	defer func() {
		if err != nil {
			l.Close()
		}
	}()

	if dir == "" {
		l.dir = "Memory"
		if l.mainDB, err = lvldb.NewMem(); err != nil {
			return nil, errors.Wrap(err, "open main database")
		}
		if l.logDB, err = logdb.NewMem(); err != nil {
			return nil, errors.Wrap(err, "open log database")
		}
	} else {
		if l.mainDB, err = lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
			CacheSize:              128,
			OpenFilesCacheCapacity: 256,
		}); err != nil {
			return nil, errors.Wrap(err, "open main database")
		}
		if l.logDB, err = logdb.New(filepath.Join(dir, "logs.db")); err != nil {
			return nil, errors.Wrap(err, "open log database")
		}
	}

	l.stater = state.NewStater(l.mainDB)
	if err = initGenesis(gene, l.mainDB, l.stater); err != nil {
		return nil, err
	}
	if l.rt, err = runtime.New(context.Background(), l.stater, l.logDB); err != nil {
		return nil, err
	}
	return l, nil
}

func initGenesis(gene *genesis.Genesis, mainDB *lvldb.LevelDB, stater *state.Stater) error {
	stored, err := mainDB.Get(genesisIDKey)
	if err != nil && !mainDB.IsNotFound(err) {
		return errors.Wrap(err, "read genesis id")
	}
	if stored != nil {
		if id := mmt.BytesToBytes32(stored); id != gene.ID() {
			return fmt.Errorf("genesis mismatch: data dir has %v, selected %v", id, gene.ID())
		}
		return nil
	}

	if _, err := gene.Build(stater); err != nil {
		return errors.Wrap(err, "build genesis")
	}
	if err := mainDB.Put(genesisIDKey, gene.ID().Bytes()); err != nil {
		return errors.Wrap(err, "write genesis id")
	}
	logger.Info("genesis built", "id", gene.ID(), "name", gene.Name())
	return nil
}

// openInstance opens the on-disk instance selected by the flags.
func openInstance(ctx *cli.Context) (*ledger, error) {
	gene, err := selectGenesis(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, err
	}
	return openLedger(gene, dir)
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch goruntime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.mmt")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.mmt")
		default:
			return filepath.Join(home, ".org.vechain.mmt")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
