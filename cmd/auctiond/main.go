// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/meterio/sealed-auction/api"
	"github.com/meterio/sealed-auction/chain"
	"github.com/meterio/sealed-auction/genesis"
	"github.com/meterio/sealed-auction/logdb"
	"github.com/meterio/sealed-auction/lvldb"
	"github.com/meterio/sealed-auction/meter"
	"github.com/meterio/sealed-auction/script"
	"github.com/meterio/sealed-auction/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auctiond"
	}
	return filepath.Join(home, ".auctiond")
}

func initLogger(verbosity int) {
	level := slog.LevelInfo
	switch verbosity {
	case 0:
		level = slog.LevelDebug
	case 2:
		level = slog.LevelWarn
	case 3:
		level = slog.LevelError
	}
	w := os.Stdout
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "auctiond",
		Usage:     "Sealed-timeline auction engine",
		Copyright: "2020 Meter Foundation <https://meter.io/>",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			startHeightFlag,
			durationFlag,
			beneficiaryFlag,
			genesisFlag,
			blockIntervalFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))

	dataDir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return err
	}

	kv, err := lvldb.New(filepath.Join(dataDir, "auction.db"), lvldb.Options{})
	if err != nil {
		return err
	}
	defer kv.Close()

	logDB, err := logdb.New(filepath.Join(dataDir, "logs.db"))
	if err != nil {
		return err
	}
	defer logDB.Close()

	ch, err := chain.New(kv, ctx.Uint64(blockIntervalFlag.Name))
	if err != nil {
		return err
	}

	stateCreator := state.NewCreator(kv)
	engine := script.NewScriptEngine(stateCreator)

	if path := ctx.String(genesisFlag.Name); path != "" {
		accounts, err := genesis.LoadAccounts(path)
		if err != nil {
			return err
		}
		st, err := stateCreator.NewState()
		if err != nil {
			return err
		}
		if err := genesis.Build(st, accounts); err != nil {
			return err
		}
	}

	st, err := stateCreator.NewState()
	if err != nil {
		return err
	}
	if st.GetAuctionConfig() == nil {
		beneficiary, err := meter.ParseAddress(ctx.String(beneficiaryFlag.Name))
		if err != nil {
			return fmt.Errorf("beneficiary: %v", err)
		}
		config, err := meter.NewAuctionConfig(
			uint32(ctx.Uint(startHeightFlag.Name)),
			uint32(ctx.Uint(durationFlag.Name)),
			beneficiary,
		)
		if err != nil {
			return err
		}
		if err := engine.DeployAuction(config); err != nil {
			return err
		}
	} else {
		slog.Info("auction already deployed", "config", st.GetAuctionConfig().ToString())
	}

	handler := api.New(stateCreator, ch, engine, logDB, ctx.String(apiCorsFlag.Name))
	srv := &http.Server{
		Addr:    ctx.String(apiAddrFlag.Name),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
