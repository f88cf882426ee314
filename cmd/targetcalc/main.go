// targetcalc evaluates tandem difficulty retargets offline: it computes the
// ASERT target for a given schedule position and checks proposed legacy
// transitions, without needing chain state.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tandemnet/tandemd/blockchain"
	"github.com/tandemnet/tandemd/infrastructure/logger"
	"github.com/tandemnet/tandemd/util/difficulty"
	"github.com/tandemnet/tandemd/util/panics"
	"github.com/tandemnet/tandemd/version"
)

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	initLog(cfg.Verbose)

	log.Infof("targetcalc version %s, network %s, lane %s",
		version.Version(), cfg.params.Name, cfg.lane)

	if cfg.HeightDiff > 0 {
		anchor := cfg.params.ASERTAnchor
		bits := anchor.BitsLegacy
		spacing := int64(cfg.params.TargetTimePerBlock / time.Second)
		if cfg.lane == blockchain.LaneAuxPow {
			bits = anchor.BitsAuxPow
			spacing = int64(cfg.params.TargetTimePerBlockAuxPow / time.Second)
		}

		nextTarget := blockchain.CalculateASERT(difficulty.CompactToBig(bits),
			spacing, cfg.TimeDiff, cfg.HeightDiff, cfg.params.PowMax,
			int64(cfg.params.ASERTHalfLife/time.Second))

		log.Debugf("anchor bits %08x, spacing %ds, deviation %ds", bits,
			spacing, cfg.TimeDiff-spacing*cfg.HeightDiff)
		fmt.Printf("next target: %064x\n", nextTarget)
		fmt.Printf("next bits:   0x%08x\n", difficulty.BigToCompact(nextTarget))
	}

	if cfg.newBits != 0 {
		permitted := blockchain.PermittedDifficultyTransition(cfg.params,
			cfg.Height, cfg.oldBits, cfg.newBits)
		fmt.Printf("transition 0x%08x -> 0x%08x at height %d permitted: %t\n",
			cfg.oldBits, cfg.newBits, cfg.Height, permitted)
	}

	logger.BackendLogs.Close()
}

func initLog(verbose bool) {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	}
	err := logger.BackendLogs.AddLogWriter(os.Stderr, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log writer: %s\n", err)
		os.Exit(1)
	}
	err = logger.BackendLogs.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting logger: %s\n", err)
		os.Exit(1)
	}
	logger.SetLogLevels(level)
}
