package main

import (
	"strconv"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/tandemnet/tandemd/blockchain"
	"github.com/tandemnet/tandemd/chaincfg"
)

type configFlags struct {
	Testnet    bool   `long:"testnet" description:"Use the test network"`
	Simnet     bool   `long:"simnet" description:"Use the simulation test network"`
	Lane       string `long:"lane" default:"primary" description:"Lane to evaluate (primary or auxpow)"`
	TimeDiff   int64  `long:"timediff" description:"Seconds elapsed since the anchor block's parent"`
	HeightDiff int64  `long:"heightdiff" description:"Same-lane blocks mined since the anchor; enables the ASERT evaluation"`
	OldBits    string `long:"oldbits" description:"Compact target before a legacy retarget (hex or decimal)"`
	NewBits    string `long:"newbits" description:"Compact target after a legacy retarget; enables the transition check"`
	Height     int64  `long:"height" description:"Height of the block carrying --newbits"`
	Verbose    bool   `short:"v" long:"verbose" description:"Enable debug logging"`

	params  *chaincfg.Params
	lane    blockchain.Lane
	oldBits uint32
	newBits uint32
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if cfg.Testnet && cfg.Simnet {
		return nil, errors.New("--testnet and --simnet may not be combined")
	}
	cfg.params = &chaincfg.MainnetParams
	if cfg.Testnet {
		cfg.params = &chaincfg.TestnetParams
	}
	if cfg.Simnet {
		cfg.params = &chaincfg.SimnetParams
	}

	switch cfg.Lane {
	case "primary":
		cfg.lane = blockchain.LanePrimary
	case "auxpow":
		cfg.lane = blockchain.LaneAuxPow
	default:
		return nil, errors.Errorf("unknown lane %q, want primary or auxpow", cfg.Lane)
	}

	cfg.oldBits, err = parseBits(cfg.OldBits)
	if err != nil {
		return nil, errors.Wrap(err, "--oldbits")
	}
	cfg.newBits, err = parseBits(cfg.NewBits)
	if err != nil {
		return nil, errors.Wrap(err, "--newbits")
	}

	if cfg.HeightDiff <= 0 && cfg.newBits == 0 {
		return nil, errors.New("nothing to do: pass --heightdiff or --newbits")
	}

	return cfg, nil
}

// parseBits parses a compact target from its usual hex form (0x1d00ffff) or
// from decimal. An empty string is zero.
func parseBits(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	bits, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid compact target %q", s)
	}
	return uint32(bits), nil
}
