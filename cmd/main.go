package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brettbedarf/memns/config"
	"github.com/brettbedarf/memns/internal/util"
	"github.com/brettbedarf/memns/namespace"
	"github.com/brettbedarf/memns/requests"
	"github.com/brettbedarf/memns/security"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
	)
	flag.StringVar(&configPath, "config", "", "Path to config override file (.yaml, .yml or .json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes def file (.yaml, .yml or .json)")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.IntVar(&verbose, "verbose", 0,
		"Log verbosity level between 1 (error) and 5 (trace). Overrides the config file; default is 3 (info).")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	// Load config before the logger so the file can set the level
	cfg := config.NewDefaultConfig()
	var cfgErr error
	if configPath != "" {
		var loaded *config.Config
		if loaded, cfgErr = config.NewConfigFromFile(configPath); cfgErr == nil {
			cfg = loaded
		}
	}
	if verbose > 0 {
		cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
	}

	util.InitializeLogger(cfg.LogLvl, nil)
	logger := util.GetLogger("main")
	if cfgErr != nil {
		logger.Fatal().Err(cfgErr).Str("config", configPath).Msg("Failed to load config file")
	}
	logger.Info().Str("config", configPath).Str("nodes", nodesDef).Msg("Namespace initializing")

	supplier, err := security.FromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("supplier", cfg.RootSupplier).Msg("Failed to create root descriptor supplier")
	}
	table, err := namespace.NewTable(cfg, supplier)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create namespace")
	}

	// Load node definitions
	if nodesDef != "" {
		reqs, err := requests.LoadNodeRequestsFile(nodesDef, cfg)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to load nodes file")
		}
		logger.Debug().Int("requests", len(reqs)).Msg("Nodes file loaded successfully")

		added, err := table.Seed(reqs)
		if err != nil {
			logger.Warn().Err(err).Msg("Some node requests were rejected")
		}
		logger.Info().Int("added", added).Int("requested", len(reqs)).Msg("Added new nodes to namespace")
	} else {
		logger.Warn().Msg("No nodes file provided")
	}

	if err := table.CheckInvariants(); err != nil {
		logger.Fatal().Err(err).Msg("Namespace is inconsistent")
	}

	printTree(table)
}

// printTree writes one line per node to stdout, indented by depth
func printTree(table *namespace.Table) {
	table.Walk(namespace.RootPath, func(n *namespace.Node) bool {
		depth := 0
		if p := n.Path(); p != namespace.RootPath {
			depth = strings.Count(p, "/")
		}
		kind := "f"
		switch {
		case n.IsDirectory():
			kind = "d"
		case n.IsStream():
			kind = "s"
		}
		fmt.Fprintf(os.Stdout, "%s%s %-4d 0x%04x %s\n",
			strings.Repeat("  ", depth), kind, n.FileIndex(), uint32(n.Attributes()), n.Path())
		return true
	})
}
