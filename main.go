// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/programmerraja/englishMate/internal/cmd"
	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/dictionary"
	"github.com/programmerraja/englishMate/internal/store"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "englishmate: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "englishmate: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var kv store.KVStore

	switch cfg.Storage {
	case "sqlite":
		// If SQLite fails (missing dir, corrupted file, permissions),
		// fall back to in-memory so the tool stays usable without
		// persistence.
		path := cfg.DBPath
		if path == "" {
			path = store.DefaultDBPath()
		}
		s, err := store.OpenSQLiteStore(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open SQLite database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			kv = store.NewMemoryStore()
			break
		}
		kv = s

	case "memory":
		kv = store.NewMemoryStore()

	default:
		fmt.Fprintf(os.Stderr, "englishmate: unknown storage backend %q (choose sqlite or memory)\n", cfg.Storage)
		os.Exit(1)
	}
	defer kv.Close()

	docs := vocab.New(kv, log)
	dict := dictionary.NewClient(log)

	root := cmd.NewRootCmd(cfg, docs, dict, log)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a stderr logger so command output on stdout stays
// clean for piping.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
