package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbund/cse2331-linter/internal/config"
	"github.com/mbund/cse2331-linter/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the preprocessor output cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and size",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cache entries",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*storage.DB, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(baseDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(baseDir, newLogger(cfg))
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	entries, bytes, err := db.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("Cache: %s\n", db.Path())
	fmt.Printf("Entries: %d\n", entries)
	fmt.Printf("Output bytes: %d\n", bytes)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	removed, err := db.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cache entries\n", removed)
	return nil
}
