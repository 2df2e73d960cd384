package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/loader"
	"github.com/wapi/api/internal/model"
	"github.com/wapi/api/internal/store"
)

var (
	filePath  string
	tablesStr string
	batchSize int
	force     bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a word list into the word tables",
	Long: `Reads a word list, keeps the 5 to 7 letter words, shuffles each length
and writes the random, lookup and daily tables.

The daily table maps each date from today onward to one word per length.
Seeding it again with a new shuffle reassigns every date, so a second run
that includes the daily table is refused unless --force is given.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last seed run",
	RunE:  runStatus,
}

func init() {
	rootCmd.Flags().StringVar(&filePath, "file", "data/words.json", "Path to word list (.json array or one word per line)")
	rootCmd.Flags().StringVar(&tablesStr, "tables", strings.Join(model.Tables, ","), "Comma-separated tables to write")
	rootCmd.Flags().IntVar(&batchSize, "batch", loader.DefaultBatchSize, "Words per atomic batch write")
	rootCmd.Flags().BoolVar(&force, "force", false, "Rewrite the daily table even if it was seeded before")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	rootCmd.AddCommand(statusCmd)
}

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store.Open(cfg)
}

func runSeed(cmd *cobra.Command, args []string) error {
	var tables []string
	for _, t := range strings.Split(tablesStr, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}

	words, err := loader.ReadWordList(filePath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	log.Printf("Loaded %d words from %s", len(words), filePath)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := loader.New(s).Run(context.Background(), words, loader.Options{
		Tables:    tables,
		BatchSize: batchSize,
		Force:     force,
		DryRun:    dryRun,
	})
	if errors.Is(err, loader.ErrAlreadySeeded) {
		return fmt.Errorf("%w; pass --force to reassign dates, or --tables without %s", err, model.TableDaily)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Previous != nil {
		fmt.Fprintf(out, "Previous run %s on %s, same word list: %t\n",
			result.Previous.ID, result.Previous.StartDate, result.ChecksumMatches())
	}

	sizes := make([]int, 0, len(result.Counts))
	for size := range result.Counts {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		fmt.Fprintf(out, "Size %d: %d words\n", size, result.Counts[size])
	}

	if dryRun {
		fmt.Fprintf(out, "[DRY RUN] Would write tables %s starting %s\n", result.Run.Tables, result.Run.StartDate)
		return nil
	}

	fmt.Fprintf(out, "Seeding complete. Run %s wrote %d records (checksum %s)\n",
		result.Run.ID, result.Written, result.Run.Checksum)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	run, found, err := s.LastSeedRun(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !found {
		fmt.Fprintln(out, "No seed runs recorded")
		return nil
	}

	fmt.Fprintf(out, "Run:        %s\n", run.ID)
	fmt.Fprintf(out, "Created:    %s\n", run.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Start date: %s\n", run.StartDate)
	fmt.Fprintf(out, "Tables:     %s\n", run.Tables)
	fmt.Fprintf(out, "Counts:     %s\n", run.Counts)
	fmt.Fprintf(out, "Checksum:   %s\n", run.Checksum)
	return nil
}
