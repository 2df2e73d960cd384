package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/model"
	"github.com/wapi/api/internal/random"
	"github.com/wapi/api/internal/store"
)

type SizeReport struct {
	Size           int
	RandomCount    int64
	StaticBound    int
	LookupCount    int64
	DailyRemaining int64
}

// BoundMismatch reports whether the static random bound disagrees with the
// number of random-source rows (rows 1..N need bound N+1).
func (r SizeReport) BoundMismatch() bool {
	return int64(r.StaticBound) != r.RandomCount+1
}

type Report struct {
	Today   string
	Sizes   []SizeReport
	LastRun *model.SeedRun
}

func main() {
	strict := flag.Bool("strict", false, "Exit non-zero when random row counts disagree with the static bounds")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	s, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open word store: %v", err)
	}
	defer s.Close()

	report, err := buildReport(context.Background(), s, time.Now())
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	printReport(os.Stdout, report)

	if *strict {
		for _, sr := range report.Sizes {
			if sr.BoundMismatch() {
				s.Close()
				os.Exit(2)
			}
		}
	}
}

func buildReport(ctx context.Context, s store.Store, now time.Time) (*Report, error) {
	report := &Report{Today: model.DayKey(now)}

	for size := model.MinWordSize; size <= model.MaxWordSize; size++ {
		partition := strconv.Itoa(size)
		sr := SizeReport{Size: size, StaticBound: random.DefaultBounds[size]}

		var err error
		if sr.RandomCount, err = s.Count(ctx, model.TableRandom, partition); err != nil {
			return nil, err
		}
		if sr.LookupCount, err = s.Count(ctx, model.TableLookup, partition); err != nil {
			return nil, err
		}
		if sr.DailyRemaining, err = s.CountFrom(ctx, model.TableDaily, partition, report.Today); err != nil {
			return nil, err
		}
		report.Sizes = append(report.Sizes, sr)
	}

	run, found, err := s.LastSeedRun(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		report.LastRun = &run
	}

	return report, nil
}

func printReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Word store audit for %s\n\n", report.Today)
	fmt.Fprintf(w, "%-5s %10s %12s %10s %16s\n", "SIZE", "RANDOM", "STATIC BOUND", "LOOKUP", "DAILY REMAINING")
	for _, sr := range report.Sizes {
		note := ""
		if sr.BoundMismatch() {
			note = "  (bound mismatch)"
		}
		fmt.Fprintf(w, "%-5d %10d %12d %10d %16d%s\n",
			sr.Size, sr.RandomCount, sr.StaticBound, sr.LookupCount, sr.DailyRemaining, note)
	}

	fmt.Fprintln(w)
	if report.LastRun == nil {
		fmt.Fprintln(w, "No seed runs recorded")
		return
	}
	fmt.Fprintf(w, "Last seed run %s: start %s, tables %s, checksum %s\n",
		report.LastRun.ID, report.LastRun.StartDate, report.LastRun.Tables, report.LastRun.Checksum)
}
