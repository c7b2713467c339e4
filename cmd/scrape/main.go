package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/fortuna/rinkside/internal/export"
	"github.com/fortuna/rinkside/internal/ingest/nhl"
)

const (
	outputFlag      = "output"
	startFlag       = "start"
	endFlag         = "end"
	concurrencyFlag = "concurrency"
	gamecenterFlag  = "gamecenter-base"
	statsFlag       = "stats-base"
	reportsFlag     = "reports-base"
	stdoutCLIName   = "-"
)

var semanticVersion = "v1.0.0"

func main() {
	var (
		outputLocation string
		startGameID    int64
		endGameID      int64
		concurrency    int
		gamecenterBase string
		statsBase      string
		reportsBase    string
	)

	app := &cli.App{
		Name:      "scrape",
		Usage:     "Assemble NHL play-by-play tables with on-ice skaters and write them as CSV",
		ArgsUsage: "[gameID ...]",
		Version:   semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        outputFlag,
				Aliases:     []string{"o"},
				Usage:       "The location to write the CSV result. Can be a file path or \"-\" (for stdout).",
				Value:       stdoutCLIName,
				Destination: &outputLocation,
			},
			&cli.Int64Flag{
				Name:        startFlag,
				Usage:       "First game ID of an inclusive range (use with --end instead of positional IDs)",
				Destination: &startGameID,
			},
			&cli.Int64Flag{
				Name:        endFlag,
				Usage:       "Last game ID of an inclusive range",
				Destination: &endGameID,
			},
			&cli.IntFlag{
				Name:        concurrencyFlag,
				Usage:       "How many games to assemble in parallel",
				Value:       4,
				Destination: &concurrency,
			},
			&cli.StringFlag{
				Name:        gamecenterFlag,
				Usage:       "Override the gamecenter API base URL",
				Destination: &gamecenterBase,
			},
			&cli.StringFlag{
				Name:        statsFlag,
				Usage:       "Override the stats API base URL",
				Destination: &statsBase,
			},
			&cli.StringFlag{
				Name:        reportsFlag,
				Usage:       "Override the HTML report base URL",
				Destination: &reportsBase,
			},
		},
		Action: func(cCtx *cli.Context) error {
			gameIDs, err := collectGameIDs(cCtx.Args().Slice(), startGameID, endGameID)
			if err != nil {
				return err
			}

			var outputWriter io.Writer = os.Stdout
			if outputLocation != stdoutCLIName {
				f, err := os.OpenFile(outputLocation, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
				if err != nil {
					return fmt.Errorf("failed to open output file: %w", err)
				}
				defer f.Close()
				outputWriter = f
			}

			return scrape(cCtx.Context, gameIDs, outputWriter, concurrency, gamecenterBase, statsBase, reportsBase)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// collectGameIDs merges positional IDs with an optional --start/--end range.
func collectGameIDs(args []string, start, end int64) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid game ID %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	if start > 0 || end > 0 {
		if start <= 0 || end < start {
			return nil, fmt.Errorf("range needs --start and --end with end >= start")
		}
		for id := start; id <= end; id++ {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no games requested: pass game IDs or --start/--end")
	}
	return ids, nil
}

func scrape(ctx context.Context, gameIDs []int64, w io.Writer, concurrency int, gamecenterBase, statsBase, reportsBase string) error {
	client := nhl.NewClient(
		nhl.WithBaseURLs(gamecenterBase, statsBase),
		nhl.WithReportsBase(reportsBase),
	)
	ingester := nhl.NewIngester(client, nhl.WithGameConcurrency(concurrency))

	table, failures := ingester.BuildGames(ctx, gameIDs)
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "game %d failed: %v\n", f.GameID, f.Err)
	}
	if table.Len() == 0 {
		return fmt.Errorf("no games could be assembled")
	}

	if err := export.WriteCSV(w, table); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d games failed", len(failures), len(gameIDs))
	}
	return nil
}
