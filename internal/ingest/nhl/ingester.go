package nhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/rinkside/internal/pbp"
	"github.com/fortuna/rinkside/pkg/metrics"
)

const defaultGameConcurrency = 4

// DocumentCache caches raw per-game documents between runs. A miss returns
// (nil, nil). Implementations must be safe for concurrent use.
type DocumentCache interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	SetDocument(ctx context.Context, key string, body []byte) error
}

// Ingester fetches a game's documents and assembles the normalized
// play-by-play table.
type Ingester struct {
	client      *Client
	cache       DocumentCache
	concurrency int
}

// IngesterOption adjusts ingester construction.
type IngesterOption func(*Ingester)

// WithCache enables document caching.
func WithCache(cache DocumentCache) IngesterOption {
	return func(ing *Ingester) { ing.cache = cache }
}

// WithGameConcurrency caps in-flight games during multi-game builds.
func WithGameConcurrency(n int) IngesterOption {
	return func(ing *Ingester) {
		if n > 0 {
			ing.concurrency = n
		}
	}
}

// NewIngester creates an ingester over the given client.
func NewIngester(client *Client, opts ...IngesterOption) *Ingester {
	ing := &Ingester{client: client, concurrency: defaultGameConcurrency}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// BuildGame fetches one game's documents and assembles its table. Missing
// boxscore or shift data degrades the output (unresolved positions, empty
// on-ice columns) but does not fail the game; only a missing play-by-play
// document is fatal.
func (ing *Ingester) BuildGame(ctx context.Context, gameID int64) (*pbp.Table, error) {
	started := time.Now()

	pbpDoc, boxDoc, shiftDoc, err := ing.fetchDocuments(ctx, gameID)
	if err != nil {
		metrics.RecordGameFailed()
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}

	roster := ResolveRoster(pbpDoc, boxDoc)
	events := NormalizeEvents(pbpDoc, roster)
	metrics.RecordEventsNormalized(len(events))

	table := pbp.NewTable(events)
	pbp.ApplyRunningScore(table.Rows)

	intervals := ParseShiftChart(shiftDoc, roster)
	if len(intervals) == 0 {
		intervals = ing.reportFallback(ctx, gameID, roster)
	}
	if len(intervals) == 0 {
		log.Printf("[nhl-ingester] game %d: %v, emitting table without on-ice columns", gameID, ErrNoShiftData)
	} else {
		assigner := pbp.NewAssigner(pbp.NewShiftIndex(intervals), roster.Goalies)
		for _, ev := range table.Rows {
			assigner.Assign(ev)
		}
	}

	table.ResolveNames(roster)

	metrics.RecordGameProcessed()
	metrics.RecordAssemblyDuration(time.Since(started).Seconds())
	log.Printf("[nhl-ingester] game %d: %d events, %d shift intervals in %v",
		gameID, table.Len(), len(intervals), time.Since(started).Round(time.Millisecond))
	return table, nil
}

// fetchDocuments runs the three per-game fetches concurrently. The boxscore
// and shift chart are best-effort; their errors are logged and nil documents
// returned.
func (ing *Ingester) fetchDocuments(ctx context.Context, gameID int64) (*PlayByPlayDocument, *BoxscoreDocument, *ShiftChartDocument, error) {
	var (
		wg       sync.WaitGroup
		pbpDoc   *PlayByPlayDocument
		boxDoc   *BoxscoreDocument
		shiftDoc *ShiftChartDocument
		pbpErr   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		pbpDoc, pbpErr = fetchCached(ctx, ing.cache, cacheKey(gameID, "pbp"), func() (*PlayByPlayDocument, error) {
			return ing.client.FetchPlayByPlay(ctx, gameID)
		})
	}()
	go func() {
		defer wg.Done()
		doc, err := fetchCached(ctx, ing.cache, cacheKey(gameID, "boxscore"), func() (*BoxscoreDocument, error) {
			return ing.client.FetchBoxscore(ctx, gameID)
		})
		if err != nil {
			log.Printf("[nhl-ingester] game %d: boxscore unavailable: %v", gameID, err)
			return
		}
		boxDoc = doc
	}()
	go func() {
		defer wg.Done()
		doc, err := fetchCached(ctx, ing.cache, cacheKey(gameID, "shifts"), func() (*ShiftChartDocument, error) {
			return ing.client.FetchShiftChart(ctx, gameID)
		})
		if err != nil {
			log.Printf("[nhl-ingester] game %d: shift chart unavailable: %v", gameID, err)
			return
		}
		shiftDoc = doc
	}()
	wg.Wait()

	if pbpErr != nil {
		return nil, nil, nil, pbpErr
	}
	return pbpDoc, boxDoc, shiftDoc, nil
}

// reportFallback builds intervals from the published HTML time-on-ice reports
// when the shift-chart API had nothing usable.
func (ing *Ingester) reportFallback(ctx context.Context, gameID int64, roster *pbp.Roster) []pbp.Interval {
	season := ReportSeason(gameID)
	visitorFile, homeFile := ReportFiles(gameID)

	var intervals []pbp.Interval
	for _, src := range []struct {
		file string
		team string
	}{
		{visitorFile, roster.Away.Abbrev},
		{homeFile, roster.Home.Abbrev},
	} {
		html, err := ing.client.FetchShiftReport(ctx, season, src.file)
		if err != nil {
			log.Printf("[nhl-ingester] game %d: shift report %s unavailable: %v", gameID, src.file, err)
			continue
		}
		parsed, err := ParseShiftReport(html, src.team, roster)
		if err != nil {
			log.Printf("[nhl-ingester] game %d: shift report %s: %v", gameID, src.file, err)
			continue
		}
		intervals = append(intervals, parsed...)
	}
	if len(intervals) > 0 {
		log.Printf("[nhl-ingester] game %d: using HTML report fallback, %d intervals", gameID, len(intervals))
	}
	return intervals
}

// fetchCached reads a document through the cache: hit decodes the cached
// body, miss fetches and stores it. Cache failures degrade to a plain fetch.
func fetchCached[T any](ctx context.Context, cache DocumentCache, key string, fetch func() (*T, error)) (*T, error) {
	if cache != nil {
		body, err := cache.GetDocument(ctx, key)
		if err != nil {
			log.Printf("[nhl-ingester] cache read %s: %v", key, err)
		} else if body != nil {
			var doc T
			if err := json.Unmarshal(body, &doc); err == nil {
				return &doc, nil
			}
			log.Printf("[nhl-ingester] cache entry %s corrupt, refetching", key)
		}
	}

	doc, err := fetch()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if body, err := json.Marshal(doc); err == nil {
			if err := cache.SetDocument(ctx, key, body); err != nil {
				log.Printf("[nhl-ingester] cache write %s: %v", key, err)
			}
		}
	}
	return doc, nil
}

func cacheKey(gameID int64, doc string) string {
	return fmt.Sprintf("pbp:doc:%d:%s", gameID, doc)
}

// GameError pairs a failed game id with its error.
type GameError struct {
	GameID int64
	Err    error
}

func (e GameError) Error() string {
	return fmt.Sprintf("game %d: %v", e.GameID, e.Err)
}

func (e GameError) Unwrap() error { return e.Err }

// BuildGames assembles several games with a bounded worker pool and
// concatenates the successful tables in input order. Failed games are
// reported individually; one bad id never aborts the batch.
func (ing *Ingester) BuildGames(ctx context.Context, gameIDs []int64) (*pbp.Table, []GameError) {
	type result struct {
		table *pbp.Table
		err   error
	}

	results := make([]result, len(gameIDs))
	sem := make(chan struct{}, ing.concurrency)
	var wg sync.WaitGroup

	for i, gameID := range gameIDs {
		if ctx.Err() != nil {
			results[i] = result{err: ctx.Err()}
			continue
		}
		wg.Add(1)
		go func(i int, gameID int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			table, err := ing.BuildGame(ctx, gameID)
			results[i] = result{table: table, err: err}
		}(i, gameID)
	}
	wg.Wait()

	combined := pbp.NewTable(nil)
	var failures []GameError
	for i, res := range results {
		if res.err != nil {
			if !errors.Is(res.err, context.Canceled) {
				log.Printf("[nhl-ingester] %v", res.err)
			}
			failures = append(failures, GameError{GameID: gameIDs[i], Err: res.err})
			continue
		}
		combined.Append(res.table)
	}
	return combined, failures
}
