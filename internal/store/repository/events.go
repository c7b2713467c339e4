// Package repository provides data access over the store's tables.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/rinkside/internal/pbp"
	"github.com/fortuna/rinkside/internal/store"
)

// EventRepository handles play-by-play row persistence.
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// ReplaceGame stores a game's rows atomically: any previous rows for the game
// are deleted and the new table inserted in one transaction, so readers never
// observe a half-written game.
func (r *EventRepository) ReplaceGame(ctx context.Context, gameID int64, table *pbp.Table) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace game %d: %w", gameID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pbp_events WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("delete game %d rows: %w", gameID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pbp_events (
			game_id, sort_order, period, event_tc, event,
			time_remaining, time_elapsed, strength, detail, ev_team,
			p1_id, p1_name, p2_id, p2_name, p3_id, p3_name,
			x_coord, y_coord, home_skaters, away_skaters,
			home_score, away_score, home_team, away_team,
			away_on_ice, home_on_ice, away_goalie, home_goalie
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range table.Rows {
		if ev.GameID != gameID {
			continue
		}

		awayOnIce, err := json.Marshal(ev.AwayOnIce)
		if err != nil {
			return fmt.Errorf("marshal away on-ice: %w", err)
		}
		homeOnIce, err := json.Marshal(ev.HomeOnIce)
		if err != nil {
			return fmt.Errorf("marshal home on-ice: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			ev.GameID, ev.SortOrder, ev.Period, ev.TypeCode, string(ev.Kind),
			ev.TimeRemaining, ev.TimeElapsed, ev.Strength, ev.Detail, ev.EvTeam,
			nullParticipantID(ev.P1), nullParticipantName(ev.P1),
			nullParticipantID(ev.P2), nullParticipantName(ev.P2),
			nullParticipantID(ev.P3), nullParticipantName(ev.P3),
			nullInt(ev.XCoord), nullInt(ev.YCoord),
			nullInt(ev.HomeSkaters), nullInt(ev.AwaySkaters),
			ev.HomeScore, ev.AwayScore, ev.HomeTeam, ev.AwayTeam,
			awayOnIce, homeOnIce,
			nullParticipantJSON(ev.AwayGoalie), nullParticipantJSON(ev.HomeGoalie),
		)
		if err != nil {
			return fmt.Errorf("insert game %d sortOrder %d: %w", ev.GameID, ev.SortOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace game %d: %w", gameID, err)
	}
	return nil
}

// GetGame loads one game's rows in sortOrder.
func (r *EventRepository) GetGame(ctx context.Context, gameID int64) (*pbp.Table, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT game_id, sort_order, period, event_tc, event,
			time_remaining, time_elapsed, strength, detail, ev_team,
			p1_id, p1_name, p2_id, p2_name, p3_id, p3_name,
			x_coord, y_coord, home_skaters, away_skaters,
			home_score, away_score, home_team, away_team,
			away_on_ice, home_on_ice, away_goalie, home_goalie
		FROM pbp_events
		WHERE game_id = $1
		ORDER BY sort_order
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying game %d: %w", gameID, err)
	}
	defer rows.Close()

	var events []*pbp.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading game %d rows: %w", gameID, err)
	}
	return &pbp.Table{Rows: events}, nil
}

// HasGame reports whether the game has any stored rows.
func (r *EventRepository) HasGame(ctx context.Context, gameID int64) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM pbp_events WHERE game_id = $1)`, gameID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking game %d: %w", gameID, err)
	}
	return exists, nil
}

func scanEvent(rows *sql.Rows) (*pbp.Event, error) {
	var ev pbp.Event
	var kind string
	var p1ID, p2ID, p3ID sql.NullInt64
	var p1Name, p2Name, p3Name sql.NullString
	var xCoord, yCoord, homeSk, awaySk sql.NullInt64
	var awayOnIce, homeOnIce []byte
	var awayGoalie, homeGoalie []byte

	err := rows.Scan(
		&ev.GameID, &ev.SortOrder, &ev.Period, &ev.TypeCode, &kind,
		&ev.TimeRemaining, &ev.TimeElapsed, &ev.Strength, &ev.Detail, &ev.EvTeam,
		&p1ID, &p1Name, &p2ID, &p2Name, &p3ID, &p3Name,
		&xCoord, &yCoord, &homeSk, &awaySk,
		&ev.HomeScore, &ev.AwayScore, &ev.HomeTeam, &ev.AwayTeam,
		&awayOnIce, &homeOnIce, &awayGoalie, &homeGoalie,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning event row: %w", err)
	}

	ev.Kind = pbp.Kind(kind)
	ev.P1 = participantFromNull(p1ID, p1Name)
	ev.P2 = participantFromNull(p2ID, p2Name)
	ev.P3 = participantFromNull(p3ID, p3Name)
	ev.XCoord = intFromNull(xCoord)
	ev.YCoord = intFromNull(yCoord)
	ev.HomeSkaters = intFromNull(homeSk)
	ev.AwaySkaters = intFromNull(awaySk)

	if len(awayOnIce) > 0 {
		if err := json.Unmarshal(awayOnIce, &ev.AwayOnIce); err != nil {
			return nil, fmt.Errorf("decode away on-ice: %w", err)
		}
	}
	if len(homeOnIce) > 0 {
		if err := json.Unmarshal(homeOnIce, &ev.HomeOnIce); err != nil {
			return nil, fmt.Errorf("decode home on-ice: %w", err)
		}
	}
	if len(awayGoalie) > 0 {
		ev.AwayGoalie = &pbp.Participant{}
		if err := json.Unmarshal(awayGoalie, ev.AwayGoalie); err != nil {
			return nil, fmt.Errorf("decode away goalie: %w", err)
		}
	}
	if len(homeGoalie) > 0 {
		ev.HomeGoalie = &pbp.Participant{}
		if err := json.Unmarshal(homeGoalie, ev.HomeGoalie); err != nil {
			return nil, fmt.Errorf("decode home goalie: %w", err)
		}
	}
	return &ev, nil
}

func nullParticipantID(p *pbp.Participant) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: p.ID, Valid: true}
}

func nullParticipantName(p *pbp.Participant) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.Name, Valid: true}
}

func nullParticipantJSON(p *pbp.Participant) interface{} {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return body
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func participantFromNull(id sql.NullInt64, name sql.NullString) *pbp.Participant {
	if !id.Valid {
		return nil
	}
	return &pbp.Participant{ID: id.Int64, Name: name.String}
}
