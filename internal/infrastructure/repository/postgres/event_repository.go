package postgres

import (
	"context"
	"fmt"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID int64) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return event.Event{
		ID:        row.ID,
		Name:      row.Name,
		StartDate: row.StartDate,
		RemoteID:  nullStringValue(row.RemoteID),
		PortalURL: nullStringValue(row.PortalURL),
	}, true, nil
}

func (r *EventRepository) UpdateRemoteLink(ctx context.Context, eventID int64, remoteID, portalURL string) error {
	query, args, err := qb.Update("events").
		Set("gg_id", nullString(remoteID)).
		Set("portal_url", nullString(portalURL)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event remote link query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event remote link: %w", err)
	}
	return mustAffectOne(res, "update event remote link")
}

func (r *EventRepository) ListRounds(ctx context.Context, eventID int64) ([]event.Round, error) {
	query, args, err := qb.Select("*").From("event_rounds").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("round_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]event.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) ListTournaments(ctx context.Context, eventID int64) ([]event.Tournament, error) {
	query, args, err := qb.Select("*").From("event_tournaments").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("round_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]event.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) DeleteTournamentsByEvent(ctx context.Context, eventID int64) error {
	query, args, err := qb.DeleteFrom("event_tournaments").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournaments query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournaments: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteRoundsByEvent(ctx context.Context, eventID int64) error {
	query, args, err := qb.DeleteFrom("event_rounds").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete rounds query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete rounds: %w", err)
	}
	return nil
}

func (r *EventRepository) CreateRound(ctx context.Context, round event.Round) (event.Round, error) {
	query, args, err := qb.InsertModel("event_rounds", roundInsertModel{
		EventID:  round.EventID,
		Number:   round.Number,
		Date:     round.Date,
		RemoteID: round.RemoteID,
		Name:     round.Name,
	}, "RETURNING id")
	if err != nil {
		return event.Round{}, fmt.Errorf("build insert round query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&round.ID); err != nil {
		if isUniqueViolation(err) {
			return event.Round{}, fmt.Errorf("insert round: remote round %s already linked to event %d: %w", round.RemoteID, round.EventID, err)
		}
		return event.Round{}, fmt.Errorf("insert round: %w", err)
	}
	return round, nil
}

func (r *EventRepository) CreateTournament(ctx context.Context, tournament event.Tournament) (event.Tournament, error) {
	query, args, err := qb.InsertModel("event_tournaments", tournamentInsertModel{
		EventID:  tournament.EventID,
		RoundID:  tournament.RoundID,
		RemoteID: tournament.RemoteID,
		Name:     tournament.Name,
		Format:   tournament.Format,
		IsNet:    tournament.IsNet,
	}, "RETURNING id")
	if err != nil {
		return event.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&tournament.ID); err != nil {
		return event.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}
	return tournament, nil
}

func roundFromRow(row roundTableModel) event.Round {
	return event.Round{
		ID:       row.ID,
		EventID:  row.EventID,
		RemoteID: row.RemoteID,
		Number:   row.Number,
		Name:     row.Name,
		Date:     row.Date,
	}
}

func tournamentFromRow(row tournamentTableModel) event.Tournament {
	return event.Tournament{
		ID:       row.ID,
		EventID:  row.EventID,
		RoundID:  row.RoundID,
		RemoteID: row.RemoteID,
		Name:     row.Name,
		Format:   row.Format,
		IsNet:    row.IsNet,
	}
}
