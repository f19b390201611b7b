package postgres

import (
	"context"
	"fmt"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	qb "github.com/finleysg/bhmc-admin-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

var slotColumns = []string{
	"s.id", "s.event_id", "s.gg_id", "s.player_id",
	"p.first_name", "p.last_name", "p.email", "p.ghin", "p.gg_id AS player_gg_id", "p.is_member",
}

const slotWithPlayerTable = "registration_slots s JOIN players p ON p.id = s.player_id"

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) ListRegisteredSlots(ctx context.Context, eventID int64) ([]registration.Slot, error) {
	query, args, err := qb.Select(slotColumns...).From(slotWithPlayerTable).
		Where(
			qb.Eq("s.event_id", eventID),
			qb.Eq("s.status", slotStatusReserved),
		).
		OrderBy("s.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list registered slots query: %w", err)
	}

	var rows []slotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list registered slots: %w", err)
	}
	return r.withPaidFees(ctx, rows)
}

func (r *RegistrationRepository) GetSlot(ctx context.Context, slotID int64) (registration.Slot, bool, error) {
	query, args, err := qb.Select(slotColumns...).From(slotWithPlayerTable).
		Where(qb.Eq("s.id", slotID)).
		ToSQL()
	if err != nil {
		return registration.Slot{}, false, fmt.Errorf("build get slot query: %w", err)
	}

	var row slotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Slot{}, false, nil
		}
		return registration.Slot{}, false, fmt.Errorf("get slot: %w", err)
	}

	slots, err := r.withPaidFees(ctx, []slotTableModel{row})
	if err != nil {
		return registration.Slot{}, false, err
	}
	return slots[0], true, nil
}

func (r *RegistrationRepository) UpdateSlotRemoteID(ctx context.Context, slotID int64, remoteID string) error {
	query, args, err := qb.Update("registration_slots").
		Set("gg_id", nullString(remoteID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update slot remote id query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update slot remote id: %w", err)
	}
	return mustAffectOne(res, "update slot remote id")
}

func (r *RegistrationRepository) ListEventFees(ctx context.Context, eventID int64) ([]registration.Fee, error) {
	query, args, err := qb.Select("id", "event_id", "code", "name").From("event_fees").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list event fees query: %w", err)
	}

	var rows []feeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list event fees: %w", err)
	}

	out := make([]registration.Fee, 0, len(rows))
	for _, row := range rows {
		out = append(out, registration.Fee{ID: row.ID, EventID: row.EventID, Code: row.Code, Name: row.Name})
	}
	return out, nil
}

func (r *RegistrationRepository) withPaidFees(ctx context.Context, rows []slotTableModel) ([]registration.Slot, error) {
	out := make([]registration.Slot, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	slotIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		slotIDs = append(slotIDs, row.ID)
	}
	query, args, err := qb.Select("slot_id", "event_fee_id").From("registration_slot_fees").
		Where(
			qb.In("slot_id", slotIDs),
			qb.Eq("is_paid", true),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list paid slot fees query: %w", err)
	}

	var fees []slotFeeTableModel
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("list paid slot fees: %w", err)
	}
	paid := make(map[int64][]int64, len(rows))
	for _, fee := range fees {
		paid[fee.SlotID] = append(paid[fee.SlotID], fee.EventFeeID)
	}

	for _, row := range rows {
		out = append(out, registration.Slot{
			ID:       row.ID,
			EventID:  row.EventID,
			RemoteID: nullStringValue(row.RemoteID),
			Player: player.Player{
				ID:        row.PlayerID,
				FirstName: row.PlayerFirstName,
				LastName:  row.PlayerLastName,
				Email:     row.PlayerEmail,
				GHIN:      nullStringValue(row.PlayerGHIN),
				RemoteID:  nullStringValue(row.PlayerRemoteID),
				IsMember:  row.PlayerIsMember,
			},
			PaidFeeIDs: paid[row.ID],
		})
	}
	return out, nil
}
