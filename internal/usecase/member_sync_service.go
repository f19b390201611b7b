package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
)

// MemberSyncService copies provider member card ids onto local member players.
type MemberSyncService struct {
	provider   GolfGeniusProvider
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewMemberSyncService(provider GolfGeniusProvider, playerRepo player.Repository, logger *logging.Logger) *MemberSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MemberSyncService{
		provider:   provider,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// SyncMembers matches every local member to the provider master roster by handicap id.
func (s *MemberSyncService) SyncMembers(ctx context.Context, report Reporter) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberSyncService.SyncMembers")
	defer span.End()

	roster, err := collectPages(ctx, s.provider.ListMasterRoster)
	if err != nil {
		return ImportResult{}, fmt.Errorf("fetch golf genius master roster: %w", err)
	}

	cardByGHIN := make(map[string]string, len(roster))
	for _, m := range roster {
		ghin := player.NormalizeGHIN(m.GHIN)
		cardID := strings.TrimSpace(m.MemberCardID)
		if ghin == "0" || cardID == "" {
			continue
		}
		cardByGHIN[ghin] = cardID
	}

	members, err := s.playerRepo.ListMembers(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list members: %w", err)
	}

	out := ImportResult{Operation: "Member sync", Total: len(members)}
	report.emit(out.Total, 0, fmt.Sprintf("Matching %d members against %d roster entries", len(members), len(roster)))

	for i, p := range members {
		cardID, ok := cardByGHIN[player.NormalizeGHIN(p.GHIN)]
		switch {
		case !ok:
			out.Skipped++
		case p.RemoteID == cardID:
			out.Skipped++
		default:
			if err := s.playerRepo.UpdateRemoteID(ctx, p.ID, cardID); err != nil {
				out.addError(strconv.FormatInt(p.ID, 10), p.FullName(), err)
				s.logger.WarnContext(ctx, "store member card id failed", "player_id", p.ID, "error", err)
				break
			}
			out.Updated++
		}

		if processed := i + 1; processed%ProviderPageSize == 0 || processed == len(members) {
			report.emit(out.Total, processed, fmt.Sprintf("Processed %d of %d members", processed, out.Total))
		}
	}

	s.logger.InfoContext(ctx, "member sync finished",
		"members", out.Total,
		"roster", len(roster),
		"updated", out.Updated,
		"skipped", out.Skipped,
		"errors", len(out.Errors),
	)
	return out, nil
}

// SyncPlayer looks one player up in the master roster by email and stores the member card id.
func (s *MemberSyncService) SyncPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MemberSyncService.SyncPlayer")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}
	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player player_id=%d: %w", playerID, err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player_id=%d", ErrNotFound, playerID)
	}
	if strings.TrimSpace(p.Email) == "" {
		return player.Player{}, fmt.Errorf("%w: player_id=%d has no email", ErrInvalidInput, playerID)
	}

	member, err := s.provider.GetMasterRosterMember(ctx, p.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return player.Player{}, fmt.Errorf("%w: player_id=%d is not on the Golf Genius master roster", ErrNotFound, playerID)
		}
		return player.Player{}, fmt.Errorf("get master roster member player_id=%d: %w", playerID, err)
	}

	cardID := strings.TrimSpace(member.MemberCardID)
	if cardID == "" {
		cardID = strings.TrimSpace(member.ID)
	}
	if cardID == "" {
		return player.Player{}, fmt.Errorf("%w: master roster entry for player_id=%d has no member card id", ErrNotFound, playerID)
	}
	if cardID != p.RemoteID {
		if err := s.playerRepo.UpdateRemoteID(ctx, p.ID, cardID); err != nil {
			return player.Player{}, fmt.Errorf("store member card id player_id=%d: %w", playerID, err)
		}
		p.RemoteID = cardID
	}
	return p, nil
}
