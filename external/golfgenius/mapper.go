package golfgenius

import (
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
)

func mapSeasons(items []seasonItem) []usecase.ExternalSeason {
	out := make([]usecase.ExternalSeason, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalSeason{
			ID:      item.Season.ID.String(),
			Name:    strings.TrimSpace(item.Season.Name),
			Current: item.Season.Current,
		})
	}
	return out
}

func mapEvents(items []eventItem) []usecase.ExternalEvent {
	out := make([]usecase.ExternalEvent, 0, len(items))
	for _, item := range items {
		ev := item.Event
		if ev.Archived {
			continue
		}
		mapped := usecase.ExternalEvent{
			ID:        ev.ID.String(),
			Name:      strings.TrimSpace(ev.Name),
			StartDate: strings.TrimSpace(ev.StartDate),
			EndDate:   strings.TrimSpace(ev.EndDate),
			Website:   strings.TrimSpace(ev.Website),
		}
		if ev.Season != nil {
			mapped.SeasonID = ev.Season.ID.String()
		}
		if ev.Category != nil {
			mapped.CategoryID = ev.Category.ID.String()
		}
		out = append(out, mapped)
	}
	return out
}

func mapRounds(items []roundItem) []usecase.ExternalRound {
	out := make([]usecase.ExternalRound, 0, len(items))
	for i, item := range items {
		index, ok := item.Round.Index.Int()
		if !ok {
			index = i + 1
		}
		out = append(out, usecase.ExternalRound{
			ID:    item.Round.ID.String(),
			Name:  strings.TrimSpace(item.Round.Name),
			Date:  strings.TrimSpace(item.Round.Date),
			Index: index,
		})
	}
	return out
}

func mapTournaments(items []tournamentItem) []usecase.ExternalTournament {
	out := make([]usecase.ExternalTournament, 0, len(items))
	for _, item := range items {
		t := item.Tournament
		format := strings.TrimSpace(t.Format)
		if format == "" {
			format = strings.TrimSpace(t.ScoreFormat)
		}
		out = append(out, usecase.ExternalTournament{
			ID:             t.ID.String(),
			Name:           strings.TrimSpace(t.Name),
			Format:         strings.ToLower(format),
			HandicapFormat: strings.TrimSpace(t.HandicapFormat),
		})
	}
	return out
}

func mapMember(m memberPayload) usecase.ExternalRosterMember {
	return usecase.ExternalRosterMember{
		ID:           m.ID.String(),
		MemberCardID: m.MemberCardID.String(),
		ExternalID:   m.ExternalID.String(),
		FirstName:    strings.TrimSpace(m.FirstName),
		LastName:     strings.TrimSpace(m.LastName),
		Email:        strings.TrimSpace(m.Email),
		GHIN:         m.HandicapNetworkID.String(),
	}
}

func mapMembers(items []memberItem) []usecase.ExternalRosterMember {
	out := make([]usecase.ExternalRosterMember, 0, len(items))
	for _, item := range items {
		out = append(out, mapMember(item.Member))
	}
	return out
}

func mapTeeSheet(items []pairingGroupItem) []usecase.ExternalTeeSheetPlayer {
	out := make([]usecase.ExternalTeeSheetPlayer, 0, len(items)*4)
	for _, group := range items {
		for _, p := range group.PairingGroup.Players {
			mapped := usecase.ExternalTeeSheetPlayer{
				Name:           strings.TrimSpace(p.Name),
				RosterID:       p.PlayerRosterID.String(),
				MemberCardID:   p.MemberCardID.String(),
				ExternalID:     p.ExternalID.String(),
				GHIN:           p.HandicapNetworkID.String(),
				HandicapIndex:  p.HandicapIndex.String(),
				CourseHandicap: p.CourseHandicap.String(),
				Scores:         mapScoreArray(p.ScoreArray),
				HandicapDots:   append([]int(nil), p.HandicapDotsByHole...),
			}
			if p.Tee != nil {
				mapped.TeeName = strings.TrimSpace(p.Tee.Name)
				mapped.CourseName = strings.TrimSpace(p.Tee.CourseName)
			}
			out = append(out, mapped)
		}
	}
	return out
}

func mapScoreArray(raw []flexString) []*int {
	if len(raw) == 0 {
		return nil
	}
	out := make([]*int, len(raw))
	for i, v := range raw {
		if n, ok := v.Int(); ok {
			score := n
			out[i] = &score
		}
	}
	return out
}

func mapTournamentResults(env tournamentResultsEnvelope) result.Payload {
	payload := result.Payload{
		TournamentRemoteID: env.Event.ID.String(),
		Name:               strings.TrimSpace(env.Event.Name),
		Scopes:             make([]result.Scope, 0, len(env.Event.Scopes)),
	}
	for _, scope := range env.Event.Scopes {
		mapped := result.Scope{
			Name:       strings.TrimSpace(scope.Name),
			Aggregates: make([]result.Aggregate, 0, len(scope.Aggregates)),
		}
		for _, agg := range scope.Aggregates {
			mapped.Aggregates = append(mapped.Aggregates, mapAggregate(agg))
		}
		payload.Scopes = append(payload.Scopes, mapped)
	}
	return payload
}

func mapAggregate(agg aggregatePayload) result.Aggregate {
	out := result.Aggregate{
		ID:       agg.ID.String(),
		Name:     strings.TrimSpace(agg.Name),
		Position: agg.Position.String(),
		Total:    agg.Total.String(),
		Score:    agg.Score.String(),
		Purse:    agg.Purse.String(),
		Points:   agg.Points.String(),
	}
	for _, card := range agg.MemberCards {
		out.MemberCards = append(out.MemberCards, result.MemberCard{
			MemberCardID: card.MemberCardID.String(),
			Name:         strings.TrimSpace(card.Name),
		})
	}
	for _, ind := range agg.IndividualResults {
		out.Individuals = append(out.Individuals, result.Individual{
			MemberCardID: ind.MemberCardID.String(),
			Name:         strings.TrimSpace(ind.Name),
			FirstName:    strings.TrimSpace(ind.FirstName),
			LastName:     strings.TrimSpace(ind.LastName),
			Purse:        ind.Purse.String(),
		})
	}
	return out
}

func newRosterMemberRequest(input usecase.RosterMemberInput) rosterMemberRequest {
	req := rosterMemberRequest{
		ExternalID: strings.TrimSpace(input.ExternalID),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
	}
	if ghin := strings.TrimSpace(input.GHIN); ghin != "" && ghin != "0" {
		req.HandicapNetworkID = ghin
	}
	if len(input.CustomFields) > 0 {
		req.CustomFields = make(map[string]string, len(input.CustomFields))
		for k, v := range input.CustomFields {
			req.CustomFields[k] = v
		}
	}
	return req
}
