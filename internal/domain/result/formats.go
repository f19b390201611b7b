package result

import (
	"fmt"
	"strings"
)

type baseParser struct{}

func (baseParser) Validate(payload Payload) error {
	if len(payload.Scopes) == 0 {
		return fmt.Errorf("result payload has no scopes")
	}
	return nil
}

func (baseParser) FlightName(scope Scope) string {
	if name := strings.TrimSpace(scope.Name); name != "" {
		return name
	}
	return "N/A"
}

func (baseParser) Eligible(Aggregate) bool { return true }

func (baseParser) MemberCards(agg Aggregate) []MemberCard {
	out := make([]MemberCard, 0, len(agg.MemberCards))
	for _, card := range agg.MemberCards {
		if strings.TrimSpace(card.MemberCardID) == "" {
			continue
		}
		out = append(out, card)
	}
	return out
}

// moneyRow fills the common fields of a purse based row. A purse without a
// positive amount reports SkipNoAmount.
func moneyRow(c Candidate, purse string) (Result, Disposition, error) {
	amount, err := ParsePurse(purse)
	if err != nil {
		return Result{}, SkipNoAmount, err
	}
	if amount == nil {
		return Result{}, SkipNoAmount, nil
	}

	return Result{
		TournamentID: c.TournamentID,
		PlayerID:     c.Player.ID,
		Flight:       c.Flight,
		Amount:       FormatAmount(*amount),
		PayoutType:   PayoutTypeCredit,
		PayoutTo:     PayoutToIndividual,
		PayoutStatus: PayoutStatusPending,
	}, Emit, nil
}

type pointsParser struct{ baseParser }

func (pointsParser) Format() Format { return FormatPoints }

func (pointsParser) Prepare(c Candidate) (Result, Disposition, error) {
	points, err := ParsePurse(c.Aggregate.Points)
	if err != nil {
		return Result{}, SkipNoAmount, fmt.Errorf("points: %w", err)
	}
	if points == nil {
		return Result{}, SkipNoAmount, nil
	}

	position, _ := parseInt(c.Aggregate.Position)
	return Result{
		TournamentID: c.TournamentID,
		PlayerID:     c.Player.ID,
		Flight:       c.Flight,
		Position:     position,
		Amount:       FormatAmount(*points),
		PayoutType:   PayoutTypePoints,
		PayoutTo:     PayoutToIndividual,
		PayoutStatus: PayoutStatusConfirmed,
		Details:      fmt.Sprintf("%s points", FormatAmount(*points)),
	}, Emit, nil
}

type skinsParser struct{ baseParser }

func (skinsParser) Format() Format { return FormatSkins }

func (skinsParser) Prepare(c Candidate) (Result, Disposition, error) {
	row, disposition, err := moneyRow(c, c.Aggregate.Purse)
	if err != nil || disposition != Emit {
		return row, disposition, err
	}

	skins, ok := parseInt(c.Aggregate.Total)
	if !ok || skins <= 0 {
		skins = 1
	}
	row.Position = skins
	row.Details = fmt.Sprintf("Skins: %d", skins)
	return row, Emit, nil
}

// proxyParser handles user scored contests such as closest to the pin. Only winners are paid.
type proxyParser struct{ baseParser }

func (proxyParser) Format() Format { return FormatUserScored }

func (proxyParser) Eligible(agg Aggregate) bool {
	return strings.TrimSpace(agg.Position) == "1"
}

func (proxyParser) Prepare(c Candidate) (Result, Disposition, error) {
	if strings.TrimSpace(c.Aggregate.Position) != "1" {
		return Result{}, SkipIneligible, nil
	}
	row, disposition, err := moneyRow(c, c.Aggregate.Purse)
	if err != nil || disposition != Emit {
		return row, disposition, err
	}
	row.Position = 1
	return row, Emit, nil
}

type strokeParser struct{ baseParser }

func (strokeParser) Format() Format { return FormatStroke }

func (strokeParser) Prepare(c Candidate) (Result, Disposition, error) {
	return placedRow(c)
}

type quotaParser struct{ baseParser }

func (quotaParser) Format() Format { return FormatQuota }

func (quotaParser) Prepare(c Candidate) (Result, Disposition, error) {
	row, disposition, err := placedRow(c)
	if err != nil || disposition != Emit {
		return row, disposition, err
	}
	if score := strings.TrimSpace(c.Aggregate.Score); score != "" {
		row.Summary = "Quota score: " + score
	}
	return row, Emit, nil
}

func placedRow(c Candidate) (Result, Disposition, error) {
	row, disposition, err := moneyRow(c, c.Aggregate.Purse)
	if err != nil || disposition != Emit {
		return row, disposition, err
	}

	row.Position, _ = parseInt(c.Aggregate.Position)
	if score, ok := parseInt(c.Aggregate.Total); ok {
		row.Score = &score
	}
	return row, Emit, nil
}

type teamParser struct{ baseParser }

func (teamParser) Format() Format { return FormatTeam }

func (p teamParser) Validate(payload Payload) error {
	if err := p.baseParser.Validate(payload); err != nil {
		return err
	}
	for _, scope := range payload.Scopes {
		for _, agg := range scope.Aggregates {
			if len(agg.Individuals) > 0 {
				return nil
			}
		}
	}
	return fmt.Errorf("team result payload has no individual results")
}

func (teamParser) MemberCards(agg Aggregate) []MemberCard {
	out := make([]MemberCard, 0, len(agg.Individuals))
	for _, ind := range agg.Individuals {
		if strings.TrimSpace(ind.MemberCardID) == "" {
			continue
		}
		name := strings.TrimSpace(ind.Name)
		if name == "" {
			name = strings.TrimSpace(ind.FirstName + " " + ind.LastName)
		}
		out = append(out, MemberCard{MemberCardID: ind.MemberCardID, Name: name})
	}
	return out
}

func (teamParser) Prepare(c Candidate) (Result, Disposition, error) {
	blinds := BlindNames(c.Aggregate.Name)
	if IsBlind(blinds, c.Player.FullName(), c.Player.LastName, c.Member.Name) {
		return Result{}, SkipBlind, nil
	}

	// Every teammate shares the team purse, position and score.
	row, disposition, err := moneyRow(c, c.Aggregate.Purse)
	if err != nil || disposition != Emit {
		return row, disposition, err
	}

	row.Position, _ = parseInt(c.Aggregate.Position)
	if score, ok := parseInt(c.Aggregate.Total); ok {
		row.Score = &score
	}
	row.TeamID = strings.TrimSpace(c.Aggregate.ID)
	if row.TeamID == "" {
		row.TeamID = strings.TrimSpace(c.Aggregate.Name)
	}
	row.PayoutTo = PayoutToTeam
	row.Details = c.Aggregate.Name
	return row, Emit, nil
}
