package result

import (
	"fmt"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
)

// Format is the scoring format of a tournament and selects its parser.
type Format string

const (
	FormatPoints     Format = "points"
	FormatSkins      Format = "skins"
	FormatUserScored Format = "user_scored"
	FormatStroke     Format = "stroke"
	FormatQuota      Format = "quota"
	FormatTeam       Format = "team"
)

func Formats() []Format {
	return []Format{FormatPoints, FormatSkins, FormatUserScored, FormatStroke, FormatQuota, FormatTeam}
}

// formatAliases are accepted spellings of a format besides its canonical name.
var formatAliases = map[string]Format{
	"proxy": FormatUserScored,
}

func ParseFormat(raw string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := formatAliases[normalized]; ok {
		return f, nil
	}
	f := Format(normalized)
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown result format %q", raw)
}

// InferFormat maps a provider format label onto a known format.
// Unrecognised labels report false.
func InferFormat(label string) (Format, bool) {
	if f, err := ParseFormat(label); err == nil {
		return f, true
	}

	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "skin"):
		return FormatSkins, true
	case strings.Contains(lower, "quota"):
		return FormatQuota, true
	case strings.Contains(lower, "point"):
		return FormatPoints, true
	case strings.Contains(lower, "proxy"), strings.Contains(lower, "user"):
		return FormatUserScored, true
	case strings.Contains(lower, "team"), strings.Contains(lower, "best ball"), strings.Contains(lower, "scramble"):
		return FormatTeam, true
	case strings.Contains(lower, "stroke"), strings.Contains(lower, "medal"):
		return FormatStroke, true
	default:
		return "", false
	}
}

// Disposition tells the shared loop what to do with a prepared candidate.
type Disposition int

const (
	Emit Disposition = iota
	SkipIneligible
	SkipNoAmount
	SkipBlind
)

// Candidate is one (aggregate, member) pair whose player has been resolved.
type Candidate struct {
	TournamentID int64
	Flight       string
	Aggregate    Aggregate
	Member       MemberCard
	Player       player.Player
}

// Parser turns one format's provider payload into normalized result rows.
type Parser interface {
	Format() Format
	Validate(payload Payload) error
	FlightName(scope Scope) string
	// Eligible filters aggregates before any player lookup happens.
	Eligible(agg Aggregate) bool
	MemberCards(agg Aggregate) []MemberCard
	Prepare(c Candidate) (Result, Disposition, error)
}

// ParserFor returns the parser of a format.
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatPoints:
		return pointsParser{}, nil
	case FormatSkins:
		return skinsParser{}, nil
	case FormatUserScored:
		return proxyParser{}, nil
	case FormatStroke:
		return strokeParser{}, nil
	case FormatQuota:
		return quotaParser{}, nil
	case FormatTeam:
		return teamParser{}, nil
	default:
		return nil, fmt.Errorf("unknown result format %q", f)
	}
}

// Resolver maps a provider member card to a local player.
type Resolver func(card MemberCard) (player.Player, error)

type ItemError struct {
	MemberCardID string
	Name         string
	Message      string
}

// Batch is everything prepared for one tournament, written in a single call.
type Batch struct {
	Rows         []Result
	Errors       []ItemError
	Skipped      int
	BlindSkipped int
}

// Process runs the format agnostic loop: validate, walk scopes and aggregates,
// resolve each member, and let the parser prepare the row. Per item failures
// are collected on the batch; only an invalid payload fails the call.
func Process(p Parser, payload Payload, tournamentID int64, resolve Resolver) (Batch, error) {
	if err := p.Validate(payload); err != nil {
		return Batch{}, fmt.Errorf("validate %s results: %w", p.Format(), err)
	}

	var batch Batch
	for _, scope := range payload.Scopes {
		flight := p.FlightName(scope)
		for _, agg := range scope.Aggregates {
			if !p.Eligible(agg) {
				continue
			}
			cards := p.MemberCards(agg)
			if len(cards) == 0 {
				batch.Errors = append(batch.Errors, ItemError{Name: agg.Name, Message: "no member cards on result"})
				continue
			}

			for _, card := range cards {
				pl, err := resolve(card)
				if err != nil {
					batch.Errors = append(batch.Errors, ItemError{MemberCardID: card.MemberCardID, Name: card.Name, Message: err.Error()})
					continue
				}

				row, disposition, err := p.Prepare(Candidate{
					TournamentID: tournamentID,
					Flight:       flight,
					Aggregate:    agg,
					Member:       card,
					Player:       pl,
				})
				if err != nil {
					batch.Errors = append(batch.Errors, ItemError{MemberCardID: card.MemberCardID, Name: card.Name, Message: err.Error()})
					continue
				}

				switch disposition {
				case Emit:
					batch.Rows = append(batch.Rows, row)
				case SkipNoAmount:
					batch.Skipped++
				case SkipBlind:
					batch.BlindSkipped++
				}
			}
		}
	}

	return batch, nil
}
