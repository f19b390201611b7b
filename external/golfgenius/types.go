package golfgenius

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// flexString accepts JSON strings and numbers. Provider ids and leaderboard
// values arrive as either depending on the endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}

	switch c := trimmed[0]; {
	case c == '-' || (c >= '0' && c <= '9'):
		var n float64
		if err := sonic.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*f = flexString(trimmed)
		return nil
	case c == 't' || c == 'f':
		*f = flexString(trimmed)
		return nil
	}
	return fmt.Errorf("unsupported json value %s for id field", abbreviate(string(trimmed), 32))
}

func (f flexString) String() string { return string(f) }

func (f flexString) Int() (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0, false
	}
	return v, true
}

type seasonItem struct {
	Season seasonPayload `json:"season" validate:"required"`
}

type seasonPayload struct {
	ID      flexString `json:"id" validate:"required"`
	Name    string     `json:"name" validate:"required"`
	Current bool       `json:"current"`
}

type eventItem struct {
	Event eventPayload `json:"event" validate:"required"`
}

type eventPayload struct {
	ID        flexString `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Website   string     `json:"website"`
	Archived  bool       `json:"archived"`
	Season    *namedRef  `json:"season"`
	Category  *namedRef  `json:"category"`
}

type namedRef struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

type roundItem struct {
	Round roundPayload `json:"round" validate:"required"`
}

type roundPayload struct {
	ID     flexString `json:"id" validate:"required"`
	Name   string     `json:"name"`
	Date   string     `json:"date"`
	Index  flexString `json:"index"`
	Status string     `json:"status"`
}

// tournamentItem uses the provider's "event" envelope for tournaments inside a round.
type tournamentItem struct {
	Tournament tournamentPayload `json:"event" validate:"required"`
}

type tournamentPayload struct {
	ID             flexString `json:"id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	Format         string     `json:"format"`
	ScoreFormat    string     `json:"score_format"`
	HandicapFormat string     `json:"handicap_format"`
}

type memberItem struct {
	Member memberPayload `json:"member" validate:"required"`
}

type memberPayload struct {
	ID                flexString `json:"id"`
	MemberCardID      flexString `json:"member_card_id"`
	ExternalID        flexString `json:"external_id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	HandicapNetworkID flexString `json:"handicap_network_id"`
}

type memberCreated struct {
	Member struct {
		ID flexString `json:"id" validate:"required"`
	} `json:"member" validate:"required"`
}

type pairingGroupItem struct {
	PairingGroup pairingGroupPayload `json:"pairing_group" validate:"required"`
}

type pairingGroupPayload struct {
	ID      flexString          `json:"id"`
	TeeTime string              `json:"tee_time"`
	Players []teeSheetPlayerRaw `json:"players" validate:"dive"`
}

type teeSheetPlayerRaw struct {
	Name               string       `json:"name"`
	PlayerRosterID     flexString   `json:"player_roster_id"`
	MemberCardID       flexString   `json:"member_card_id"`
	ExternalID         flexString   `json:"external_id"`
	HandicapNetworkID  flexString   `json:"handicap_network_id"`
	HandicapIndex      flexString   `json:"handicap_index"`
	CourseHandicap     flexString   `json:"course_handicap"`
	Tee                *teePayload  `json:"tee"`
	ScoreArray         []flexString `json:"score_array"`
	HandicapDotsByHole []int        `json:"handicap_dots_by_hole"`
}

type teePayload struct {
	ID         flexString `json:"id"`
	Name       string     `json:"name"`
	CourseName string     `json:"course_name"`
}

type tournamentResultsEnvelope struct {
	Event tournamentResultsPayload `json:"event" validate:"required"`
}

type tournamentResultsPayload struct {
	ID     flexString     `json:"id"`
	Name   string         `json:"name"`
	Scopes []scopePayload `json:"scopes" validate:"dive"`
}

type scopePayload struct {
	Name       string             `json:"name"`
	Aggregates []aggregatePayload `json:"aggregates" validate:"dive"`
}

type aggregatePayload struct {
	ID                flexString          `json:"id"`
	Name              string              `json:"name"`
	Position          flexString          `json:"position"`
	Total             flexString          `json:"total"`
	Score             flexString          `json:"score"`
	Purse             flexString          `json:"purse"`
	Points            flexString          `json:"points"`
	MemberCards       []memberCardPayload `json:"member_cards"`
	IndividualResults []individualPayload `json:"individual_results"`
}

type memberCardPayload struct {
	MemberCardID flexString `json:"member_card_id"`
	Name         string     `json:"name"`
}

type individualPayload struct {
	MemberCardID flexString `json:"member_card_id"`
	Name         string     `json:"name"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Purse        flexString `json:"purse"`
}

type rosterMemberRequest struct {
	ExternalID        string            `json:"external_id"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Email             string            `json:"email,omitempty"`
	HandicapNetworkID string            `json:"handicap_network_id,omitempty"`
	CustomFields      map[string]string `json:"custom_fields,omitempty"`
}
