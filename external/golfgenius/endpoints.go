package golfgenius

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
)

const apiPrefix = "/api_v2/" + apiKeyPlaceholder

var _ usecase.GolfGeniusProvider = (*Client)(nil)

func (c *Client) ListSeasons(ctx context.Context) ([]usecase.ExternalSeason, error) {
	items, err := getJSON[[]seasonItem](ctx, c, apiPrefix+"/seasons", nil)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return mapSeasons(items), nil
}

func (c *Client) ListEvents(ctx context.Context, seasonID, categoryID string) ([]usecase.ExternalEvent, error) {
	query := url.Values{}
	if v := strings.TrimSpace(seasonID); v != "" {
		query.Set("season", v)
	}
	if v := strings.TrimSpace(categoryID); v != "" {
		query.Set("category", v)
	}

	items, err := getJSON[[]eventItem](ctx, c, apiPrefix+"/events", query)
	if err != nil {
		return nil, fmt.Errorf("list events season=%s: %w", seasonID, err)
	}
	return mapEvents(items), nil
}

func (c *Client) ListRounds(ctx context.Context, eventID string) ([]usecase.ExternalRound, error) {
	if err := requireID("event id", eventID); err != nil {
		return nil, err
	}
	path := apiPrefix + "/events/" + url.PathEscape(eventID) + "/rounds"
	items, err := getJSON[[]roundItem](ctx, c, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list rounds event=%s: %w", eventID, err)
	}
	return mapRounds(items), nil
}

func (c *Client) ListTournaments(ctx context.Context, eventID, roundID string) ([]usecase.ExternalTournament, error) {
	if err := requireID("event id", eventID); err != nil {
		return nil, err
	}
	if err := requireID("round id", roundID); err != nil {
		return nil, err
	}
	path := apiPrefix + "/events/" + url.PathEscape(eventID) + "/rounds/" + url.PathEscape(roundID) + "/tournaments"
	items, err := getJSON[[]tournamentItem](ctx, c, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list tournaments event=%s round=%s: %w", eventID, roundID, err)
	}
	return mapTournaments(items), nil
}

// ListEventRoster returns one page of an event roster. Pages start at 1.
func (c *Client) ListEventRoster(ctx context.Context, eventID string, page int) ([]usecase.ExternalRosterMember, error) {
	if err := requireID("event id", eventID); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 1)))
	query.Set("photo", "false")

	path := apiPrefix + "/events/" + url.PathEscape(eventID) + "/roster"
	items, err := getJSON[[]memberItem](ctx, c, path, query)
	if err != nil {
		return nil, fmt.Errorf("list roster event=%s page=%d: %w", eventID, page, err)
	}
	return mapMembers(items), nil
}

func (c *Client) ListMasterRoster(ctx context.Context, page int) ([]usecase.ExternalRosterMember, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 1)))

	items, err := getJSON[[]memberItem](ctx, c, apiPrefix+"/master_roster", query)
	if err != nil {
		return nil, fmt.Errorf("list master roster page=%d: %w", page, err)
	}
	return mapMembers(items), nil
}

func (c *Client) GetMasterRosterMember(ctx context.Context, email string) (usecase.ExternalRosterMember, error) {
	email = strings.TrimSpace(email)
	if err := requireID("email", email); err != nil {
		return usecase.ExternalRosterMember{}, err
	}
	item, err := getJSON[memberItem](ctx, c, apiPrefix+"/master_roster_member/"+url.PathEscape(email), nil)
	if err != nil {
		return usecase.ExternalRosterMember{}, fmt.Errorf("get master roster member: %w", err)
	}
	return mapMember(item.Member), nil
}

func (c *Client) GetTeeSheet(ctx context.Context, eventID, roundID string) ([]usecase.ExternalTeeSheetPlayer, error) {
	if err := requireID("event id", eventID); err != nil {
		return nil, err
	}
	if err := requireID("round id", roundID); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("include_all_custom_fields", "true")

	path := apiPrefix + "/events/" + url.PathEscape(eventID) + "/rounds/" + url.PathEscape(roundID) + "/tee_sheet"
	items, err := getJSON[[]pairingGroupItem](ctx, c, path, query)
	if err != nil {
		return nil, fmt.Errorf("get tee sheet event=%s round=%s: %w", eventID, roundID, err)
	}
	return mapTeeSheet(items), nil
}

func (c *Client) GetTournamentResults(ctx context.Context, eventID, roundID, tournamentID string) (result.Payload, error) {
	for _, id := range []struct{ name, value string }{
		{"event id", eventID},
		{"round id", roundID},
		{"tournament id", tournamentID},
	} {
		if err := requireID(id.name, id.value); err != nil {
			return result.Payload{}, err
		}
	}

	path := apiPrefix + "/events/" + url.PathEscape(eventID) +
		"/rounds/" + url.PathEscape(roundID) +
		"/tournaments/" + url.PathEscape(tournamentID) + ".json"
	env, err := getJSON[tournamentResultsEnvelope](ctx, c, path, nil)
	if err != nil {
		return result.Payload{}, fmt.Errorf("get tournament results tournament=%s: %w", tournamentID, err)
	}
	payload := mapTournamentResults(env)
	if payload.TournamentRemoteID == "" {
		payload.TournamentRemoteID = tournamentID
	}
	return payload, nil
}

// CreateRosterMember adds a member to an event roster and returns the provider member id.
func (c *Client) CreateRosterMember(ctx context.Context, eventID string, input usecase.RosterMemberInput) (string, error) {
	if err := requireID("event id", eventID); err != nil {
		return "", err
	}
	path := "/api_v2/events/" + url.PathEscape(eventID) + "/members"
	created, err := sendJSON[memberCreated](ctx, c, http.MethodPost, path, newRosterMemberRequest(input))
	if err != nil {
		return "", fmt.Errorf("create roster member event=%s external_id=%s: %w", eventID, input.ExternalID, err)
	}
	id := created.Member.ID.String()
	if id == "" {
		return "", &Error{
			Kind:     KindValidation,
			Endpoint: path,
			Issues:   []FieldIssue{{Field: "member.id", Rule: "required"}},
		}
	}
	return id, nil
}

func (c *Client) UpdateRosterMember(ctx context.Context, eventID, memberID string, input usecase.RosterMemberInput) error {
	if err := requireID("event id", eventID); err != nil {
		return err
	}
	if err := requireID("member id", memberID); err != nil {
		return err
	}
	path := "/api_v2/events/" + url.PathEscape(eventID) + "/members/" + url.PathEscape(memberID)
	if _, err := c.request(ctx, http.MethodPut, path, nil, newRosterMemberRequest(input)); err != nil {
		return fmt.Errorf("update roster member event=%s member=%s: %w", eventID, memberID, err)
	}
	return nil
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	return nil
}
