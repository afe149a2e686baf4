package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/displaytime"
	"eduvoyage-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	tokenCacheKey = "calendar:access_token"

	// scheduledMeeting is the provider's type code for a one-off meeting at a
	// fixed start time.
	scheduledMeeting = 2
)

// errMeetingNotFound marks a provider 404 so callers can treat an unknown
// meeting ID as an answer rather than a transport failure.
var errMeetingNotFound = errors.New("meeting not found")

type zoomService struct {
	cfg    config.Calendar
	zone   displaytime.Zone
	cache  contracts.RedisRepository
	client *http.Client
	log    *zap.Logger
}

// NewZoomService builds the thin client for the remote conferencing calendar.
// The cache keeps the short-lived bearer token across requests; passing a nil
// cache disables caching and forces a token fetch per call.
func NewZoomService(internalConfig *config.InternalConfig, zone displaytime.Zone, cache contracts.RedisRepository, logger *zap.Logger) contracts.CalendarClient {
	timeout := time.Duration(internalConfig.Calendar.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &zoomService{
		cfg:    internalConfig.Calendar,
		zone:   zone,
		cache:  cache,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

type meetingDTO struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	JoinURL   string `json:"join_url"`
}

func (m meetingDTO) toEvent() (contracts.CalendarEvent, error) {
	start, err := time.Parse(time.RFC3339, m.StartTime)
	if err != nil {
		return contracts.CalendarEvent{}, fmt.Errorf("meeting %d: bad start_time %q: %w", m.ID, m.StartTime, err)
	}
	return contracts.CalendarEvent{
		ID:              strconv.FormatInt(m.ID, 10),
		Topic:           m.Topic,
		Start:           start,
		DurationMinutes: m.Duration,
		Timezone:        m.Timezone,
		JoinURL:         m.JoinURL,
	}, nil
}

func (s *zoomService) ListUpcomingEvents(ctx context.Context) ([]contracts.CalendarEvent, error) {
	endpoint := fmt.Sprintf("%s/users/%s/meetings?type=upcoming&page_size=300", s.cfg.BaseURL, url.PathEscape(s.cfg.HostUserID))
	body, err := s.do(ctx, constvars.MethodGet, endpoint, nil, constvars.StatusOK)
	if err != nil {
		return nil, exceptions.ErrCalendarListEvents(err)
	}

	var result struct {
		Meetings []meetingDTO `json:"meetings"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "meeting list")
	}

	events := make([]contracts.CalendarEvent, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		ev, err := m.toEvent()
		if err != nil {
			// A single malformed record must not take availability down.
			s.log.Warn("calendar.ListUpcomingEvents skipping malformed meeting", zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *zoomService) GetEvent(ctx context.Context, eventID string) (*contracts.CalendarEvent, error) {
	body, err := s.do(ctx, constvars.MethodGet, fmt.Sprintf("%s/meetings/%s", s.cfg.BaseURL, url.PathEscape(eventID)), nil, constvars.StatusOK)
	if err != nil {
		if errors.Is(err, errMeetingNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrCalendarGetEvent(err)
	}

	var meeting meetingDTO
	if err := json.Unmarshal(body, &meeting); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "meeting")
	}
	event, err := meeting.toEvent()
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "meeting")
	}
	return &event, nil
}

func (s *zoomService) CreateEvent(ctx context.Context, input contracts.CreateCalendarEventInput) (*contracts.CalendarEvent, error) {
	payload := map[string]interface{}{
		"topic":      input.Topic,
		"type":       scheduledMeeting,
		"start_time": input.Start.Format("2006-01-02T15:04:05"),
		"timezone":   s.zone.Name(),
		"duration":   input.DurationMinutes,
		"settings": map[string]interface{}{
			"join_before_host": false,
			"waiting_room":     true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCalendarCreateEvent(err)
	}

	respBody, err := s.do(ctx, constvars.MethodPost, fmt.Sprintf("%s/users/%s/meetings", s.cfg.BaseURL, url.PathEscape(s.cfg.HostUserID)), body, constvars.StatusCreated)
	if err != nil {
		return nil, exceptions.ErrCalendarCreateEvent(err)
	}

	var created meetingDTO
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "created meeting")
	}
	event, err := created.toEvent()
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "created meeting")
	}
	return &event, nil
}

func (s *zoomService) UpdateEvent(ctx context.Context, input contracts.UpdateCalendarEventInput) error {
	payload := map[string]interface{}{
		"start_time": input.Start.Format("2006-01-02T15:04:05"),
		"timezone":   s.zone.Name(),
		"duration":   input.DurationMinutes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCalendarUpdateEvent(err)
	}

	if _, err := s.do(ctx, constvars.MethodPatch, fmt.Sprintf("%s/meetings/%s", s.cfg.BaseURL, url.PathEscape(input.EventID)), body, constvars.StatusNoContent); err != nil {
		return exceptions.ErrCalendarUpdateEvent(err)
	}
	return nil
}

func (s *zoomService) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.do(ctx, constvars.MethodDelete, fmt.Sprintf("%s/meetings/%s", s.cfg.BaseURL, url.PathEscape(eventID)), nil, constvars.StatusNoContent); err != nil {
		return exceptions.ErrCalendarDeleteEvent(err)
	}
	return nil
}

// do performs one authenticated provider call and returns the raw body when
// the status matches wantStatus.
func (s *zoomService) do(ctx context.Context, method, endpoint string, body []byte, wantStatus int) ([]byte, error) {
	token, err := s.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, endpoint)
	}
	if resp.StatusCode != wantStatus {
		if resp.StatusCode == constvars.StatusNotFound {
			return nil, errMeetingNotFound
		}
		return nil, fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

// bearerToken resolves the provider API token, consulting the cache first.
// OAuth mode exchanges account credentials at the token endpoint; jwt mode
// self-mints a short-lived HS256 token from the legacy API key pair.
func (s *zoomService) bearerToken(ctx context.Context) (string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tokenCacheKey)
		if err == nil && cached != "" {
			return cached, nil
		}
	}

	var token string
	var ttl time.Duration
	var err error
	switch s.cfg.AuthMode {
	case "jwt":
		token, ttl, err = s.mintLegacyToken()
	default:
		token, ttl, err = s.fetchOAuthToken(ctx)
	}
	if err != nil {
		return "", exceptions.ErrCalendarToken(err)
	}

	if s.cache != nil && ttl > time.Minute {
		// Expire one minute early so a cached token is never presented stale.
		if cacheErr := s.cache.Set(ctx, tokenCacheKey, token, ttl-time.Minute); cacheErr != nil {
			s.log.Warn("calendar.bearerToken failed to cache token", zap.Error(cacheErr))
		}
	}
	return token, nil
}

func (s *zoomService) fetchOAuthToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", s.cfg.AccountID)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFormURLEncoded)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode != constvars.StatusOK {
		return "", 0, fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", 0, err
	}
	if result.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned empty access_token")
	}
	return result.AccessToken, time.Duration(result.ExpiresIn) * time.Second, nil
}

func (s *zoomService) mintLegacyToken() (string, time.Duration, error) {
	ttl := time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.cfg.APIKey,
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.APISecret))
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}
