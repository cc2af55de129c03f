package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/models"
)

const zoomRequestTimeout = 15 * time.Second

// ZoomProvider creates scheduled Zoom meetings via the server-to-server
// OAuth flow: one account-credentials token exchange per batch, then one
// authenticated create-meeting call per record.
type ZoomProvider struct {
	cfg    config.ZoomConfig
	client *resty.Client
	logger *zap.Logger
}

// NewZoomProvider creates a Zoom provider from configuration.
func NewZoomProvider(cfg config.ZoomConfig, logger *zap.Logger) *ZoomProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New()
	client.SetTimeout(zoomRequestTimeout)
	client.SetRetryCount(0)
	return &ZoomProvider{cfg: cfg, client: client, logger: logger}
}

// Name implements Provider.
func (p *ZoomProvider) Name() string { return "zoom" }

type zoomTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Begin exchanges the configured account id and client credentials for a
// short-lived bearer token. Missing configuration or a non-2xx response is
// fatal for the batch.
func (p *ZoomProvider) Begin(ctx context.Context) (Session, error) {
	if !p.cfg.Configured() {
		return nil, &ConfigError{
			Provider: p.Name(),
			Message:  "Zoom credentials not configured. Please set ZOOM_ACCOUNT_ID, ZOOM_CLIENT_ID, and ZOOM_CLIENT_SECRET",
		}
	}

	var tok zoomTokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.cfg.ClientID, p.cfg.ClientSecret).
		SetQueryParams(map[string]string{
			"grant_type": "account_credentials",
			"account_id": p.cfg.AccountID,
		}).
		SetResult(&tok).
		Post(p.cfg.OAuthBaseURL + "/oauth/token")
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Cause: fmt.Errorf("failed to get Zoom access token: %w", err)}
	}
	if !resp.IsSuccess() || tok.AccessToken == "" {
		return nil, &ProviderError{
			Provider: p.Name(),
			Cause:    fmt.Errorf("failed to get Zoom access token: status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	p.logger.Info("zoom token resolved", zap.Int("expires_in", tok.ExpiresIn))
	return &zoomSession{provider: p, token: tok.AccessToken}, nil
}

type zoomSession struct {
	provider *ZoomProvider
	token    string
}

type zoomMeetingSettings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	MuteUponEntry    bool   `json:"mute_upon_entry"`
	Watermark        bool   `json:"watermark"`
	UsePMI           bool   `json:"use_pmi"`
	ApprovalType     int    `json:"approval_type"`
	Audio            string `json:"audio"`
	AutoRecording    string `json:"auto_recording"`
	WaitingRoom      bool   `json:"waiting_room"`
}

type zoomMeetingRequest struct {
	Topic     string              `json:"topic"`
	Type      int                 `json:"type"` // 2 = scheduled meeting
	StartTime string              `json:"start_time"`
	Duration  int                 `json:"duration"`
	Timezone  string              `json:"timezone"`
	Agenda    string              `json:"agenda"`
	Settings  zoomMeetingSettings `json:"settings"`
}

type zoomMeetingResponse struct {
	ID       int64  `json:"id"`
	UUID     string `json:"uuid"`
	StartURL string `json:"start_url"`
	JoinURL  string `json:"join_url"`
	Password string `json:"password"`
}

// Provision creates a 60-minute scheduled meeting starting at the record's
// date+time (UTC), waiting room on, auto-recording off.
func (s *zoomSession) Provision(ctx context.Context, rec models.WebinarRecord) (*models.MeetingRecord, error) {
	p := s.provider

	start, err := startAt(rec)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Webinar: rec.Name, Cause: err}
	}

	topic := rec.Name
	if topic == "" {
		topic = "Webinar Meeting"
	}
	body := zoomMeetingRequest{
		Topic:     topic,
		Type:      2,
		StartTime: start.Format("2006-01-02T15:04:05"),
		Duration:  int(meetingDuration.Minutes()),
		Timezone:  "UTC",
		Agenda:    "Presenter: " + rec.PresenterName,
		Settings: zoomMeetingSettings{
			HostVideo:        true,
			ParticipantVideo: true,
			JoinBeforeHost:   false,
			MuteUponEntry:    true,
			Watermark:        false,
			UsePMI:           false,
			ApprovalType:     0,
			Audio:            "both",
			AutoRecording:    "none",
			WaitingRoom:      true,
		},
	}

	var created zoomMeetingResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(s.token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&created).
		Post(p.cfg.APIBaseURL + "/v2/users/me/meetings")
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Webinar: rec.Name, Cause: err}
	}
	if !resp.IsSuccess() {
		return nil, &ProviderError{
			Provider: p.Name(),
			Webinar:  rec.Name,
			Cause:    fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	p.logger.Info("zoom meeting created",
		zap.Int64("meeting_id", created.ID),
		zap.String("webinar", rec.Name),
	)

	return &models.MeetingRecord{
		Provider:      p.Name(),
		ExternalID:    created.UUID,
		PresenterLink: created.StartURL,
		AttendeeLink:  created.JoinURL,
		MeetingID:     strconv.FormatInt(created.ID, 10),
		Password:      created.Password,
		Payload:       json.RawMessage(resp.Body()),
	}, nil
}
