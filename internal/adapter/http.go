package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

type httpAccessClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccessClient returns an [AccessClient] talking to the API at
// address ("localhost:8086" or a full URL).
func NewHTTPAccessClient(address string, timeout time.Duration, logger *logger.Logger) (AccessClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid access API address: %w", err)
	}

	return &httpAccessClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccessClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccessClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAccessClient) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	return h.startSession(ctx, "/api/auth/login", models.LoginRequest{Username: username, Password: password})
}

func (h *httpAccessClient) Guest(ctx context.Context) (models.LoginResponse, error) {
	return h.startSession(ctx, "/api/auth/guest", nil)
}

func (h *httpAccessClient) startSession(ctx context.Context, path string, body any) (models.LoginResponse, error) {
	var out models.LoginResponse

	req := h.client.R().SetContext(ctx).SetResult(&out)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token := out.Token
	if token == "" {
		token, err = utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
		}
		out.Token = token
	}

	h.SetToken(token)
	h.logger.Debug().Str("username", out.Principal.Username).Int64("session_id", out.SessionID).Msg("session started")
	return out, nil
}

func (h *httpAccessClient) Logout(ctx context.Context) (models.Session, error) {
	var session models.Session
	if err := h.do(h.authedRequest(ctx).SetResult(&session), http.MethodPost, "/api/auth/logout"); err != nil {
		return models.Session{}, fmt.Errorf("logout: %w", err)
	}
	return session, nil
}

// CheckAndConsume treats 429 and 403 answers carrying a decision body as
// regular decisions.
func (h *httpAccessClient) CheckAndConsume(ctx context.Context, action models.Action) (models.QuotaDecision, error) {
	var decision models.QuotaDecision

	resp, err := h.authedRequest(ctx).
		SetResult(&decision).
		SetError(&decision).
		Post("/api/quota/" + url.PathEscape(string(action)))
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("quota request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusTooManyRequests, http.StatusForbidden:
		if decision.Action != "" && decision.Outcome != models.QuotaUnknown {
			return decision, nil
		}
	}
	if err := mapHTTPError(resp); err != nil {
		return models.QuotaDecision{}, err
	}
	return decision, nil
}

func (h *httpAccessClient) RecordPrediction(ctx context.Context, forecast models.Forecast) (int64, error) {
	var out models.IDResponse
	if err := h.do(h.authedRequest(ctx).SetBody(forecast).SetResult(&out), http.MethodPost, "/api/predictions"); err != nil {
		return 0, fmt.Errorf("record prediction: %w", err)
	}
	return out.ID, nil
}

func (h *httpAccessClient) RecordReport(ctx context.Context, artifact models.ReportArtifact) (int64, error) {
	var out models.IDResponse
	if err := h.do(h.authedRequest(ctx).SetBody(artifact).SetResult(&out), http.MethodPost, "/api/reports"); err != nil {
		return 0, fmt.Errorf("record report: %w", err)
	}
	return out.ID, nil
}

func (h *httpAccessClient) ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	var out []models.PredictionRecord
	req := h.authedRequest(ctx).SetQueryParam("limit", strconv.Itoa(limit)).SetResult(&out)
	if err := h.do(req, http.MethodGet, "/api/predictions"); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	var out []models.ReportRecord
	req := h.authedRequest(ctx).SetQueryParam("limit", strconv.Itoa(limit)).SetResult(&out)
	if err := h.do(req, http.MethodGet, "/api/reports"); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	req := h.authedRequest(ctx).SetQueryParamsFromValues(auditQuery(filter)).SetResult(&out)
	if err := h.do(req, http.MethodGet, "/api/audit"); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return out, nil
}

func auditQuery(filter models.AuditFilter) url.Values {
	q := url.Values{}
	if filter.UserID != nil {
		q.Set("user_id", strconv.FormatInt(*filter.UserID, 10))
	}
	if filter.Username != "" {
		q.Set("username", filter.Username)
	}
	if filter.Action != "" {
		q.Set("action", filter.Action)
	}
	if !filter.From.IsZero() {
		q.Set("from", filter.From.Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		q.Set("to", filter.To.Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Newest {
		q.Set("newest", "true")
	}
	return q
}

func (h *httpAccessClient) ListOpenSessions(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	if err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/sessions"); err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) ListRecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	var out []models.Session
	req := h.authedRequest(ctx).
		SetQueryParam("state", "recent").
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out)
	if err := h.do(req, http.MethodGet, "/api/sessions"); err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/users"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) Settings(ctx context.Context) ([]models.SystemSetting, error) {
	var out []models.SystemSetting
	if err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/settings"); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) UpdateSetting(ctx context.Context, key, value string) (models.SystemSetting, error) {
	var out models.SystemSetting
	req := h.authedRequest(ctx).SetBody(models.SettingUpdateRequest{Value: value}).SetResult(&out)
	if err := h.do(req, http.MethodPut, "/api/settings/"+url.PathEscape(key)); err != nil {
		return models.SystemSetting{}, fmt.Errorf("update setting: %w", err)
	}
	return out, nil
}

func (h *httpAccessClient) Version(ctx context.Context) (string, error) {
	var out models.AppInfo
	if err := h.do(h.client.R().SetContext(ctx).SetResult(&out), http.MethodGet, "/api/version"); err != nil {
		return "", fmt.Errorf("version: %w", err)
	}
	return out.Version, nil
}

func (h *httpAccessClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *httpAccessClient) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return mapHTTPError(resp)
}
