// Package api is the HTTP adapter for the backend Gateway port.
//
// Transport failures wrap domain.ErrTransport; non-success responses are
// returned as *ServerError. Nothing in here retries automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

const (
	// DefaultTimeout is the HTTP request timeout for plain calls.
	// Uploads use the caller's context instead.
	DefaultTimeout = 30 * time.Second

	// RequestRate is the proactive client-side throttle (req/sec).
	RequestRate = 5

	// RequestBurst allows short bursts above RequestRate.
	RequestBurst = 5

	// identityHeader carries the user identity alongside the bearer
	// credential, as the backend expects.
	identityHeader = "X-User-Email"
)

// Ensure Client implements the Gateway port.
var _ driven.Gateway = (*Client)(nil)

// Client talks to the askdoc backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	// uploader has no client-side timeout. A large file can take
	// longer than DefaultTimeout to transfer; cancellation comes
	// from the request context instead.
	uploader *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		uploader: &http.Client{},
		limiter:  rate.NewLimiter(rate.Limit(RequestRate), RequestBurst),
	}
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (domain.UserSession, error) {
	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, domain.UserSession{}, "/login", payload, &out); err != nil {
		return domain.UserSession{}, err
	}
	return domain.UserSession{Email: email, Token: out.Token}, nil
}

// Register creates an account and returns the resulting session.
func (c *Client) Register(ctx context.Context, username, email, password string) (domain.UserSession, error) {
	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := c.postJSON(ctx, domain.UserSession{}, "/register", payload, &out); err != nil {
		return domain.UserSession{}, err
	}
	return domain.UserSession{Email: email, Token: out.Token}, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context, session domain.UserSession) error {
	payload := map[string]string{"email": session.Email}
	return c.postJSON(ctx, session, "/logout", payload, nil)
}

// Upload transfers a file as multipart form data, streaming progress
// through onProgress as the file bytes go out.
func (c *Client) Upload(
	ctx context.Context, session domain.UserSession, title string,
	file io.Reader, size int64, onProgress driven.UploadProgressFunc,
) (*driven.UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", title)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, newProgressReader(file, size, onProgress)); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("title", title); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req, session)

	resp, err := c.send(ctx, c.uploader, req, "upload")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		DocID string `json:"doc_id"`
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if out.DocID == "" {
		return nil, fmt.Errorf("decode upload response: %w: missing doc_id", domain.ErrInvalidInput)
	}
	return &driven.UploadResult{DocID: out.DocID, JobID: out.JobID}, nil
}

// JobStatus queries an ingestion job.
func (c *Client) JobStatus(ctx context.Context, session domain.UserSession, jobID string) (*driven.JobStatus, error) {
	var out struct {
		Status   string `json:"status"`
		Progress *int   `json:"progress"`
	}
	if err := c.getJSON(ctx, session, "/upload/status/"+jobID, &out); err != nil {
		return nil, err
	}
	return &driven.JobStatus{
		State:    driven.JobState(out.Status),
		Progress: out.Progress,
	}, nil
}

// ListDocuments returns the server's view of the document list.
func (c *Client) ListDocuments(ctx context.Context, session domain.UserSession) ([]domain.DocumentRecord, error) {
	var out struct {
		Documents []wireDocument `json:"documents"`
	}
	if err := c.getJSON(ctx, session, "/documents", &out); err != nil {
		return nil, err
	}

	recs := make([]domain.DocumentRecord, 0, len(out.Documents))
	for _, d := range out.Documents {
		recs = append(recs, d.toDomain())
	}
	return recs, nil
}

// DeleteDocument removes a document server-side.
func (c *Client) DeleteDocument(ctx context.Context, session domain.UserSession, filename string) error {
	body, err := json.Marshal(map[string]string{"filename": filename})
	if err != nil {
		return fmt.Errorf("marshal delete body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/document", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, session)

	resp, err := c.do(ctx, req, "delete document")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Query sends a chat question.
func (c *Client) Query(
	ctx context.Context, session domain.UserSession, query, scope, chatID string,
) (*driven.QueryResult, error) {
	payload := map[string]string{
		"query":   query,
		"scope":   scope,
		"chat_id": chatID,
	}
	var out struct {
		AnswerID  string            `json:"answer_id"`
		Answer    string            `json:"answer"`
		Citations []domain.Citation `json:"citations"`
	}
	if err := c.postJSON(ctx, session, "/chat", payload, &out); err != nil {
		return nil, err
	}
	return &driven.QueryResult{
		AnswerID:  out.AnswerID,
		Answer:    out.Answer,
		Citations: out.Citations,
	}, nil
}

// ChatHistory lists saved session summaries.
func (c *Client) ChatHistory(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error) {
	var out struct {
		History []struct {
			ID          string    `json:"id"`
			Title       string    `json:"title"`
			LastMessage time.Time `json:"last_message"`
		} `json:"history"`
	}
	if err := c.getJSON(ctx, session, "/chat/history", &out); err != nil {
		return nil, err
	}

	summaries := make([]domain.ChatSessionSummary, 0, len(out.History))
	for _, h := range out.History {
		summaries = append(summaries, domain.ChatSessionSummary{
			ID:            h.ID,
			Title:         h.Title,
			LastMessageAt: h.LastMessage,
		})
	}
	return summaries, nil
}

// ChatMessages returns the full message list of a saved session.
func (c *Client) ChatMessages(
	ctx context.Context, session domain.UserSession, chatID string,
) ([]domain.MessageTurn, error) {
	var out struct {
		Messages []struct {
			ID        string            `json:"id"`
			Role      string            `json:"role"`
			Content   string            `json:"content"`
			Citations []domain.Citation `json:"citations"`
			Timestamp time.Time         `json:"timestamp"`
		} `json:"messages"`
	}
	if err := c.getJSON(ctx, session, "/chat/"+chatID, &out); err != nil {
		return nil, err
	}

	turns := make([]domain.MessageTurn, 0, len(out.Messages))
	for _, m := range out.Messages {
		turns = append(turns, domain.MessageTurn{
			ID:        m.ID,
			Role:      domain.Role(m.Role),
			Content:   m.Content,
			Citations: m.Citations,
			CreatedAt: m.Timestamp,
		})
	}
	return turns, nil
}

// ==================== Helpers ====================

// wireDocument is the backend's document list entry.
type wireDocument struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

func (d wireDocument) toDomain() domain.DocumentRecord {
	status := domain.DocumentStatus(d.Status)
	if !status.IsValid() {
		status = domain.StatusProcessing
	}
	return domain.DocumentRecord{
		ID:        d.ID,
		Title:     d.Title,
		Status:    status,
		Progress:  domain.ClampProgress(d.Progress),
		CreatedAt: d.CreatedAt,
	}
}

// authorize sets the credential headers on a request.
func (c *Client) authorize(req *http.Request, session domain.UserSession) {
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}
	if session.Email != "" {
		req.Header.Set(identityHeader, session.Email)
	}
}

// do throttles, sends, and maps failures into the error taxonomy.
func (c *Client) do(ctx context.Context, req *http.Request, op string) (*http.Response, error) {
	return c.send(ctx, c.http, req, op)
}

func (c *Client) send(ctx context.Context, client *http.Client, req *http.Request, op string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", op, err)
	}

	logger.Debug("%s %s", req.Method, req.URL.Path)
	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapTransport(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", op, serverError(resp))
	}
	return resp, nil
}

// postJSON sends a JSON body and decodes a JSON response into out
// (skipped when out is nil).
func (c *Client) postJSON(
	ctx context.Context, session domain.UserSession, path string, payload, out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s body: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, session)

	resp, err := c.do(ctx, req, "POST "+path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// getJSON sends a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, session domain.UserSession, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	c.authorize(req, session)

	resp, err := c.do(ctx, req, "GET "+path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
