package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// errorReply is the fixed reply appended when an exchange fails, so a
// sent query is never left without an answer turn.
const errorReply = "Sorry, I encountered an error processing your request."

// DefaultScope is the retrieval scope sent with a query unless
// configured otherwise.
const DefaultScope = "auto"

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService manages the active conversation.
//
// Sends are single-flight per session: while an exchange is unsettled,
// further sends in that session are rejected without appending anything.
type ChatService struct {
	log     driven.ChatLog
	gateway driven.Gateway
	scope   string

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	active string
	// gen counts conversation switches. The identifier alone cannot
	// detect NewSession in a fresh conversation or LoadSession back
	// into the same id; both leave active unchanged.
	gen      uint64
	inFlight map[string]bool
}

// NewChatService creates a chat service. An empty scope falls back to
// DefaultScope.
func NewChatService(log driven.ChatLog, gateway driven.Gateway, scope string) *ChatService {
	if scope == "" {
		scope = DefaultScope
	}
	return &ChatService{
		log:      log,
		gateway:  gateway,
		scope:    scope,
		now:      time.Now,
		newID:    uuid.NewString,
		inFlight: make(map[string]bool),
	}
}

// Send runs one exchange: optimistic user turn, query, then exactly one
// assistant or error turn.
func (s *ChatService) Send(ctx context.Context, session domain.UserSession, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyQuery
	}

	s.mu.Lock()
	key := s.active
	gen := s.gen
	if s.inFlight[key] {
		s.mu.Unlock()
		return domain.ErrExchangeInFlight
	}
	s.inFlight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	// The user turn is always visible before the answer turn.
	userTurn := domain.MessageTurn{
		ID:        "msg-" + s.newID(),
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: s.now(),
	}
	if err := s.log.Append(ctx, userTurn); err != nil {
		return fmt.Errorf("append user turn: %w", err)
	}

	result, err := s.gateway.Query(ctx, session, text, s.scope, key)

	// If the conversation was switched while the request was in
	// flight, the settlement targets a log that no longer exists.
	// Drop it rather than polluting the new session.
	s.mu.Lock()
	stale := s.active != key || s.gen != gen
	s.mu.Unlock()
	if stale {
		logger.Debug("chat: session switched mid-exchange, dropping reply")
		return nil
	}

	reply := domain.MessageTurn{
		Role:      domain.RoleAssistant,
		CreatedAt: s.now(),
	}
	if err != nil {
		logger.Warn("chat query: %v", err)
		reply.ID = "msg-" + s.newID()
		reply.Content = errorReply
	} else {
		reply.ID = result.AnswerID
		if reply.ID == "" {
			reply.ID = "msg-" + s.newID()
		}
		reply.Content = result.Answer
		reply.Citations = result.Citations
	}

	if appendErr := s.log.Append(ctx, reply); appendErr != nil {
		return fmt.Errorf("append reply turn: %w", appendErr)
	}
	return err
}

// LoadSession replaces the log wholesale with a saved conversation.
func (s *ChatService) LoadSession(ctx context.Context, session domain.UserSession, chatID string) error {
	turns, err := s.gateway.ChatMessages(ctx, session, chatID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", chatID, err)
	}
	if err := s.log.ReplaceAll(ctx, turns); err != nil {
		return err
	}

	s.mu.Lock()
	s.active = chatID
	s.gen++
	s.mu.Unlock()
	return nil
}

// NewSession clears the log and the active identifier without any
// network call.
func (s *ChatService) NewSession(ctx context.Context) error {
	if err := s.log.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.active = ""
	s.gen++
	s.mu.Unlock()
	return nil
}

// Turns returns the transcript of the active conversation.
func (s *ChatService) Turns(ctx context.Context) ([]domain.MessageTurn, error) {
	return s.log.Turns(ctx)
}

// History lists saved session summaries.
func (s *ChatService) History(ctx context.Context, session domain.UserSession) ([]domain.ChatSessionSummary, error) {
	return s.gateway.ChatHistory(ctx, session)
}

// ActiveSession returns the active session identifier.
func (s *ChatService) ActiveSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Sending reports whether an exchange in the active session is in flight.
func (s *ChatService) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[s.active]
}
