package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/observability"
	"github.com/gigit/web/internal/search"
)

// DeveloperDirectory is the read side of the backend developer listing.
type DeveloperDirectory interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListSpecializations(ctx context.Context) ([]string, error)
}

// SearchResult is one sequenced search response.
type SearchResult struct {
	Seq        uint64
	Total      int
	Matched    int
	Developers []domain.User
}

// SearchService filters the developer listing for the connect page.
type SearchService struct {
	directory DeveloperDirectory
	sequencer *search.Sequencer
	limit     int
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewSearchService builds the service. limit caps the number of results
// returned; limit <= 0 returns every match.
func NewSearchService(directory DeveloperDirectory, limit int, metrics *observability.Metrics, logger *zap.Logger) *SearchService {
	return &SearchService{
		directory: directory,
		sequencer: search.NewSequencer(),
		limit:     limit,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search fetches the full listing and filters it. Searches are sequenced per
// session key: starting a search cancels the previous one for the same key,
// and a search that finishes after a newer one began returns
// search.ErrSuperseded instead of its result.
func (s *SearchService) Search(ctx context.Context, sessionKey string, q search.Query) (SearchResult, error) {
	ctx, ticket := s.sequencer.Begin(ctx, sessionKey)
	users, err := s.directory.ListUsers(ctx)
	if !s.sequencer.Finish(ticket) {
		s.metrics.RecordSearchSuperseded()
		s.logger.Debug("search superseded", zap.String("session_id", sessionKey), zap.Uint64("seq", ticket.Seq))
		return SearchResult{Seq: ticket.Seq}, search.ErrSuperseded
	}
	if err != nil {
		s.logger.Error("fetch developers", zap.Error(err))
		return SearchResult{Seq: ticket.Seq}, err
	}

	matched := search.Filter(users, q)
	return SearchResult{
		Seq:        ticket.Seq,
		Total:      len(users),
		Matched:    len(matched),
		Developers: search.Tail(matched, s.limit),
	}, nil
}
