package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/search"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

// Landing is the data behind the landing page.
type Landing struct {
	Specializations []string
	Featured        []domain.User
}

// DirectoryService serves the browse views: landing, profile detail and
// specializations.
type DirectoryService struct {
	directory DeveloperDirectory
	featured  int
	logger    *zap.Logger
}

// NewDirectoryService builds the service; featured is how many developers
// the landing page shows.
func NewDirectoryService(directory DeveloperDirectory, featured int, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{directory: directory, featured: featured, logger: logger}
}

// Developer fetches one profile.
func (s *DirectoryService) Developer(ctx context.Context, id string) (domain.User, error) {
	user, err := s.directory.GetUser(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return domain.User{}, apperrors.NewNotFound("developer", map[string]any{"id": id})
		}
		s.logger.Error("fetch developer", zap.String("id", id), zap.Error(err))
		return domain.User{}, err
	}
	return user, nil
}

// Specializations lists the specializations on offer.
func (s *DirectoryService) Specializations(ctx context.Context) ([]string, error) {
	specs, err := s.directory.ListSpecializations(ctx)
	if err != nil {
		s.logger.Error("fetch specializations", zap.Error(err))
		return nil, err
	}
	return specs, nil
}

// Landing fetches specializations and featured developers concurrently.
func (s *DirectoryService) Landing(ctx context.Context) (Landing, error) {
	var out Landing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		specs, err := s.Specializations(gctx)
		out.Specializations = specs
		return err
	})
	g.Go(func() error {
		users, err := s.directory.ListUsers(gctx)
		if err != nil {
			s.logger.Error("fetch featured developers", zap.Error(err))
			return err
		}
		out.Featured = search.Tail(users, s.featured)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Landing{}, err
	}
	return out, nil
}
