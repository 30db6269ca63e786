package project

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gucci1909/regis/pkg/apperr"
)

type Service interface {
	Create(ctx context.Context, p *Project) (string, error)
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*Project, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, p *Project) (string, error) {
	if strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Location) == "" ||
		strings.TrimSpace(p.ShortDescription) == "" ||
		strings.TrimSpace(p.Status) == "" {
		return "", apperr.New(apperr.Validation, "Missing required fields")
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to insert project", err)
	}

	s.logger.Info("project added", zap.String("name", p.Name), zap.String("id", id.Hex()))
	return id.Hex(), nil
}

func (s *service) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list project names", err)
	}
	return names, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*Project, error) {
	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch project", err)
	}
	if p == nil {
		return nil, apperr.New(apperr.NotFound, "Project not found")
	}
	return p, nil
}
