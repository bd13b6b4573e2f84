package service

import (
	"context"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolService struct {
	toolRepo repository.ToolRepository
}

func NewToolService(toolRepo repository.ToolRepository) ToolService {
	return &toolService{toolRepo: toolRepo}
}

func (s *toolService) AddTool(ctx context.Context, tool *domain.Tool) error {
	if tool.Name == "" {
		return errors.New("tool name is required")
	}
	if tool.PriceCents <= 0 {
		return errors.New("tool price must be positive")
	}
	return s.toolRepo.Create(ctx, tool)
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	return s.toolRepo.GetByID(ctx, id)
}

func (s *toolService) ListTools(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Tool, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.toolRepo.List(ctx, query, category, page, pageSize)
}

func (s *toolService) ListMyTools(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Tool, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.toolRepo.ListByOwner(ctx, ownerID, page, pageSize)
}
