package service

import (
	"context"
	"errors"
	"time"

	"SecondChance/internal/model"
	"SecondChance/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemService инкапсулирует бизнес-логику работы с объявлениями.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, logger: logger, now: time.Now}
}

func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListAll(ctx)
}

func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return it, err
}

// Create проставляет date_added и сохраняет объявление; id назначает репозиторий.
func (s *ItemService) Create(ctx context.Context, it *model.Item) (*model.Item, error) {
	it.ID = ""
	it.DateAdded = s.now().Unix()
	it.UpdatedAt = nil
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.logger.Infow("item created", "id", it.ID)
	return it, nil
}

// Update применяет частичное обновление. changed=false, если хранилище не изменило ни одной строки.
func (s *ItemService) Update(ctx context.Context, id string, upd model.ItemUpdate) (bool, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	upd.Apply(it)
	now := s.now().UTC()
	it.UpdatedAt = &now

	changed, err := s.repo.Update(ctx, it)
	if err != nil {
		return false, err
	}
	if !changed {
		s.logger.Warnw("item update changed nothing", "id", id)
	}
	return changed, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
