package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"SecondChance/internal/model"

	"gorm.io/gorm"
)

// maxCreateAttempts — сколько раз Create пересчитывает id при конфликте первичного ключа.
const maxCreateAttempts = 5

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	// ListAll возвращает все объявления в порядке хранения.
	ListAll(ctx context.Context) ([]model.Item, error)

	// GetByID ищет по точному совпадению строки id; gorm.ErrRecordNotFound если нет.
	GetByID(ctx context.Context, id string) (*model.Item, error)

	// Create назначает следующий последовательный id (max+1) и вставляет запись.
	Create(ctx context.Context, it *model.Item) error

	// Update перезаписывает изменяемые поля. changed=false, если ни одна строка не затронута.
	Update(ctx context.Context, it *model.Item) (changed bool, err error)

	// Delete удаляет запись по id.
	Delete(ctx context.Context, id string) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err := nextItemID(tx)
			if err != nil {
				return err
			}
			it.ID = next
			return tx.Create(it).Error
		})
		if !isUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("assign item id after %d attempts: %w", maxCreateAttempts, err)
}

// nextItemID читает запись с наибольшим числовым id и возвращает id+1.
func nextItemID(tx *gorm.DB) (string, error) {
	var last model.Item
	err := tx.Select("id").Order("CAST(id AS BIGINT) DESC").Limit(1).Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "1", nil
	}
	if err != nil {
		return "", err
	}
	n, err := strconv.ParseInt(last.ID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("last item id %q is not numeric: %w", last.ID, err)
	}
	return strconv.FormatInt(n+1, 10), nil
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", it.ID).Updates(map[string]any{
		"category":    it.Category,
		"condition":   it.Condition,
		"age_days":    it.AgeDays,
		"description": it.Description,
		"age_years":   it.AgeYears,
		"updated_at":  it.UpdatedAt,
	})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{}).Error
}
