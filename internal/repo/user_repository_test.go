package repo

import (
	"context"
	"testing"

	"SecondChance/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	// успешное создание
	u, err := r.CreateUser(ctx, &model.User{ID: "0b7c5f0e-8d53-4b8e-9a38-0c1d2e3f4a5b", Email: "john@example.com", Password: "hash"})
	assert.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())

	// поиск по email — найдено
	got, err := r.GetUserByEmail(ctx, "john@example.com")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// уникальный email — вторая вставка должна дать ErrDuplicateEmail
	_, err = r.CreateUser(ctx, &model.User{ID: "1b7c5f0e-8d53-4b8e-9a38-0c1d2e3f4a5b", Email: "john@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// поиск несуществующего — ожидаем gorm.ErrRecordNotFound
	got, err = r.GetUserByEmail(ctx, "nobody@example.com")
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}
