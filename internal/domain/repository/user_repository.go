package repository

import (
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(userID string, at time.Time) error
	List(limit, offset int) ([]*entity.User, error)
}
