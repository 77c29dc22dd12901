package services

import (
	"errors"
	"sync"

	"platewise-backend/models"
	"platewise-backend/utils"

	"gorm.io/gorm"
)

// UserRepository abstracts user persistence so the registration and login
// flows can be exercised without a live database.
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

// InMemoryUserRepository backs tests.
type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return errors.New("email already registered")
	}
	r.users[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *InMemoryUserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok || user.Disabled {
		return nil, errors.New("user not found or disabled")
	}
	return user, nil
}

// AuthenticateUser verifies credentials and returns a signed JWT.
func AuthenticateUser(repo UserRepository, email, password string) (string, error) {
	user, err := repo.FindByEmail(email)
	if err != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}
