package store

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUser gates the monitor CLI's attach to the live session registry.
// There is no guest/player account system here — the negotiation demo has
// no notion of a logged-in end user, only an operator who wants to watch
// sessions negotiate.
type AdminUser struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string
}

func (s *Store) CreateAdminUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	user := AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	}

	result := s.DB.Create(&user)
	return result.Error
}

func (s *Store) FindAdminUserByUsername(username string) (*AdminUser, error) {
	var user AdminUser
	result := s.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *Store) UpdateAdminPassword(username, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		return err
	}

	return s.DB.Model(&AdminUser{}).
		Where("username = ?", username).
		Update("password_hash", string(hash)).Error
}

func (s *Store) RemoveAdminUser(username string) error {
	return s.DB.Unscoped().
		Where("username = ?", username).
		Delete(&AdminUser{}).Error
}

func (s *Store) AuthenticateAdmin(username, password string) (*AdminUser, error) {
	var user AdminUser

	result := s.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid password")
	}

	return &user, nil
}
