package common

import (
	"deskpool/src/models"
	"deskpool/src/models/scopes"
	"deskpool/src/types"
	"errors"

	"gorm.io/gorm"
)

// ResolveUser reads the user row fresh on every call. Roles are never
// cached or embedded in a session, so a role change applies immediately.
func ResolveUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.Model(&models.User{}).Scopes(scopes.WithID(id)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func RequireRole(tx *gorm.DB, id uint, allowed ...types.Role) (*models.User, error) {
	user, err := ResolveUser(tx, id)
	if err != nil {
		return nil, err
	}
	for _, role := range allowed {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, types.ErrUnauthorized
}
