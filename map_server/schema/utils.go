package schema

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBoatNotFound      = errors.New("boat not found")
	ErrPlacementNotFound = errors.New("placement not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDbAccessFailed    = errors.New("db access failed")
)

func GetBoat(boatId int, db *gorm.DB) (Boat, error) {
	var boat Boat

	result := db.First(&boat, "id = ?", boatId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return boat, ErrBoatNotFound
		}
		slog.Error("sql error in get boat", "boat_id", boatId, "error", result.Error)
		return boat, ErrDbAccessFailed
	}

	return boat, nil
}

func GetPlacement(boatId int, viewName string, db *gorm.DB) (Placement, error) {
	var placement Placement

	result := db.First(&placement, "boat_id = ? AND view_name = ?", boatId, viewName)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return placement, ErrPlacementNotFound
		}
		slog.Error("sql error in get placement", "boat_id", boatId, "view", viewName, "error", result.Error)
		return placement, ErrDbAccessFailed
	}

	return placement, nil
}

func GetUser(userId uuid.UUID, db *gorm.DB) (User, error) {
	var user User

	result := db.First(&user, "id = ?", userId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		slog.Error("sql error in get user", "user_id", userId, "error", result.Error)
		return user, ErrDbAccessFailed
	}

	return user, nil
}
