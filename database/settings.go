package database

import (
	"errors"
	"strings"

	"sanctuary/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetConfig returns the raw JSON value stored under key.
// ok is false when the key does not exist.
func GetConfig(key string) (value []byte, ok bool, err error) {
	if DB == nil {
		return nil, false, errors.New("database not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("empty config key")
	}

	var c models.GlobalConfig
	if err := DB.First(&c, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(c.Value), true, nil
}

// SetConfig upserts the whole JSON value stored under key. Callers that want
// a partial update must merge before writing.
func SetConfig(key string, value []byte) error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty config key")
	}

	return DB.Save(&models.GlobalConfig{Key: key, Value: datatypes.JSON(value)}).Error
}

// DeleteConfig removes a stored value if it exists.
func DeleteConfig(key string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty config key")
	}

	return DB.Where("key = ?", key).Delete(&models.GlobalConfig{}).Error
}
