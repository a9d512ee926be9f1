package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定模型的表结构，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Note":
		return db.AutoMigrate(&Note{})
	case "User":
		return db.AutoMigrate(&User{})
	case "":
		for _, k := range Keys() {
			if err := AutoMigrate(db, k); err != nil {
				return errors.Wrapf(err, "migrate %s", k)
			}
		}
		return nil
	}
	return errors.Errorf("unknown model %q", key)
}

// Keys 返回全部可迁移模型名
func Keys() []string {
	return []string{"User", "Note"}
}
