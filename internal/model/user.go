package model

import "github.com/haierkeys/fast-note-link-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	ID        string     `gorm:"column:id;primaryKey;size:36" json:"id" form:"id"`
	Username  string     `gorm:"column:username;size:64;not null;uniqueIndex:idx_user_username" json:"username" form:"username"`
	Password  string     `gorm:"column:password;size:255;not null" json:"password" form:"password"`
	CreatedAt timex.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
