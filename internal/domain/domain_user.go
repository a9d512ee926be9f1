package domain

import "time"

// User 用户领域模型
type User struct {
	ID        string
	Username  string
	Password  string
	CreatedAt time.Time
}
