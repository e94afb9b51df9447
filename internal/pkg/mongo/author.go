package mongo

import "time"

// Author 作者账号文档。与文章集合相互独立，不做引用完整性约束。
type Author struct {
	ID           string    `bson:"_id" json:"id"` // UUID
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
