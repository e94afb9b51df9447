package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CredentialDTO 登录
type CredentialDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthorDTO 作者信息
type AuthorDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// TokenDTO 登录结果
type TokenDTO struct {
	Token  string     `json:"token"`
	Author *AuthorDTO `json:"author"`
}
