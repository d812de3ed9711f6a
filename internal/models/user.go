package models

// User represents an authentication principal. The email doubles as the
// username and passwords are stored bcrypt-hashed.
type User struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email             string      `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PasswordHash      string      `json:"-" gorm:"type:varchar(255)"`
	EmailConfirmed    bool        `json:"emailConfirmed"`
	AccessFailedCount int         `json:"-"`
	Claims            []UserClaim `json:"claims" gorm:"foreignKey:UserID"`
}

// UserClaim is a named attribute attached to a user, consulted by
// authorization policies.
type UserClaim struct {
	ID     uint   `json:"-" gorm:"primaryKey"`
	UserID string `json:"-" gorm:"index;type:varchar(36)"`
	Type   string `json:"type"`
	Value  string `json:"value"`
}

// RegisterCommand is the request body for /register.
type RegisterCommand struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginCommand is the request body for /login.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
