package models

import "time"

// User представляет пользователя платформы.
// EnrolledAt — момент начала программы для пользователя, фиксируется при
// регистрации и далее не меняется: от него отсчитываются недели открытия контента.
type User struct {
	UUID             string    `json:"uuid"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	SubscriptionTier Tier      `json:"subscription_tier"`
	EnrolledAt       time.Time `json:"enrolled_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// DummyRegisterRequest используется для приёма данных регистрации из JSON-запроса.
type DummyRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLoginRequest используется для приёма данных входа из JSON-запроса.
type DummyLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
