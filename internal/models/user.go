// Package models содержит доменные структуры сервиса рецептов: пользователей,
// теги, ингредиенты, рецепты и проекции, которые отдаются наружу через API.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Неизменяемый идентификатор
	Email        string    // Электронная почта (уникальная)
	Username     string    // Имя пользователя (уникальное)
	FirstName    string    // Имя
	LastName     string    // Фамилия
	PasswordHash string    `json:"-"` // Хэш пароля пользователя, в кэш не попадает
	CreatedAt    time.Time // Дата регистрации
}

// UserProfile — проекция пользователя для API.
type UserProfile struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Profile строит профиль пользователя. subscribed: подписан ли на него текущий пользователь.
func (u User) Profile(subscribed bool) UserProfile {
	return UserProfile{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// Registered возвращает ответ на регистрацию.
func (u User) Registered() RegisteredUser {
	return RegisteredUser{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Registration используется для приёма данных регистрации из JSON-запроса.
type Registration struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=150"`
}

// Credentials содержит данные для получения токена.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordChange содержит данные для смены пароля.
type PasswordChange struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// RegisteredUser — ответ на успешную регистрацию.
type RegisteredUser struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthorSubscription — проекция автора в списке подписок пользователя.
type AuthorSubscription struct {
	UserProfile
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}
