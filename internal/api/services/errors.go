package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrHandleTaken      = errors.New("handle already taken")
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingSecret    = errors.New("no config found for JWT")
)
