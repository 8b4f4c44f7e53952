package domain

import "errors"

// Roster and workflow errors. All of them leave the roster unchanged.
var (
	ErrInvalidSlot         = errors.New("slot id out of range")
	ErrSlotEmpty           = errors.New("slot has no player")
	ErrDuplicatePlayer     = errors.New("player is already in another slot")
	ErrRoleUnavailable     = errors.New("role is already taken by another slot")
	ErrInvalidRole         = errors.New("unknown role")
	ErrInvalidTeamName     = errors.New("team name is required")
	ErrInsufficientMembers = errors.New("team needs at least 2 players")
)

// Store and boundary errors.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateNickname    = errors.New("a player with this nickname already exists")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrSessionNotFound      = errors.New("builder session not found")
	ErrCaptchaRequired      = errors.New("captcha is required")
	ErrCaptchaInvalid       = errors.New("invalid captcha")
	ErrCaptchaMisconfigured = errors.New("captcha verification is not configured")
)
