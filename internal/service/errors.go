package service

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation_failed")
	ErrMeetingsDisabled = errors.New("meetings_disabled")
	ErrQuotaExceeded    = errors.New("quota_exceeded")
	ErrStatusConflict   = errors.New("status_conflict")
	ErrSettingsMissing  = errors.New("settings_missing")
	ErrOutsideWindow    = errors.New("outside_meeting_window")
	ErrInvalidToken     = errors.New("invalid_token")
	ErrTokenExpired     = errors.New("token_expired")
	ErrAlreadyUsed      = errors.New("already_used")
)
