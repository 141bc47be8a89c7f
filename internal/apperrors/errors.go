package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenIsUsed   = errors.New("refresh token is used")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	// Google credential lifecycle. ErrCredentialInvalid is the umbrella the
	// generation pipeline reacts to: absent, expired and scope-insufficient
	// tokens are all equally unusable for the caller.
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialExpired  = errors.New("credential is expired")
	ErrCredentialInvalid  = errors.New("credential is invalid")

	ErrRecordNotFound = errors.New("generation record not found")

	// Generation pipeline failure classes. The first three abort the
	// pipeline, the last two degrade it: the caller still gets a record
	// together with a warning.
	ErrValidation     = errors.New("validation failed")
	ErrTemplateCopy   = errors.New("template copy failed")
	ErrContentUpdate  = errors.New("content update failed")
	ErrOverflowUpdate = errors.New("overflow slides update failed")
	ErrPersistence    = errors.New("record persistence failed")
)
