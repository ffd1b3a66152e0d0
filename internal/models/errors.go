package models

import "errors"

// Application-wide standard errors
var (
	// Common resource errors
	ErrNotFound      = errors.New("resource not found")
	ErrStoryNotFound = errors.New("story not found")
	ErrGroupNotFound = errors.New("group not found")

	// User & authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotOwner           = errors.New("caller does not own this resource")

	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// Social errors
	ErrSelfFollow = errors.New("cannot follow yourself")

	// Group errors
	ErrGroupPrivate      = errors.New("group is private")
	ErrAlreadyMember     = errors.New("already a member of this group")
	ErrNotGroupMember    = errors.New("must be a group member")
	ErrStoryAlreadyShared = errors.New("story already shared in this group")

	// Generation errors
	ErrGenerationFailed = errors.New("generation service failed")
	ErrEmptyGeneration  = errors.New("generation service returned no content")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
