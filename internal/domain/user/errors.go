package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already registered")
	ErrRoleAccessRequired = errors.New("access denied for this role")
)
