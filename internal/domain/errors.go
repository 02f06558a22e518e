package domain

import "errors"

// 领域错误，handler 层统一映射到 HTTP 状态码
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyDeleted     = errors.New("product is already deleted")
	ErrNotDeleted         = errors.New("product is not deleted")
	ErrDeletedProduct     = errors.New("cannot update deleted product")
	ErrInvalidInput       = errors.New("name and price are required")
	ErrInvalidPrice       = errors.New("price must be greater than 0")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
