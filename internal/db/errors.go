package db

import "errors"

// Record store error sentinels shared by the PostgreSQL and in-memory backends.
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateToken   = errors.New("share token already exists")
	ErrInvalidReference = errors.New("referenced id is malformed")
)
