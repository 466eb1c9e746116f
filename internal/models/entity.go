package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Address   sql.NullString
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Client struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Email     sql.NullString
	Phone     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
