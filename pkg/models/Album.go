package models

import (
	"fmt"
	"time"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album not found")
)

type Album struct {
	BaseModel

	Slug        string
	Title       string
	Description string
	ShootDate   time.Time
	CoverImage  string
	CoverYPos   string `db:"cover_y_pos"`
	IsFavorite  bool
	Images      []Image
}
