package viewmodels

import (
	internalmodels "github.com/rachelharding/rachelhardingphotography/cmd/website/internal/models"
)

type ViewAlbum struct {
	BaseViewModel

	Album     internalmodels.Album
	RowHeight int
	Gap       int
}
