package viewmodels

import (
	internalmodels "github.com/rachelharding/rachelhardingphotography/cmd/website/internal/models"
)

type DownloadStarted struct {
	BaseViewModel

	Album       internalmodels.Album
	DownloadURL string
}
