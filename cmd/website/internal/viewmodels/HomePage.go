package viewmodels

import (
	internalmodels "github.com/rachelharding/rachelhardingphotography/cmd/website/internal/models"
)

type HomePage struct {
	BaseViewModel

	Albums []internalmodels.Album
}
