package models

/*
Album is the view-facing shape of an album: dates are pre-formatted and
image references are URLs the browser can fetch through the image proxy.
*/
type Album struct {
	ID          uint
	Slug        string
	Title       string
	Description string
	ShootDate   string
	CoverURL    string
	HeroURL     string
	CoverYPos   string
	IsFavorite  bool
	Images      []Image
}

type Image struct {
	Filename   string
	Width      int
	Height     int
	Ratio      float64
	IsPortrait bool

	/*
	 * One URL per resolution class. Thumbnail always exists for an
	 * imported image; Large feeds the modal viewer.
	 */
	ThumbnailURL string
	SmallURL     string
	MediumURL    string
	LargeURL     string
}
