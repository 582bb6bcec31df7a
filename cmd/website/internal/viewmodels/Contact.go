package viewmodels

type Contact struct {
	BaseViewModel

	Name      string
	Email     string
	ShootType string
	Body      string
	Sent      bool
}
