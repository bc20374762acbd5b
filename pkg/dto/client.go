package dto

// RegisterClient represents the data needed to register a new client.
type RegisterClient struct {
	TaxID     string `validate:"required,number,max=14"`
	Name      string `validate:"required,max=120"`
	BirthDate string `validate:"required,datetime=02-01-2006"`
	Address   string `validate:"required,max=200"`
}
