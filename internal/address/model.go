package address

type Address struct {
	ID     string
	UserID string

	Name  string
	Phone string

	Address1 string
	Address2 *string

	City     string
	Province string
	Postal   string
	Country  string
}
