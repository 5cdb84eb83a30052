package address

type Response struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
}

func ToResponse(a *Address) *Response {
	if a == nil {
		return nil
	}
	return &Response{
		ID:           a.ID,
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.Address1,
		AddressLine2: a.Address2,
		City:         a.City,
		Province:     a.Province,
		PostalCode:   a.Postal,
		Country:      a.Country,
	}
}
