package dto

type AddCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
