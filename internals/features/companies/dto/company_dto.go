package dto

type CreateCompanyRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=2,max=150"`
	CompanyContact string `json:"company_contact" validate:"omitempty,max=100"`
	CompanyPhone   string `json:"company_phone" validate:"omitempty,max=20"`
	CompanyAddress string `json:"company_address" validate:"omitempty,max=255"`
}

type UpdateCompanyRequest struct {
	CompanyName    *string `json:"company_name" validate:"omitempty,min=2,max=150"`
	CompanyContact *string `json:"company_contact" validate:"omitempty,max=100"`
	CompanyPhone   *string `json:"company_phone" validate:"omitempty,max=20"`
	CompanyAddress *string `json:"company_address" validate:"omitempty,max=255"`
	CompanyActive  *bool   `json:"company_active"`
}
