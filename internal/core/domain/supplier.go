package domain

// Supplier is a vendor that expenses can be attributed to.
type Supplier struct {
	SupplierID    string `json:"supplierID"`
	Name          string `json:"supplierName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxId"`
	PaymentTerms  string `json:"paymentTerms"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}
