package domain

// DefaultHourlyRate applies until the user saves their own rate.
const DefaultHourlyRate = 500

// Settings holds the user-editable configuration: the hourly rate applied
// to every cost computation and the supplier details printed on invoices.
type Settings struct {
	HourlyRate       float64 `json:"hourlyRate"`
	Currency         string  `json:"currency"`
	SupplierName     string  `json:"supplierName"`
	SupplierAddress  string  `json:"supplierAddress"`
	SupplierRegID    string  `json:"supplierRegID"`
	SupplierRegister string  `json:"supplierRegister"`
	BankAccount      string  `json:"bankAccount"`
	IBAN             string  `json:"iban"`
}

// User is the single account allowed to mutate tracker data.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}
