package asaas

// Customer is the provider-side billing customer.
type Customer struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	CpfCnpj           string `json:"cpfCnpj"`
	MobilePhone       string `json:"mobilePhone"`
	PostalCode        string `json:"postalCode"`
	ExternalReference string `json:"externalReference"`
}

type CustomerRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	CpfCnpj           string `json:"cpfCnpj"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
}

type customerListResponse struct {
	Data       []Customer `json:"data"`
	TotalCount int        `json:"totalCount"`
}

// Subscription is the provider-side recurring charge.
type Subscription struct {
	ID          string `json:"id"`
	Customer    string `json:"customer"`
	BillingType string `json:"billingType"`
	Value       Money  `json:"value"`
	NextDueDate string `json:"nextDueDate"`
	Cycle       string `json:"cycle"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Callback is where the provider's hosted checkout sends the payer
// after a successful payment.
type Callback struct {
	SuccessURL   string `json:"successUrl"`
	AutoRedirect bool   `json:"autoRedirect"`
}

type SubscriptionRequest struct {
	Customer          string    `json:"customer"`
	BillingType       string    `json:"billingType"`
	Value             Money     `json:"value"`
	NextDueDate       string    `json:"nextDueDate"`
	Cycle             string    `json:"cycle"`
	Description       string    `json:"description,omitempty"`
	ExternalReference string    `json:"externalReference,omitempty"`
	Callback          *Callback `json:"callback,omitempty"`
}

type subscriptionStatusRequest struct {
	Status string `json:"status"`
}

// Payment is the provider-side charge referenced by webhook events.
type Payment struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	BillingType  string `json:"billingType"`
	Status       string `json:"status"`
	Value        Money  `json:"value"`
	NetValue     Money  `json:"netValue"`
	DueDate      string `json:"dueDate"`
	PaymentDate  string `json:"paymentDate"`
	InvoiceURL   string `json:"invoiceUrl"`
	BankSlipURL  string `json:"bankSlipUrl"`
}
