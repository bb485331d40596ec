package alegra

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is an Alegra record identifier. The API is inconsistent about whether
// identifiers come back as JSON numbers or strings, so it accepts either.
type ID string

func (id *ID) UnmarshalJSON(bytes []byte) error {
	s := strings.TrimSpace(string(bytes))

	if s == "null" {
		*id = ""
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(bytes, &v); err != nil {
			return err
		}

		*id = ID(v)
		return nil
	}

	var v json.Number
	if err := json.Unmarshal(bytes, &v); err != nil {
		return err
	}

	*id = ID(v.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Address struct {
	City       string `json:"city"`
	Department string `json:"department"`
	Address    string `json:"address"`
}

type Contact struct {
	ID             ID      `json:"id"`
	Name           string  `json:"name"`
	Identification string  `json:"identification"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	PhonePrimary   string  `json:"phonePrimary"`
	Address        Address `json:"address"`
}

type NumberTemplate struct {
	ID         ID     `json:"id"`
	Prefix     string `json:"prefix"`
	Number     string `json:"number"`
	FullNumber string `json:"fullNumber"`
}

type Seller struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification"`
}

type Warehouse struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type CostCenter struct {
	ID   ID     `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type BankAccount struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Currency struct {
	Code         string          `json:"code"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// Stamp carries the DIAN electronic invoicing stamp attached to issued
// invoices.
type Stamp struct {
	CUFE        string `json:"cufe"`
	Date        string `json:"date"`
	LegalStatus string `json:"legalStatus"`
}

type Tax struct {
	ID         ID              `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

// Retention is a withholding applied to a purchase. Percentages and
// exchange rates come back either as numbers or as strings (occasionally
// with stray characters) so the raw representation is kept as-is.
type Retention struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CalculatedBy string          `json:"calculatedBy"`
	IsAssumed    bool            `json:"isAssumed"`
	Percentage   string          `json:"percentage"`
	ExchangeRate string          `json:"exchangeRate"`
	Amount       decimal.Decimal `json:"amount"`
}

func (r *Retention) UnmarshalJSON(bytes []byte) error {
	type retention struct {
		ID           ID              `json:"id"`
		Name         string          `json:"name"`
		Type         string          `json:"type"`
		CalculatedBy string          `json:"calculatedBy"`
		IsAssumed    bool            `json:"isAssumed"`
		Percentage   json.RawMessage `json:"percentage"`
		ExchangeRate json.RawMessage `json:"exchangeRate"`
		Amount       decimal.Decimal `json:"amount"`
	}

	v := retention{}
	if err := json.Unmarshal(bytes, &v); err != nil {
		return err
	}

	r.ID = v.ID
	r.Name = v.Name
	r.Type = v.Type
	r.CalculatedBy = v.CalculatedBy
	r.IsAssumed = v.IsAssumed
	r.Amount = v.Amount
	r.Percentage = rawString(v.Percentage)
	r.ExchangeRate = rawString(v.ExchangeRate)

	return nil
}

func rawString(raw json.RawMessage) string {
	s := strings.Trim(string(raw), `"`)
	if s == "null" {
		return ""
	}

	return s
}

type InvoiceItem struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	Unit        string          `json:"unit"`
	Tax         []Tax           `json:"tax"`
}

type Invoice struct {
	ID             ID              `json:"id"`
	Date           string          `json:"date"`
	DueDate        string          `json:"dueDate"`
	Status         string          `json:"status"`
	Term           string          `json:"term"`
	PaymentForm    string          `json:"paymentForm"`
	Observations   string          `json:"observations"`
	Anotation      string          `json:"anotation"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Balance        decimal.Decimal `json:"balance"`
	Client         Contact         `json:"client"`
	Seller         Seller          `json:"seller"`
	Warehouse      Warehouse       `json:"warehouse"`
	CostCenter     CostCenter      `json:"costCenter"`
	NumberTemplate NumberTemplate  `json:"numberTemplate"`
	Stamp          Stamp           `json:"stamp"`
	Items          []InvoiceItem   `json:"items"`
}

type PurchaseCategory struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Observations string          `json:"observations"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Discount     decimal.Decimal `json:"discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	Tax          []Tax           `json:"tax"`
}

type Purchases struct {
	Items      []InvoiceItem      `json:"items"`
	Categories []PurchaseCategory `json:"categories"`
}

type Bill struct {
	ID             ID              `json:"id"`
	Date           string          `json:"date"`
	DueDate        string          `json:"dueDate"`
	Status         string          `json:"status"`
	Type           string          `json:"type"`
	Observations   string          `json:"observations"`
	Total          decimal.Decimal `json:"total"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Balance        decimal.Decimal `json:"balance"`
	Provider       Contact         `json:"provider"`
	Warehouse      Warehouse       `json:"warehouse"`
	CostCenter     CostCenter      `json:"costCenter"`
	NumberTemplate NumberTemplate  `json:"numberTemplate"`
	Purchases      Purchases       `json:"purchases"`
	Retentions     []Retention     `json:"retentions"`
}

type PaymentInvoice struct {
	ID      ID              `json:"id"`
	Number  ID              `json:"number"`
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Total   decimal.Decimal `json:"total"`
	Balance decimal.Decimal `json:"balance"`
}

type PaymentCategory struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Behavior     string          `json:"behavior"`
	Observations string          `json:"observations"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	Tax          []Tax           `json:"tax"`
}

type Payment struct {
	ID             ID                `json:"id"`
	Date           string            `json:"date"`
	Number         ID                `json:"number"`
	Type           string            `json:"type"`
	Status         string            `json:"status"`
	PaymentMethod  string            `json:"paymentMethod"`
	Observations   string            `json:"observations"`
	Anotation      string            `json:"anotation"`
	Amount         decimal.Decimal   `json:"amount"`
	Client         Contact           `json:"client"`
	BankAccount    BankAccount       `json:"bankAccount"`
	CostCenter     CostCenter        `json:"costCenter"`
	NumberTemplate NumberTemplate    `json:"numberTemplate"`
	Currency       Currency          `json:"currency"`
	Invoices       []PaymentInvoice  `json:"invoices"`
	Categories     []PaymentCategory `json:"categories"`
}

type Price struct {
	ID       ID              `json:"idPriceList"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Main     bool            `json:"main"`
	Currency Currency        `json:"currency"`
}

type Inventory struct {
	Unit                string          `json:"unit"`
	AvailableQuantity   decimal.Decimal `json:"availableQuantity"`
	InitialQuantity     decimal.Decimal `json:"initialQuantity"`
	InitialQuantityDate string          `json:"initialQuantityDate"`
	UnitCost            decimal.Decimal `json:"unitCost"`
}

type ItemCategory struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Item struct {
	ID               ID                `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Reference        string            `json:"reference"`
	Status           string            `json:"status"`
	Type             string            `json:"type"`
	ItemType         string            `json:"itemType"`
	ProductKey       string            `json:"productKey"`
	CalculationScale int               `json:"calculationScale"`
	HasNoIvaDays     bool              `json:"hasNoIvaDays"`
	Price            []Price           `json:"price"`
	Tax              []Tax             `json:"tax"`
	Category         ItemCategory      `json:"category"`
	ItemCategory     ItemCategory      `json:"itemCategory"`
	Inventory        Inventory         `json:"inventory"`
	CustomFields     []json.RawMessage `json:"customFields"`
}

type CategoryRule struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Account is an entry of the chart of accounts, returned by the categories
// endpoint in plain format. IDParent is empty for root accounts.
type Account struct {
	ID                    ID           `json:"id"`
	IDParent              ID           `json:"idParent"`
	IDGlobal              ID           `json:"idGlobal"`
	Code                  ID           `json:"code"`
	Text                  string       `json:"text"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	Type                  string       `json:"type"`
	Nature                string       `json:"nature"`
	Use                   string       `json:"use"`
	Status                string       `json:"status"`
	ReadOnly              bool         `json:"readOnly"`
	Blocked               bool         `json:"blocked"`
	ShowThirdPartyBalance bool         `json:"showThirdPartyBalance"`
	CategoryRule          CategoryRule `json:"categoryRule"`
}
