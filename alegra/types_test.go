package alegra

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		json     string
		expected ID
	}{
		{`"1234"`, "1234"},
		{`1234`, "1234"},
		{`null`, ""},
	}

	for _, test := range tests {
		v := struct {
			ID ID `json:"id"`
		}{}

		if err := json.Unmarshal([]byte(`{"id":`+test.json+`}`), &v); err != nil {
			t.Fatalf("error unmarshalling %v (%v)", test.json, err)
		}

		if v.ID != test.expected {
			t.Errorf("incorrectly unmarshalled %v - expected:%v, got:%v", test.json, test.expected, v.ID)
		}
	}
}

func TestRetentionUnmarshal(t *testing.T) {
	bytes := []byte(`{
		"id": 5,
		"name": "ReteFuente",
		"type": "retefuente",
		"calculatedBy": "subtotal",
		"isAssumed": true,
		"percentage": 2.5,
		"exchangeRate": "4100.50",
		"amount": "5000"
	}`)

	retention := Retention{}
	if err := json.Unmarshal(bytes, &retention); err != nil {
		t.Fatalf("error unmarshalling retention (%v)", err)
	}

	expected := Retention{
		ID:           "5",
		Name:         "ReteFuente",
		Type:         "retefuente",
		CalculatedBy: "subtotal",
		IsAssumed:    true,
		Percentage:   "2.5",
		ExchangeRate: "4100.50",
		Amount:       decimal.NewFromInt(5000),
	}

	if retention.ID != expected.ID || retention.Percentage != expected.Percentage || retention.ExchangeRate != expected.ExchangeRate {
		t.Errorf("incorrectly unmarshalled retention\n   expected:%+v\n   got:     %+v", expected, retention)
	}

	if !retention.Amount.Equal(expected.Amount) {
		t.Errorf("incorrect retention amount - expected:%v, got:%v", expected.Amount, retention.Amount)
	}
}

func TestRetentionUnmarshalWithNullPercentage(t *testing.T) {
	retention := Retention{}
	if err := json.Unmarshal([]byte(`{"id":"6","percentage":null}`), &retention); err != nil {
		t.Fatalf("error unmarshalling retention (%v)", err)
	}

	if retention.Percentage != "" {
		t.Errorf("incorrect percentage - expected:%q, got:%q", "", retention.Percentage)
	}
}

func TestAccountUnmarshalWithNumericCode(t *testing.T) {
	account := Account{}
	if err := json.Unmarshal([]byte(`{"id":1,"code":510506,"name":"Sueldos"}`), &account); err != nil {
		t.Fatalf("error unmarshalling account (%v)", err)
	}

	if account.Code != "510506" {
		t.Errorf("incorrect account code - expected:%v, got:%v", "510506", account.Code)
	}
}
