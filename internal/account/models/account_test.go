package models

import "testing"

func TestAccountVerified(t *testing.T) {
	full := Account{OwnerName: "Ada", SortCode: "53-68-92", AccountNumber: "73084635"}

	tests := []struct {
		name    string
		mutate  func(a *Account)
		want    bool
	}{
		{name: "all identifiers present", mutate: func(*Account) {}, want: true},
		{name: "blank owner", mutate: func(a *Account) { a.OwnerName = "  " }, want: false},
		{name: "blank sort code", mutate: func(a *Account) { a.SortCode = "" }, want: false},
		{name: "blank account number", mutate: func(a *Account) { a.AccountNumber = "\t" }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := full
			tt.mutate(&a)
			if got := a.Verified(); got != tt.want {
				t.Fatalf("Verified() = %v, want %v", got, tt.want)
			}
		})
	}

	var missing *Account
	if missing.Verified() {
		t.Fatalf("nil account must not verify")
	}
}
