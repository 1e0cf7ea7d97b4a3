package services_test

import (
	"testing"

	"moneta/internal/services"
	"moneta/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewAccountService(store)

	account, err := svc.CreateAccount("Checking", "EUR", 125000)
	testutil.AssertNoError(t, err)
	if account.ID == 0 {
		t.Error("expected account to receive an ID")
	}
	if account.Currency != "EUR" {
		t.Errorf("currency = %s, want EUR", account.Currency)
	}
	if account.Balance != 125000 {
		t.Errorf("balance = %d, want 125000", account.Balance)
	}
	if !account.IsActive {
		t.Error("new account should be active")
	}
}

func TestCreateAccountDefaultsCurrency(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewAccountService(store)

	account, err := svc.CreateAccount("Cash", "", 0)
	testutil.AssertNoError(t, err)
	if account.Currency != "USD" {
		t.Errorf("currency = %s, want USD", account.Currency)
	}
}

func TestCreateAccountInvalidInput(t *testing.T) {
	t.Run("empty_name", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewAccountService(store)

		_, err := svc.CreateAccount("", "USD", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("bad_currency", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewAccountService(store)

		_, err := svc.CreateAccount("Checking", "DOLLARS", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetAccountByIDNotFound(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewAccountService(store)

	_, err := svc.GetAccountByID(99999)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestGetAllAccountsOrderedByName(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewAccountService(store)

	for _, name := range []string{"Savings", "Checking", "Brokerage"} {
		_, err := svc.CreateAccount(name, "USD", 0)
		testutil.AssertNoError(t, err)
	}

	accounts, err := svc.GetAllAccounts()
	testutil.AssertNoError(t, err)
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	want := []string{"Brokerage", "Checking", "Savings"}
	for i, account := range accounts {
		if account.Name != want[i] {
			t.Errorf("position %d: got %s, want %s", i, account.Name, want[i])
		}
	}
}

func TestAccountUUIDAssigned(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewAccountService(store)

	account, err := svc.CreateAccount("Checking", "USD", 0)
	testutil.AssertNoError(t, err)
	if account.UUID == "" {
		t.Error("expected account UUID to be assigned on create")
	}
}
