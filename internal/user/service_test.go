package user

import (
	"testing"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/config"
)

var testCfg = config.Config{
	DefaultAddress:     "ADDRESS_NOT_SET",
	DefaultWalletMoney: 500,
	MinAddressLength:   20,
}

func TestRegister_AppliesDefaults(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), testCfg)

	created, err := svc.Register("Crio User", "crio@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.WalletMoney != 500 {
		t.Fatalf("expected wallet 500, got %d", created.WalletMoney)
	}
	if created.Address != testCfg.DefaultAddress {
		t.Fatalf("expected sentinel address, got %q", created.Address)
	}
	if created.Password == "hunter22" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), testCfg)

	if _, err := svc.Register("A", "crio@example.com", "hunter22"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register("B", "crio@example.com", "other-pass")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), testCfg)

	if _, err := svc.Register("A", "crio@example.com", "hunter22"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Authenticate("crio@example.com", "hunter22"); err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if _, err := svc.Authenticate("crio@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "hunter22"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSetAddress(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 1, Address: testCfg.DefaultAddress}})
	svc := NewService(repo, testCfg)

	if _, err := svc.SetAddress(1, "too short"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for short address, got %v", err)
	}

	u, err := svc.SetAddress(1, "221B Baker Street, London NW1")
	if err != nil {
		t.Fatalf("SetAddress failed: %v", err)
	}
	if !svc.HasSetAddress(u) {
		t.Fatal("expected address to count as set")
	}

	if _, err := svc.SetAddress(99, "221B Baker Street, London NW1"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}
