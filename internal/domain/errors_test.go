package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsInvalidParameter(t *testing.T) {
	err := NewInvalidParameter("Invalid name field")
	if !IsInvalidParameter(err) {
		t.Fatal("expected IsInvalidParameter to be true")
	}

	wrapped := fmt.Errorf("place order: %w", err)
	if !IsInvalidParameter(wrapped) {
		t.Fatal("expected IsInvalidParameter to see through wrapping")
	}

	if IsInvalidParameter(ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound is not an input error")
	}
	if IsInvalidParameter(nil) {
		t.Fatal("nil is not an input error")
	}
}

func TestIsStorageFault(t *testing.T) {
	err := fmt.Errorf("%w: rollback failed: disk gone", ErrStorageFault)
	if !IsStorageFault(err) {
		t.Fatal("expected storage fault to be detected through wrapping")
	}
	if IsStorageFault(errors.New("plain")) {
		t.Fatal("plain error is not a storage fault")
	}
}

func TestInvalidParameterError_Message(t *testing.T) {
	err := NewInvalidParameter("Invalid %s field", "phone")
	if err.Error() != "Invalid phone field" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
