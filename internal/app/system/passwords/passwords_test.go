package passwords

import (
	"errors"
	"testing"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := Check(hash, "correct horse"); err != nil {
		t.Errorf("Check with right password: %v", err)
	}
	if err := Check(hash, "wrong horse"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Check with wrong password: got %v, want ErrMismatch", err)
	}
}

func TestHash_TooShort(t *testing.T) {
	if _, err := Hash("abc"); !errors.Is(err, ErrTooShort) {
		t.Errorf("got %v, want ErrTooShort", err)
	}
}
