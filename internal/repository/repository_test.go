package repository

import (
	"errors"
	"testing"
)

func TestConstructors(t *testing.T) {
	if NewUserRepository(nil) == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if NewProfileRepository(nil) == nil {
		t.Fatal("expected non-nil ProfileRepository")
	}
	if NewPostRepository(nil) == nil {
		t.Fatal("expected non-nil PostRepository")
	}
	if NewMediaRepository(nil) == nil {
		t.Fatal("expected non-nil MediaRepository")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound,
		ErrDuplicateEmail,
		ErrProfileNotFound,
		ErrProfileExists,
		ErrPostNotFound,
		ErrMediaNotFound,
	}
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel error should not be nil")
		}
	}
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New(`Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.email'`)) {
		t.Fatal("expected MySQL 1062 to be detected as duplicate entry")
	}
}
