package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("demo")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "demo" {
		t.Fatalf("hash must not equal the plaintext password")
	}

	if !CheckPassword("demo", hash) {
		t.Fatalf("expected password to match its own hash")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestCheckPassword_2bHashVariant(t *testing.T) {
	t.Parallel()

	// Hash generated with the $2b$ prefix, as produced by other bcrypt
	// implementations. Existing rows may carry this variant.
	const hash = "$2b$12$ifqc0gT0cKUSs9oszgJIhulcWO4tnCoTJzkDxFiO1crBUjArglfIG"

	if !CheckPassword("demo", hash) {
		t.Fatalf("expected $2b$ hash to verify")
	}
	if CheckPassword("other", hash) {
		t.Fatalf("expected wrong password to fail against $2b$ hash")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("demo", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}
