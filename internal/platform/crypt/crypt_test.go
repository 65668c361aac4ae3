package crypt

import (
	"context"
	"strings"
	"testing"

	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
)

func openKeeper(t *testing.T) (*Keeper, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return New(st), st
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	k, _ := openKeeper(t)
	blob, err := k.Encrypt("s3cret-password")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if blob == "" || blob == "s3cret-password" {
		t.Fatalf("unexpected ciphertext %q", blob)
	}
	if parts := strings.Split(blob, ":"); len(parts) != 3 {
		t.Fatalf("expected iv:tag:ciphertext form, got %q", blob)
	}
	if got := k.Decrypt(blob); got != "s3cret-password" {
		t.Fatalf("Decrypt got %q", got)
	}
}

func TestEncrypt_EmptyIsEmpty(t *testing.T) {
	t.Parallel()

	k, _ := openKeeper(t)
	blob, err := k.Encrypt("")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if blob != "" {
		t.Fatalf("empty plaintext should encrypt to empty, got %q", blob)
	}
}

func TestEncrypt_NonDeterministicButStable(t *testing.T) {
	t.Parallel()

	k, _ := openKeeper(t)
	a, err := k.Encrypt("same")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := k.Encrypt("same")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if a == b {
		t.Fatal("two encryptions of the same value must differ (random nonce)")
	}
	if k.Decrypt(a) != "same" || k.Decrypt(b) != "same" {
		t.Fatal("both ciphertexts must decrypt to the original")
	}
}

func TestDecrypt_GarbageYieldsEmpty(t *testing.T) {
	t.Parallel()

	k, _ := openKeeper(t)
	for _, blob := range []string{
		"",
		"not-a-blob",
		"a:b",
		"a:b:c:d",
		"!!!:!!!:!!!",
		"YWJj:YWJj:YWJj", // well-formed base64, wrong lengths
	} {
		if got := k.Decrypt(blob); got != "" {
			t.Fatalf("Decrypt(%q) = %q, want empty", blob, got)
		}
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	t.Parallel()

	k, _ := openKeeper(t)
	blob, err := k.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	parts := strings.Split(blob, ":")
	tampered := parts[0] + ":" + parts[1] + ":" + "AAAA" + parts[2][4:]
	if got := k.Decrypt(tampered); got != "" {
		t.Fatalf("tampered blob decrypted to %q", got)
	}
}

func TestKey_SurvivesNewKeeperOnSameStore(t *testing.T) {
	t.Parallel()

	k1, st := openKeeper(t)
	blob, err := k1.Encrypt("persist-me")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// a fresh Keeper over the same data directory reuses the salt document
	k2 := New(st)
	if got := k2.Decrypt(blob); got != "persist-me" {
		t.Fatalf("Decrypt with fresh keeper got %q", got)
	}
}
