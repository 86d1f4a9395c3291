package securedata

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	plaintext := "I had a rough day and need to talk"
	sealed, err := codec.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if sealed == plaintext {
		t.Fatal("Seal returned plaintext unchanged")
	}

	opened, err := codec.Open(sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if opened != plaintext {
		t.Errorf("round trip = %q, want %q", opened, plaintext)
	}
}

func TestSealRandomizesNonce(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	a, _ := codec.Seal("same message")
	b, _ := codec.Seal("same message")
	if a == b {
		t.Error("two seals of identical plaintext produced identical ciphertext")
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	sealed, _ := codec.Seal("original content")

	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := codec.Open(tampered); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("Open(tampered) error = %v, want ErrInvalidCiphertext", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	for _, input := range []string{"not base64 at all!!!", base64.StdEncoding.EncodeToString([]byte("short"))} {
		if _, err := codec.Open(input); !errors.Is(err, ErrInvalidCiphertext) {
			t.Errorf("Open(%q) error = %v, want ErrInvalidCiphertext", input, err)
		}
	}
}

func TestEmptyStringPassthrough(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	sealed, err := codec.Seal("")
	if err != nil || sealed != "" {
		t.Errorf("Seal(\"\") = (%q, %v), want (\"\", nil)", sealed, err)
	}
	opened, err := codec.Open("")
	if err != nil || opened != "" {
		t.Errorf("Open(\"\") = (%q, %v), want (\"\", nil)", opened, err)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	if _, err := NewCodec(""); err == nil {
		t.Error("NewCodec(\"\") succeeded, want error")
	}
}

func TestDifferentSecretsCannotRead(t *testing.T) {
	a, _ := NewCodec("secret-a")
	b, _ := NewCodec("secret-b")

	sealed, _ := a.Seal("private")
	if _, err := b.Open(sealed); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("cross-key Open error = %v, want ErrInvalidCiphertext", err)
	}
}
