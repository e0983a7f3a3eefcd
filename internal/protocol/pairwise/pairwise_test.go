package pairwise_test

import (
	"bytes"
	"errors"
	"testing"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
	"clawdlink/internal/protocol/pairwise"
)

func exchangePair(t *testing.T) (domain.X25519Private, domain.X25519Public) {
	t.Helper()
	edPriv, _, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	xPriv, xPub, err := crypto.DeriveExchangeKeypair(edPriv)
	if err != nil {
		t.Fatalf("DeriveExchangeKeypair: %v", err)
	}
	return xPriv, xPub
}

func TestDerive_BothSidesMatch(t *testing.T) {
	alicePriv, alicePub := exchangePair(t)
	bobPriv, bobPub := exchangePair(t)

	aliceSecret, err := pairwise.Derive(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("Derive (alice): %v", err)
	}
	bobSecret, err := pairwise.Derive(bobPriv, alicePub)
	if err != nil {
		t.Fatalf("Derive (bob): %v", err)
	}
	if !bytes.Equal(aliceSecret.Slice(), bobSecret.Slice()) {
		t.Fatal("pairwise secrets differ")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	alicePriv, _ := exchangePair(t)
	_, bobPub := exchangePair(t)
	secret, err := pairwise.Derive(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	in := domain.Content{
		Type:    domain.ContentMessage,
		Body:    "see you at nine",
		Urgency: domain.UrgencyNormal,
		Context: "work",
	}
	ct, nonce, err := pairwise.Seal(in, secret)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	out, err := pairwise.Open(ct, nonce, secret)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if out != in {
		t.Fatalf("content mismatch: got %+v", out)
	}
}

func TestOpen_WrongSecret(t *testing.T) {
	alicePriv, _ := exchangePair(t)
	_, bobPub := exchangePair(t)
	_, charliePub := exchangePair(t)

	abSecret, err := pairwise.Derive(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	acSecret, err := pairwise.Derive(alicePriv, charliePub)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	ct, nonce, err := pairwise.Seal(domain.Content{Type: domain.ContentMessage, Body: "x"}, abSecret)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := pairwise.Open(ct, nonce, acSecret); !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("want ErrDecryptionFailed, got %v", err)
	}
}

func TestOpen_UnknownContentType(t *testing.T) {
	alicePriv, _ := exchangePair(t)
	_, bobPub := exchangePair(t)
	secret, err := pairwise.Derive(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	ct, nonce, err := pairwise.Seal(domain.Content{Type: "sticker", Body: "??"}, secret)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	out, err := pairwise.Open(ct, nonce, secret)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if out.Known() {
		t.Fatalf("content type %q should be unknown", out.Type)
	}
	if out.Type != "sticker" {
		t.Fatalf("unknown type tag must be preserved, got %q", out.Type)
	}
}
