package service

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("secret", "ops", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sub, err := ParseAdminToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "ops" {
		t.Fatalf("subject = %q; want ops", sub)
	}
}

func TestAdminTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("secret", "ops", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAdminToken("other", token); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestAdminTokenRejectsExpired(t *testing.T) {
	token, err := GenerateAdminToken("secret", "ops", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAdminToken("secret", token); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestAdminTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAdminToken("secret", "not-a-token"); err == nil {
		t.Fatal("garbage must not parse")
	}
}
