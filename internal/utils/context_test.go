// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/crimewatch-access/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestWithPrincipal_RoundTrip(t *testing.T) {
	id := int64(42)
	p := models.Principal{UserID: &id, Username: "user", Role: models.RoleStandardUser}

	ctx := WithPrincipal(context.Background(), p, 7)

	got, ok := GetPrincipalFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.ID() != 42 || got.Username != "user" {
		t.Errorf("unexpected principal %+v", got)
	}

	sid, ok := GetSessionIDFromContext(ctx)
	if !ok || sid != 7 {
		t.Errorf("expected session 7, got %d (ok=%v)", sid, ok)
	}
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	_, ok := GetPrincipalFromContext(context.Background())
	if ok {
		t.Fatal("expected ok=false, got true")
	}

	_, ok = GetSessionIDFromContext(context.Background())
	if ok {
		t.Fatal("expected ok=false for session id, got true")
	}
}

func TestGetPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, "not-a-principal")
	ctx = context.WithValue(ctx, SessionIDCtxKey, 7)

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if _, ok := GetSessionIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for int session id, got true")
	}
}

func TestGetPrincipalFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.Guest())

	if _, ok := GetPrincipalFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
