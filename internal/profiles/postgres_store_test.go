//go:build integration

package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/remitd/remitd/internal/limits"
	"github.com/remitd/remitd/internal/testutil"
)

func TestPostgres_PutGetUpsert(t *testing.T) {
	db, cleanup := testutil.PGTest(t)
	defer cleanup()

	d := NewPostgresDirectory(db)
	ctx := context.Background()

	if _, err := d.Get(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	err := d.Put(ctx, &Profile{UserID: "user-1", VerificationLevel: limits.TierVerified, RiskScore: 42.5})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	p, err := d.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.VerificationLevel != limits.TierVerified || p.RiskScore != 42.5 {
		t.Errorf("profile = %+v", p)
	}

	err = d.Put(ctx, &Profile{UserID: "user-1", VerificationLevel: limits.TierPremium, RiskScore: 10})
	if err != nil {
		t.Fatalf("Put upsert failed: %v", err)
	}
	p, err = d.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.VerificationLevel != limits.TierPremium || p.RiskScore != 10 {
		t.Errorf("upserted profile = %+v", p)
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		t.Error("updated_at must not precede created_at")
	}
}
