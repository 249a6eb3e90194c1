package database_test

import (
	"context"
	"testing"

	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/testfixtures"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func TestMigrateIsRepeatable(t *testing.T) {
	db := testfixtures.OpenSQLite(t)
	if err := database.Migrate(context.Background(), db, database.DialectSQLite); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if err := database.Migrate(context.Background(), db, database.Dialect("oracle")); err == nil {
		t.Fatal("unknown dialect must fail")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testfixtures.OpenSQLite(t)

	res, err := database.Seed(ctx, db, 4)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !res.UserCreated || res.HotelsCreated != 3 {
		t.Fatalf("unexpected first seed result: %+v", res)
	}

	res, err = database.Seed(ctx, db, 4)
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if res.UserCreated || res.HotelsCreated != 0 {
		t.Fatalf("second seed changed data: %+v", res)
	}

	n, err := repository.NewHotelRepo(db).Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("hotel count = %d, %v", n, err)
	}
	u, err := repository.NewUserRepo(db).GetByEmail(ctx, database.DemoEmail)
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	if u.Name != database.DemoName || !utils.NewPasswords(4).Matches(u.PasswordHash, database.DemoPassword) {
		t.Fatalf("unexpected demo user: %#v", u)
	}
}
