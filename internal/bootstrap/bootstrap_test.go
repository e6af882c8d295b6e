package bootstrap

import (
	"fmt"
	"testing"

	"anoa.com/storyassistant/internal/entity"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrateCreatesTablesIdempotently(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	for _, model := range []any{&entity.User{}, &entity.Story{}, &entity.Professional{}, &entity.Booking{}} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
}

func TestMigrateAddsParametersToLegacyStoriesTable(t *testing.T) {
	db := openTestDB(t)

	legacy := "CREATE TABLE `stories` (`id` uuid,`user_id` uuid NOT NULL,`title` varchar(255) NOT NULL," +
		"`content` text NOT NULL,`created_at` datetime,PRIMARY KEY (`id`))"
	if err := db.Exec(legacy).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	legacyRow := "INSERT INTO `stories` (`id`,`user_id`,`title`,`content`,`created_at`) VALUES " +
		"('0190a0e4-0000-7000-8000-000000000001','0190a0e4-0000-7000-8000-000000000002','Old','Once.','2024-01-01 00:00:00')"
	if err := db.Exec(legacyRow).Error; err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	if db.Migrator().HasColumn(&entity.Story{}, "Parameters") {
		t.Fatalf("legacy table should not have parameters yet")
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !db.Migrator().HasColumn(&entity.Story{}, "Parameters") {
		t.Fatalf("expected parameters column after migrate")
	}

	var stories []entity.Story
	if err := db.Find(&stories).Error; err != nil {
		t.Fatalf("load legacy stories: %v", err)
	}
	if len(stories) != 1 || string(stories[0].Parameters) != "null" {
		t.Fatalf("expected backfilled parameters, got %+v", stories)
	}
}

func TestSeedDemoUserOnce(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedDemoUser(db); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one demo user, got %d", count)
	}
}
