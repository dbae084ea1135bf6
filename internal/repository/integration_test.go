//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"class-scheduler/internal/model"
	"class-scheduler/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=class_scheduler_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&model.ClassEntry{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// resetTable 清空课程表
func resetTable(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("DELETE FROM class_entries").Error; err != nil {
		t.Fatalf("清空 class_entries 失败: %v", err)
	}
}

func newEntry(id int, name, day, start, end string) *model.ClassEntry {
	return &model.ClassEntry{
		ID:         id,
		Name:       name,
		Instructor: "测试教师",
		Room:       "Room 101",
		Day:        day,
		StartTime:  start,
		EndTime:    end,
		Color:      "bg-blue-500",
	}
}

// ═══════════════════════════════════════════════════════════
// ClassEntryRepository Tests
// ═══════════════════════════════════════════════════════════

func TestClassEntryRepo_CreateAndList_OrderedByID(t *testing.T) {
	resetTable(t)
	repo := repository.NewClassEntryRepo(testDB)
	ctx := context.Background()

	for _, e := range []*model.ClassEntry{
		newEntry(3, "C", "Friday", "10:30", "12:30"),
		newEntry(1, "A", "Monday", "09:00", "11:00"),
		newEntry(2, "B", "Wednesday", "14:00", "16:00"),
	} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create 失败: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("期望 3 条，实际 %d", len(list))
	}
	for i, want := range []int{1, 2, 3} {
		if list[i].ID != want {
			t.Errorf("位置 %d 期望 id=%d，实际 %d", i, want, list[i].ID)
		}
	}
	if list[0].StartTime != "09:00" {
		t.Errorf("期望 start_time=09:00，实际 %q", list[0].StartTime)
	}
}

func TestClassEntryRepo_Update(t *testing.T) {
	resetTable(t)
	repo := repository.NewClassEntryRepo(testDB)
	ctx := context.Background()

	e := newEntry(1, "A", "Monday", "09:00", "11:00")
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	e.Room = "Lab 105"
	if err := repo.Update(ctx, e); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	list, _ := repo.List(ctx)
	if list[0].Room != "Lab 105" {
		t.Errorf("期望 room=Lab 105，实际 %s", list[0].Room)
	}

	missing := newEntry(42, "X", "Monday", "09:00", "10:00")
	if err := repo.Update(ctx, missing); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestClassEntryRepo_Delete_Idempotent(t *testing.T) {
	resetTable(t)
	repo := repository.NewClassEntryRepo(testDB)
	ctx := context.Background()

	if err := repo.Create(ctx, newEntry(1, "A", "Monday", "09:00", "11:00")); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if err := repo.Delete(ctx, 1); err != nil {
		t.Errorf("重复删除不应报错: %v", err)
	}

	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("期望 0 条，实际 %d", len(list))
	}
}
