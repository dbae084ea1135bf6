package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"class-scheduler/internal/model"
)

var errMockStorage = errors.New("mock storage failure")

// ── Mock ClassEntryRepository ──

type mockClassEntryRepo struct {
	entries map[int]*model.ClassEntry
	calls   int
	failOn  string // "list" / "create" / "update" / "delete"
}

func newMockClassEntryRepo() *mockClassEntryRepo {
	return &mockClassEntryRepo{entries: make(map[int]*model.ClassEntry)}
}

func (m *mockClassEntryRepo) seed(rows ...model.ClassEntry) {
	for i := range rows {
		row := rows[i]
		m.entries[row.ID] = &row
	}
}

func (m *mockClassEntryRepo) List(_ context.Context) ([]model.ClassEntry, error) {
	m.calls++
	if m.failOn == "list" {
		return nil, errMockStorage
	}
	result := make([]model.ClassEntry, 0, len(m.entries))
	for _, e := range m.entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockClassEntryRepo) Create(_ context.Context, entry *model.ClassEntry) error {
	m.calls++
	if m.failOn == "create" {
		return errMockStorage
	}
	if _, ok := m.entries[entry.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	row := *entry
	m.entries[entry.ID] = &row
	return nil
}

func (m *mockClassEntryRepo) Update(_ context.Context, entry *model.ClassEntry) error {
	m.calls++
	if m.failOn == "update" {
		return errMockStorage
	}
	if _, ok := m.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	row := *entry
	m.entries[entry.ID] = &row
	return nil
}

func (m *mockClassEntryRepo) Delete(_ context.Context, id int) error {
	m.calls++
	if m.failOn == "delete" {
		return errMockStorage
	}
	delete(m.entries, id)
	return nil
}

// ── 种子数据 ──

func seedRows() []model.ClassEntry {
	return []model.ClassEntry{
		{ID: 1, Name: "AI", Instructor: "Sarah Johnson", Room: "Room 101", Day: "Monday", StartTime: "09:00", EndTime: "11:00", Color: "bg-blue-500"},
		{ID: 2, Name: "Database Design", Instructor: "Mike Chen", Room: "Lab 105", Day: "Wednesday", StartTime: "14:00", EndTime: "16:00", Color: "bg-green-500"},
		{ID: 3, Name: "UI/UX Principles", Instructor: "Emily Davis", Room: "Studio A", Day: "Friday", StartTime: "10:30", EndTime: "12:30", Color: "bg-purple-500"},
	}
}
