package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubHistoryRows struct {
	rows   int
	served int
	err    error
}

func (s *stubHistoryRows) Close()                                         {}
func (s *stubHistoryRows) Err() error                                     { return s.err }
func (s *stubHistoryRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *stubHistoryRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *stubHistoryRows) Next() bool {
	if s.served >= s.rows {
		return false
	}
	s.served++
	return true
}

func (s *stubHistoryRows) Scan(dest ...any) error {
	if s.served == 0 {
		return errors.New("scan called before next")
	}
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	*dest[0].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	*dest[1].(*string) = "Casa Pepe"
	*dest[2].(*string) = "Madrid"
	*dest[3].(*[]byte) = []byte(`{"score":82}`)
	*dest[4].(*time.Time) = created
	*dest[5].(*time.Time) = updated
	return nil
}

func (s *stubHistoryRows) Values() ([]any, error) { return nil, nil }
func (s *stubHistoryRows) RawValues() [][]byte    { return nil }
func (s *stubHistoryRows) Conn() *pgx.Conn        { return nil }

func TestScanHistoryEntries(t *testing.T) {
	entries, err := scanHistoryEntries(&stubHistoryRows{rows: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.BusinessName != "Casa Pepe" || entry.City != "Madrid" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if string(entry.Profile) != `{"score":82}` {
		t.Fatalf("unexpected profile payload: %s", entry.Profile)
	}
	if !entry.UpdatedAt.After(entry.CreatedAt) {
		t.Fatalf("expected updated after created, got %+v", entry)
	}
}

func TestScanHistoryEntries_IterationError(t *testing.T) {
	if _, err := scanHistoryEntries(&stubHistoryRows{rows: 0, err: errors.New("broken pipe")}); err == nil {
		t.Fatalf("expected iteration error")
	}
}

func TestPGXHistoryRepository_SaveValidation(t *testing.T) {
	repo := &PGXHistoryRepository{}
	if err := repo.Save(context.Background(), "", "Madrid", json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected error for empty business name")
	}
}
