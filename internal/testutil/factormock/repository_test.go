package factormock

import (
	"context"
	"errors"
	"testing"

	domain "consignado-backend/internal/domain/factor"
)

func TestRepo_GetByTermAndDay(t *testing.T) {
	ctx := context.Background()
	want := &domain.LoanFactor{Term: 12, Day: 1, Factor: "0.095"}

	called := false
	m := &Repo{
		GetByTermAndDayFn: func(gotCtx context.Context, term, day int) (*domain.LoanFactor, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("GetByTermAndDay ctx mismatch")
			}
			if term != 12 || day != 1 {
				t.Fatalf("GetByTermAndDay args mismatch: %d/%d", term, day)
			}
			return want, nil
		},
	}
	got, err := m.GetByTermAndDay(ctx, 12, 1)
	if err != nil || got != want {
		t.Fatalf("GetByTermAndDay: got (%v, %v)", got, err)
	}
	if !called {
		t.Fatalf("GetByTermAndDayFn not called")
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	if _, err := m.GetByTermAndDay(ctx, 12, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByTermAndDay default: want context.Canceled, got %v", err)
	}
}

func TestRepo_BulkReplace(t *testing.T) {
	ctx := context.Background()
	rows := []domain.LoanFactor{{Term: 12, Day: 1, Factor: "0.095"}}
	wantErr := errors.New("boom")

	m := &Repo{
		BulkReplaceFn: func(_ context.Context, got []domain.LoanFactor) error {
			if len(got) != 1 || got[0].Factor != "0.095" {
				t.Fatalf("BulkReplace arg mismatch: %+v", got)
			}
			return wantErr
		},
	}
	if err := m.BulkReplace(ctx, rows); !errors.Is(err, wantErr) {
		t.Fatalf("BulkReplace: want %v, got %v", wantErr, err)
	}

	m = &Repo{}
	if err := m.BulkReplace(ctx, rows); err != nil {
		t.Fatalf("BulkReplace default: want nil, got %v", err)
	}
}

func TestRepo_DeleteMany_DefaultCountsIDs(t *testing.T) {
	m := &Repo{}
	n, err := m.DeleteMany(context.Background(), []uint64{1, 2, 3})
	if err != nil || n != 3 {
		t.Fatalf("DeleteMany default: got (%d, %v)", n, err)
	}
}
