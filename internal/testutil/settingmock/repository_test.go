package settingmock

import (
	"context"
	"testing"
)

func TestMap_GetAndUpsert(t *testing.T) {
	ctx := context.Background()
	m := Map(map[string]string{"storage_provider": "s3"})

	if v, _ := m.Get(ctx, "storage_provider"); v != "s3" {
		t.Fatalf("Get = %q, want s3", v)
	}
	if err := m.Upsert(ctx, "storage_provider", "google_drive", nil); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if v, _ := m.Get(ctx, "storage_provider"); v != "google_drive" {
		t.Fatalf("Get after upsert = %q", v)
	}
	if v, _ := m.Get(ctx, "missing"); v != "" {
		t.Fatalf("missing key = %q, want empty", v)
	}
}

func TestRepo_Defaults(t *testing.T) {
	m := &Repo{}
	if v, err := m.Get(context.Background(), "k"); v != "" || err != nil {
		t.Fatalf("Get default: got (%q, %v)", v, err)
	}
	if rows, err := m.List(context.Background()); rows != nil || err != nil {
		t.Fatalf("List default: got (%v, %v)", rows, err)
	}
}
