package main

import (
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 1},
		{raw: "3", want: 3},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "x", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseSteps(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseSteps(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseSteps(%q) = %d, %v; want %d", tc.raw, got, err, tc.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion(""); err == nil {
		t.Fatalf("expected error for empty version")
	}
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("parseVersion = %d, %v", v, err)
	}
	if _, err := parseVersion("-4"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseTarget("1"); err != nil || v != 1 {
		t.Fatalf("parseTarget = %d, %v", v, err)
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestWithMigrationsTable(t *testing.T) {
	got := withMigrationsTable("postgres://u:p@localhost:5432/board?sslmode=disable")
	if !strings.Contains(got, "x-migrations-table="+migrationsTable) {
		t.Fatalf("expected migrations table param, got %q", got)
	}
	if !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("expected existing params kept, got %q", got)
	}

	explicit := "postgres://u:p@localhost:5432/board?x-migrations-table=custom"
	if got := withMigrationsTable(explicit); got != explicit {
		t.Fatalf("expected explicit table kept, got %q", got)
	}

	dsn := "host=localhost dbname=board"
	if got := withMigrationsTable(dsn); got != dsn {
		t.Fatalf("expected key/value dsn unchanged, got %q", got)
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}
