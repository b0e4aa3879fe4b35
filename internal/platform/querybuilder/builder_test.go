package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("external_id", "status").
		From("matches").
		Where(
			Gt("kickoff_at", from),
			In("status", []any{"TIMED", "SCHEDULED"}),
			IsNotNull("kickoff_at"),
		).
		OrderBy("kickoff_at DESC").
		Limit(200).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT external_id, status FROM matches WHERE kickoff_at > $1 AND status IN ($2, $3) AND kickoff_at IS NOT NULL ORDER BY kickoff_at DESC LIMIT 200"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "TIMED" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrAndEmptyIn(t *testing.T) {
	query, args, err := Select("id").
		From("competitions").
		Where(
			Eq("is_active", true),
			Or(IsNull("season_end"), Gte("season_end", "2026-10-16")),
			In("id", nil),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM competitions WHERE is_active = $1 AND (season_end IS NULL OR season_end >= $2) AND 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRowUpsert(t *testing.T) {
	query, args, err := InsertInto("settings").
		Columns("key", "value").
		Values("a", "1").
		Values("b", "2").
		Suffix(OnConflictUpdate([]string{"key"}, "value")).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO settings (key, value) VALUES ($1, $2), ($3, $4) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("tournaments").
		Set("status", "completed").
		SetExpr("updated_at", "COALESCE(?, NOW())", nil).
		Where(Eq("id", "t1"), Eq("status", "active")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE tournaments SET status = $1, updated_at = COALESCE($2, NOW()) WHERE id = $3 AND status = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "completed" || args[2] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateAndDeleteRequireWhere(t *testing.T) {
	if _, _, err := Update("matches").Set("status", "FINISHED").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
	if _, _, err := DeleteFrom("match_windows").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		Key     string `db:"key"`
		Value   string `db:"value"`
		Ignored string `db:"-"`
	}

	query, args, err := InsertModels("settings", []row{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}
	wantQuery := "INSERT INTO settings (key, value) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(row{}); len(cols) != 2 || cols[0] != "key" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}
