package repository

import "testing"

func TestLikeOperatorByDialect(t *testing.T) {
	cases := map[string]string{
		"sqlite":     "LIKE",
		"postgres":   "ILIKE",
		"postgresql": "ILIKE",
		"":           "LIKE",
		" Postgres ": "ILIKE",
	}
	for dialect, want := range cases {
		if got := likeOperatorByDialect(dialect); got != want {
			t.Fatalf("dialect %q: want %s got %s", dialect, want, got)
		}
	}
}

func TestNameLikeConditionDefaultsToSQLite(t *testing.T) {
	got := nameLikeCondition(nil, "name")
	if got != "name LIKE ?" {
		t.Fatalf("unexpected condition: %s", got)
	}
}
