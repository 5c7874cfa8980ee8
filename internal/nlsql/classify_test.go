package nlsql

import "testing"

func TestIsDestructive(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"DELETE FROM orders", true},
		{"delete from orders", true},
		{"DROP TABLE orders", true},
		{"TrUnCaTe TABLE orders", true},
		{"UPDATE orders SET total = 0", true},
		{"SELECT * FROM orders", false},
		{"INSERT INTO orders (id) VALUES (1)", false},
		// Substring heuristic, not a parser: an identifier containing a
		// keyword is flagged too.
		{"SELECT last_update FROM orders", true},
	}

	for _, tc := range cases {
		if got := IsDestructive(tc.sql); got != tc.want {
			t.Errorf("IsDestructive(%q) = %v, want %v", tc.sql, got, tc.want)
		}
	}
}

func TestClassifyAttachesWarning(t *testing.T) {
	result := Classify(TranslationResult{SQL: "DROP TABLE orders"})
	if result.Warning != DestructiveWarning {
		t.Errorf("Warning = %q, want fixed caution", result.Warning)
	}
}

func TestClassifyKeepsModelWarning(t *testing.T) {
	result := Classify(TranslationResult{
		SQL:     "DELETE FROM orders",
		Warning: "model said so",
	})
	if result.Warning != "model said so" {
		t.Errorf("Warning = %q, existing warning must be preserved", result.Warning)
	}
}

func TestClassifyLeavesSelectsAlone(t *testing.T) {
	result := Classify(TranslationResult{SQL: "SELECT id FROM orders"})
	if result.Warning != "" {
		t.Errorf("Warning = %q, want empty", result.Warning)
	}
}
