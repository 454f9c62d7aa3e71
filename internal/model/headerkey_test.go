package model

import "testing"

func TestNewHeaderKey_Strict(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{
			name:    "preserves order",
			columns: []string{"b", "a", "c"},
			want:    []string{"b", "a", "c"},
		},
		{
			name:    "preserves duplicates",
			columns: []string{"a", "a", "b"},
			want:    []string{"a", "a", "b"},
		},
		{
			name:    "empty header",
			columns: []string{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewHeaderKey(tt.columns, ModeStrict)
			if key.Mode != ModeStrict {
				t.Errorf("mode = %q, want strict", key.Mode)
			}
			if len(key.Columns) != len(tt.want) {
				t.Fatalf("columns = %v, want %v", key.Columns, tt.want)
			}
			for i := range tt.want {
				if key.Columns[i] != tt.want[i] {
					t.Errorf("columns = %v, want %v", key.Columns, tt.want)
					break
				}
			}
		})
	}
}

func TestNewHeaderKey_RelaxedSortsAndDeduplicates(t *testing.T) {
	key := NewHeaderKey([]string{"c", "a", "b", "a"}, ModeRelaxed)
	want := []string{"a", "b", "c"}
	if len(key.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", key.Columns, want)
	}
	for i := range want {
		if key.Columns[i] != want[i] {
			t.Errorf("columns = %v, want %v", key.Columns, want)
			break
		}
	}
}

func TestHeaderKey_EqualReflexive(t *testing.T) {
	for _, mode := range []Mode{ModeStrict, ModeRelaxed} {
		key := NewHeaderKey([]string{"date", "item", "price"}, mode)
		if !key.Equal(NewHeaderKey([]string{"date", "item", "price"}, mode)) {
			t.Errorf("key not equal to itself under %s", mode)
		}
	}
}

func TestHeaderKey_RelaxedPermutationInvariant(t *testing.T) {
	a := NewHeaderKey([]string{"date", "item", "price"}, ModeRelaxed)
	b := NewHeaderKey([]string{"price", "date", "item"}, ModeRelaxed)
	if !a.Equal(b) {
		t.Error("permuted headers should be equal under relaxed mode")
	}

	c := NewHeaderKey([]string{"date", "item", "price"}, ModeStrict)
	d := NewHeaderKey([]string{"price", "date", "item"}, ModeStrict)
	if c.Equal(d) {
		t.Error("permuted headers should differ under strict mode")
	}
}

func TestHeaderKey_DifferentModesNeverEqual(t *testing.T) {
	a := NewHeaderKey([]string{"a"}, ModeStrict)
	b := NewHeaderKey([]string{"a"}, ModeRelaxed)
	if a.Equal(b) {
		t.Error("keys built with different modes must not compare equal")
	}
}

func TestModeValidate(t *testing.T) {
	if err := ModeStrict.Validate(); err != nil {
		t.Errorf("strict should validate: %v", err)
	}
	if err := ModeRelaxed.Validate(); err != nil {
		t.Errorf("relaxed should validate: %v", err)
	}
	if err := Mode("fuzzy").Validate(); err == nil {
		t.Error("unknown mode should fail validation")
	}
}

func TestMatchStrategyValidate(t *testing.T) {
	if err := MatchExact.Validate(); err != nil {
		t.Errorf("exact should validate: %v", err)
	}
	if err := MatchContains.Validate(); err != nil {
		t.Errorf("contains should validate: %v", err)
	}
	if err := MatchStrategy("best").Validate(); err == nil {
		t.Error("unknown strategy should fail validation")
	}
}
