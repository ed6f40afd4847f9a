package strategy

import (
	"testing"

	"github.com/genforge/genforge/table"
	"github.com/genforge/genforge/types"
)

func TestConcat_ProducesExpectedString(t *testing.T) {
	tbl := table.New([]table.ColumnMeta{
		{Name: "first", Type: types.ColumnString},
		{Name: "last", Type: types.ColumnString},
	}, 2)
	tbl.Set("first", 0, "Ada")
	tbl.Set("last", 0, "Lovelace")
	tbl.Set("first", 1, "Grace")
	tbl.Set("last", 1, "Hopper")

	s := NewConcat(map[string]any{
		"lhs_col":   "first",
		"rhs_col":   "last",
		"separator": " ",
	})
	s.BindTable(tbl, "full_name")

	values, err := s.GenerateChunk(2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Ada Lovelace", "Grace Hopper"}
	for i, w := range want {
		if values[i] != w {
			t.Fatalf("row %d: want %q, got %v", i, w, values[i])
		}
	}
}

func TestConcat_PrefixSuffix(t *testing.T) {
	tbl := table.New([]table.ColumnMeta{
		{Name: "a", Type: types.ColumnString},
		{Name: "b", Type: types.ColumnString},
	}, 1)
	tbl.Set("a", 0, "x")
	tbl.Set("b", 0, "y")

	s := NewConcat(map[string]any{"lhs_col": "a", "rhs_col": "b", "prefix": "[", "suffix": "]", "separator": "-"})
	s.BindTable(tbl, "c")
	values, err := s.GenerateChunk(1)
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != "[x-y]" {
		t.Fatalf("want [x-y], got %v", values[0])
	}
}

func TestConcat_Validate_RequiresBothColumns(t *testing.T) {
	s := NewConcat(map[string]any{"lhs_col": "a"})
	if err := s.Validate(); err == nil {
		t.Fatal("expected error when rhs_col is missing")
	}
}
