package table

import (
	"testing"

	"github.com/genforge/genforge/rng"
	"github.com/genforge/genforge/types"
)

func testColumns() []ColumnMeta {
	return []ColumnMeta{
		{Name: "id", Type: types.ColumnInteger},
		{Name: "_helper", Type: types.ColumnInteger, Intermediate: true},
		{Name: "name", Type: types.ColumnString},
	}
}

func TestNew_AllNil(t *testing.T) {
	tbl := New(testColumns(), 3)
	if tbl.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", tbl.Rows())
	}
	for _, name := range []string{"id", "_helper", "name"} {
		for i := 0; i < 3; i++ {
			if v := tbl.Get(name, i); v != nil {
				t.Errorf("Get(%q, %d) = %v, want nil", name, i, v)
			}
		}
	}
}

func TestColumnNames_ExcludesIntermediate(t *testing.T) {
	tbl := New(testColumns(), 1)
	names := tbl.ColumnNames()
	want := []string{"id", "name"}
	if len(names) != len(want) {
		t.Fatalf("ColumnNames() = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestSetGet(t *testing.T) {
	tbl := New(testColumns(), 2)
	tbl.Set("id", 0, 10)
	tbl.Set("id", 1, 20)
	tbl.Set("name", 0, "alice")

	if v := tbl.Get("id", 0); v != 10 {
		t.Errorf("Get(id, 0) = %v, want 10", v)
	}
	if v := tbl.Get("id", 1); v != 20 {
		t.Errorf("Get(id, 1) = %v, want 20", v)
	}
	if v := tbl.Get("name", 0); v != "alice" {
		t.Errorf("Get(name, 0) = %v, want alice", v)
	}
}

func TestRow(t *testing.T) {
	tbl := New(testColumns(), 1)
	tbl.Set("id", 0, 1)
	tbl.Set("_helper", 0, 99)
	tbl.Set("name", 0, "bob")

	row := tbl.Row(0)
	if row["id"] != 1 || row["_helper"] != 99 || row["name"] != "bob" {
		t.Errorf("Row(0) = %v, unexpected contents", row)
	}
}

func TestDropIntermediates(t *testing.T) {
	tbl := New(testColumns(), 2)
	tbl.Set("_helper", 0, 1)
	tbl.Set("_helper", 1, 2)

	tbl.DropIntermediates()

	if tbl.Has("_helper") {
		t.Error("Has(_helper) = true after DropIntermediates, want false")
	}
	names := tbl.ColumnNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Errorf("ColumnNames() after drop = %v, want [id name]", names)
	}
}

func TestShuffle_PreservesRowAlignment(t *testing.T) {
	cols := []ColumnMeta{
		{Name: "a", Type: types.ColumnInteger},
		{Name: "b", Type: types.ColumnInteger},
	}
	tbl := New(cols, 100)
	for i := 0; i < 100; i++ {
		tbl.Set("a", i, i)
		tbl.Set("b", i, i*10)
	}

	r := rng.New(1, "shuffle", rng.HashParams("test"))
	tbl.Shuffle(r)

	for i := 0; i < 100; i++ {
		a := tbl.Get("a", i).(int)
		b := tbl.Get("b", i).(int)
		if b != a*10 {
			t.Fatalf("row %d misaligned after shuffle: a=%d b=%d", i, a, b)
		}
	}
}

func TestShuffle_Permutation(t *testing.T) {
	cols := []ColumnMeta{{Name: "a", Type: types.ColumnInteger}}
	tbl := New(cols, 50)
	for i := 0; i < 50; i++ {
		tbl.Set("a", i, i)
	}

	r := rng.New(1, "shuffle", rng.HashParams("test"))
	tbl.Shuffle(r)

	seen := make(map[int]bool, 50)
	for i := 0; i < 50; i++ {
		seen[tbl.Get("a", i).(int)] = true
	}
	if len(seen) != 50 {
		t.Errorf("shuffle lost or duplicated values: %d distinct values, want 50", len(seen))
	}
}

func TestNewChunk_StartRow(t *testing.T) {
	tbl := NewChunk(testColumns(), 5, 100)
	if tbl.StartRow() != 100 {
		t.Errorf("StartRow() = %d, want 100", tbl.StartRow())
	}
	if tbl.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", tbl.Rows())
	}
}

func TestDtypes(t *testing.T) {
	tbl := New(testColumns(), 1)
	tbl.DropIntermediates()
	dt := tbl.Dtypes()
	if dt["id"] != "integer" {
		t.Errorf(`Dtypes()["id"] = %q, want "integer"`, dt["id"])
	}
	if dt["name"] != "string" {
		t.Errorf(`Dtypes()["name"] = %q, want "string"`, dt["name"])
	}
	if _, ok := dt["_helper"]; ok {
		t.Error("Dtypes() should not include dropped intermediate column")
	}
}
