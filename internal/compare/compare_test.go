package compare

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/dq/internal/tree"
)

// row is a printable form of Row used to compare results.
type row struct {
	Path   string
	Left   string
	Right  string
	Status Status
}

const absent = "<absent>"

func mustParse(t *testing.T, s string) tree.Value {
	t.Helper()
	v, err := tree.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON(%q) error = %v", s, err)
	}
	return v
}

func render(t *testing.T, rows []Row) []row {
	t.Helper()
	out := make([]row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row{Path: r.Path, Left: text(t, r.Left), Right: text(t, r.Right), Status: r.Status})
	}
	return out
}

func text(t *testing.T, v tree.Value) string {
	t.Helper()
	if v == nil {
		return absent
	}
	b, err := tree.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(b)
}

func TestTrees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want []row
	}{
		{
			name: "right_has_extra_key",
			a:    `{"a":1}`,
			b:    `{"a":1,"b":2}`,
			want: []row{
				{Path: "$.a", Left: "1", Right: "1", Status: Same},
				{Path: "$.b", Left: absent, Right: "2", Status: Different},
			},
		},
		{
			name: "scalar_roots",
			a:    `1`,
			b:    `2`,
			want: []row{{Path: "$", Left: "1", Right: "2", Status: Different}},
		},
		{
			name: "equal_scalar_roots",
			a:    `"x"`,
			b:    `"x"`,
			want: []row{{Path: "$", Left: `"x"`, Right: `"x"`, Status: Same}},
		},
		{
			name: "root_container_vs_scalar",
			a:    `{"a":1}`,
			b:    `null`,
			want: []row{{Path: "$", Left: `{"a":1}`, Right: "null", Status: Different}},
		},
		{
			name: "nested_objects_recurse",
			a:    `{"user":{"name":"ana","age":30},"active":true}`,
			b:    `{"user":{"age":31,"name":"ana","tags":[]},"active":true}`,
			want: []row{
				{Path: "$.user.name", Left: `"ana"`, Right: `"ana"`, Status: Same},
				{Path: "$.user.age", Left: "30", Right: "31", Status: Different},
				{Path: "$.user.tags", Left: absent, Right: "[]", Status: Different},
				{Path: "$.active", Left: "true", Right: "true", Status: Same},
			},
		},
		{
			name: "arrays_by_index",
			a:    `{"items":[1,2,3]}`,
			b:    `{"items":[1,5]}`,
			want: []row{
				{Path: "$.items.0", Left: "1", Right: "1", Status: Same},
				{Path: "$.items.1", Left: "2", Right: "5", Status: Different},
				{Path: "$.items.2", Left: "3", Right: absent, Status: Different},
			},
		},
		{
			name: "container_vs_scalar_child",
			a:    `{"a":{"b":1}}`,
			b:    `{"a":"text"}`,
			want: []row{{Path: "$.a", Left: `{"b":1}`, Right: `"text"`, Status: Different}},
		},
		{
			name: "array_vs_object_share_index_keys",
			a:    `{"x":[7]}`,
			b:    `{"x":{"0":7,"k":1}}`,
			want: []row{
				{Path: "$.x.0", Left: "7", Right: "7", Status: Same},
				{Path: "$.x.k", Left: absent, Right: "1", Status: Different},
			},
		},
		{
			name: "numbers_compare_by_value",
			a:    `{"n":1.0}`,
			b:    `{"n":1}`,
			want: []row{{Path: "$.n", Left: "1.0", Right: "1", Status: Same}},
		},
		{
			name: "null_vs_absent",
			a:    `{"n":null}`,
			b:    `{}`,
			want: []row{{Path: "$.n", Left: "null", Right: absent, Status: Different}},
		},
		{
			name: "empty_containers",
			a:    `{}`,
			b:    `{}`,
			want: []row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, Trees(mustParse(t, tt.a), mustParse(t, tt.b)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Trees(%s, %s) mismatch (-want +got):\n%s", tt.a, tt.b, diff)
			}
		})
	}
}

func TestTreesSelfComparisonIsSame(t *testing.T) {
	t.Parallel()

	docs := []string{
		`null`,
		`[]`,
		`{"a":[1,{"b":[null,true,"x"]}],"c":{"d":{"e":1.5}}}`,
		`[[1,2],[3,[4,[5]]]]`,
	}

	for _, doc := range docs {
		v := mustParse(t, doc)
		for _, r := range Trees(v, v) {
			if r.Status != Same {
				t.Errorf("Trees(%s, itself) row %s is %s", doc, r.Path, r.Status)
			}
		}
	}
}

func TestTreesDifferencesAreSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{`{"a":1,"b":{"c":2}}`, `{"b":{"c":3,"d":4},"e":5}`},
		{`[1,[2,3]]`, `[1,[2],4]`},
		{`{"a":{"b":1}}`, `{"a":[1]}`},
	}

	for _, p := range pairs {
		a, b := mustParse(t, p[0]), mustParse(t, p[1])
		forward := differing(Trees(a, b))
		backward := differing(Trees(b, a))

		if diff := cmp.Diff(forward, backward); diff != "" {
			t.Errorf("differing paths not symmetric for %s / %s (-forward +backward):\n%s", p[0], p[1], diff)
		}
	}
}

func differing(rows []Row) map[string]bool {
	out := make(map[string]bool)
	for _, r := range rows {
		if r.Status == Different {
			out[r.Path] = true
		}
	}
	return out
}

func TestTreesSwapFlipsSides(t *testing.T) {
	t.Parallel()

	a, b := mustParse(t, `{"a":1}`), mustParse(t, `{"a":2,"b":3}`)
	forward := Trees(a, b)
	backward := Trees(b, a)

	byPath := make(map[string]Row)
	for _, r := range backward {
		byPath[r.Path] = r
	}
	for _, r := range forward {
		other := byPath[r.Path]
		if !tree.Equal(r.Left, other.Right) || !tree.Equal(r.Right, other.Left) {
			t.Errorf("row %s not mirrored: %+v vs %+v", r.Path, r, other)
		}
	}
}

func TestTreesEmptyContainersYieldNoRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{name: "empty_object_vs_empty_array", a: `{"a":{}}`, b: `{"a":[]}`},
		{name: "empty_roots", a: `{}`, b: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := Trees(mustParse(t, tt.a), mustParse(t, tt.b))
			if len(rows) != 0 {
				t.Errorf("Trees() = %v, want no rows", render(t, rows))
			}
			if !Summarize(rows).Identical() {
				t.Error("Summarize().Identical() = false, want true")
			}
		})
	}
}

func TestTreesOnlyDifferences(t *testing.T) {
	t.Parallel()

	rows := Trees(mustParse(t, `{"a":1,"b":2,"c":3}`), mustParse(t, `{"a":1,"b":9,"c":3}`), OnlyDifferences())
	if len(rows) != 1 || rows[0].Path != "$.b" {
		t.Fatalf("Trees(OnlyDifferences) = %+v, want single row $.b", rows)
	}
}

func TestCompareCustomRootPath(t *testing.T) {
	t.Parallel()

	rows := Compare(mustParse(t, `{"x":1}`), mustParse(t, `{"x":1}`), "doc")
	if len(rows) != 1 || rows[0].Path != "doc.x" {
		t.Fatalf("Compare() = %+v, want single row doc.x", rows)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	rows := Trees(
		mustParse(t, `{"same":1,"changed":1,"gone":1}`),
		mustParse(t, `{"same":1,"changed":2,"new":1}`),
	)

	want := Stats{Rows: 4, Same: 1, Different: 3, LeftOnly: 1, RightOnly: 1}
	got := Summarize(rows)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if got.Identical() {
		t.Error("Identical() = true, want false")
	}
	if !Summarize(nil).Identical() {
		t.Error("Summarize(nil).Identical() = false, want true")
	}
}
