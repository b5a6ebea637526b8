package layout_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

func sampleRows(t *testing.T) layout.Rows {
	t.Helper()

	rows, err := layout.Normalize([]layout.Panel{
		{
			{layout.Field("title", 6, "Title"), layout.Field("slug", 6, "Slug")},
			{layout.Field("body", 12, "Body")},
		},
		{
			{layout.Field("views", 4, "Views")},
		},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return rows
}

func TestNormalize_PadsShortRow(t *testing.T) {
	rows, err := layout.Normalize([]layout.Panel{{{layout.Field("title", 6, "")}}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := layout.Rows{{layout.Field("title", 6, ""), layout.Filler(6)}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_FullRowGetsNoFiller(t *testing.T) {
	rows, err := layout.Normalize([]layout.Panel{{{layout.Field("a", 4, ""), layout.Field("b", 8, "")}}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("expected untouched full row, got %#v", rows)
	}
	for _, e := range rows[0] {
		if e.IsFiller() {
			t.Fatalf("full row should not receive a filler: %#v", rows[0])
		}
	}
}

func TestNormalize_EveryRowSpansGrid(t *testing.T) {
	rows := sampleRows(t)
	for i, row := range rows {
		total := 0
		for _, e := range row {
			total += e.Size
		}
		if total != layout.GridColumns {
			t.Fatalf("row %d spans %d columns", i, total)
		}
	}
}

func TestNormalize_FlattensInOrder(t *testing.T) {
	rows := sampleRows(t)
	if diff := cmp.Diff([]string{"title", "slug", "body", "views"}, rows.Names()); diff != "" {
		t.Fatalf("flatten order mismatch (-want +got):\n%s", diff)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 flattened rows, got %d", len(rows))
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	input := []layout.Panel{{{layout.Field("title", 6, "Title")}}, {{layout.Field("body", 3, "")}}}
	snapshot := []layout.Panel{input[0].Clone(), input[1].Clone()}

	if _, err := layout.Normalize(input); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if diff := cmp.Diff(snapshot, input); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := sampleRows(t)
	second, err := layout.Normalize([]layout.Panel{layout.Panel(first)})
	if err != nil {
		t.Fatalf("normalize again: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalize is not idempotent (-first +second):\n%s", diff)
	}
}

func TestNormalize_OverflowPolicies(t *testing.T) {
	input := []layout.Panel{
		{{layout.Field("ok", 12, "")}},
		{{layout.Field("a", 8, ""), layout.Field("b", 6, "")}},
	}

	_, err := layout.Normalize(input)
	if !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow, got %v", err)
	}
	var overflow *layout.RowOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected *RowOverflowError, got %T", err)
	}
	if overflow.Panel != 1 || overflow.Row != 0 || overflow.Used != 14 {
		t.Fatalf("unexpected overflow details: %#v", overflow)
	}

	rows, err := layout.Normalize(input, layout.WithOverflowPolicy(layout.OverflowClamp))
	if err != nil {
		t.Fatalf("clamp policy should not fail: %v", err)
	}
	want := layout.Row{layout.Field("a", 8, ""), layout.Field("b", 6, "")}
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Fatalf("clamped row mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_InvalidSize(t *testing.T) {
	_, err := layout.Normalize([]layout.Panel{{{layout.Field("zero", 0, "")}}})
	if !errors.Is(err, layout.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestPad(t *testing.T) {
	row, err := layout.Pad(layout.Row{layout.Field("a", 3, ""), layout.Filler(1)})
	if err != nil {
		t.Fatalf("pad: %v", err)
	}
	want := layout.Row{layout.Field("a", 3, ""), layout.Filler(9)}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("pad mismatch (-want +got):\n%s", diff)
	}

	_, err = layout.Pad(layout.Row{layout.Field("a", 7, ""), layout.Field("b", 7, "")})
	var overflow *layout.RowOverflowError
	if !errors.As(err, &overflow) || overflow.Panel != -1 {
		t.Fatalf("expected flattened overflow error, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "id", Type: schema.TypeInteger},
		schema.Attribute{Name: "title", Type: schema.TypeString},
		schema.Attribute{Name: "body", Type: schema.TypeRichText},
	)
	metas := schema.Metadatas{
		"title": {Visible: true},
		"body":  {Visible: true},
	}
	rows, err := layout.Normalize([]layout.Panel{{{layout.Field("title", 6, "")}}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got := layout.Available(attrs, rows, metas)
	if diff := cmp.Diff([]string{"body"}, got); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailable_FollowsSchemaOrderAndVisibility(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "zeta", Type: schema.TypeString},
		schema.Attribute{Name: "alpha", Type: schema.TypeString},
		schema.Attribute{Name: "hidden", Type: schema.TypeString},
		schema.Attribute{Name: "nometa", Type: schema.TypeString},
	)
	metas := schema.Metadatas{
		"zeta":   {Visible: true},
		"alpha":  {Visible: true},
		"hidden": {Visible: false},
	}

	got := layout.Available(attrs, nil, metas)
	if diff := cmp.Diff([]string{"zeta", "alpha"}, got); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailable_RecomputedAfterMutations(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "title", Type: schema.TypeString},
		schema.Attribute{Name: "body", Type: schema.TypeText},
	)
	metas := schema.Metadatas{"title": {Visible: true}, "body": {Visible: true}}

	rows, err := layout.Insert(nil, layout.Field("body", 12, ""), layout.FirstFit)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if diff := cmp.Diff([]string{"title"}, layout.Available(attrs, rows, metas)); diff != "" {
		t.Fatalf("after insert (-want +got):\n%s", diff)
	}

	rows, err = layout.Remove(rows, "body")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff([]string{"title", "body"}, layout.Available(attrs, rows, metas)); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}
}

func TestRemove_LeavesGapUntilRepad(t *testing.T) {
	rows := sampleRows(t)

	removed, err := layout.Remove(rows, "slug")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff(layout.Row{layout.Field("title", 6, "Title")}, removed[0]); diff != "" {
		t.Fatalf("row after remove (-want +got):\n%s", diff)
	}
	if len(rows[0]) != 2 {
		t.Fatalf("remove mutated its input")
	}

	repadded, err := layout.Repad(removed)
	if err != nil {
		t.Fatalf("repad: %v", err)
	}
	want := layout.Row{layout.Field("title", 6, "Title"), layout.Filler(6)}
	if diff := cmp.Diff(want, repadded[0]); diff != "" {
		t.Fatalf("row after repad (-want +got):\n%s", diff)
	}

	if _, err := layout.Remove(rows, "missing"); !errors.Is(err, layout.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestRepad_DropsEmptyRows(t *testing.T) {
	rows := sampleRows(t)
	removed, err := layout.Remove(rows, "body")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	repadded, err := layout.Repad(removed)
	if err != nil {
		t.Fatalf("repad: %v", err)
	}
	if len(repadded) != 2 {
		t.Fatalf("expected empty row to be dropped, got %d rows", len(repadded))
	}
}

func TestRemoveAt_RejectsFiller(t *testing.T) {
	rows := sampleRows(t)
	if _, err := layout.RemoveAt(rows, layout.Coord{Row: 2, Col: 1}); !errors.Is(err, layout.ErrFillerNotEditable) {
		t.Fatalf("expected ErrFillerNotEditable, got %v", err)
	}
	if _, err := layout.RemoveAt(rows, layout.Coord{Row: 9, Col: 0}); !errors.Is(err, layout.ErrInvalidCoord) {
		t.Fatalf("expected ErrInvalidCoord, got %v", err)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to layout.Coord
		want     layout.Rows
	}{
		{
			name: "within row",
			from: layout.Coord{Row: 0, Col: 0},
			to:   layout.Coord{Row: 0, Col: 1},
			want: layout.Rows{
				{layout.Field("slug", 6, "Slug"), layout.Field("title", 6, "Title")},
				{layout.Field("body", 12, "Body")},
				{layout.Field("views", 4, "Views"), layout.Filler(8)},
			},
		},
		{
			name: "across rows",
			from: layout.Coord{Row: 0, Col: 1},
			to:   layout.Coord{Row: 2, Col: 0},
			want: layout.Rows{
				{layout.Field("title", 6, "Title"), layout.Filler(6)},
				{layout.Field("body", 12, "Body")},
				{layout.Field("slug", 6, "Slug"), layout.Field("views", 4, "Views"), layout.Filler(2)},
			},
		},
		{
			name: "into new row",
			from: layout.Coord{Row: 0, Col: 0},
			to:   layout.Coord{Row: 3, Col: 0},
			want: layout.Rows{
				{layout.Field("slug", 6, "Slug"), layout.Filler(6)},
				{layout.Field("body", 12, "Body")},
				{layout.Field("views", 4, "Views"), layout.Filler(8)},
				{layout.Field("title", 6, "Title"), layout.Filler(6)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := layout.Move(sampleRows(t), tt.from, tt.to, nil)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("move mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMove_Errors(t *testing.T) {
	rows := sampleRows(t)

	if _, err := layout.Move(rows, layout.Coord{Row: 2, Col: 0}, layout.Coord{Row: 0, Col: 0}, nil); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow, got %v", err)
	}
	if _, err := layout.Move(rows, layout.Coord{Row: 2, Col: 1}, layout.Coord{Row: 0, Col: 0}, nil); !errors.Is(err, layout.ErrFillerNotEditable) {
		t.Fatalf("expected ErrFillerNotEditable, got %v", err)
	}
	if _, err := layout.Move(rows, layout.Coord{Row: 0, Col: 0}, layout.Coord{Row: 7, Col: 0}, nil); !errors.Is(err, layout.ErrInvalidCoord) {
		t.Fatalf("expected ErrInvalidCoord, got %v", err)
	}
}

func TestMove_UsesReorderer(t *testing.T) {
	called := false
	reorder := layout.ReordererFunc(func(rows layout.Rows, from, to layout.Coord) (layout.Rows, error) {
		called = true
		if from != (layout.Coord{Row: 0, Col: 1}) || to != (layout.Coord{Row: 1, Col: 0}) {
			t.Fatalf("unexpected coordinates %v -> %v", from, to)
		}
		return rows, nil
	})

	if _, err := layout.Move(sampleRows(t), layout.Coord{Row: 0, Col: 1}, layout.Coord{Row: 1, Col: 0}, reorder); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !called {
		t.Fatalf("reorderer was not invoked")
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name  string
		entry layout.Entry
		pos   layout.Position
		check func(t *testing.T, rows layout.Rows)
	}{
		{
			name:  "first fit uses free columns",
			entry: layout.Field("cover", 6, "Cover"),
			pos:   layout.FirstFit,
			check: func(t *testing.T, rows layout.Rows) {
				want := layout.Row{layout.Field("views", 4, "Views"), layout.Field("cover", 6, "Cover"), layout.Filler(2)}
				if diff := cmp.Diff(want, rows[2]); diff != "" {
					t.Fatalf("row mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "first fit opens a row when nothing fits",
			entry: layout.Field("cover", 12, "Cover"),
			pos:   layout.FirstFit,
			check: func(t *testing.T, rows layout.Rows) {
				if len(rows) != 4 || rows[3][0].Name != "cover" {
					t.Fatalf("expected cover in a new row: %#v", rows)
				}
			},
		},
		{
			name:  "append row",
			entry: layout.Field("cover", 4, "Cover"),
			pos:   layout.AppendRow,
			check: func(t *testing.T, rows layout.Rows) {
				want := layout.Row{layout.Field("cover", 4, "Cover"), layout.Filler(8)}
				if diff := cmp.Diff(want, rows[3]); diff != "" {
					t.Fatalf("row mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "explicit coordinate",
			entry: layout.Field("cover", 4, "Cover"),
			pos:   layout.At(layout.Coord{Row: 2, Col: 0}),
			check: func(t *testing.T, rows layout.Rows) {
				want := layout.Row{layout.Field("cover", 4, "Cover"), layout.Field("views", 4, "Views"), layout.Filler(4)}
				if diff := cmp.Diff(want, rows[2]); diff != "" {
					t.Fatalf("row mismatch (-want +got):\n%s", diff)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := layout.Insert(sampleRows(t), tt.entry, tt.pos)
			if err != nil {
				t.Fatalf("insert: %v", err)
			}
			tt.check(t, rows)
		})
	}
}

func TestInsert_Errors(t *testing.T) {
	rows := sampleRows(t)

	if _, err := layout.Insert(rows, layout.Field("title", 4, ""), layout.FirstFit); !errors.Is(err, layout.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if _, err := layout.Insert(rows, layout.Field("cover", 4, ""), layout.At(layout.Coord{Row: 1, Col: 0})); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow, got %v", err)
	}
	if _, err := layout.Insert(rows, layout.Filler(4), layout.FirstFit); !errors.Is(err, layout.ErrFillerNotEditable) {
		t.Fatalf("expected ErrFillerNotEditable, got %v", err)
	}
	if _, err := layout.Insert(rows, layout.Field("cover", 13, ""), layout.FirstFit); !errors.Is(err, layout.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestResizeAndRelabel(t *testing.T) {
	rows := sampleRows(t)

	resized, err := layout.Resize(rows, "views", 10)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	want := layout.Row{layout.Field("views", 10, "Views"), layout.Filler(2)}
	if diff := cmp.Diff(want, resized[2]); diff != "" {
		t.Fatalf("resize mismatch (-want +got):\n%s", diff)
	}
	if _, err := layout.Resize(rows, "title", 8); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow, got %v", err)
	}

	relabeled, err := layout.Relabel(rows, "title", "Headline")
	if err != nil {
		t.Fatalf("relabel: %v", err)
	}
	if relabeled[0][0].Label != "Headline" || rows[0][0].Label != "Title" {
		t.Fatalf("relabel should only affect the copy")
	}
}

func TestEntry_JSONUsesReservedFillerName(t *testing.T) {
	row := layout.Row{layout.Field("title", 6, "Title"), layout.Filler(6)}
	payload, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `[{"name":"title","size":6,"label":"Title"},{"name":"_TEMP_","size":6}]`
	if string(payload) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", payload, want)
	}

	var decoded layout.Row
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded[1].IsFiller() || decoded[1].Editable() {
		t.Fatalf("filler not decoded as filler: %#v", decoded[1])
	}
	if !decoded[0].Editable() {
		t.Fatalf("attribute entry should be editable")
	}
}

func TestValidate(t *testing.T) {
	attrs := schema.NewAttributes(
		schema.Attribute{Name: "title", Type: schema.TypeString},
		schema.Attribute{Name: "slug", Type: schema.TypeUID},
		schema.Attribute{Name: "body", Type: schema.TypeRichText},
	)

	warnings, err := layout.Validate(sampleRows(t), attrs)
	if err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}
	if diff := cmp.Diff([]string{"views"}, warnings); diff != "" {
		t.Fatalf("unknown attribute warnings (-want +got):\n%s", diff)
	}

	broken := layout.Rows{
		{layout.Field("title", 6, ""), layout.Field("title", 4, "")},
		{layout.Filler(2), layout.Field("body", 10, "")},
	}
	_, err = layout.Validate(broken, attrs)
	if !errors.Is(err, layout.ErrDuplicateField) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if !errors.Is(err, layout.ErrIncompleteRow) {
		t.Fatalf("expected incomplete row error, got %v", err)
	}
	if !errors.Is(err, layout.ErrMisplacedFiller) {
		t.Fatalf("expected misplaced filler error, got %v", err)
	}
}

func TestPanels_StripsFillers(t *testing.T) {
	panels := layout.Panels(sampleRows(t))
	want := []layout.Panel{{
		{layout.Field("title", 6, "Title"), layout.Field("slug", 6, "Slug")},
		{layout.Field("body", 12, "Body")},
		{layout.Field("views", 4, "Views")},
	}}
	if diff := cmp.Diff(want, panels); diff != "" {
		t.Fatalf("panels mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePosition(t *testing.T) {
	tests := map[string]layout.Position{
		"":           layout.FirstFit,
		"first":      layout.FirstFit,
		"append":     layout.AppendRow,
		"append-row": layout.AppendRow,
		"2,1":        layout.At(layout.Coord{Row: 2, Col: 1}),
		"at(0,3)":    layout.At(layout.Coord{Row: 0, Col: 3}),
	}
	for raw, want := range tests {
		got, err := layout.ParsePosition(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != want.String() {
			t.Fatalf("parse %q: got %s want %s", raw, got, want)
		}
	}
	if _, err := layout.ParsePosition("sideways"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestMove_RejectsReordererThatChangesFields(t *testing.T) {
	duplicate := layout.ReordererFunc(func(rows layout.Rows, from, to layout.Coord) (layout.Rows, error) {
		rows[1] = append(rows[1].Fields(), rows[0][0])
		return rows, nil
	})
	if _, err := layout.Move(sampleRows(t), layout.Coord{Row: 0, Col: 0}, layout.Coord{Row: 1, Col: 0}, duplicate); !errors.Is(err, layout.ErrFieldSetChanged) {
		t.Fatalf("expected ErrFieldSetChanged for duplicated entry, got %v", err)
	}

	drop := layout.ReordererFunc(func(rows layout.Rows, from, to layout.Coord) (layout.Rows, error) {
		return rows[:2], nil
	})
	if _, err := layout.Move(sampleRows(t), layout.Coord{Row: 0, Col: 0}, layout.Coord{Row: 1, Col: 0}, drop); !errors.Is(err, layout.ErrFieldSetChanged) {
		t.Fatalf("expected ErrFieldSetChanged for dropped entry, got %v", err)
	}
}

func clampedRows(t *testing.T) layout.Rows {
	t.Helper()

	rows, err := layout.Normalize([]layout.Panel{{
		{layout.Field("title", 8, ""), layout.Field("slug", 8, "")},
		{layout.Field("views", 4, "")},
	}}, layout.WithOverflowPolicy(layout.OverflowClamp))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return rows
}

func TestRepad_ClampKeepsWideRows(t *testing.T) {
	clamp := layout.WithOverflowPolicy(layout.OverflowClamp)
	rows := clampedRows(t)

	if _, err := layout.Repad(rows); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow under the default policy, got %v", err)
	}
	got, err := layout.Repad(rows, clamp)
	if err != nil {
		t.Fatalf("repad: %v", err)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Fatalf("repad mismatch (-want +got):\n%s", diff)
	}
}

func TestMutations_ClampEditsOtherRows(t *testing.T) {
	clamp := layout.WithOverflowPolicy(layout.OverflowClamp)
	rows := clampedRows(t)

	inserted, err := layout.Insert(rows, layout.Field("body", 12, ""), layout.AppendRow, clamp)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(inserted) != 3 || inserted[0].Used() != 16 {
		t.Fatalf("unexpected rows after insert: %v", inserted)
	}

	resized, err := layout.Resize(rows, "views", 6, clamp)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if diff := cmp.Diff(layout.Row{layout.Field("views", 6, ""), layout.Filler(6)}, resized[1]); diff != "" {
		t.Fatalf("resize mismatch (-want +got):\n%s", diff)
	}

	swapped, err := layout.Move(rows, layout.Coord{Row: 0, Col: 1}, layout.Coord{Row: 0, Col: 0}, nil, clamp)
	if err != nil {
		t.Fatalf("move within wide row: %v", err)
	}
	if diff := cmp.Diff([]string{"slug", "title", "views"}, swapped.Names()); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}

	if _, err := layout.Resize(rows, "title", 10, clamp); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("growing a wide row should fail, got %v", err)
	}
	if _, err := layout.Insert(rows, layout.Field("cover", 4, ""), layout.At(layout.Coord{Row: 0, Col: 0}), clamp); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("inserting into a wide row should fail, got %v", err)
	}
}

func TestValidate_ClampAcceptsWideRow(t *testing.T) {
	rows := clampedRows(t)

	if _, err := layout.Validate(rows, schema.Attributes{}); !errors.Is(err, layout.ErrRowOverflow) {
		t.Fatalf("expected ErrRowOverflow under the default policy, got %v", err)
	}
	if _, err := layout.Validate(rows, schema.Attributes{}, layout.WithOverflowPolicy(layout.OverflowClamp)); err != nil {
		t.Fatalf("validate with clamp: %v", err)
	}
}
