package pbp

import "testing"

func TestNewTableSortsBySortOrder(t *testing.T) {
	events := []*Event{
		{GameID: 1, SortOrder: 6},
		{GameID: 1, SortOrder: 1},
		{GameID: 1, SortOrder: 5},
	}

	table := NewTable(events)

	prev := -1
	for _, ev := range table.Rows {
		if ev.SortOrder <= prev {
			t.Fatalf("sortOrder not strictly increasing: %d after %d", ev.SortOrder, prev)
		}
		prev = ev.SortOrder
	}
}

func TestAppendPreservesGameBlocks(t *testing.T) {
	first := NewTable([]*Event{
		{GameID: 1, SortOrder: 2},
		{GameID: 1, SortOrder: 1},
	})
	second := NewTable([]*Event{
		{GameID: 2, SortOrder: 1},
	})

	first.Append(second)

	if first.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", first.Len())
	}
	if first.Rows[0].GameID != 1 || first.Rows[1].GameID != 1 || first.Rows[2].GameID != 2 {
		t.Error("rows from different games interleaved")
	}
	if first.Rows[0].SortOrder != 1 || first.Rows[1].SortOrder != 2 {
		t.Error("within-game order lost on append")
	}
}

func TestResolveNames(t *testing.T) {
	roster := &Roster{
		Names: map[int64]string{100: "ALEX OVECHKIN", 101: "TOM WILSON"},
	}
	table := NewTable([]*Event{
		{
			SortOrder: 1,
			P1:        &Participant{ID: 100},
			P2:        &Participant{ID: 101, Name: "PRESET"},
			P3:        &Participant{ID: 999},
		},
	})

	table.ResolveNames(roster)

	ev := table.Rows[0]
	if ev.P1.Name != "ALEX OVECHKIN" {
		t.Errorf("p1 name = %q, want ALEX OVECHKIN", ev.P1.Name)
	}
	if ev.P2.Name != "PRESET" {
		t.Errorf("p2 name overwritten: %q", ev.P2.Name)
	}
	if ev.P3.Name != "" {
		t.Errorf("unresolvable id must keep an empty name, got %q", ev.P3.Name)
	}
}
