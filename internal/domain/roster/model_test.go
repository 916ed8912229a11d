package roster_test

import (
	"testing"

	"shiftboard/internal/domain/roster"
)

var members = roster.Roster{
	{Name: "高橋", Reading: "たかはし"},
	{Name: "佐藤", Reading: "さとう"},
	{Name: "鈴木", Reading: "すずき"},
	{Name: "田中", Reading: "たなか"},
}

// TestRoster_Validate tests roster validation.
func TestRoster_Validate(t *testing.T) {
	tests := []struct {
		name    string
		roster  roster.Roster
		wantErr bool
	}{
		{name: "valid", roster: members, wantErr: false},
		{name: "empty roster", roster: roster.Roster{}, wantErr: false},
		{name: "blank name", roster: roster.Roster{{Name: "  ", Reading: "さとう"}}, wantErr: true},
		{name: "duplicate name", roster: roster.Roster{{Name: "佐藤"}, {Name: "佐藤"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.roster.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Roster.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRoster_Names preserves roster order.
func TestRoster_Names(t *testing.T) {
	names := members.Names()
	want := []string{"高橋", "佐藤", "鈴木", "田中"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestRoster_Initials dedupes and sorts in gojūon order, not encounter order.
func TestRoster_Initials(t *testing.T) {
	got := members.Initials()
	want := []string{"さ", "す", "た"} // さとう, すずき, たかはし+たなか
	if len(got) != len(want) {
		t.Fatalf("Initials() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Initials()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestRoster_FilterByInitial filters by reading prefix, preserving order.
func TestRoster_FilterByInitial(t *testing.T) {
	got := members.FilterByInitial("た")
	if len(got) != 2 || got[0] != "高橋" || got[1] != "田中" {
		t.Errorf("FilterByInitial(た) = %v, want [高橋 田中]", got)
	}
	if got := members.FilterByInitial("わ"); len(got) != 0 {
		t.Errorf("FilterByInitial(わ) = %v, want none", got)
	}
	if got := members.FilterByInitial(""); len(got) != len(members) {
		t.Errorf("FilterByInitial(\"\") = %v, want all members", got)
	}
}

// TestRoster_Contains checks membership.
func TestRoster_Contains(t *testing.T) {
	if !members.Contains("佐藤") {
		t.Error("Contains(佐藤) = false, want true")
	}
	if members.Contains("部外者") {
		t.Error("Contains(部外者) = true, want false")
	}
}
