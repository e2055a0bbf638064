package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2024-07-01")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-07-01" {
		t.Errorf("String() = %q, want 2024-07-01", d.String())
	}

	// lenient form
	d, err = Parse("2024-7-1")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-07-01" {
		t.Errorf("lenient parse = %q, want 2024-07-01", d.String())
	}

	if _, err := Parse("not-a-date"); err == nil {
		t.Error("invalid date accepted")
	}
}

func TestFromTimeCollapsesToDay(t *testing.T) {
	stamp := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)
	if got := FromTime(stamp); got != New(2024, time.March, 15) {
		t.Errorf("FromTime = %s, want 2024-03-15", got)
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2024, time.January, 31).Add(1)
	if d.String() != "2024-02-01" {
		t.Errorf("Jan 31 + 1 = %s, want 2024-02-01", d)
	}
	d = New(2024, time.March, 1).Add(-1)
	if d.String() != "2024-02-29" { // leap year
		t.Errorf("Mar 1 - 1 = %s, want 2024-02-29", d)
	}
}

func TestDaysIterator(t *testing.T) {
	from := MustParse("2024-01-30")
	to := MustParse("2024-02-02")

	var got []string
	for day := range Days(from, to) {
		got = append(got, day.String())
	}

	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, got[i], want[i])
		}
	}

	for day := range Days(to, from) {
		t.Errorf("reversed bounds yielded %s", day)
	}
}

func TestDateJSON(t *testing.T) {
	d := MustParse("2024-06-15")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-06-15"` {
		t.Errorf("marshaled as %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip changed the date: %s", back)
	}
}
