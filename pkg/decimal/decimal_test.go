package decimal

import "testing"

func TestTime(t *testing.T) {
	cases := []struct {
		name          string
		now           int64
		wantH, wantM, wantS int
	}{
		{"Midnight", 0, 0, 0, 0},
		{"Noon is five decimal hours", 43200, 5, 0, 0},
		{"End of day", 86399, 9, 99, 98},
		{"Negative instants wrap", -1, 9, 99, 98},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, m, s := Time(c.now)
			if h != c.wantH || m != c.wantM || s != c.wantS {
				t.Errorf("Time(%d) = %d:%02d:%02d, want %d:%02d:%02d", c.now, h, m, s, c.wantH, c.wantM, c.wantS)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(43200); got != "5:00:00" {
		t.Errorf("Format(43200) = %q, want 5:00:00", got)
	}
}
