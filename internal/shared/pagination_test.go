package shared

import "testing"

func TestPage(t *testing.T) {
	t.Run("TotalPages", func(t *testing.T) {
		cases := []struct {
			total, size, want int
		}{
			{100, 10, 10},
			{101, 10, 11},
			{99, 10, 10},
			{1, 10, 1},
			{0, 10, 0},
			{10, 0, 0},
		}

		for _, tc := range cases {
			p := Page{Number: 1, Size: tc.size, Total: tc.total}
			if got := p.TotalPages(); got != tc.want {
				t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tc.total, tc.size, got, tc.want)
			}
		}
	})

	t.Run("Next Disabled On Last Page", func(t *testing.T) {
		p := Page{Number: 11, Size: 10, Total: 101}
		if p.HasNext() {
			t.Error("expected HasNext to be false on the last page")
		}
		if !p.HasPrev() {
			t.Error("expected HasPrev to be true on the last page")
		}
	})

	t.Run("First Page", func(t *testing.T) {
		p := Page{Number: 1, Size: 10, Total: 101}
		if !p.HasNext() {
			t.Error("expected HasNext to be true on the first page")
		}
		if p.HasPrev() {
			t.Error("expected HasPrev to be false on the first page")
		}
		if p.Offset() != 0 {
			t.Errorf("expected offset 0, got %d", p.Offset())
		}
	})

	t.Run("Offset", func(t *testing.T) {
		p := Page{Number: 3, Size: 25, Total: 500}
		if got := p.Offset(); got != 50 {
			t.Errorf("expected offset 50, got %d", got)
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		p := Page{Number: 99, Size: 10, Total: 35}.Clamp()
		if p.Number != 4 {
			t.Errorf("expected clamp to page 4, got %d", p.Number)
		}

		p = Page{Number: -2, Size: 10, Total: 35}.Clamp()
		if p.Number != 1 {
			t.Errorf("expected clamp to page 1, got %d", p.Number)
		}

		p = Page{Number: 7, Size: 10, Total: 0}.Clamp()
		if p.Number != 1 {
			t.Errorf("expected empty listing to clamp to page 1, got %d", p.Number)
		}
	})
}
