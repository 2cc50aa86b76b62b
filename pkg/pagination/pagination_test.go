package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0)
	if p.Number != 1 || p.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults %+v", p)
	}
	p = Normalize(-3, MaxPageSize+10)
	if p.Number != 1 || p.Size != MaxPageSize {
		t.Fatalf("expected clamped values, got %+v", p)
	}
}

func TestSliceReturnsRequestedPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page, result := Slice(items, Page{Number: 2, Size: 2})
	if len(page) != 2 || page[0] != 3 || page[1] != 4 {
		t.Fatalf("unexpected page contents %v", page)
	}
	if result.Page != 2 || result.TotalItems != 5 || result.TotalPages != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSliceOutOfRangePageResetsToFirst(t *testing.T) {
	items := []int{1, 2, 3}
	page, result := Slice(items, Page{Number: 9, Size: 2})
	if result.Page != 1 {
		t.Fatalf("expected reset to page 1, got %d", result.Page)
	}
	if len(page) != 2 || page[0] != 1 {
		t.Fatalf("expected first page contents, got %v", page)
	}
}

func TestSliceEmptyInput(t *testing.T) {
	page, result := Slice([]string{}, Page{Number: 1, Size: 10})
	if len(page) != 0 {
		t.Fatalf("expected empty page")
	}
	if result.TotalPages != 1 || result.Page != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}
