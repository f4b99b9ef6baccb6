package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantItems []int
		wantNext  bool
		wantPrev  bool
	}{
		{"first page", 1, 2, []int{1, 2}, true, false},
		{"middle page", 2, 2, []int{3, 4}, true, true},
		{"last partial page", 3, 2, []int{5}, false, true},
		{"page beyond range", 4, 2, []int{}, false, true},
		{"everything on one page", 1, 10, []int{1, 2, 3, 4, 5}, false, false},
		{"defaults on invalid input", 0, 0, []int{1, 2, 3, 4, 5}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.page, tt.pageSize)

			if page.Total != len(items) {
				t.Fatalf("total = %d, want %d", page.Total, len(items))
			}
			if len(page.Items) != len(tt.wantItems) {
				t.Fatalf("items = %v, want %v", page.Items, tt.wantItems)
			}
			for i, v := range tt.wantItems {
				if page.Items[i] != v {
					t.Fatalf("items = %v, want %v", page.Items, tt.wantItems)
				}
			}
			if page.HasNext != tt.wantNext || page.HasPrev != tt.wantPrev {
				t.Fatalf("hasNext=%v hasPrev=%v, want %v/%v",
					page.HasNext, page.HasPrev, tt.wantNext, tt.wantPrev)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]string{}, 1, 20)
	if page.Total != 0 || len(page.Items) != 0 || page.HasNext || page.HasPrev {
		t.Fatalf("empty input: %+v", page)
	}
}
