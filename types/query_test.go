package types

import (
	"reflect"
	"testing"
)

func TestApplyFilterChangeResetsPage(t *testing.T) {
	q := Query{Search: "physics", Category: "Research", Page: 7}

	tests := []struct {
		name  string
		patch FilterPatch
		want  Query
	}{
		{
			name:  "search",
			patch: SetSearch("chemistry"),
			want:  Query{Search: "chemistry", Category: "Research", Page: 1},
		},
		{
			name:  "category cleared",
			patch: SetCategory(""),
			want:  Query{Search: "physics", Page: 1},
		},
		{
			name:  "university",
			patch: SetUniversity("King's College London"),
			want:  Query{Search: "physics", Category: "Research", University: "King's College London", Page: 1},
		},
		{
			name:  "empty patch still resets",
			patch: FilterPatch{},
			want:  Query{Search: "physics", Category: "Research", Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.ApplyFilterChange(tt.patch)
			if got != tt.want {
				t.Errorf("ApplyFilterChange() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if q.Page != 7 {
		t.Fatalf("original query mutated: %+v", q)
	}
}

func TestWithPage(t *testing.T) {
	q := NewQuery().WithPage(4)
	if q.Page != 4 {
		t.Fatalf("WithPage(4).Page = %d", q.Page)
	}
	if got := q.WithPage(0).Page; got != 1 {
		t.Fatalf("WithPage(0).Page = %d, want 1", got)
	}
}

func TestParamsOmitsEmptyFields(t *testing.T) {
	q := Query{Search: "machine learning", Category: "Research", Page: 1}
	values := q.Params(10)

	if _, ok := values["university"]; ok {
		t.Fatalf("university must be omitted, got %v", values)
	}
	if _, ok := values["location"]; ok {
		t.Fatalf("location must be omitted, got %v", values)
	}
	if got := values.Get("search"); got != "machine learning" {
		t.Errorf("search = %q", got)
	}
	if got := values.Get("category"); got != "Research" {
		t.Errorf("category = %q", got)
	}
	if got := values.Get("page"); got != "1" {
		t.Errorf("page = %q", got)
	}
	if got := values.Get("limit"); got != "10" {
		t.Errorf("limit = %q", got)
	}
	if got := values.Encode(); got != "category=Research&limit=10&page=1&search=machine+learning" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestParamsLocation(t *testing.T) {
	q := NewQuery().WithPage(3).ApplyFilterChange(SetLocation(" London "))
	if q.Page != 1 || !q.HasFilters() {
		t.Fatalf("expected a filtered first page, got %+v", q)
	}
	if got := q.Params(10).Get("location"); got != "London" {
		t.Errorf("location = %q, want London", got)
	}
}

func TestParamsDefaults(t *testing.T) {
	values := Query{Search: "   "}.Params(0)
	if _, ok := values["search"]; ok {
		t.Fatalf("blank search must be omitted")
	}
	if got := values.Get("page"); got != "1" {
		t.Errorf("page = %q, want 1", got)
	}
	if got := values.Get("limit"); got != "10" {
		t.Errorf("limit = %q, want 10", got)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"middle", 10, 20, []int{8, 9, 10, 11, 12}},
		{"first", 1, 20, []int{1, 2, 3, 4, 5}},
		{"second", 2, 20, []int{1, 2, 3, 4, 5}},
		{"last", 20, 20, []int{16, 17, 18, 19, 20}},
		{"near last", 19, 20, []int{16, 17, 18, 19, 20}},
		{"few pages", 2, 3, []int{1, 2, 3}},
		{"single", 1, 1, []int{1}},
		{"current beyond total", 9, 4, []int{1, 2, 3, 4}},
		{"no pages", 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.total, PageWindowSize)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("research"); !ok || c != Research {
		t.Fatalf("ParseCategory(research) = %q, %v", c, ok)
	}
	if c, ok := ParseCategory("General"); ok || c != "General" {
		t.Fatalf("ParseCategory(General) = %q, %v", c, ok)
	}
	if !PhD.Known() || Category("General").Known() {
		t.Fatalf("Known() mismatch")
	}
	if len(AllCategories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(AllCategories))
	}
}
