package db

import (
	"testing"

	"github.com/kailas-cloud/prodex/internal/domain/search/filter"
)

func TestTextPredicate_Empty(t *testing.T) {
	if got := TextPredicate(""); got != "*" {
		t.Errorf("expected match-all, got %q", got)
	}
}

func TestTextPredicate_Fields(t *testing.T) {
	got := TextPredicate("wireless mouse")
	want := "@name|description|brand:(wireless mouse)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextPredicate_Escaping(t *testing.T) {
	got := TextPredicate(`15" monitor (refurb)`)
	want := `@name|description|brand:(15\" monitor \(refurb\))`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterPredicate_Empty(t *testing.T) {
	if got := FilterPredicate(filter.Filters{}); got != "" {
		t.Errorf("expected empty predicate, got %q", got)
	}
}

func TestFilterPredicate_PriceBounds(t *testing.T) {
	lo := 10.0
	hi := 99.5

	tests := []struct {
		name string
		f    filter.Filters
		want string
	}{
		{"both", filter.Filters{PriceMin: &lo, PriceMax: &hi}, "@price:[10 99.5]"},
		{"min_only", filter.Filters{PriceMin: &lo}, "@price:[10 +inf]"},
		{"max_only", filter.Filters{PriceMax: &hi}, "@price:[-inf 99.5]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FilterPredicate(tc.f); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFilterPredicate_Categories(t *testing.T) {
	got := FilterPredicate(filter.Filters{Categories: []string{"electronics", "books"}})
	want := "@category:{electronics|books}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterPredicate_CategoryEscaping(t *testing.T) {
	got := FilterPredicate(filter.Filters{Categories: []string{"home & garden"}})
	want := `@category:{home\ \&\ garden}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterPredicate_MinRating(t *testing.T) {
	r := 4.0
	got := FilterPredicate(filter.Filters{MinRating: &r})
	want := "@rating:[4 +inf]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterPredicate_InStock(t *testing.T) {
	got := FilterPredicate(filter.Filters{InStockOnly: true})
	want := "@in_stock:{1}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFilterPredicate_Conjunction(t *testing.T) {
	lo := 25.0
	r := 3.5
	f := filter.Filters{
		Categories:  []string{"electronics"},
		PriceMin:    &lo,
		MinRating:   &r,
		InStockOnly: true,
	}
	got := FilterPredicate(f)
	want := "@price:[25 +inf] @category:{electronics} @rating:[3.5 +inf] @in_stock:{1}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCombinePredicates(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"all_empty", []string{"", ""}, "*"},
		{"wildcard_dropped", []string{"*", ""}, "*"},
		{"text_only", []string{"@name|description|brand:(mouse)", ""}, "@name|description|brand:(mouse)"},
		{"filter_only", []string{"*", "@in_stock:{1}"}, "@in_stock:{1}"},
		{"both", []string{"@name|description|brand:(mouse)", "@in_stock:{1}"}, "@name|description|brand:(mouse) @in_stock:{1}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CombinePredicates(tc.parts...); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSortField(t *testing.T) {
	tests := []struct {
		sort      filter.SortBy
		wantField string
		wantAsc   bool
	}{
		{filter.Relevance, "", false},
		{filter.PriceAsc, FieldPrice, true},
		{filter.PriceDesc, FieldPrice, false},
		{filter.RatingDesc, FieldRating, false},
		{filter.Newest, FieldCreatedAt, false},
	}
	for _, tc := range tests {
		field, asc := SortField(tc.sort)
		if field != tc.wantField || asc != tc.wantAsc {
			t.Errorf("SortField(%q) = (%q, %v), want (%q, %v)",
				tc.sort, field, asc, tc.wantField, tc.wantAsc)
		}
	}
}

func TestEscapeQuery(t *testing.T) {
	input := `hello "world" @user {tag}`
	escaped := escapeQuery(input)
	expected := `hello \"world\" \@user \{tag\}`
	if escaped != expected {
		t.Errorf("expected %q, got %q", expected, escaped)
	}
}
