package ident_test

import (
	"reflect"
	"testing"

	"github.com/mickamy/sqlcount/internal/ident"
)

func TestSplitQualified(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple", in: "orders", want: []string{"orders"}},
		{name: "schema qualified", in: "public.orders", want: []string{"public", "orders"}},
		{name: "quoted schema and space", in: `"Sales"."Order Detail"`, want: []string{"Sales", "Order Detail"}},
		{name: "dot inside quotes", in: `"Sales"."Order.Detail"`, want: []string{"Sales", "Order.Detail"}},
		{name: "escaped quote", in: `"Sales""Region"."Orders"`, want: []string{`Sales"Region`, "Orders"}},
		{name: "backticks", in: "`shop`.`orders`", want: []string{"shop", "orders"}},
		{name: "brackets", in: "[dbo].[Orders]", want: []string{"dbo", "Orders"}},
		{name: "empty", in: "  ", want: nil},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ident.SplitQualified(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitQualified(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name     string
		in       string
		want     string
		wantRest string
	}{
		{name: "stops at space", in: "  book WHERE id = 1", want: "book", wantRest: " WHERE id = 1"},
		{name: "stops at paren", in: "book(id, title)", want: "book", wantRest: "(id, title)"},
		{name: "stops at comma", in: "book, author", want: "book", wantRest: ", author"},
		{name: "stops at semicolon", in: "book;", want: "book", wantRest: ";"},
		{name: "quoted with space", in: `"Order Detail" od`, want: `"Order Detail"`, wantRest: " od"},
		{name: "end of input", in: "book", want: "book", wantRest: ""},
		{name: "subquery", in: " (SELECT 1) x", want: "", wantRest: "(SELECT 1) x"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, rest := ident.Read(tc.in)
			if got != tc.want || rest != tc.wantRest {
				t.Fatalf("Read(%q) = (%q, %q), want (%q, %q)", tc.in, got, rest, tc.want, tc.wantRest)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower-cased", in: "Book", want: "book"},
		{name: "quoted", in: `"Book"`, want: "book"},
		{name: "backticks", in: "`book`", want: "book"},
		{name: "schema qualified", in: `"Sales"."Orders"`, want: "sales.orders"},
		{name: "empty", in: "", want: ""},
		{name: "empty quotes", in: `""`, want: ""},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ident.Normalize(tc.in)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
