package query_test

import (
	"testing"

	"github.com/mickamy/sqlcount/internal/query"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		sql  string
		want query.Statement
	}{
		{
			name: "select simple",
			sql:  "SELECT * FROM book",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select lower case with leading whitespace",
			sql:  "\n\t  select id, title from Book where id = $1",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select quoted and joined",
			sql:  `SELECT "book"."id" FROM "book" INNER JOIN "author" ON "book"."author_id" = "author"."id"`,
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select skips subquery from",
			sql:  "SELECT (SELECT count(*) FROM review r WHERE r.book_id = b.id) FROM book b",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select skips from inside literal",
			sql:  "SELECT 'from nowhere' AS x, id FROM book",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select column named like keyword",
			sql:  "SELECT valid_from FROM promo",
			want: query.Statement{Op: query.Select, Table: "promo"},
		},
		{
			name: "select without from",
			sql:  "SELECT 1",
			want: query.Statement{Op: query.Select},
		},
		{
			name: "select from derived table",
			sql:  "SELECT * FROM (SELECT 1) AS t",
			want: query.Statement{Op: query.Select},
		},
		{
			name: "select with leading comments",
			sql:  "-- fetch\n/* list */ SELECT * FROM `author`",
			want: query.Statement{Op: query.Select, Table: "author"},
		},
		{
			name: "select skips from inside inline block comment",
			sql:  "SELECT /* FROM x */ * FROM book",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select skips from inside line comment",
			sql:  "SELECT id -- FROM x\n FROM book",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "select with trailing sqlcommenter comment",
			sql:  "SELECT * FROM book /*controller='index',framework='gin'*/",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "division is not a comment",
			sql:  "SELECT a / 2, b - 1 FROM book",
			want: query.Statement{Op: query.Select, Table: "book"},
		},
		{
			name: "delete skips from inside comment",
			sql:  "DELETE /* FROM x */ FROM qux",
			want: query.Statement{Op: query.Delete, Table: "qux"},
		},
		{
			name: "insert",
			sql:  "INSERT INTO bar (id, name) VALUES ($1, $2)",
			want: query.Statement{Op: query.Insert, Table: "bar"},
		},
		{
			name: "insert without space before columns",
			sql:  `insert into "Bar"(id) values (?)`,
			want: query.Statement{Op: query.Insert, Table: "bar"},
		},
		{
			name: "insert or replace",
			sql:  "INSERT OR REPLACE INTO bar (id) VALUES (1)",
			want: query.Statement{Op: query.Insert, Table: "bar"},
		},
		{
			name: "update",
			sql:  "UPDATE baz SET n = n + 1 WHERE id = 1",
			want: query.Statement{Op: query.Update, Table: "baz"},
		},
		{
			name: "update or ignore",
			sql:  "UPDATE OR IGNORE baz SET n = 1",
			want: query.Statement{Op: query.Update, Table: "baz"},
		},
		{
			name: "update schema qualified",
			sql:  `UPDATE "Sales"."Orders" so SET status = $1`,
			want: query.Statement{Op: query.Update, Table: "sales.orders"},
		},
		{
			name: "delete",
			sql:  "DELETE FROM qux WHERE id = 3",
			want: query.Statement{Op: query.Delete, Table: "qux"},
		},
		{
			name: "delete only",
			sql:  "DELETE FROM ONLY qux WHERE id = 3",
			want: query.Statement{Op: query.Delete, Table: "qux"},
		},
		{
			name: "pragma",
			sql:  "PRAGMA foo",
			want: query.Statement{Op: query.Unknown},
		},
		{
			name: "cte is not recognised",
			sql:  "WITH c AS (SELECT 1) SELECT * FROM c",
			want: query.Statement{Op: query.Unknown},
		},
		{
			name: "keyword prefix is not a keyword",
			sql:  "SELECTED FROM book",
			want: query.Statement{Op: query.Unknown},
		},
		{
			name: "empty",
			sql:  "   ",
			want: query.Statement{Op: query.Unknown},
		},
		{
			name: "unterminated comment",
			sql:  "/* SELECT * FROM book",
			want: query.Statement{Op: query.Unknown},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := query.Classify(tc.sql)
			if got != tc.want {
				t.Fatalf("Classify(%q) = %#v, want %#v", tc.sql, got, tc.want)
			}
		})
	}
}
