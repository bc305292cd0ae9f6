package sqlcount

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/mickamy/sqlcount/internal/ident"
)

// TableNamer provides a custom table name for a model.
type TableNamer interface {
	TableName() string
}

var tableNamerType = reflect.TypeOf((*TableNamer)(nil)).Elem()

// TableName resolves the table a model is stored in, normalised the way captured statements are:
// a string is taken as is, a TableNamer is asked, and any other struct becomes its plural snake_case name.
func TableName(target any) (string, error) {
	name, err := resolveTableName(target)
	if err != nil {
		return "", err
	}
	return ident.Normalize(name), nil
}

// For builds Rules keyed by each model's table name.
//
//	sqlcount.For(map[any]sqlcount.Ops{&Book{}: {"select": 1}})
func For(models map[any]Ops) (Rules, error) {
	rules := make(Rules, len(models))
	for model, ops := range models {
		name, err := TableName(model)
		if err != nil {
			return nil, err
		}
		rules[name] = ops
	}
	return rules, nil
}

func resolveTableName(target any) (string, error) {
	switch v := target.(type) {
	case nil:
		return "", errors.New("sqlcount: nil table target")
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return "", errors.New("sqlcount: empty table name")
		}
		return name, nil
	}

	val := reflect.ValueOf(target)
	typ := val.Type()

	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return "", fmt.Errorf("sqlcount: nil pointer target %T", target)
		}
		typ = typ.Elem()
		val = val.Elem()
	}

	if namer, ok := target.(TableNamer); ok {
		return namedTable(namer, target)
	}
	if namer, ok := val.Interface().(TableNamer); ok {
		return namedTable(namer, target)
	}

	if typ.Kind() != reflect.Struct {
		return "", fmt.Errorf("sqlcount: unsupported table target %T", target)
	}
	if reflect.PointerTo(typ).Implements(tableNamerType) {
		if namer, ok := reflect.New(typ).Interface().(TableNamer); ok {
			return namedTable(namer, target)
		}
	}
	if typ.Name() == "" {
		return "", fmt.Errorf("sqlcount: cannot derive table name for anonymous struct of type %v", typ)
	}
	return inflection.Plural(toSnakeCase(typ.Name())), nil
}

func namedTable(namer TableNamer, target any) (string, error) {
	name := strings.TrimSpace(namer.TableName())
	if name == "" {
		return "", fmt.Errorf("sqlcount: TableName returned empty string. %T", target)
	}
	return name, nil
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
