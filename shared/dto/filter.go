package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterPlainQuery        = "plain"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons maps operators that render as "column OP :arg".
var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one WHERE condition. Value binds as a named sqlx argument, so
// user input never lands in the query text. ArgName overrides the bind name
// when the same field appears twice in one query.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less less_eq greater greater_eq plain is_not_null is_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the condition as a named-parameter SQL fragment and
// the arguments it binds. An unknown operator renders as an empty fragment.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column := f.column()
	argName := f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%s%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s) ", column, argName), args
	case FilterOperatorIn:
		return f.inClause(column, argName, args)
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// inClause expands a slice value into one named argument per element. A
// non-slice value is interpolated as-is, so it must never carry user input.
func (f *Filter) inClause(column, argName string, args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)

	switch val.Type().Kind() {
	case reflect.Array, reflect.Slice:
		named := make([]string, val.Len())

		for idx := range val.Len() {
			element := fmt.Sprintf("%s_%d", argName, idx)
			args[element] = val.Index(idx).Interface()
			named[idx] = ":" + element
		}

		return fmt.Sprintf("%s IN (%s) ", column, strings.Join(named, ", ")), args
	default:
		return fmt.Sprintf("%s IN (%s) ", column, f.Value), args
	}
}

// FilterGroup joins Filters and nested FilterGroups with one boolean
// operator. Every list and lookup query in the repositories expresses its
// WHERE clause as one of these.
type FilterGroup struct {
	Filters  []any
	Operator string
}

// GetWhereClause renders the group as a parenthesized SQL fragment and the
// merged arguments of its members. An empty group renders as "".
func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, member := range f.Filters {
		var where string

		var arg map[string]any

		switch m := member.(type) {
		case Filter:
			where, arg = m.GetWhereClause()
		case FilterGroup:
			where, arg = m.GetWhereClause()
		default:
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+f.Operator+" ")), args
}
