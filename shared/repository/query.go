package repository

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"roombook/shared/dto"
)

// columnsOf lists the db tags of T in declaration order, flattening embedded structs.
func columnsOf[T any]() []string {
	return tagsOf(reflect.TypeFor[T]())
}

func tagsOf(typ reflect.Type) []string {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return nil
	}

	columns := []string{}

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, tagsOf(field.Type)...)

			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		columns = append(columns, tag)
	}

	return columns
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
}

// selectList qualifies the requested columns with the table name; no columns means all of them.
func (repo *Repository[T]) selectList(only ...string) string {
	selected := []string{}

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

// updateQuery assigns fields in sorted key order so the statement text is stable.
func (repo *Repository[T]) updateQuery(fields map[string]any, where string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	assignments := make([]string, len(keys))
	for i, key := range keys {
		assignments[i] = fmt.Sprintf("%s = :%s", key, key)
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(assignments, ", "), where)
}

// pageClause renders ORDER BY and LIMIT/OFFSET and adds their named args.
func pageClause(params dto.QueryParams, args map[string]any) string {
	var clause strings.Builder

	if params.SortBy != "" && params.SortDir != "" {
		fmt.Fprintf(&clause, " ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	switch {
	case params.Page > 0 && params.Limit > 0:
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		clause.WriteString(" LIMIT :limit OFFSET :offset")
	case params.Limit > 0:
		args["limit"] = params.Limit

		clause.WriteString(" LIMIT :limit")
	}

	return clause.String()
}
