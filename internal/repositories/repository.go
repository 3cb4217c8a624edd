package repositories

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"asset-system/pkg/types"
)

// ListSpec описывает табличный список с фильтрами/поиском для buildListQuery.
// Разрешённые колонки перечисляются явно, чтобы имена из query-строки
// не попадали в SQL без проверки.
type ListSpec struct {
	Table                string
	Columns              string
	OrderBy              string
	AllowedFilterColumns []string
	AllowedSearchColumns []string
}

func contains(list []string, item string) bool {
	for _, val := range list {
		if strings.EqualFold(val, item) {
			return true
		}
	}
	return false
}

func applyFilterConditions(builder sq.SelectBuilder, spec ListSpec, filter types.Filter) sq.SelectBuilder {
	for key, val := range filter.Filter {
		if contains(spec.AllowedFilterColumns, key) {
			builder = builder.Where(sq.Eq{key: val})
		}
	}

	if filter.Search != "" && len(spec.AllowedSearchColumns) > 0 {
		var conditions []sq.Sqlizer
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		for _, col := range spec.AllowedSearchColumns {
			conditions = append(conditions, sq.Expr(fmt.Sprintf("%s ILIKE ?", col), pattern))
		}
		builder = builder.Where(sq.Or(conditions))
	}

	return builder
}

func buildListQuery(spec ListSpec, filter types.Filter) (string, []interface{}, error) {
	builder := sq.Select(spec.Columns).
		From(spec.Table).
		PlaceholderFormat(sq.Dollar)

	builder = applyFilterConditions(builder, spec, filter)

	if spec.OrderBy != "" {
		builder = builder.OrderBy(spec.OrderBy)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	return builder.ToSql()
}

func buildCountQuery(spec ListSpec, filter types.Filter) (string, []interface{}, error) {
	builder := sq.Select("COUNT(*)").
		From(spec.Table).
		PlaceholderFormat(sq.Dollar)

	builder = applyFilterConditions(builder, spec, filter)

	return builder.ToSql()
}
