package postgres_adapter

import (
	"addisnest-service/internal/core/domain"
	"fmt"
	"strings"
)

// колонки, по которым ищется каждый токен запроса
var searchColumns = []string{
	"title", "description", "street", "city", "state", "country", "property_type",
	"array_to_string(features, ' ')",
}

// sortColumns - белый список сортировки, ключ - поле ListingQuery
var sortColumns = map[string]string{
	domain.SortCreatedAt: "created_at",
	domain.SortUpdatedAt: "updated_at",
	domain.SortPrice:     "price",
	domain.SortViews:     "views",
	domain.SortArea:      "area",
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
}

// addSearchToken: токен должен встретиться хотя бы в одной из searchColumns
func (qb *queryBuilder) addSearchToken(token string) {
	parts := make([]string, len(searchColumns))
	for i, col := range searchColumns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, qb.argId)
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+escapeLike(token)+"%")
	qb.argId++
}

// build возвращает WHERE (или пустую строку) и аргументы
func (qb *queryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyFilters переводит ListingQuery в WHERE-условие
func applyFilters(q domain.ListingQuery) (string, []interface{}) {
	qb := newQueryBuilder()

	for _, token := range q.SearchTokens {
		qb.addSearchToken(token)
	}

	if q.OwnerID != nil {
		qb.addCondition("%s = $%d", "owner_id", *q.OwnerID)
	}
	if q.PropertyType != "" {
		qb.addCondition("%s = $%d", "property_type", q.PropertyType)
	}
	if q.OfferingType != "" {
		qb.addCondition("%s = $%d", "offering_type", q.OfferingType)
	}
	if q.Status != "" {
		qb.addCondition("%s = $%d", "status", q.Status)
	}
	if q.PromotionType != "" {
		qb.addCondition("%s = $%d", "promotion_type", q.PromotionType)
	}
	if q.RegionalState != "" {
		qb.addCondition("lower(%s) = lower($%d)", "state", q.RegionalState)
	}
	if q.City != "" {
		qb.addCondition("lower(%s) = lower($%d)", "city", q.City)
	}
	if q.GeoCellPrefix != "" {
		qb.addCondition("%s LIKE $%d", "geo_cell", escapeLike(q.GeoCellPrefix)+"%")
	}

	qb.AddFloatFilter("price", q.MinPrice, q.MaxPrice)
	qb.AddIntFilter("bedrooms", q.MinBedrooms)
	qb.AddIntFilter("bathrooms", q.MinBathrooms)

	return qb.build()
}

// orderClause всегда добавляет id, чтобы страницы не пересекались при равных ключах
func orderClause(q domain.ListingQuery) string {
	col, ok := sortColumns[q.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", col, dir, dir)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
