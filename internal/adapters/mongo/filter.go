package mongo_adapter

import (
	"addisnest-service/internal/core/domain"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sortFields - белый список сортировки, ключ - поле ListingQuery
var sortFields = map[string]string{
	domain.SortCreatedAt: "createdAt",
	domain.SortUpdatedAt: "updatedAt",
	domain.SortPrice:     "price",
	domain.SortViews:     "views",
	domain.SortArea:      "area",
}

// buildFilter переводит ListingQuery в bson-фильтр
func buildFilter(q domain.ListingQuery) bson.M {
	filter := bson.M{}
	var and []bson.M

	// каждый токен должен найтись хотя бы в одном поле
	for _, token := range q.SearchTokens {
		pattern := regexp.QuoteMeta(token)
		or := make([]bson.M, 0, len(domain.SearchableFields))
		for _, field := range domain.SearchableFields {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		and = append(and, bson.M{"$or": or})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}

	if q.OwnerID != nil {
		filter["owner"] = q.OwnerID.String()
	}
	if q.PropertyType != "" {
		filter["propertyType"] = q.PropertyType
	}
	if q.OfferingType != "" {
		filter["offeringType"] = q.OfferingType
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.PromotionType != "" {
		filter["promotionType"] = q.PromotionType
	}
	if q.RegionalState != "" {
		filter["address.state"] = exactInsensitive(q.RegionalState)
	}
	if q.City != "" {
		filter["address.city"] = exactInsensitive(q.City)
	}
	if q.GeoCellPrefix != "" {
		filter["geoCell"] = bson.M{"$regex": "^" + regexp.QuoteMeta(q.GeoCellPrefix)}
	}

	if price := rangeFilter(q.MinPrice, q.MaxPrice); price != nil {
		filter["price"] = price
	}
	if q.MinBedrooms != nil {
		filter["bedrooms"] = bson.M{"$gte": *q.MinBedrooms}
	}
	if q.MinBathrooms != nil {
		filter["bathrooms"] = bson.M{"$gte": *q.MinBathrooms}
	}

	return filter
}

func exactInsensitive(v string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i"}
}

func rangeFilter(min, max *float64) bson.M {
	if min == nil && max == nil {
		return nil
	}
	r := bson.M{}
	if min != nil {
		r["$gte"] = *min
	}
	if max != nil {
		r["$lte"] = *max
	}
	return r
}

// sortDocument всегда добавляет _id, чтобы страницы не пересекались при равных ключах
func sortDocument(q domain.ListingQuery) bson.D {
	field, ok := sortFields[q.SortField]
	if !ok {
		field = "createdAt"
	}
	dir := 1
	if q.SortDesc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func findOptions(q domain.ListingQuery) *options.FindOptions {
	return options.Find().
		SetSort(sortDocument(q)).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
}
