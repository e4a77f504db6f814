package mongo_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPropertyStore - реализация PropertyStoragePort поверх коллекции MongoDB
type MongoPropertyStore struct {
	collection *mongo.Collection
}

func NewMongoPropertyStore(collection *mongo.Collection) (*MongoPropertyStore, error) {
	if collection == nil {
		return nil, fmt.Errorf("mongo collection cannot be nil")
	}
	return &MongoPropertyStore{collection: collection}, nil
}

// EnsureIndexes создает индексы для пробы дубликатов и типовых сортировок
func (s *MongoPropertyStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "fingerprint", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "geoCell", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}
	return nil
}

func (s *MongoPropertyStore) repoLogger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MongoPropertyStore",
		"method":    method,
	})
}

func (s *MongoPropertyStore) Create(ctx context.Context, record *domain.PropertyRecord) error {
	if _, err := s.collection.InsertOne(ctx, toDocument(record)); err != nil {
		s.repoLogger(ctx, "Create").Error("Failed to insert property", err, port.Fields{"property_id": record.ID})
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (s *MongoPropertyStore) FindRecentDuplicate(ctx context.Context, probe domain.DuplicateProbe) (*domain.PropertyRecord, error) {
	filter := bson.M{
		"owner":        probe.OwnerID.String(),
		"fingerprint":  probe.Fingerprint,
		"title":        probe.Title,
		"price":        probe.Price,
		"propertyType": probe.PropertyType,
		"createdAt":    bson.M{"$gte": probe.Since.UTC()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	record, err := s.findOne(ctx, filter, opts)
	if err != nil {
		s.repoLogger(ctx, "FindRecentDuplicate").Error("Duplicate lookup failed", err, nil)
		return nil, fmt.Errorf("duplicate lookup failed: %w", err)
	}
	return record, nil
}

func (s *MongoPropertyStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	record, err := s.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return record, nil
}

func (s *MongoPropertyStore) IncrementViews(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc propertyDocument
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	return doc.toRecord()
}

func (s *MongoPropertyStore) Update(ctx context.Context, record *domain.PropertyRecord) error {
	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": record.ID.String()}, toDocument(record))
	if err != nil {
		s.repoLogger(ctx, "Update").Error("Failed to update property", err, port.Fields{"property_id": record.ID})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (s *MongoPropertyStore) List(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	logger := s.repoLogger(ctx, "List")
	filter := buildFilter(query)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		logger.Error("Failed to count properties", err, nil)
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	page := &domain.ListingPage{Total: total, Records: []domain.PropertyRecord{}}
	if total == 0 || int64(query.Skip()) >= total {
		return page, nil
	}

	cursor, err := s.collection.Find(ctx, filter, findOptions(query))
	if err != nil {
		logger.Error("Failed to query properties", err, nil)
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode property: %w", err)
		}
		record, err := doc.toRecord()
		if err != nil {
			logger.Warn("Skipping property with malformed identifiers", port.Fields{"document_id": doc.ID})
			continue
		}
		page.Records = append(page.Records, *record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}
	return page, nil
}

func (s *MongoPropertyStore) Stats(ctx context.Context) (*domain.PropertyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"status":        "$status",
				"promotionType": "$promotionType",
				"paymentStatus": "$paymentStatus",
			},
			"count": bson.M{"$sum": 1},
			"views": bson.M{"$sum": "$views"},
		}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate properties: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Key struct {
			Status        string `bson:"status"`
			PromotionType string `bson:"promotionType"`
			PaymentStatus string `bson:"paymentStatus"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
		Views int64 `bson:"views"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode property stats: %w", err)
	}

	stats := &domain.PropertyStats{
		ByStatus:    make(map[string]int64),
		ByPromotion: make(map[string]int64),
	}
	for _, g := range groups {
		stats.Total += g.Count
		stats.TotalViews += g.Views
		stats.ByStatus[g.Key.Status] += g.Count
		stats.ByPromotion[g.Key.PromotionType] += g.Count
		if g.Key.PaymentStatus == domain.PaymentPending {
			stats.PendingPayments += g.Count
		}
	}
	return stats, nil
}

// findOne возвращает (nil, nil), если документа нет
func (s *MongoPropertyStore) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.PropertyRecord, error) {
	var doc propertyDocument
	if err := s.collection.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toRecord()
}
