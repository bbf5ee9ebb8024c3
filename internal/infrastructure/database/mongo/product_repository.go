// internal/infrastructure/database/mongo/product_repository.go
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/your-org/storefront-api/internal/domain/product"
)

// ProductRepository implements product.Repository against MongoDB
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository bound to the
// Products collection
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{
		collection: client.Collection(ProductsCollection),
	}
}

// translatePipeline maps the store-agnostic stage sequence onto the
// aggregation framework. Stage construction stays in the domain; only
// this translation knows about BSON.
func translatePipeline(stages []product.Stage) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	for _, s := range stages {
		switch st := s.(type) {
		case product.MatchText:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: "$text", Value: bson.D{{Key: "$search", Value: st.Term}}},
			}}})
		case product.MatchIn:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: st.Field, Value: bson.D{{Key: "$in", Value: st.Values}}},
			}}})
		case product.MatchNotEqual:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: st.Field, Value: bson.D{{Key: "$ne", Value: st.Value}}},
			}}})
		case product.MatchGTE:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: st.Field, Value: bson.D{{Key: "$gte", Value: st.Value}}},
			}}})
		case product.MatchLTE:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: st.Field, Value: bson.D{{Key: "$lte", Value: st.Value}}},
			}}})
		case product.AddScore:
			pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.D{
				{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}},
			}}})
		case product.Sort:
			direction := 1
			if st.Descending {
				direction = -1
			}
			pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
				{Key: st.Field, Value: direction},
			}}})
		case product.Skip:
			pipeline = append(pipeline, bson.D{{Key: "$skip", Value: st.N}})
		case product.Limit:
			pipeline = append(pipeline, bson.D{{Key: "$limit", Value: st.N}})
		case product.GroupMax:
			pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "maxValue", Value: bson.D{{Key: "$max", Value: "$" + st.Field}}},
			}}})
		case product.Count:
			pipeline = append(pipeline, bson.D{{Key: "$count", Value: "id"}})
		}
	}

	return pipeline
}

// Aggregate runs a pipeline and decodes the resulting products
func (r *ProductRepository) Aggregate(ctx context.Context, stages []product.Stage) ([]product.Product, error) {
	cursor, err := r.collection.Aggregate(ctx, translatePipeline(stages))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []product.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count runs a pipeline with a terminal count stage
func (r *ProductRepository) Count(ctx context.Context, stages []product.Stage) (int64, error) {
	counted := append(append([]product.Stage{}, stages...), product.Count{})

	cursor, err := r.collection.Aggregate(ctx, translatePipeline(counted))
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID int64 `bson:"id"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].ID, nil
}

// MaxPrice runs a group/max reduction
func (r *ProductRepository) MaxPrice(ctx context.Context, stages []product.Stage) (*float64, error) {
	cursor, err := r.collection.Aggregate(ctx, translatePipeline(stages))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		MaxValue float64 `bson:"maxValue"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0].MaxValue, nil
}

// FindByID retrieves a product by id
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	var p product.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBySlug retrieves a product by slug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*product.Product, error) {
	var p product.Product
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll retrieves every product
func (r *ProductRepository) FindAll(ctx context.Context) ([]product.Product, error) {
	return r.find(ctx, bson.M{})
}

// FindOutOfStock retrieves products with zero stock
func (r *ProductRepository) FindOutOfStock(ctx context.Context) ([]product.Product, error) {
	return r.find(ctx, bson.M{"quantity": bson.M{"$eq": 0}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]product.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []product.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Insert stores a new product
func (r *ProductRepository) Insert(ctx context.Context, p *product.Product) error {
	_, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return product.ErrDuplicateSlug
	}
	return err
}

// Update replaces a product's attributes, returning the new document
func (r *ProductRepository) Update(ctx context.Context, id string, p *product.Product) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"productName": p.ProductName,
		"brand":       p.Brand,
		"description": p.Description,
		"category":    p.Category,
		"subCategory": p.SubCategory,
		"productType": p.ProductType,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"images":      p.Images,
		"slug":        p.Slug,
		"updatedAt":   p.UpdatedAt,
	}}

	var updated product.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, product.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, product.ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product by id
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

// IncrementStock atomically adds delta to the stock quantity
func (r *ProductRepository) IncrementStock(ctx context.Context, id string, delta int) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	return r.adjustStock(ctx, bson.M{"_id": oid}, delta)
}

// DecrementStock atomically subtracts qty, matching only documents with
// enough stock to cover it. The read and the write are a single store
// operation, so concurrent decrements cannot drive the stock negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	filter := bson.M{
		"_id":      oid,
		"quantity": bson.M{"$gte": qty},
	}
	return r.adjustStock(ctx, filter, -qty)
}

func (r *ProductRepository) adjustStock(ctx context.Context, filter bson.M, delta int) (*product.Product, error) {
	update := bson.M{"$inc": bson.M{"quantity": delta}}

	var updated product.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return &updated, nil
}
