package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database, collection string) *ProductRepository {
	return &ProductRepository{collection: db.Collection(collection)}
}

func (r *ProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return apperror.Wrap("failed to create product indexes", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	doc, err := toProductDocument(p)
	if err != nil {
		return apperror.NewValidation("invalid product id")
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return apperror.Wrap("failed to create product", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("product not found")
	}
	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("product not found")
		}
		return nil, apperror.Wrap("failed to load product", err)
	}
	p := doc.toEntity()
	return &p, nil
}

// FindByIDs skips malformed ids; the caller compares counts to detect missing products.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []entity.Product{}, nil
	}
	cur, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperror.Wrap("failed to resolve products", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int64, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Wrap("failed to count products", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(helpers.Offset(f.Page, f.Limit))).
		SetLimit(int64(f.Limit))
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperror.Wrap("failed to list products", err)
	}
	products, err := decodeProducts(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now().UTC()
	doc, err := toProductDocument(p)
	if err != nil {
		return apperror.NewNotFound("product not found")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": bson.M{
		"name":            doc.Name,
		"description":     doc.Description,
		"category":        doc.Category,
		"price":           doc.Price,
		"discountedPrice": doc.DiscountedPrice,
		"stock":           doc.Stock,
		"images":          doc.Images,
		"updatedAt":       doc.UpdatedAt,
	}})
	if err != nil {
		return apperror.Wrap("failed to update product", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewNotFound("product not found")
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.Wrap("failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("product not found")
	}
	return nil
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]entity.Product, error) {
	defer cur.Close(ctx)
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperror.Wrap("failed to decode products", err)
	}
	products := make([]entity.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toEntity())
	}
	return products, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
