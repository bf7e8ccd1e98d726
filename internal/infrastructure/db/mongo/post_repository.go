package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const collectionPosts = "posts"

// PostRepository implements ports.PostRepository using MongoDB.
type PostRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		col:   db.Collection(collectionPosts),
		users: db.Collection(collectionUsers),
	}
}

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content,omitempty"`
	Published bool               `bson:"published"`
	AuthorID  primitive.ObjectID `bson:"author_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Published: d.Published,
		AuthorID:  d.AuthorID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, int64, error) {
	query, ok := postListFilter(filter)
	if !ok {
		return []*domain.Post{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	cur, err := r.col.Find(ctx, query, pageOptions(filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find posts: %w", err)
	}
	posts, err := decodePosts(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, _, err := r.List(ctx, ports.PostFilter{AuthorID: authorID})
	return posts, err
}

func (r *PostRepository) CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(authorIDs))
	oids := objectIDs(authorIDs)
	if len(oids) == 0 {
		return counts, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"author_id": bson.M{"$in": oids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$author_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate post counts: %w", err)
	}

	var rows []struct {
		AuthorID primitive.ObjectID `bson:"_id"`
		Count    int64              `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode post counts: %w", err)
	}
	for _, row := range rows {
		counts[row.AuthorID.Hex()] = row.Count
	}
	return counts, nil
}

func (r *PostRepository) Count(ctx context.Context, published *bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if published != nil {
		filter["published"] = *published
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// Create checks the author exists before inserting; MongoDB has no foreign keys.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	authorID, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, domain.ErrAuthorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.users.CountDocuments(ctx, bson.M{"_id": authorID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrAuthorNotFound
	}

	doc := postDoc{
		ID:        primitive.NewObjectID(),
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  authorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := postSet(patch)
	set["updated_at"] = updatedAt
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"author_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete posts by author: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the author lookup and listing indexes.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodePosts(ctx context.Context, cur *mongo.Cursor) ([]*domain.Post, error) {
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]*domain.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].toDomain()
	}
	return posts, nil
}
