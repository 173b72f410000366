package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

var byCreation = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

type avatarDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"image_url"`
	CreatedAt time.Time `bson:"created_at"`
}

type AvatarRepository struct {
	col *mongo.Collection
}

func NewAvatarRepository(db *mongo.Database) *AvatarRepository {
	return &AvatarRepository{col: db.Collection(collectionAvatars)}
}

func (r *AvatarRepository) Create(ctx context.Context, a *domain.Avatar) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := avatarDoc{ID: a.ID, Name: a.Name, ImageURL: a.ImageURL, CreatedAt: time.Now().UTC()}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert avatar: %w", err)
	}
	return nil
}

func (r *AvatarRepository) Update(ctx context.Context, a *domain.Avatar) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, a.ID, bson.M{"$set": bson.M{"name": a.Name, "image_url": a.ImageURL}})
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AvatarRepository) FindByID(ctx context.Context, id string) (*domain.Avatar, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d avatarDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find avatar")
	}
	return &domain.Avatar{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL}, nil
}

func (r *AvatarRepository) List(ctx context.Context) ([]domain.Avatar, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find avatars: %w", err)
	}
	var docs []avatarDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode avatars: %w", err)
	}
	out := make([]domain.Avatar, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Avatar{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL})
	}
	return out, nil
}

type elementDoc struct {
	ID        string    `bson:"_id"`
	ImageURL  string    `bson:"image_url"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	Static    bool      `bson:"static"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d elementDoc) toDomain() domain.Element {
	return domain.Element{ID: d.ID, ImageURL: d.ImageURL, Width: d.Width, Height: d.Height, Static: d.Static, Created: d.CreatedAt.UTC()}
}

type ElementRepository struct {
	col *mongo.Collection
}

func NewElementRepository(db *mongo.Database) *ElementRepository {
	return &ElementRepository{col: db.Collection(collectionElements)}
}

func (r *ElementRepository) Create(ctx context.Context, e *domain.Element) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := elementDoc{ID: e.ID, ImageURL: e.ImageURL, Width: e.Width, Height: e.Height, Static: e.Static, CreatedAt: e.Created}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert element: %w", err)
	}
	return nil
}

func (r *ElementRepository) Update(ctx context.Context, e *domain.Element) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, e.ID, bson.M{"$set": bson.M{
		"image_url": e.ImageURL,
		"width":     e.Width,
		"height":    e.Height,
		"static":    e.Static,
	}})
	if err != nil {
		return fmt.Errorf("update element: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ElementRepository) FindByID(ctx context.Context, id string) (*domain.Element, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d elementDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find element")
	}
	e := d.toDomain()
	return &e, nil
}

func (r *ElementRepository) List(ctx context.Context) ([]domain.Element, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find elements: %w", err)
	}
	var docs []elementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	out := make([]domain.Element, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
