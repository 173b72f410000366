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

type spaceDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	MapID     string    `bson:"map_id"`
	Thumbnail *string   `bson:"thumbnail,omitempty"`
	CreatorID string    `bson:"creator_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d spaceDoc) toDomain() domain.Space {
	return domain.Space{
		ID:        d.ID,
		Name:      d.Name,
		Width:     d.Width,
		Height:    d.Height,
		MapID:     d.MapID,
		Thumbnail: d.Thumbnail,
		CreatorID: d.CreatorID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type spaceElementDoc struct {
	ID        string `bson:"_id"`
	SpaceID   string `bson:"space_id"`
	ElementID string `bson:"element_id"`
	X         int    `bson:"x"`
	Y         int    `bson:"y"`
}

type SpaceRepository struct {
	spaces   *mongo.Collection
	cells    *mongo.Collection
	elements *mongo.Collection
}

func NewSpaceRepository(db *mongo.Database) *SpaceRepository {
	return &SpaceRepository{
		spaces:   db.Collection(collectionSpaces),
		cells:    db.Collection(collectionSpaceElements),
		elements: db.Collection(collectionElements),
	}
}

func spaceElementErr(err error) error {
	if index, ok := duplicateIndex(err); ok && index == indexSpaceElementCell {
		return domain.Duplicate(domain.MsgSpaceElementExists)
	}
	return fmt.Errorf("insert space elements: %w", err)
}

func (r *SpaceRepository) Create(ctx context.Context, s *domain.Space, elements []domain.SpaceElement) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := spaceDoc{
		ID:        s.ID,
		Name:      s.Name,
		Width:     s.Width,
		Height:    s.Height,
		MapID:     s.MapID,
		Thumbnail: s.Thumbnail,
		CreatorID: s.CreatorID,
		CreatedAt: s.CreatedAt,
	}
	_, err := r.spaces.InsertOne(ctx, doc)
	if index, ok := duplicateIndex(err); ok {
		switch index {
		case indexSpaceName:
			return domain.Conflict(domain.SpaceNameTaken(s.Name))
		case indexSpaceMap:
			return domain.Conflict(domain.SpaceMapTaken(s.MapID))
		}
		return domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert space: %w", err)
	}

	docs := make([]any, 0, len(elements))
	ids := make([]string, 0, len(elements))
	for _, se := range elements {
		docs = append(docs, spaceElementDoc{ID: se.ID, SpaceID: se.SpaceID, ElementID: se.ElementID, X: se.X, Y: se.Y})
		ids = append(ids, se.ID)
	}
	if err := insertCells(ctx, r.cells, docs, ids); err != nil {
		_, _ = r.spaces.DeleteOne(ctx, bson.M{"_id": s.ID})
		return spaceElementErr(err)
	}
	return nil
}

func (r *SpaceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Space, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d spaceDoc
	if err := r.spaces.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find space")
	}
	s := d.toDomain()
	return &s, nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id string) (*domain.Space, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SpaceRepository) FindByName(ctx context.Context, name string) (*domain.Space, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *SpaceRepository) FindByMapID(ctx context.Context, mapID string) (*domain.Space, error) {
	return r.findOne(ctx, bson.M{"map_id": mapID})
}

func (r *SpaceRepository) List(ctx context.Context) ([]domain.Space, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.spaces.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find spaces: %w", err)
	}
	var docs []spaceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode spaces: %w", err)
	}
	out := make([]domain.Space, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.spaces.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.cells.DeleteMany(ctx, bson.M{"space_id": id}); err != nil {
		return fmt.Errorf("delete space elements: %w", err)
	}
	return nil
}

func (r *SpaceRepository) AddElement(ctx context.Context, se *domain.SpaceElement) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := requireIDs(ctx, map[*mongo.Collection]string{r.spaces: se.SpaceID, r.elements: se.ElementID}); err != nil {
		return err
	}
	_, err := r.cells.InsertOne(ctx, spaceElementDoc{ID: se.ID, SpaceID: se.SpaceID, ElementID: se.ElementID, X: se.X, Y: se.Y})
	if err != nil {
		return spaceElementErr(err)
	}
	return nil
}

func (r *SpaceRepository) HasElement(ctx context.Context, se domain.SpaceElement) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.cells.CountDocuments(ctx, cellFilter("space_id", se.SpaceID, se.ElementID, se.X, se.Y), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count space elements: %w", err)
	}
	return n > 0, nil
}

func (r *SpaceRepository) RemoveElement(ctx context.Context, se domain.SpaceElement) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.cells.DeleteMany(ctx, cellFilter("space_id", se.SpaceID, se.ElementID, se.X, se.Y))
	if err != nil {
		return 0, fmt.Errorf("delete space element: %w", err)
	}
	return res.DeletedCount, nil
}
