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

// Placement batches are written with an ordered InsertMany. When one fails
// the rows written so far, and the parent document on create, are removed
// again so callers observe an all-or-nothing write without needing a
// replica set.

type mapElementDoc struct {
	ID        string `bson:"_id"`
	MapID     string `bson:"map_id"`
	ElementID string `bson:"element_id"`
	X         int    `bson:"x"`
	Y         int    `bson:"y"`
}

type mapDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Thumbnail string    `bson:"thumbnail"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d mapDoc) toDomain() domain.Map {
	return domain.Map{ID: d.ID, Name: d.Name, Thumbnail: d.Thumbnail, Width: d.Width, Height: d.Height, Created: d.CreatedAt.UTC()}
}

type MapRepository struct {
	maps     *mongo.Collection
	cells    *mongo.Collection
	elements *mongo.Collection
}

func NewMapRepository(db *mongo.Database) *MapRepository {
	return &MapRepository{
		maps:     db.Collection(collectionMaps),
		cells:    db.Collection(collectionMapElements),
		elements: db.Collection(collectionElements),
	}
}

func mapElementErr(err error) error {
	if index, ok := duplicateIndex(err); ok && index == indexMapElementCell {
		return domain.Duplicate(domain.MsgMapElementExists)
	}
	return fmt.Errorf("insert map elements: %w", err)
}

// insertCells writes the batch and removes it again on failure.
func insertCells(ctx context.Context, col *mongo.Collection, docs []any, ids []string) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		_, _ = col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		return err
	}
	return nil
}

func mapElementDocs(elements []domain.MapElement) ([]any, []string) {
	docs := make([]any, 0, len(elements))
	ids := make([]string, 0, len(elements))
	for _, me := range elements {
		docs = append(docs, mapElementDoc{ID: me.ID, MapID: me.MapID, ElementID: me.ElementID, X: me.X, Y: me.Y})
		ids = append(ids, me.ID)
	}
	return docs, ids
}

func (r *MapRepository) Create(ctx context.Context, m *domain.Map, elements []domain.MapElement) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := mapDoc{ID: m.ID, Name: m.Name, Thumbnail: m.Thumbnail, Width: m.Width, Height: m.Height, CreatedAt: m.Created}
	if _, err := r.maps.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert map: %w", err)
	}

	docs, ids := mapElementDocs(elements)
	if err := insertCells(ctx, r.cells, docs, ids); err != nil {
		_, _ = r.maps.DeleteOne(ctx, bson.M{"_id": m.ID})
		return mapElementErr(err)
	}
	return nil
}

func (r *MapRepository) Update(ctx context.Context, m *domain.Map, added []domain.MapElement) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var before mapDoc
	if err := r.maps.FindOne(ctx, bson.M{"_id": m.ID}).Decode(&before); err != nil {
		return notFoundOr(err, "find map")
	}

	docs, ids := mapElementDocs(added)
	if err := insertCells(ctx, r.cells, docs, ids); err != nil {
		return mapElementErr(err)
	}

	_, err := r.maps.UpdateByID(ctx, m.ID, bson.M{"$set": bson.M{
		"name":      m.Name,
		"thumbnail": m.Thumbnail,
		"width":     m.Width,
		"height":    m.Height,
	}})
	if err != nil {
		_, _ = r.cells.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		return fmt.Errorf("update map: %w", err)
	}
	return nil
}

func (r *MapRepository) FindByID(ctx context.Context, id string) (*domain.Map, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d mapDoc
	if err := r.maps.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find map")
	}

	opts := options.Find().SetSort(bson.D{{Key: "y", Value: 1}, {Key: "x", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.cells.Find(ctx, bson.M{"map_id": id}, opts)
	if err != nil {
		return nil, fmt.Errorf("find map elements: %w", err)
	}
	var cells []mapElementDoc
	if err := cur.All(ctx, &cells); err != nil {
		return nil, fmt.Errorf("decode map elements: %w", err)
	}

	m := d.toDomain()
	for _, c := range cells {
		m.Elements = append(m.Elements, domain.MapElement{ID: c.ID, MapID: c.MapID, ElementID: c.ElementID, X: c.X, Y: c.Y})
	}
	return &m, nil
}

func (r *MapRepository) List(ctx context.Context) ([]domain.Map, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.maps.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find maps: %w", err)
	}
	var docs []mapDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode maps: %w", err)
	}
	out := make([]domain.Map, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MapRepository) AddElement(ctx context.Context, me *domain.MapElement) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := requireIDs(ctx, map[*mongo.Collection]string{r.maps: me.MapID, r.elements: me.ElementID}); err != nil {
		return err
	}
	_, err := r.cells.InsertOne(ctx, mapElementDoc{ID: me.ID, MapID: me.MapID, ElementID: me.ElementID, X: me.X, Y: me.Y})
	if err != nil {
		return mapElementErr(err)
	}
	return nil
}

func (r *MapRepository) HasElement(ctx context.Context, me domain.MapElement) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.cells.CountDocuments(ctx, cellFilter("map_id", me.MapID, me.ElementID, me.X, me.Y), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count map elements: %w", err)
	}
	return n > 0, nil
}

func (r *MapRepository) RemoveElement(ctx context.Context, me domain.MapElement) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.cells.DeleteMany(ctx, cellFilter("map_id", me.MapID, me.ElementID, me.X, me.Y))
	if err != nil {
		return 0, fmt.Errorf("delete map element: %w", err)
	}
	return res.DeletedCount, nil
}

func cellFilter(parentKey, parentID, elementID string, x, y int) bson.M {
	return bson.M{parentKey: parentID, "element_id": elementID, "x": x, "y": y}
}

// requireIDs returns domain.ErrNotFound unless each collection holds a
// document with the paired id.
func requireIDs(ctx context.Context, refs map[*mongo.Collection]string) error {
	for col, id := range refs {
		n, err := col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("count %s: %w", col.Name(), err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}
