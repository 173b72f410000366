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

type UserRepository struct {
	users   *mongo.Collection
	avatars *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:   db.Collection(collectionUsers),
		avatars: db.Collection(collectionAvatars),
	}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	Role         string    `bson:"role"`
	AvatarID     *string   `bson:"avatar_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		AvatarID:     u.AvatarID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		AvatarID:     d.AvatarID,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.users.InsertOne(ctx, toUserDoc(u))
	if index, ok := duplicateIndex(err); ok {
		switch index {
		case indexUserEmail:
			return domain.Conflict(domain.MsgEmailTaken)
		case indexUserUsername:
			return domain.Conflict(domain.MsgUsernameTaken)
		}
		return domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, notFoundOr(err, "find user")
	}
	return d.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) SetAvatar(ctx context.Context, userID, avatarID string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"avatar_id": avatarID, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d userDoc
	if err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&d); err != nil {
		return nil, notFoundOr(err, "set avatar")
	}
	return d.toDomain(), nil
}

// AvatarURLs looks up the users first and then the avatars they reference.
func (r *UserRepository) AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var users []userDoc
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	avatarIDs := make([]string, 0, len(users))
	for _, u := range users {
		if u.AvatarID != nil {
			avatarIDs = append(avatarIDs, *u.AvatarID)
		}
	}
	urls := make(map[string]string, len(avatarIDs))
	if len(avatarIDs) > 0 {
		cur, err := r.avatars.Find(ctx, bson.M{"_id": bson.M{"$in": avatarIDs}})
		if err != nil {
			return nil, fmt.Errorf("find avatars: %w", err)
		}
		var avatars []avatarDoc
		if err := cur.All(ctx, &avatars); err != nil {
			return nil, fmt.Errorf("decode avatars: %w", err)
		}
		for _, a := range avatars {
			urls[a.ID] = a.ImageURL
		}
	}

	return joinAvatars(users, urls), nil
}

func joinAvatars(users []userDoc, urls map[string]string) []domain.UserAvatar {
	out := make([]domain.UserAvatar, 0, len(users))
	for _, u := range users {
		ua := domain.UserAvatar{UserID: u.ID}
		if u.AvatarID != nil {
			if url, ok := urls[*u.AvatarID]; ok {
				ua.ImageURL = &url
			}
		}
		out = append(out, ua)
	}
	return out
}
