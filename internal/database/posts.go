package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sovannra/blogpress-core/internal/posts"
)

func (s *Store) ListPosts(ctx context.Context) ([]posts.Post, error) {
	cur, err := s.posts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []posts.Post{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) InsertPost(ctx context.Context, p *posts.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.posts.InsertOne(ctx, p)
	return err
}

// UpdatePost applies upd to the post with the given id and returns the
// post as stored after the update. A malformed or unknown id reports
// mongo.ErrNoDocuments.
func (s *Store) UpdatePost(ctx context.Context, id string, upd posts.PostUpdate) (*posts.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	set := bson.M{
		"title":       upd.Title,
		"description": upd.Description,
		"updatedAt":   time.Now().UTC(),
	}
	if upd.Image != "" {
		set["image"] = upd.Image
	}

	res := s.posts.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var p posts.Post
	if err := res.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes the post if it exists. Deleting an id that matches
// nothing is not an error.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	_, err = s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
