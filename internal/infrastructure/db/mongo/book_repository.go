package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librisys/library-system/internal/core/domain"
)

const collectionBooks = "books"

// BookRepository persists the catalog in the books collection, keyed by isbn.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

// Save upserts the book document under its isbn.
func (r *BookRepository) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": book.ISBN},
		book,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) FindByIsbn(ctx context.Context, isbn string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var book domain.Book
	err := r.col.FindOne(ctx, bson.M{"_id": isbn}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	books := make([]*domain.Book, 0)
	for cur.Next(ctx) {
		var book domain.Book
		if err := cur.Decode(&book); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, cur.Err()
}

func (r *BookRepository) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": isbn})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookRepository) DeleteByIsbn(ctx context.Context, isbn string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": isbn})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
