package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librisys/library-system/internal/core/domain"
)

const collectionLoans = "loans"

// LoanRepository persists loans in the loans collection, keyed by loan id.
type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{col: db.Collection(collectionLoans)}
}

// Save upserts the loan document under its id.
func (r *LoanRepository) Save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": loan.ID},
		loan,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var loan domain.Loan
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&loan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) FindAll(ctx context.Context) ([]*domain.Loan, error) {
	return r.find(ctx, bson.M{})
}

func (r *LoanRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Loan, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *LoanRepository) FindByBookIsbn(ctx context.Context, isbn string) ([]*domain.Loan, error) {
	return r.find(ctx, bson.M{"book_isbn": isbn})
}

func (r *LoanRepository) FindActiveByUserID(ctx context.Context, userID string) ([]*domain.Loan, error) {
	return r.find(ctx, bson.M{"user_id": userID, "status": string(domain.LoanActive)})
}

func (r *LoanRepository) FindAllActive(ctx context.Context) ([]*domain.Loan, error) {
	return r.find(ctx, bson.M{"status": string(domain.LoanActive)})
}

func (r *LoanRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LoanRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *LoanRepository) find(ctx context.Context, filter bson.M) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	loans := make([]*domain.Loan, 0)
	for cur.Next(ctx) {
		var loan domain.Loan
		if err := cur.Decode(&loan); err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	return loans, cur.Err()
}

// EnsureIndexes creates the secondary indexes the loan queries rely on.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "book_isbn", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
