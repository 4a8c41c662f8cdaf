package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodbridge/donation-platform/internal/core/domain"
)

const collectionListings = "listings"

// ListingRepository implements ports.ListingRepository on MongoDB. The
// booking transitions are single FindOneAndUpdate calls whose filter encodes
// the expected current state; MongoDB applies each document update atomically,
// which is what makes concurrent booking attempts resolve to one winner.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

// listingDoc is the persisted shape; _id is a Mongo ObjectID while the domain
// uses its hex form.
type listingDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Ingredients  string             `bson:"ingredients"`
	DietaryType  string             `bson:"dietary_type"`
	Quantity     int                `bson:"quantity"`
	Status       string             `bson:"status"`
	RestaurantID string             `bson:"restaurant_id"`
	NgoID        string             `bson:"ngo_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDomain(d *listingDoc) *domain.Listing {
	return &domain.Listing{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Ingredients:  d.Ingredients,
		DietaryType:  domain.DietaryType(d.DietaryType),
		Quantity:     d.Quantity,
		Status:       domain.ListingStatus(d.Status),
		RestaurantID: d.RestaurantID,
		NgoID:        d.NgoID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Insert persists a new listing and writes the generated id back.
func (r *ListingRepository) Insert(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := listingDoc{
		Name:         l.Name,
		Ingredients:  l.Ingredients,
		DietaryType:  string(l.DietaryType),
		Quantity:     l.Quantity,
		Status:       string(l.Status),
		RestaurantID: l.RestaurantID,
		NgoID:        l.NgoID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var d listingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomain(&d), nil
}

func (r *ListingRepository) FindAvailable(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"status": string(domain.StatusAvailable)})
}

func (r *ListingRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"restaurant_id": restaurantID})
}

func (r *ListingRepository) FindBookedByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{
		"restaurant_id": restaurantID,
		"status":        string(domain.StatusBooked),
	})
}

func (r *ListingRepository) FindBookedByNgo(ctx context.Context, ngoID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{
		"ngo_id": ngoID,
		"status": string(domain.StatusBooked),
	})
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var listings []*domain.Listing
	for cur.Next(ctx) {
		var d listingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		listings = append(listings, toDomain(&d))
	}
	return listings, cur.Err()
}

// Book atomically claims the listing: the filter requires status=available,
// so of any number of concurrent calls on the same document exactly one
// matches and mutates it. A non-match is then classified by a plain lookup:
// document absent means not found, document present means someone else won.
func (r *ListingRepository) Book(ctx context.Context, listingID, ngoID string, now time.Time) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	filter := bson.M{
		"_id":    oid,
		"status": string(domain.StatusAvailable),
	}
	update := bson.M{
		"$set": bson.M{
			"status":     string(domain.StatusBooked),
			"ngo_id":     ngoID,
			"updated_at": now.UTC(),
		},
	}

	var d listingDoc
	err = r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err == nil {
		return toDomain(&d), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return nil, domain.ErrAlreadyBooked
}

// Release reverts a booking to available. The filter pins the exact booking
// being cancelled — holder and updated_at — so a release can never clobber a
// booking that was re-made concurrently after an earlier cancel.
func (r *ListingRepository) Release(ctx context.Context, listingID, ngoID string, bookedAt, now time.Time) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	filter := bson.M{
		"_id":        oid,
		"status":     string(domain.StatusBooked),
		"ngo_id":     ngoID,
		"updated_at": bookedAt,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     string(domain.StatusAvailable),
			"updated_at": now.UTC(),
		},
		"$unset": bson.M{"ngo_id": ""},
	}

	var d listingDoc
	err = r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err == nil {
		return toDomain(&d), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return nil, domain.ErrNotBooked
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// DeleteStaleAvailable removes every available listing created before cutoff.
// Booked listings never match the filter, whatever their age.
func (r *ListingRepository) DeleteStaleAvailable(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{
		"status":     string(domain.StatusAvailable),
		"created_at": bson.M{"$lt": cutoff.UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes the query paths rely on.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "ngo_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
