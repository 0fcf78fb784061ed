package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venkyden/Roomivo/internal/domain"
)

// searchLimit caps unpaginated property search results.
const searchLimit = 50

// Compile-time interface assertions.
var (
	_ UserRepository        = (*MongoUserRepo)(nil)
	_ PropertyRepository    = (*MongoPropertyRepo)(nil)
	_ ApplicationRepository = (*MongoApplicationRepo)(nil)
	_ ContractRepository    = (*MongoContractRepo)(nil)
	_ MessageRepository     = (*MongoMessageRepo)(nil)
)

// Connect opens a MongoDB client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index. Safe to call on every
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func mapFindErr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// MongoUserRepo implements UserRepository.
type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection("users")}
}

func (r *MongoUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return domain.User{}, mapFindErr(err, "get user by email")
	}
	return user, nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	var user domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return domain.User{}, mapFindErr(err, "get user by id")
	}
	return user, nil
}

func (r *MongoUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TenantProfile) (domain.User, error) {
	var user domain.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profile": profile}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return domain.User{}, mapFindErr(err, "update profile")
	}
	return user, nil
}

// MongoPropertyRepo implements PropertyRepository.
type MongoPropertyRepo struct {
	col *mongo.Collection
}

func NewMongoPropertyRepo(db *mongo.Database) *MongoPropertyRepo {
	return &MongoPropertyRepo{col: db.Collection("properties")}
}

func (r *MongoPropertyRepo) Create(ctx context.Context, property domain.Property) (domain.Property, error) {
	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, property); err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return property, nil
}

func (r *MongoPropertyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	var property domain.Property
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&property); err != nil {
		return domain.Property{}, mapFindErr(err, "get property")
	}
	return property, nil
}

// BuildPropertyFilter translates the optional search predicates into a
// Mongo filter document. Absent bounds leave that side of the price
// range open; the city match is a case-insensitive substring.
func BuildPropertyFilter(f domain.PropertyFilter) bson.M {
	filter := bson.M{}
	if f.City != "" {
		filter["city"] = bson.M{"$regex": f.City, "$options": "i"}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if f.Rooms != nil {
		filter["rooms"] = *f.Rooms
	}
	return filter
}

func (r *MongoPropertyRepo) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	cursor, err := r.col.Find(ctx, BuildPropertyFilter(filter), options.Find().SetLimit(searchLimit))
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	var properties []domain.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

func (r *MongoPropertyRepo) ListByLandlord(ctx context.Context, landlordID primitive.ObjectID) ([]domain.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{"landlordId": landlordID})
	if err != nil {
		return nil, fmt.Errorf("list landlord properties: %w", err)
	}
	var properties []domain.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

func (r *MongoPropertyRepo) ListVerified(ctx context.Context) ([]domain.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{"verified": true})
	if err != nil {
		return nil, fmt.Errorf("list verified properties: %w", err)
	}
	var properties []domain.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

func (r *MongoPropertyRepo) Update(ctx context.Context, id primitive.ObjectID, update domain.PropertyUpdate) (domain.Property, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.Country != nil {
		set["country"] = *update.Country
	}
	if update.Lat != nil {
		set["lat"] = *update.Lat
	}
	if update.Lng != nil {
		set["lng"] = *update.Lng
	}
	if update.PropertyType != nil {
		set["propertyType"] = *update.PropertyType
	}
	if update.Rooms != nil {
		set["rooms"] = *update.Rooms
	}
	if update.Bathrooms != nil {
		set["bathrooms"] = *update.Bathrooms
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Amenities != nil {
		set["amenities"] = update.Amenities
	}
	if update.Images != nil {
		set["images"] = update.Images
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var property domain.Property
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if err != nil {
		return domain.Property{}, mapFindErr(err, "update property")
	}
	return property, nil
}

func (r *MongoPropertyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoApplicationRepo implements ApplicationRepository.
type MongoApplicationRepo struct {
	col *mongo.Collection
}

func NewMongoApplicationRepo(db *mongo.Database) *MongoApplicationRepo {
	return &MongoApplicationRepo{col: db.Collection("applications")}
}

func (r *MongoApplicationRepo) Create(ctx context.Context, application domain.Application) (domain.Application, error) {
	application.ID = primitive.NewObjectID()
	application.SubmittedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, application); err != nil {
		return domain.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return application, nil
}

func (r *MongoApplicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Application, error) {
	var application domain.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&application); err != nil {
		return domain.Application{}, mapFindErr(err, "get application")
	}
	return application, nil
}

func (r *MongoApplicationRepo) ListByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Application, error) {
	cursor, err := r.col.Find(ctx, bson.M{"tenantId": tenantID})
	if err != nil {
		return nil, fmt.Errorf("list tenant applications: %w", err)
	}
	var applications []domain.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return applications, nil
}

func (r *MongoApplicationRepo) ListByProperties(ctx context.Context, propertyIDs []primitive.ObjectID) ([]domain.Application, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"propertyId": bson.M{"$in": propertyIDs}})
	if err != nil {
		return nil, fmt.Errorf("list property applications: %w", err)
	}
	var applications []domain.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return applications, nil
}

func (r *MongoApplicationRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) (domain.Application, error) {
	var application domain.Application
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "reviewedAt": reviewedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&application)
	if err != nil {
		return domain.Application{}, mapFindErr(err, "set application status")
	}
	return application, nil
}

// MongoContractRepo implements ContractRepository.
type MongoContractRepo struct {
	col *mongo.Collection
}

func NewMongoContractRepo(db *mongo.Database) *MongoContractRepo {
	return &MongoContractRepo{col: db.Collection("contracts")}
}

func (r *MongoContractRepo) Create(ctx context.Context, contract domain.Contract) (domain.Contract, error) {
	contract.ID = primitive.NewObjectID()
	contract.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, contract); err != nil {
		return domain.Contract{}, fmt.Errorf("insert contract: %w", err)
	}
	return contract, nil
}

func (r *MongoContractRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Contract, error) {
	var contract domain.Contract
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&contract); err != nil {
		return domain.Contract{}, mapFindErr(err, "get contract")
	}
	return contract, nil
}

func (r *MongoContractRepo) GetByApplication(ctx context.Context, applicationID primitive.ObjectID) (domain.Contract, error) {
	var contract domain.Contract
	if err := r.col.FindOne(ctx, bson.M{"applicationId": applicationID}).Decode(&contract); err != nil {
		return domain.Contract{}, mapFindErr(err, "get contract by application")
	}
	return contract, nil
}

func (r *MongoContractRepo) SetSignature(ctx context.Context, id primitive.ObjectID, role string, signedAt time.Time) (domain.Contract, error) {
	set := bson.M{}
	switch role {
	case domain.RoleTenant:
		set["signedByTenant"] = true
		set["tenantSignedAt"] = signedAt
	default:
		set["signedByLandlord"] = true
		set["landlordSignedAt"] = signedAt
	}

	var contract domain.Contract
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&contract)
	if err != nil {
		return domain.Contract{}, mapFindErr(err, "sign contract")
	}
	return contract, nil
}

// MongoMessageRepo implements MessageRepository.
type MongoMessageRepo struct {
	col *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) *MongoMessageRepo {
	return &MongoMessageRepo{col: db.Collection("messages")}
}

func (r *MongoMessageRepo) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, message); err != nil {
		return domain.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

func (r *MongoMessageRepo) ListConversation(ctx context.Context, propertyID, userA, userB primitive.ObjectID) ([]domain.Message, error) {
	filter := bson.M{
		"propertyId": propertyID,
		"$or": bson.A{
			bson.M{"tenantId": userA, "landlordId": userB},
			bson.M{"tenantId": userB, "landlordId": userA},
		},
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	var messages []domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

func (r *MongoMessageRepo) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"tenantId": userID},
			bson.M{"landlordId": userID},
		},
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list user messages: %w", err)
	}
	var messages []domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}
