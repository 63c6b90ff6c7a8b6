package database

import "go.mongodb.org/mongo-driver/mongo"

type Database struct {
	client *mongo.Client
	db     *mongo.Database

	users       *mongo.Collection
	groups      *mongo.Collection
	memberships *mongo.Collection
	messages    *mongo.Collection
}
