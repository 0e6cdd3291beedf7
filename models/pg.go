package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaRef is one stored file: the public URL plus the storage key
// needed to delete the object later.
type MediaRef struct {
	URL string `bson:"url" json:"url"`
	Key string `bson:"key" json:"key"`
}

// Review is a reserved field on PG documents. No endpoint reads or
// writes reviews; the field only keeps old documents decodable.
type Review struct {
	Student string  `bson:"student" json:"student"`
	Comment string  `bson:"comment" json:"comment"`
	Rating  float64 `bson:"rating" json:"rating"`
}

type PG struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PGName    string             `bson:"pgName" json:"pgName"`
	Location  string             `bson:"location" json:"location"`
	Price     float64            `bson:"price" json:"price"`
	Sharing   string             `bson:"sharing" json:"sharing"`
	FoodType  string             `bson:"foodType" json:"foodType"`
	Amenities []string           `bson:"amenities" json:"amenities"`
	Photos    []MediaRef         `bson:"photos" json:"photos"`
	Videos    []MediaRef         `bson:"videos" json:"videos"`
	Reviews   []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FoodTypes are the only accepted foodType values.
var FoodTypes = []string{"Veg", "Non-Veg", "Veg/Non Veg"}

func ValidFoodType(s string) bool {
	for _, ft := range FoodTypes {
		if s == ft {
			return true
		}
	}
	return false
}
