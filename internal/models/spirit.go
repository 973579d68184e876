package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Spirit categories.
const (
	CategoryWhiskey = "Whiskey"
	CategoryBourbon = "Bourbon"
	CategoryScotch  = "Scotch"
	CategoryVodka   = "Vodka"
	CategoryGin     = "Gin"
	CategoryRum     = "Rum"
	CategoryTequila = "Tequila"
	CategoryBrandy  = "Brandy"
	CategoryLiqueur = "Liqueur"
	CategoryOther   = "Other"
)

var spiritCategories = map[string]bool{
	CategoryWhiskey: true,
	CategoryBourbon: true,
	CategoryScotch:  true,
	CategoryVodka:   true,
	CategoryGin:     true,
	CategoryRum:     true,
	CategoryTequila: true,
	CategoryBrandy:  true,
	CategoryLiqueur: true,
	CategoryOther:   true,
}

// ValidSpiritCategory reports whether category is one of the known categories.
func ValidSpiritCategory(category string) bool {
	return spiritCategories[category]
}

// Spirit is a catalog item. Catalog entries are read-mostly: the collection
// and post flows only ever reference them by id.
type Spirit struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name            string                 `bson:"name" json:"name"`
	Brand           string                 `bson:"brand" json:"brand"`
	CountryOfOrigin string                 `bson:"country_of_origin" json:"countryOfOrigin"`
	Category        string                 `bson:"category" json:"category"`
	PhotoURL        string                 `bson:"photo_url" json:"photoUrl"`
	ABV             float64                `bson:"abv" json:"abv"`
	Description     string                 `bson:"description" json:"description"`
	Metadata        map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt       time.Time              `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updated_at" json:"updatedAt"`
}
