package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hufbook/config"
	"hufbook/database"
	"hufbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var slotTemplates = []struct {
	Time  string
	Slots int
}{
	{"07:00 am", 4},
	{"09:00 am", 2},
	{"11:00 am", 5},
	{"1:00 pm", 3},
}

// generateTimeSlots lays out the standard slot grid over the next days so
// seeded data is always bookable.
func generateTimeSlots() []models.TimeSlot {
	var slots []models.TimeSlot
	today := time.Now()
	for i := 1; i <= 6; i++ {
		date := today.AddDate(0, 0, i).Format("2006-01-02")
		for _, tpl := range slotTemplates {
			slots = append(slots, models.TimeSlot{
				Date:       date,
				Time:       tpl.Time,
				TotalSlots: tpl.Slots,
			})
		}
	}
	return slots
}

func main() {
	config.LoadConfig()
	database.InitDB()

	coll := database.MongoClient.Database(database.DatabaseName).Collection("experiences")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear experiences collection: %v", err)
	}

	listings := []struct {
		Title    string
		Location string
		Price    float64
		Image    string
		MaxQty   int
	}{
		{"Kayaking", "Udupi", 999, "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=600&h=400&fit=crop", 6},
		{"Nandi Hills Sunrise", "Bangalore", 899, "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=600&h=400&fit=crop", 8},
		{"Coffee Trail", "Coorg", 1299, "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=600&h=400&fit=crop", 10},
		{"Boat Cruise", "Sunderban", 999, "https://images.unsplash.com/photo-1567899378494-47b22a2ae96a?w=600&h=400&fit=crop", 12},
		{"Bunjee Jumping", "Manali", 999, "https://images.unsplash.com/photo-1516026672322-bc52d61a55d5?w=600&h=400&fit=crop", 4},
	}

	var docs []interface{}
	for _, l := range listings {
		docs = append(docs, models.Experience{
			ID:          uuid.New().String(),
			Title:       l.Title,
			Location:    l.Location,
			Price:       l.Price,
			Image:       l.Image,
			Description: "Curated small-group experience. Certified guide. Safety first with gear included.",
			TimeSlots:   generateTimeSlots(),
			MaxQuantity: l.MaxQty,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed experiences: %v", err)
	}

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count experiences: %v", err)
	}
	fmt.Printf("Database seeded successfully with %d experiences\n", count)
}
