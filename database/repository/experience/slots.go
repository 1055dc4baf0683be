package experienceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// slotMatches builds the aggregation condition selecting the targeted slot.
func slotMatches(date, slotTime string) bson.D {
	return bson.D{
		{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$$ts.date", date}}},
			bson.D{{Key: "$eq", Value: bson.A{"$$ts.time", slotTime}}},
		}},
	}
}

// Reserve increments the booked count of exactly the slot at (date, slotTime),
// guarded by a capacity check evaluated inside the same update. Concurrent
// reservations against other slots of the experience are never clobbered
// because only the targeted element is rewritten.
func (r *MongoExperienceRepo) Reserve(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": experienceID,
		"timeSlots": bson.M{
			"$elemMatch": bson.M{"date": date, "time": slotTime},
		},
	}

	hasCapacity := bson.D{
		{Key: "$and", Value: bson.A{
			slotMatches(date, slotTime),
			bson.D{{Key: "$gte", Value: bson.A{
				bson.D{{Key: "$subtract", Value: bson.A{"$$ts.totalSlots", "$$ts.bookedSlots"}}},
				quantity,
			}}},
		}},
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "timeSlots", Value: bson.D{
				{Key: "$map", Value: bson.D{
					{Key: "input", Value: "$timeSlots"},
					{Key: "as", Value: "ts"},
					{Key: "in", Value: bson.D{
						{Key: "$cond", Value: bson.D{
							{Key: "if", Value: hasCapacity},
							{Key: "then", Value: bson.D{
								{Key: "$mergeObjects", Value: bson.A{
									"$$ts",
									bson.D{{Key: "bookedSlots", Value: bson.D{
										{Key: "$add", Value: bson.A{"$$ts.bookedSlots", quantity}},
									}}},
								}},
							}},
							{Key: "else", Value: "$$ts"},
						}},
					}},
				}},
			}},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientCapacity
	}
	return nil
}

// Release decrements the booked count of the slot at (date, slotTime),
// floored at zero so a double release cannot drive it negative.
func (r *MongoExperienceRepo) Release(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": experienceID,
		"timeSlots": bson.M{
			"$elemMatch": bson.M{"date": date, "time": slotTime},
		},
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "timeSlots", Value: bson.D{
				{Key: "$map", Value: bson.D{
					{Key: "input", Value: "$timeSlots"},
					{Key: "as", Value: "ts"},
					{Key: "in", Value: bson.D{
						{Key: "$cond", Value: bson.D{
							{Key: "if", Value: slotMatches(date, slotTime)},
							{Key: "then", Value: bson.D{
								{Key: "$mergeObjects", Value: bson.A{
									"$$ts",
									bson.D{{Key: "bookedSlots", Value: bson.D{
										{Key: "$max", Value: bson.A{
											0,
											bson.D{{Key: "$subtract", Value: bson.A{"$$ts.bookedSlots", quantity}}},
										}},
									}}},
								}},
							}},
							{Key: "else", Value: "$$ts"},
						}},
					}},
				}},
			}},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}
