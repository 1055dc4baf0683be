package bookingRepo

import (
	"context"
	"fmt"

	"hufbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runInTransaction executes fn inside a Mongo session transaction, aborting
// on any error so no partial state is persisted. The session is ended on
// every exit path.
func (r *MongoBookingRepo) runInTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// ConfirmWithPayment commits slot reservation, booking confirmation and the
// payment record as one all-or-nothing unit. On any failure none of the
// three writes take effect and the booking keeps its pre-attempt status.
func (r *MongoBookingRepo) ConfirmWithPayment(ctx context.Context, booking *models.Booking, payment *models.Payment) error {
	return r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.experiences.Reserve(sc, booking.ExperienceID, booking.Date, booking.Time, booking.Quantity); err != nil {
			return err
		}

		filter := bson.M{"bookingRef": booking.BookingRef}
		update := bson.M{"$set": bson.M{"status": models.BookingStatusConfirmed}}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("confirm booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}

		if _, err := r.paymentColl.InsertOne(sc, payment); err != nil {
			return fmt.Errorf("insert payment failed: %w", err)
		}
		return nil
	})
}

// CancelWithRelease releases the booking's slots and marks it cancelled
// together, so slots are never freed while the booking still reads as
// confirmed, and vice versa.
func (r *MongoBookingRepo) CancelWithRelease(ctx context.Context, booking *models.Booking) error {
	return r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.experiences.Release(sc, booking.ExperienceID, booking.Date, booking.Time, booking.Quantity); err != nil {
			return err
		}

		filter := bson.M{"bookingRef": booking.BookingRef, "status": models.BookingStatusConfirmed}
		update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled}}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}
