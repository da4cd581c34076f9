package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"concierge/config"
	bookingRepo "concierge/database/repository/bookings"
	"concierge/models"
	"concierge/services/messenger"
	"concierge/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(repo bookingRepo.BookingRepository, gateway messenger.Gateway, catalog *models.HotelCatalog) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCheckInReminder, handleCheckInReminder(repo, gateway, catalog))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleCheckInReminder delivers one queued reminder. The payload is only a
// pointer; the booking is re-read at fire time so reminders for cancelled or
// re-rescheduled bookings quietly drop.
func handleCheckInReminder(repo bookingRepo.BookingRepository, gateway messenger.Gateway, catalog *models.HotelCatalog) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to fetch booking %s: %v", p.BookingID, err)
			return err // let asynq retry
		}
		if booking == nil || booking.Status != models.StatusConfirmed {
			log.Printf("[ReminderHandler] ⚠️ Booking %s gone or not confirmed, skipping", p.BookingID)
			return nil
		}
		if booking.CheckIn != p.CheckIn {
			log.Printf("[ReminderHandler] ⚠️ Booking %s was rescheduled after enqueue, skipping stale reminder", p.BookingID)
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Sending check-in reminder for %s to %s", p.BookingID, p.UserID)
		if err := gateway.SendMessage(ctx, p.UserID, reminderText(booking, catalog)); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// reminderText composes the guest-facing reminder from the live booking.
func reminderText(b *models.Booking, catalog *models.HotelCatalog) string {
	hotelName := catalog.Name
	if hotelName == "" {
		hotelName = "our hotel"
	}
	checkInTime := "3:00 PM"
	if v, ok := catalog.Policies["check_in"]; ok && v != "" {
		checkInTime = v
	}
	return fmt.Sprintf("Hi %s! A quick reminder from %s: your %s room is ready for check-in on %s from %s.\n\n"+
		"Booking ID: %s\n\n"+
		"We look forward to welcoming you!",
		b.GuestName, hotelName, b.RoomType, b.CheckIn, checkInTime, b.BookingID)
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
