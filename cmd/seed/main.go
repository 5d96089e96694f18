package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skillbridge/internal/config"
	"skillbridge/internal/database"
	"skillbridge/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsProd() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"saved_services", "reviews", "bookings", "worker_services", "profiles"} {
		db.Exec("DELETE FROM " + table)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// ================== PROFILES ==================
	log.Println("Creating profiles...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	workers := createProfiles(db, string(hash), domain.RoleWorker, []string{
		"anna.clean@example.com", "bob.fixit@example.com", "chen.tutor@example.com",
	})
	customers := createProfiles(db, string(hash), domain.RoleCustomer, []string{
		"dina@example.com", "emil@example.com", "fatima@example.com",
	})

	// no role yet
	db.Create(&domain.Profile{Email: "newbie@example.com", PasswordHash: string(hash), FullName: "New User"})
	log.Println("All profiles use password: password123")

	// ================== SERVICES ==================
	log.Println("Creating services...")
	catalog := []struct {
		title, category string
		price           float64
	}{
		{"Apartment deep cleaning", "cleaning", 80},
		{"Window cleaning", "cleaning", 35},
		{"Leaky tap repair", "plumbing", 45},
		{"Furniture assembly", "handyman", 40},
		{"Math tutoring (1h)", "tutoring", 30},
		{"English conversation (1h)", "tutoring", 25},
	}
	services := make([]domain.WorkerService, 0, len(catalog))
	for i, c := range catalog {
		svc := domain.WorkerService{
			WorkerID:    workers[i%len(workers)].ID,
			Title:       c.title,
			Description: "Seeded demo service",
			Category:    c.category,
			Price:       c.price,
			Location:    "Almaty",
			IsActive:    true,
		}
		db.Create(&svc)
		services = append(services, svc)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")
	statuses := []domain.BookingStatus{
		domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled,
	}
	for i := 0; i < 16; i++ {
		svc := services[rng.Intn(len(services))]
		customer := customers[rng.Intn(len(customers))]
		status := statuses[i%len(statuses)]

		days := rng.Intn(30) - 15 // -15 to +15 days
		if status == domain.BookingPending || status == domain.BookingConfirmed {
			days = 1 + rng.Intn(14)
		}
		price := svc.Price

		b := domain.Booking{
			ServiceID:     svc.ID,
			CustomerID:    customer.ID,
			BookingDate:   time.Now().AddDate(0, 0, days).Format("2006-01-02"),
			StartTime:     fmt.Sprintf("%02d:00", 9+rng.Intn(9)),
			Status:        status,
			Price:         &price,
			PaymentStatus: domain.PaymentUnpaid,
			Notes:         fmt.Sprintf("Booking %d", i+1),
		}
		if status == domain.BookingCompleted {
			b.PaymentStatus = domain.PaymentPaid
		}
		if status == domain.BookingCancelled {
			reason := "Plans changed"
			by := domain.RoleCustomer
			b.CancellationReason = &reason
			b.CancelledBy = &by
		}
		db.Omit("Service").Create(&b)

		// ================== REVIEWS ==================
		if status == domain.BookingCompleted {
			db.Create(&domain.Review{
				BookingID:  b.ID,
				ServiceID:  svc.ID,
				CustomerID: customer.ID,
				WorkerID:   svc.WorkerID,
				Rating:     3 + rng.Intn(3),
				Comment:    "Seeded review",
			})
		}
	}

	// ================== SAVED ==================
	for _, c := range customers {
		db.Omit("Service").Create(&domain.SavedService{UserID: c.ID, ServiceID: services[rng.Intn(len(services))].ID})
	}

	log.Println("Seed completed")
}

func createProfiles(db *gorm.DB, hash string, role domain.Role, emails []string) []domain.Profile {
	out := make([]domain.Profile, 0, len(emails))
	for i, email := range emails {
		r := role
		p := domain.Profile{
			Email:        email,
			PasswordHash: hash,
			FullName:     fmt.Sprintf("%s %d", role, i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+10),
			SelectedRole: &r,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("create %s: %v", email, err)
		}
		out = append(out, p)
		log.Printf("%s created: %s", role, email)
	}
	return out
}
