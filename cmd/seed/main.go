package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"servicemarket/internal/database"
	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "servicemarket.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM provider_profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@servicemarket.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@servicemarket.kz / admin123")

	clients := []domain.User{}
	clientEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range clientEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         fmt.Sprintf("Client %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	// ================== PROVIDERS ==================
	log.Println("Creating providers...")

	type providerSeed struct {
		email         string
		name          string
		commission    float64
		callingCharge float64
	}
	providerSeeds := []providerSeed{
		{"aidar@cleanpro.kz", "Aidar Cleaning", 10.0, 20.0},
		{"gulnaz@fixit.kz", "Gulnaz Repairs", 12.5, 25.0},
		{"yerlan@homecare.kz", "Yerlan Home Care", 8.0, 0},
	}

	providers := []domain.User{}
	for i, ps := range providerSeeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("provider123"), bcrypt.DefaultCost)
		provider := domain.User{
			Email:        ps.email,
			PasswordHash: string(hash),
			Role:         domain.RoleProvider,
			Name:         ps.name,
			Phone:        fmt.Sprintf("+7 727 000 00%02d", i),
		}
		db.Create(&provider)
		providers = append(providers, provider)

		db.Create(&domain.ProviderProfile{
			UserID:               provider.ID,
			CommissionPercentage: ps.commission,
			CallingCharge:        ps.callingCharge,
		})
	}

	// ================== SERVICES ==================
	log.Println("Creating services...")

	type serviceSeed struct {
		provider int
		name     string
		price    float64
		duration int
		active   bool
	}
	serviceSeeds := []serviceSeed{
		{0, "Apartment deep cleaning", 15000, 180, true},
		{0, "Office cleaning", 20000, 240, true},
		{0, "Window washing", 8000, 90, false},
		{1, "Plumbing repair", 12000, 120, true},
		{1, "Electrical wiring check", 10000, 90, true},
		{2, "Elderly care visit", 9000, 120, true},
		{2, "Grocery delivery", 4000, 60, true},
	}

	for _, ss := range serviceSeeds {
		db.Create(&domain.Service{
			ProviderID:      providers[ss.provider].ID,
			Name:            ss.name,
			Description:     ss.name,
			Price:           ss.price,
			DurationMinutes: ss.duration,
			IsActive:        ss.active,
		})
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin: admin@servicemarket.kz / admin123")
	log.Println("Clients: asel@mail.kz, bekzat@gmail.com, dina@yandex.kz / client123")
	log.Println("Providers: aidar@cleanpro.kz, gulnaz@fixit.kz, yerlan@homecare.kz / provider123")
}
