package main

import (
	"log"

	"scheduling/internal/config"
	"scheduling/internal/database"
	"scheduling/internal/domain"
	"scheduling/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Wipes the scheduling tables and loads a small demo data set:
// an admin, two staff members, a customer, a catalog with assignments
// and Monday to Friday 09:00-17:00 availability.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"appointments",
		"staff_availability",
		"staff_services",
		"service_items",
		"email_verification_codes",
		"customers",
		"users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	log.Println("Creating users...")
	admin := mustUser(db, "Ada", "Admin", "admin@scheduling.local", "admin12345", domain.RoleAdmin)
	anna := mustUser(db, "Anna", "Stylist", "anna@scheduling.local", "staff12345", domain.RoleStaff)
	boris := mustUser(db, "Boris", "Barber", "boris@scheduling.local", "staff12345", domain.RoleStaff)
	client := mustUser(db, "Cara", "Client", "client@scheduling.local", "client12345", domain.RoleCustomer)

	if err := db.Create(&domain.Customer{UserID: client.ID, PreferredStaffID: &anna.ID}).Error; err != nil {
		log.Fatal("create customer:", err)
	}

	log.Println("Creating catalog...")
	haircut := mustItem(db, "Haircut", "hair", "35.00", 30)
	coloring := mustItem(db, "Coloring", "hair", "90.00", 90)
	beard := mustItem(db, "Beard trim", "barber", "20.00", 15)

	log.Println("Assigning services...")
	assignments := []domain.StaffService{
		{StaffID: anna.ID, ServiceItemID: haircut.ID},
		{StaffID: anna.ID, ServiceItemID: coloring.ID, CustomPrice: decimal.NewNullDecimal(decimal.RequireFromString("110.00"))},
		{StaffID: boris.ID, ServiceItemID: haircut.ID, CustomPrice: decimal.NewNullDecimal(decimal.RequireFromString("30.00"))},
		{StaffID: boris.ID, ServiceItemID: beard.ID},
	}
	if err := db.Create(&assignments).Error; err != nil {
		log.Fatal("create staff services:", err)
	}

	log.Println("Creating availability...")
	var windows []domain.StaffAvailability
	for _, staff := range []*domain.User{anna, boris} {
		for day := 1; day <= 5; day++ {
			windows = append(windows, domain.StaffAvailability{
				StaffID:   staff.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "17:00",
			})
		}
	}
	if err := db.Create(&windows).Error; err != nil {
		log.Fatal("create availability:", err)
	}

	log.Printf("Seed completed: admin=%s staff=%d items=3 windows=%d", admin.Email, 2, len(windows))
}

func mustUser(db *gorm.DB, first, last, email, plain string, role domain.UserRole) *domain.User {
	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatal("hash password:", err)
	}

	u := &domain.User{
		FirstName:     first,
		LastName:      last,
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		EmailVerified: true,
		IsActive:      true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "password_hash", "role", "is_active", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustItem(db *gorm.DB, name, serviceType, price string, minutes int) *domain.ServiceItem {
	item := &domain.ServiceItem{
		Name:            name,
		ServiceType:     serviceType,
		BasePrice:       decimal.RequireFromString(price),
		DurationMinutes: minutes,
		IsActive:        true,
	}
	if err := db.Create(item).Error; err != nil {
		log.Fatalf("create service item %s: %v", name, err)
	}
	return item
}
