package models

import (
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the MySQL connection and migrates the schema. The handle is
// returned to the caller instead of being kept in a package variable so that
// tests can substitute their own database.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Upload{},
		&AttendanceRecord{},
		&WorkforcePlan{},
		&OrgChartNode{},
	)
}

// SeedAdmin creates the initial admin account when none exists for the given
// email. A blank email or password disables seeding.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	// Emails are stored uppercased; login normalizes the same way.
	email = strings.ToUpper(email)

	var count int64
	if err := db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:    email,
		Password: string(hashed),
		Name:     "관리자",
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin user created: %s\n", email)
	return nil
}
