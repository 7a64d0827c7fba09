package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"audit-checklist/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Open connects to the configured driver. Postgres connections are retried
// while the database container comes up.
func Open(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	}

	switch driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// single writer
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	case "postgres":
		var (
			db  *gorm.DB
			err error
		)
		const maxAttempts = 10
		for i := 1; i <= maxAttempts; i++ {
			log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

			db, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				log.Println("connected to DB successfully")
				return db, nil
			}

			log.Printf("failed to connect to DB: %v", err)
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("failed to connect to db after %d attempts: %w", maxAttempts, err)

	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// newLogger reports slow and failed queries. Lookups that find nothing are
// a normal outcome and stay quiet.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.Checklist{},
		&models.Question{},
		&models.Answer{},
		&models.NonConformity{},
		&models.CorrectiveAction{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// SeedDefaultUsers creates the demo accounts when they are missing.
func SeedDefaultUsers(db *gorm.DB) {
	type seedUser struct {
		Name     string
		Email    string
		Password string
	}

	users := []seedUser{
		{Name: "Administrador", Email: "admin@example.com", Password: "admin123"},
		{Name: "Usuário Teste", Email: "user@example.com", Password: "user123"},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).
			Where("email = ?", u.Email).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", MaskEmail(u.Email), err)
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", MaskEmail(u.Email), err)
			continue
		}

		user := models.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", MaskEmail(u.Email), err)
			continue
		}

		log.Printf("created seed user: %s", MaskEmail(u.Email))
	}
}

// MaskEmail keeps the first two characters of the local part.
func MaskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}
