package database

import (
	"log"

	"paygo/config"
	"paygo/internal/domain"
	"paygo/internal/models"
	"paygo/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Loan{},
		&models.Payment{},
		&models.Commission{},
		&models.SuperAgentCommission{},
		&models.ActivationToken{},
		&models.SystemSetting{},
	)
}

// SeedDefaults makes sure the platform default commission rates exist; the
// rate resolver treats their absence as a fatal misconfiguration.
func SeedDefaults(db *gorm.DB) error {
	return repository.NewSettingRepository(db).SeedDefaults(map[string]string{
		domain.SettingAgentCommissionRate:      "5",
		domain.SettingSuperAgentCommissionRate: "2",
	})
}

// SeedAdmin creates the initial admin account when no admin exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[database] seed admin: %v", err)
		return
	}
	admin := &models.User{
		Username:     "admin",
		Email:        "admin@paygo.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[database] seed admin: %v", err)
		return
	}
	log.Printf("[database] seeded default admin account (change the password)")
}
