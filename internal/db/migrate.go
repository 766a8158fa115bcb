package db

import (
	"elearn_backend/internal/domain"

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// AutoMigrate creates tables, constraints, columns and indexes for every
// model. On MySQL the status columns are tightened to the enumerations the
// mobile client expects; other dialects (sqlite in tests) keep plain text.
func AutoMigrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&domain.User{},
		&domain.Account{},
		&domain.Order{},
		&domain.Question{},
		&domain.Reply{},
	)
	if err != nil {
		return err
	}
	if gdb.Dialector.Name() != "mysql" {
		return nil
	}
	if err := gdb.Exec("ALTER TABLE orders MODIFY status ENUM('pending','completed','cancelled') DEFAULT 'completed'").Error; err != nil {
		return err
	}
	return gdb.Exec("ALTER TABLE questions MODIFY status ENUM('pending','answered') DEFAULT 'pending'").Error
}

// Migrate connects to MySQL and runs the schema migration, for the
// standalone migrate command
func Migrate(dsn string) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
