package config

import (
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the shared database handle. Tests swap in a sqlite-backed handle.
var DB *gorm.DB

// InitDB opens the MySQL connection from the loaded configuration.
func InitDB() {
	var err error
	DB, err = gorm.Open(mysql.Open(C.DBDSN), &gorm.Config{})
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	Logger.Info("Database connected")
}
