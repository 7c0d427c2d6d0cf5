package database

import (
	"fmt"
	"log"

	"nosdois-service/config"
	"nosdois-service/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Postgres *gorm.DB

func PostgresConnect() {
	var err error
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	Postgres, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect postgres")
	}

	log.Printf("Connection opened to Postgres")
	if err := Migrate(Postgres); err != nil {
		panic(fmt.Sprintf("failed to migrate postgres: %v", err))
	}
	log.Printf("Postgres Database Migrated")
}

// Migrate creates every collection table, including the second photo table
// backing the trash bin.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Couple{},
		&model.Photo{},
		&model.DiaryEntry{},
		&model.ChatEntry{},
		&model.FavoriteMessage{},
		&model.EmotionHistoryEntry{},
	); err != nil {
		return err
	}
	return db.Table(model.TrashTable).AutoMigrate(&model.Photo{})
}
