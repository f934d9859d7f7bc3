package models

import (
	"fmt"

	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/internal/geo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Session{},
		&Project{},
		&FenceLine{},
		&Coordinate{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedSampleData creates a demo project with one fence line when the
// projects table is empty, so a fresh install has something to show.
func SeedSampleData() error {
	var count int64
	if err := DB.Model(&Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	address := "123 Map St, Fencetown"
	description := "Proposed cedar fence for the backyard perimeter."
	project := Project{
		Name:        "Sample Backyard Fence",
		Address:     &address,
		Description: &description,
		Status:      StatusPlanning,
	}
	if err := DB.Create(&project).Error; err != nil {
		return err
	}

	points := []geo.Point{
		{Lat: 45.523062, Lng: -122.676482},
		{Lat: 45.523162, Lng: -122.676482},
	}
	length := geo.LengthFeet(points)
	material := "Cedar"
	height := 6.0
	color := "Natural"

	line := FenceLine{
		ProjectID: project.ID,
		Name:      "North Boundary",
		Material:  &material,
		Height:    &height,
		Length:    &length,
		Color:     &color,
	}
	if err := DB.Create(&line).Error; err != nil {
		return err
	}

	coords := make([]Coordinate, len(points))
	for i, p := range points {
		coords[i] = Coordinate{FenceLineID: line.ID, Order: i, Lat: p.Lat, Lng: p.Lng}
	}
	return DB.Create(&coords).Error
}
