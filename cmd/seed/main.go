package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/expomeet/expomeet-server/internal/config"
	"github.com/expomeet/expomeet-server/internal/db"
	"github.com/expomeet/expomeet-server/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("categories already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedInterests(tx); err != nil {
			return err
		}
		if err := seedPropertyTypes(tx); err != nil {
			return err
		}
		if err := seedStallTypes(tx); err != nil {
			return err
		}
		if err := seedSettings(tx); err != nil {
			return err
		}
		if err := seedHostProperties(tx); err != nil {
			return err
		}
		log.Printf("seed complete")
		return nil
	})
}

func intPtr(v int) *int { return &v }

func seedCategories(tx *gorm.DB) error {
	maxHosted := 30
	categories := []model.BuyerCategory{
		{ID: 1, Name: "Hosted Buyer", MaxMeetings: &maxHosted, DepositAmount: 10000, EntryFee: 0, Hosted: true},
		{ID: 2, Name: "Premium Trade Buyer", MaxMeetings: intPtr(20), DepositAmount: 5000, EntryFee: 0, Hosted: false},
		{ID: 3, Name: "Trade Buyer", MaxMeetings: intPtr(15), DepositAmount: 0, EntryFee: 2000, Hosted: false},
		{ID: 4, Name: "Association Delegate", MaxMeetings: intPtr(10), DepositAmount: 0, EntryFee: 1000, Hosted: false},
		{ID: 5, Name: "Corporate Buyer", MaxMeetings: intPtr(10), DepositAmount: 0, EntryFee: 2000, Hosted: false},
		{ID: 6, Name: "Observer", MaxMeetings: intPtr(0), DepositAmount: 0, EntryFee: 500, Hosted: false},
		{ID: model.WalkInCategoryID, Name: "Walk-in", MaxMeetings: intPtr(0), DepositAmount: 0, EntryFee: 0, Hosted: false},
	}
	for _, c := range categories {
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	return nil
}

func seedInterests(tx *gorm.DB) error {
	names := []string{
		"Wedding Venues", "Corporate Events", "MICE", "Destination Weddings",
		"Leisure Travel", "Luxury Stays", "Adventure Tourism", "Wellness Retreats",
	}
	for _, n := range names {
		if err := tx.Create(&model.Interest{Name: n}).Error; err != nil {
			return fmt.Errorf("seed interest %q: %w", n, err)
		}
	}
	return nil
}

func seedPropertyTypes(tx *gorm.DB) error {
	names := []string{
		"Resort", "Business Hotel", "Heritage Property", "Boutique Hotel",
		"Banquet Hall", "Convention Centre", "Homestay",
	}
	for _, n := range names {
		if err := tx.Create(&model.PropertyType{Name: n}).Error; err != nil {
			return fmt.Errorf("seed property type %q: %w", n, err)
		}
	}
	return nil
}

func seedStallTypes(tx *gorm.DB) error {
	types := []model.StallType{
		{Name: "Standard", Attendees: 1, MaxMeetingsPerAttendee: intPtr(10), MaxAdditionalSellerPass: 1, AllowSellerSelectStall: false, Size: "3x3", Price: 50000},
		{Name: "Premium", Attendees: 2, MaxMeetingsPerAttendee: intPtr(12), MaxAdditionalSellerPass: 2, AllowSellerSelectStall: true, Size: "3x6", Price: 90000},
		{Name: "Pavilion", Attendees: 4, MaxMeetingsPerAttendee: intPtr(15), MaxAdditionalSellerPass: 4, AllowSellerSelectStall: true, Size: "6x6", Price: 160000},
	}
	for i := range types {
		if err := tx.Create(&types[i]).Error; err != nil {
			return fmt.Errorf("seed stall type %q: %w", types[i].Name, err)
		}
	}
	numbers := []string{"A1", "A2", "A3", "A4", "B1", "B2", "B3", "B4", "C1", "C2"}
	for i, n := range numbers {
		inv := model.StallInventory{StallTypeID: types[i%len(types)].ID, Number: n}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("seed stall number %q: %w", n, err)
		}
	}
	return nil
}

func seedSettings(tx *gorm.DB) error {
	settings := map[string]string{
		model.SettingMeetingsEnabled:          "true",
		model.SettingMaxSellerAttendeesPerDay: "30",
		model.SettingEventStartDate:           "2026-11-12",
		model.SettingEventEndDate:             "2026-11-14",
		model.SettingMeetingStartTime:         "10:00 AM",
		model.SettingMeetingEndTime:           "6:00 PM",
	}
	for k, v := range settings {
		if err := tx.Create(&model.SystemSetting{Key: k, Value: v}).Error; err != nil {
			return fmt.Errorf("seed setting %q: %w", k, err)
		}
	}
	return nil
}

func seedHostProperties(tx *gorm.DB) error {
	properties := []model.HostProperty{
		{Name: "Lakeview Grand", Address: "12 Lake Road", TotalSharedRooms: 20, TotalSingleRooms: 10},
		{Name: "City Square Inn", Address: "4 Market Street", TotalSharedRooms: 10, TotalSingleRooms: 20},
		{Name: "Palm Court Suites", Address: "88 Palm Avenue", TotalSharedRooms: 16, TotalSingleRooms: 8},
	}
	for _, p := range properties {
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("seed host property %q: %w", p.Name, err)
		}
	}
	return nil
}

func shouldSeed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.BuyerCategory{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	return strings.EqualFold(os.Getenv("FORCE_SEED"), "true"), nil
}
