package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo organization, mail room and user profiles for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormPostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			tables := []string{
				"audit_logs", "notifications", "pickups", "mail_items",
				"integrations", "external_people", "user_profiles",
				"mail_rooms", "organizations",
			}
			for _, table := range tables {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		orgName := "Acme Workspaces"
		var orgID int64
		if err := db.Raw("SELECT id FROM organizations WHERE name = ?", orgName).Row().Scan(&orgID); err != nil {
			if err := db.Exec(
				"INSERT INTO organizations (name, contact_email, contact_phone, address, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				orgName, "frontdesk@acme.test", "+1-555-0100", "100 Main St").Error; err != nil {
				log.Fatalf("failed to insert organization: %v", err)
			}
			if err := db.Raw("SELECT id FROM organizations WHERE name = ?", orgName).Row().Scan(&orgID); err != nil {
				log.Fatalf("failed to lookup organization id: %v", err)
			}
			fmt.Println("Seeded organization:", orgName)
		}

		roomName := "Main Lobby"
		var roomID int64
		if err := db.Raw("SELECT id FROM mail_rooms WHERE organization_id = ? AND name = ?", orgID, roomName).Row().Scan(&roomID); err != nil {
			if err := db.Exec(
				"INSERT INTO mail_rooms (organization_id, name, location, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				orgID, roomName, "Building A, Floor 1").Error; err != nil {
				log.Fatalf("failed to insert mail room: %v", err)
			}
			if err := db.Raw("SELECT id FROM mail_rooms WHERE organization_id = ? AND name = ?", orgID, roomName).Row().Scan(&roomID); err != nil {
				log.Fatalf("failed to lookup mail room id: %v", err)
			}
			fmt.Println("Seeded mail room:", roomName)
		}

		cost := cfg.Security.BCryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cost)

		profiles := []struct {
			FirstName  string
			LastName   string
			Email      string
			Role       string
			Department string
		}{
			{"Ava", "Reyes", "ava@acme.test", "admin", "Operations"},
			{"Marcus", "Lin", "marcus@acme.test", "staff", "Front Desk"},
			{"Priya", "Shah", "priya@acme.test", "recipient", "Engineering"},
		}

		for _, p := range profiles {
			var exists int
			if err := db.Raw("SELECT 1 FROM user_profiles WHERE email = ?", p.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO user_profiles (organization_id, mail_room_id, first_name, last_name, email, role, department, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, true, now(), now())",
				orgID, roomID, p.FirstName, p.LastName, p.Email, p.Role, p.Department, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert user profile %s: %v", p.Email, err)
			}
			fmt.Printf("Seeded user profile: %s (%s)\n", p.Email, p.Role)
		}

		externalEmail := "visitor@example.test"
		var exists int
		if err := db.Raw("SELECT 1 FROM external_people WHERE email = ?", externalEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO external_people (organization_id, first_name, last_name, email, department, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				orgID, "Jordan", "Vale", externalEmail, "Visitor").Error; err != nil {
				log.Fatalf("failed to insert external person: %v", err)
			}
			fmt.Println("Seeded external person:", externalEmail)
		}

		fmt.Println("Seed complete. Login with any seeded email and password 'password'.")
	},
}
