// Command seed populates the database with sample and fake data.
package main

import (
	"context"
	"flag"
	"log"

	"postboard/internal/bootstrap"
	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/seed"
)

func main() {
	sample := flag.Bool("sample", true, "Ensure the built-in sample users and posts")
	fakeUsers := flag.Int("fake-users", 0, "Number of fake users to create")
	postsPerUser := flag.Int("posts-per-user", 3, "Number of posts per fake user")
	fakeSeed := flag.Int64("seed", 0, "Fake data seed (0 picks a random one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, _, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedSampleData: *sample})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if *fakeUsers > 0 {
		log.Printf("Creating %d fake users with %d posts each", *fakeUsers, *postsPerUser)
		users, err := seed.NewFactory(db, *fakeSeed).CreateUsersWithPosts(ctx, *fakeUsers, *postsPerUser)
		if err != nil {
			log.Fatalf("Fake data seeding failed: %v", err)
		}
		log.Printf("Created %d fake users", len(users))
	}

	log.Println("Seeding complete")
}
