// Command seed loads the sample catalog and a few testimonials into the
// database. Run it once against a fresh schema.
package main

import (
	"context"
	"log"

	"storefront-service/config"
	"storefront-service/internal/models"
	"storefront-service/internal/store"

	"github.com/shopspring/decimal"
)

var sampleProducts = []models.Product{
	{
		Name:        "Masala Peanuts",
		Description: "Crispy and spicy peanuts with a perfect blend of Indian spices. A perfect snack for any time of the day.",
		Price:       decimal.NewFromInt(120),
		Image:       "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
		Category:    models.CategoryNamkeen,
		Weight:      "200g",
		Rating:      decimal.RequireFromString("4.5"),
		ReviewCount: 23,
		InStock:     true,
	},
	{
		Name:        "Namkeen Mix",
		Description: "A delightful mix of various namkeen items including sev, chana, and peanuts. Perfect for parties and gatherings.",
		Price:       decimal.NewFromInt(180),
		Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400",
		Category:    models.CategoryNamkeen,
		Weight:      "300g",
		Rating:      decimal.RequireFromString("4.3"),
		ReviewCount: 18,
		InStock:     true,
	},
	{
		Name:        "Gujarati Fafda",
		Description: "Traditional Gujarati fafda made with gram flour and spices. Crispy and delicious snack from Gujarat.",
		Price:       decimal.NewFromInt(150),
		Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=400",
		Category:    models.CategoryNamkeen,
		Weight:      "250g",
		Rating:      decimal.RequireFromString("4.7"),
		ReviewCount: 31,
		InStock:     true,
	},
	{
		Name:        "Mathri",
		Description: "Crispy and flaky mathri made with refined flour and spices. A popular North Indian snack.",
		Price:       decimal.NewFromInt(100),
		Image:       "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400",
		Category:    models.CategoryNamkeen,
		Weight:      "200g",
		Rating:      decimal.RequireFromString("4.2"),
		ReviewCount: 15,
		InStock:     true,
	},
	{
		Name:        "Kaju Katli",
		Description: "Premium cashew fudge made with pure cashews and sugar. A classic Indian sweet for every celebration.",
		Price:       decimal.NewFromInt(450),
		Image:       "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=400",
		Category:    models.CategorySweets,
		Weight:      "500g",
		Rating:      decimal.RequireFromString("4.8"),
		ReviewCount: 42,
		InStock:     true,
	},
	{
		Name:        "Besan Ladoo",
		Description: "Soft and melt-in-mouth ladoos made with roasted gram flour, ghee and sugar.",
		Price:       decimal.NewFromInt(280),
		Image:       "https://images.unsplash.com/photo-1589119908995-c6837fa14848?w=400",
		Category:    models.CategorySweets,
		Weight:      "400g",
		Rating:      decimal.RequireFromString("4.6"),
		ReviewCount: 27,
		InStock:     false,
	},
}

var sampleTestimonials = []models.Testimonial{
	{
		CustomerName: "Priya Sharma",
		Message:      "The masala peanuts taste just like the ones from my hometown. Fresh and perfectly spiced!",
		Rating:       5,
		IsApproved:   true,
	},
	{
		CustomerName: "Rahul Mehta",
		Message:      "Ordered the namkeen mix for a family gathering, everyone loved it. Quick delivery too.",
		Rating:       4,
		IsApproved:   true,
	},
}

func main() {
	cfg := config.Load()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	for i := range sampleProducts {
		if err := db.CreateProduct(ctx, &sampleProducts[i]); err != nil {
			log.Fatalf("Failed to seed product %q: %v", sampleProducts[i].Name, err)
		}
		log.Printf("Seeded product %d: %s", sampleProducts[i].ID, sampleProducts[i].Name)
	}

	for i := range sampleTestimonials {
		t := &sampleTestimonials[i]
		if err := db.CreateTestimonial(ctx, t); err != nil {
			log.Fatalf("Failed to seed testimonial from %q: %v", t.CustomerName, err)
		}
		if sampleTestimonials[i].IsApproved {
			if _, err := db.ApproveTestimonial(ctx, t.ID); err != nil {
				log.Fatalf("Failed to approve seeded testimonial %d: %v", t.ID, err)
			}
		}
		log.Printf("Seeded testimonial %d from %s", t.ID, t.CustomerName)
	}

	log.Printf("Seeding complete: %d products, %d testimonials", len(sampleProducts), len(sampleTestimonials))
}
