package store

import "github.com/erazemk/izposoja/internal/model"

// SeedItems returns the demo catalog loaded on first start.
func SeedItems() []model.Item {
	borrowed := func(name string) *string { return &name }

	return []model.Item{
		{
			ID:          "itm001",
			Name:        "Cordless Drill",
			Description: "18V cordless drill, lightly used. Perfect for home projects and DIY tasks.",
			Category:    "Tools",
			Owner:       "Alice Johnson",
			Condition:   "Good",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1581147036324-c1c89c2c8b5c?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4595, Lng: 77.0266, Address: "Block A, Sector 45"},
		},
		{
			ID:          "itm002",
			Name:        "Camping Tent",
			Description: "4-person waterproof tent, easy setup. Great for weekend getaways.",
			Category:    "Outdoors",
			Owner:       "Brian Lee",
			Condition:   "Excellent",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1523987355523-c7b5b0dd90a7?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4652, Lng: 77.0565, Address: "Block B, Sector 50"},
		},
		{
			ID:          "itm003",
			Name:        "Crock Pot",
			Description: "Large 6-quart slow cooker, works great. Perfect for family meals.",
			Category:    "Kitchen",
			Owner:       "Samantha Green",
			Condition:   "Very Good",
			Available:   false,
			Image:       "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400&h=300&fit=crop",
			BorrowedBy:  borrowed("Prachi Patel"),
			Location:    &model.Location{Lat: 28.4700, Lng: 77.0300, Address: "Block C, Sector 47"},
		},
		{
			ID:          "itm004",
			Name:        "Yoga Mat",
			Description: "Non-slip yoga mat, 6mm thick, blue color. Perfect for home workouts.",
			Category:    "Fitness",
			Owner:       "Ravi Mehra",
			Condition:   "Good",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4750, Lng: 77.0400, Address: "Block D, Sector 48"},
		},
		{
			ID:          "itm005",
			Name:        "Ladder",
			Description: "6-foot aluminum step ladder, sturdy and lightweight.",
			Category:    "Tools",
			Owner:       "Dana Wang",
			Condition:   "Good",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1581578731548-c64695cc6952?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4800, Lng: 77.0500, Address: "Block E, Sector 49"},
		},
		{
			ID:          "itm006",
			Name:        "Board Game: Settlers of Catan",
			Description: "Complete set, all pieces included. Great for family game nights.",
			Category:    "Games",
			Owner:       "Luis García",
			Condition:   "Like New",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1610890716171-6b1bb98ffd09?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4850, Lng: 77.0600, Address: "Block F, Sector 51"},
		},
		{
			ID:          "itm007",
			Name:        "Blender",
			Description: "High-speed blender for smoothies and food processing.",
			Category:    "Kitchen",
			Owner:       "Emma Wilson",
			Condition:   "Very Good",
			Available:   true,
			Image:       "https://images.unsplash.com/photo-1570222094114-d054a817e56b?w=400&h=300&fit=crop",
			Location:    &model.Location{Lat: 28.4900, Lng: 77.0700, Address: "Block G, Sector 52"},
		},
		{
			ID:          "itm008",
			Name:        "Bicycle",
			Description: "Mountain bike, perfect for weekend rides and commuting.",
			Category:    "Outdoors",
			Owner:       "Mike Chen",
			Condition:   "Good",
			Available:   false,
			Image:       "https://images.unsplash.com/photo-1532298229144-0ec0c57515c7?w=400&h=300&fit=crop",
			BorrowedBy:  borrowed("Sarah Kim"),
			Location:    &model.Location{Lat: 28.4950, Lng: 77.0800, Address: "Block H, Sector 53"},
		},
	}
}
