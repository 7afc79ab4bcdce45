// Package seed provides the mock identities and recipes loaded into the
// in-memory store when the server starts with seeding enabled.
package seed

import (
	"time"

	"github.com/dmitrijs2005/recipebox/internal/models"
)

func Users() []models.User {
	return []models.User{
		{
			ID:             "user-1",
			Name:           "Maria Rossi",
			Email:          "maria@example.com",
			ProfilePhoto:   "https://i.pravatar.cc/150?u=user-1",
			SavedRecipeIDs: []string{"recipe-3"},
		},
		{
			ID:             "user-2",
			Name:           "Kenji Tanaka",
			Email:          "kenji@example.com",
			ProfilePhoto:   "https://i.pravatar.cc/150?u=user-2",
			SavedRecipeIDs: []string{},
		},
	}
}

// Recipes returns the mock recipes, newest first.
func Recipes() []models.Recipe {
	users := Users()
	maria := models.AuthorFrom(users[0])
	kenji := models.AuthorFrom(users[1])
	day := func(d int) time.Time { return time.Date(2024, time.May, d, 9, 0, 0, 0, time.UTC) }

	return []models.Recipe{
		{
			ID:          "recipe-4",
			Title:       "Chocolate Lava Cake",
			Description: "Warm chocolate cake with a molten centre.",
			Ingredients: []string{"100g dark chocolate", "100g butter", "2 eggs", "50g sugar", "2 tbsp flour"},
			Steps:       []string{"Melt chocolate with butter.", "Whisk eggs and sugar, fold in chocolate and flour.", "Bake at 220C for 12 minutes."},
			Category:    "Dessert",
			PrepTime:    25,
			ImageURL:    "https://picsum.photos/seed/Chocolate+Lava+Cake/600/400",
			Author:      kenji,
			CreatedAt:   day(20),
		},
		{
			ID:          "recipe-3",
			Title:       "Miso Ramen",
			Description: "Rich miso broth with noodles, egg and greens.",
			Ingredients: []string{"ramen noodles", "3 tbsp white miso", "1l chicken stock", "2 eggs", "spring onions"},
			Steps:       []string{"Soft boil the eggs.", "Whisk miso into hot stock.", "Cook noodles and assemble bowls."},
			Category:    "Soup",
			PrepTime:    40,
			ImageURL:    "https://picsum.photos/seed/Miso+Ramen/600/400",
			Author:      kenji,
			CreatedAt:   day(15),
		},
		{
			ID:          "recipe-2",
			Title:       "Caprese Salad",
			Description: "Tomatoes, mozzarella and basil with olive oil.",
			Ingredients: []string{"3 tomatoes", "1 ball mozzarella", "fresh basil", "olive oil", "salt"},
			Steps:       []string{"Slice tomatoes and mozzarella.", "Layer with basil.", "Dress with oil and salt."},
			Category:    "Salad",
			PrepTime:    10,
			ImageURL:    "https://picsum.photos/seed/Caprese+Salad/600/400",
			Author:      maria,
			CreatedAt:   day(10),
		},
		{
			ID:          "recipe-1",
			Title:       "Spaghetti Carbonara",
			Description: "Classic Roman pasta with eggs, pecorino and guanciale.",
			Ingredients: []string{"200g spaghetti", "100g guanciale", "2 egg yolks", "50g pecorino", "black pepper"},
			Steps:       []string{"Cook pasta.", "Crisp the guanciale.", "Toss pasta with yolks, cheese and fat off the heat."},
			Category:    "Dinner",
			PrepTime:    30,
			ImageURL:    "https://picsum.photos/seed/Spaghetti+Carbonara/600/400",
			Author:      maria,
			CreatedAt:   day(1),
		},
	}
}
