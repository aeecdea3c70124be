// Command seed wipes the database and loads the demo menu plus a batch
// of randomized sample orders.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/eatoes/back-office/internal/config"
	"github.com/eatoes/back-office/internal/database"
	"github.com/eatoes/back-office/internal/models"
	"github.com/eatoes/back-office/internal/repository"
	"github.com/eatoes/back-office/pkg/logger"
)

func menuItems() []models.MenuItem {
	f := func(name string, category models.Category, description string, price float64, ingredients ...string) models.MenuItem {
		return models.MenuItem{
			Name:        name,
			Category:    category,
			Description: description,
			Price:       price,
			Ingredients: ingredients,
			IsAvailable: true,
		}
	}

	return []models.MenuItem{
		f("Bruschetta", models.CategoryAppetizer, "Toasted bread topped with tomatoes, basil & garlic.", 8.50, "bread", "tomatoes", "basil", "garlic", "olive oil"),
		f("Crispy Calamari", models.CategoryAppetizer, "Lightly fried squid rings served with marinara sauce.", 11.00, "squid", "flour", "marinara", "lemon"),
		f("Spinach Artichoke Dip", models.CategoryAppetizer, "Creamy dip baked to golden perfection.", 9.75, "spinach", "artichoke", "cream cheese", "parmesan"),
		f("Grilled Salmon", models.CategoryMainCourse, "Atlantic salmon with lemon-dill butter & seasonal veggies.", 24.00, "salmon", "lemon", "dill", "butter", "asparagus"),
		f("Mushroom Risotto", models.CategoryMainCourse, "Creamy arborio rice with wild mushrooms & truffle oil.", 18.50, "arborio rice", "mushrooms", "truffle oil", "parmesan", "white wine"),
		f("Chicken Parmesan", models.CategoryMainCourse, "Breaded chicken breast, marinara, mozzarella & spaghetti.", 19.00, "chicken breast", "breadcrumbs", "marinara", "mozzarella", "spaghetti"),
		f("Beef Wellington", models.CategoryMainCourse, "Beef tenderloin wrapped in puff pastry with mushroom duxelles.", 32.00, "beef tenderloin", "puff pastry", "mushrooms", "foie gras"),
		f("Chocolate Lava Cake", models.CategoryDessert, "Warm dark chocolate cake with a molten center & vanilla ice cream.", 10.00, "dark chocolate", "butter", "eggs", "flour", "vanilla ice cream"),
		f("Tiramisu", models.CategoryDessert, "Classic Italian dessert with espresso-soaked ladyfingers.", 9.50, "mascarpone", "ladyfingers", "espresso", "cocoa powder", "eggs"),
		f("New York Cheesecake", models.CategoryDessert, "Creamy cheesecake on a graham-cracker crust with berry compote.", 8.75, "cream cheese", "graham crackers", "berries", "sugar", "eggs"),
		f("Freshly Squeezed Lemonade", models.CategoryBeverage, "House-made lemonade with a hint of mint.", 5.00, "lemons", "sugar", "water", "mint"),
		f("Iced Matcha Latte", models.CategoryBeverage, "Japanese matcha blended with oat milk over ice.", 6.50, "matcha", "oat milk", "ice", "honey"),
		f("Sparkling Water", models.CategoryBeverage, "Imported Italian sparkling water with citrus.", 3.50, "sparkling water", "lemon", "lime"),
	}
}

var customerNames = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fiona", "George", "Hannah"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	log.Info("connected to mongodb", "database", cfg.Mongo.Database)

	// Wipe existing data
	if err := db.Collection(database.MenuCollection).Drop(ctx); err != nil {
		log.Error("failed to drop menu collection", "error", err)
		os.Exit(1)
	}
	if err := db.Collection(database.OrderCollection).Drop(ctx); err != nil {
		log.Error("failed to drop order collection", "error", err)
		os.Exit(1)
	}

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Warn("failed to ensure indexes", "error", err)
	}

	menuRepo := repository.NewMongoMenuRepository(db.Collection(database.MenuCollection))
	orderRepo := repository.NewMongoOrderRepository(db.Collection(database.OrderCollection), database.MenuCollection)

	items := menuItems()
	for i := range items {
		now := time.Now().UTC()
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		if err := menuRepo.Insert(ctx, &items[i]); err != nil {
			log.Error("failed to insert menu item", "name", items[i].Name, "error", err)
			os.Exit(1)
		}
	}
	log.Info("inserted menu items", "count", len(items))

	statuses := models.Statuses()
	orderCount := 20
	for i := 0; i < orderCount; i++ {
		lineCount := rand.Intn(4) + 1
		lines := make([]models.OrderLine, 0, lineCount)
		var total float64
		for j := 0; j < lineCount; j++ {
			item := items[rand.Intn(len(items))]
			quantity := rand.Intn(3) + 1
			lines = append(lines, models.OrderLine{
				MenuItemID:   item.ID,
				Quantity:     quantity,
				PriceAtOrder: item.Price,
			})
			total += item.Price * float64(quantity)
		}

		var tableNumber *int
		if rand.Intn(2) == 0 {
			n := rand.Intn(12) + 1
			tableNumber = &n
		}

		// Spread creation times over the past week so listings page sensibly
		createdAt := time.Now().UTC().Add(-time.Duration(rand.Intn(7*24)) * time.Hour)
		order := models.Order{
			CustomerName: customerNames[rand.Intn(len(customerNames))],
			Items:        lines,
			TotalAmount:  models.Round2(total),
			Status:       statuses[rand.Intn(len(statuses))],
			TableNumber:  tableNumber,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
		if err := orderRepo.Insert(ctx, &order); err != nil {
			log.Error("failed to insert order", "error", err)
			os.Exit(1)
		}
	}
	log.Info("inserted sample orders", "count", orderCount)
}
