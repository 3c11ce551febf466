package business

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeDef defines one business type and the topics its reviews are expected to cover
type TypeDef struct {
	Name         string   `yaml:"name"`
	Relevant     []string `yaml:"relevant"`
	Irrelevant   []string `yaml:"irrelevant"`
	NameKeywords []string `yaml:"name_keywords"` // Substrings of a business name that imply this type
}

// Alias maps a well-known business name to its type
type Alias struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Catalog is the static business configuration. Order is significant: name resolution
// walks aliases and keyword lists in definition order.
type Catalog struct {
	Types   []TypeDef `yaml:"types"`
	Aliases []Alias   `yaml:"aliases"`
}

// LoadCatalog reads a catalog from a YAML file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog of business types and aliases
func DefaultCatalog() Catalog {
	return Catalog{
		Types: []TypeDef{
			// Food & dining
			{
				Name:         "restaurant",
				Relevant:     []string{"food", "meal", "dish", "cuisine", "menu", "chef", "dining", "taste", "flavor", "service", "waiter", "waitress", "table", "reservation", "atmosphere", "ambiance", "price", "portion", "appetizer", "entree", "dessert", "wine", "beer", "cocktail", "drink", "beverage"},
				Irrelevant:   []string{"book", "clothing", "electronics", "car", "phone", "computer", "software", "medicine", "haircut", "massage", "gym", "workout", "hotel", "room"},
				NameKeywords: []string{"restaurant", "bistro", "cafe", "diner", "eatery", "grill", "kitchen"},
			},
			{
				Name:         "fast_food",
				Relevant:     []string{"burger", "fries", "chicken", "sandwich", "combo", "meal", "drive-thru", "quick", "fast", "takeout", "delivery", "sauce", "soda", "shake", "nuggets", "wrap", "salad"},
				Irrelevant:   []string{"alcohol", "wine", "beer", "cocktail", "book", "clothing", "electronics", "car", "phone", "computer", "medicine", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"fast food", "quick service", "drive thru", "takeaway"},
			},
			{
				Name:         "coffee_shop",
				Relevant:     []string{"coffee", "espresso", "latte", "cappuccino", "americano", "mocha", "frappuccino", "tea", "pastry", "muffin", "croissant", "wifi", "study", "laptop", "barista", "beans", "roast", "milk", "sugar", "cream"},
				Irrelevant:   []string{"alcohol", "wine", "beer", "cocktail", "burger", "pizza", "steak", "book", "clothing", "electronics", "car", "medicine", "haircut", "massage", "gym"},
				NameKeywords: []string{"coffee", "espresso", "brew", "roastery"},
			},
			{
				Name:         "bar",
				Relevant:     []string{"beer", "wine", "cocktail", "whiskey", "vodka", "rum", "gin", "tequila", "alcohol", "drink", "bartender", "happy hour", "draft", "bottle", "shot", "mixer", "appetizer", "snack", "music", "atmosphere", "nightlife"},
				Irrelevant:   []string{"book", "clothing", "electronics", "car", "phone", "computer", "medicine", "haircut", "massage", "gym", "hotel", "room", "coffee", "tea"},
				NameKeywords: []string{"bar", "pub", "tavern", "lounge", "brewery", "nightclub"},
			},
			{
				Name:         "pizza",
				Relevant:     []string{"pizza", "slice", "topping", "cheese", "pepperoni", "sausage", "mushroom", "crust", "dough", "sauce", "delivery", "takeout", "oven", "italian", "calzone", "breadsticks"},
				Irrelevant:   []string{"book", "clothing", "electronics", "car", "phone", "computer", "medicine", "haircut", "massage", "gym", "hotel", "sushi", "chinese"},
				NameKeywords: []string{"pizza", "pizzeria"},
			},

			// Retail & shopping
			{
				Name:         "bookstore",
				Relevant:     []string{"book", "novel", "author", "reading", "literature", "fiction", "non-fiction", "textbook", "magazine", "newspaper", "bookmark", "chapter", "story", "library", "study", "education", "knowledge"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "wine", "beer", "clothing", "electronics", "car", "medicine", "haircut", "massage", "gym"},
				NameKeywords: []string{"bookstore", "books", "library"},
			},
			{
				Name:         "clothing_store",
				Relevant:     []string{"shirt", "pants", "dress", "shoes", "jacket", "sweater", "jeans", "skirt", "blouse", "suit", "tie", "belt", "hat", "fashion", "style", "size", "fit", "fabric", "color", "brand", "designer"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "electronics", "car", "medicine", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"clothing", "apparel", "fashion", "boutique"},
			},
			{
				Name:         "electronics_store",
				Relevant:     []string{"phone", "computer", "laptop", "tablet", "tv", "camera", "headphones", "speaker", "charger", "cable", "battery", "screen", "keyboard", "mouse", "software", "app", "technology", "digital", "wireless"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "car", "medicine", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"electronics", "tech", "computer", "phone"},
			},
			{
				Name:         "grocery_store",
				Relevant:     []string{"groceries", "produce", "vegetables", "fruits", "meat", "dairy", "bread", "milk", "eggs", "cheese", "frozen", "canned", "organic", "fresh", "checkout", "cashier", "cart", "aisle", "shopping"},
				Irrelevant:   []string{"clothing", "electronics", "car", "phone", "computer", "medicine", "haircut", "massage", "gym", "hotel", "book", "alcohol", "bar"},
				NameKeywords: []string{"grocery", "supermarket", "market", "food store"},
			},
			{
				Name:         "pharmacy",
				Relevant:     []string{"medicine", "prescription", "medication", "pills", "pharmacy", "pharmacist", "health", "drug", "vitamin", "supplement", "treatment", "doctor", "illness", "pain", "relief", "dosage"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"pharmacy", "drugstore", "medical"},
			},

			// Services
			{
				Name:         "hair_salon",
				Relevant:     []string{"haircut", "hairstyle", "hair", "stylist", "shampoo", "conditioner", "color", "dye", "highlights", "perm", "blow-dry", "trim", "layers", "bangs", "salon", "beauty", "appointment"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "medicine", "gym", "hotel"},
				NameKeywords: []string{"salon", "hair", "barber"},
			},
			{
				Name:         "spa",
				Relevant:     []string{"massage", "facial", "spa", "relaxation", "therapy", "treatment", "wellness", "skin", "body", "aromatherapy", "hot stone", "deep tissue", "swedish", "manicure", "pedicure", "sauna"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "medicine", "gym", "hotel"},
				NameKeywords: []string{"spa", "wellness", "massage"},
			},
			{
				Name:         "gym",
				Relevant:     []string{"workout", "exercise", "fitness", "gym", "weights", "cardio", "treadmill", "trainer", "muscle", "strength", "endurance", "yoga", "pilates", "membership", "equipment", "locker", "shower"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "medicine", "haircut", "massage", "hotel"},
				NameKeywords: []string{"gym", "fitness", "health club"},
			},
			{
				Name:         "bank",
				Relevant:     []string{"account", "deposit", "withdrawal", "loan", "credit", "debit", "atm", "teller", "banking", "finance", "money", "cash", "check", "savings", "checking", "interest", "fee"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "medicine", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"bank", "credit union", "financial"},
			},

			// Automotive
			{
				Name:         "car_dealership",
				Relevant:     []string{"car", "vehicle", "auto", "truck", "suv", "sedan", "coupe", "engine", "transmission", "dealer", "salesperson", "financing", "lease", "warranty", "test drive", "mileage", "fuel"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "medicine", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"dealership", "auto", "car sales"},
			},
			{
				Name:         "gas_station",
				Relevant:     []string{"gas", "fuel", "gasoline", "diesel", "pump", "station", "convenience", "snacks", "drinks", "lottery", "cigarettes", "car wash", "oil", "windshield", "receipt"},
				Irrelevant:   []string{"restaurant", "dining", "book", "clothing", "electronics", "medicine", "haircut", "massage", "gym", "hotel", "alcohol", "bar"},
				NameKeywords: []string{"gas", "fuel", "petrol", "shell", "exxon", "bp"},
			},

			// Hospitality
			{
				Name:         "hotel",
				Relevant:     []string{"room", "bed", "bathroom", "shower", "towel", "pillow", "blanket", "tv", "wifi", "breakfast", "lobby", "front desk", "check-in", "check-out", "housekeeping", "concierge", "pool", "gym"},
				Irrelevant:   []string{"car", "phone", "computer", "book", "clothing", "medicine", "haircut", "massage", "grocery", "pharmacy"},
				NameKeywords: []string{"hotel", "inn", "resort", "motel"},
			},
			{
				Name:         "movie_theater",
				Relevant:     []string{"movie", "film", "cinema", "theater", "screen", "seat", "ticket", "popcorn", "candy", "soda", "preview", "trailer", "actor", "director", "plot", "sound", "picture"},
				Irrelevant:   []string{"car", "phone", "computer", "book", "clothing", "medicine", "haircut", "massage", "grocery", "pharmacy", "alcohol", "bar"},
				NameKeywords: []string{"theater", "cinema", "movies"},
			},

			// Healthcare
			{
				Name:         "hospital",
				Relevant:     []string{"doctor", "nurse", "patient", "treatment", "surgery", "emergency", "room", "bed", "medical", "health", "care", "medicine", "prescription", "diagnosis", "therapy", "recovery"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "haircut", "gym", "hotel"},
				NameKeywords: []string{"hospital", "medical center", "clinic"},
			},
			{
				Name:         "dental_office",
				Relevant:     []string{"teeth", "tooth", "dental", "dentist", "cleaning", "filling", "cavity", "crown", "root canal", "braces", "orthodontist", "hygienist", "floss", "brush", "mouth", "gums"},
				Irrelevant:   []string{"food", "meal", "burger", "pizza", "coffee", "alcohol", "book", "clothing", "electronics", "car", "haircut", "massage", "gym", "hotel"},
				NameKeywords: []string{"dental", "dentist", "orthodontist"},
			},
		},
		Aliases: []Alias{
			{Name: "mcdonalds", Type: "fast_food"},
			{Name: "burger king", Type: "fast_food"},
			{Name: "kfc", Type: "fast_food"},
			{Name: "subway", Type: "fast_food"},
			{Name: "taco bell", Type: "fast_food"},
			{Name: "wendys", Type: "fast_food"},
			{Name: "starbucks", Type: "coffee_shop"},
			{Name: "dunkin", Type: "coffee_shop"},
			{Name: "barnes noble", Type: "bookstore"},
			{Name: "borders", Type: "bookstore"},
			{Name: "walmart", Type: "grocery_store"},
			{Name: "target", Type: "grocery_store"},
			{Name: "cvs", Type: "pharmacy"},
			{Name: "walgreens", Type: "pharmacy"},
			{Name: "best buy", Type: "electronics_store"},
			{Name: "apple store", Type: "electronics_store"},
			{Name: "macys", Type: "clothing_store"},
			{Name: "gap", Type: "clothing_store"},
			{Name: "zara", Type: "clothing_store"},
			{Name: "h&m", Type: "clothing_store"},
			{Name: "planet fitness", Type: "gym"},
			{Name: "la fitness", Type: "gym"},
			{Name: "marriott", Type: "hotel"},
			{Name: "hilton", Type: "hotel"},
			{Name: "holiday inn", Type: "hotel"},
			{Name: "amc", Type: "movie_theater"},
			{Name: "regal", Type: "movie_theater"},
		},
	}
}
