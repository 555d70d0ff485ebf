package catalog

import "github.com/ballonsurprise/backend/pkg/enums"

// Prices are integral FCFA amounts.
const (
	CustomBasePrice = 15000
	BearPrice       = 12000
)

// Bundle is a predefined gift box offered for one occasion.
type Bundle struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	UnitPrice   int            `json:"unitPrice"`
	Components  []string       `json:"components"`
	Category    enums.Category `json:"category"`
}

// Option is a single pickable component of a custom gift.
type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

var bundles = []Bundle{
	{
		ID:          "anniversary-classic",
		Name:        "Box Anniversaire Classique",
		Description: "Ballons colorés, chocolats Ferrero et rose rouge",
		UnitPrice:   25000,
		Components:  []string{"Ballons multicolores", "Chocolats Ferrero", "Rose rouge", "Carte personnalisée"},
		Category:    enums.CategoryAnniversary,
	},
	{
		ID:          "anniversary-premium",
		Name:        "Box Anniversaire Premium",
		Description: "Collection complète avec nounours et chocolats Patchi",
		UnitPrice:   45000,
		Components:  []string{"Ballons premium", "Chocolats Patchi", "Rose blanche", "Nounours", "Biscuits Nutella"},
		Category:    enums.CategoryAnniversary,
	},
	{
		ID:          "anniversary-deluxe",
		Name:        "Box Anniversaire Deluxe",
		Description: "La box ultime pour un anniversaire inoubliable",
		UnitPrice:   65000,
		Components:  []string{"Ballons métalliques", "Chocolats Patchi & Ferrero", "Bouquet de roses", "Grand nounours", "Assortiment biscuits"},
		Category:    enums.CategoryAnniversary,
	},
	{
		ID:          "birth-tender",
		Name:        "Box Naissance Tendre",
		Description: "Douceur et tendresse pour accueillir bébé",
		UnitPrice:   30000,
		Components:  []string{"Ballons pastel", "Chocolats Raphael", "Rose blanche", "Petit nounours"},
		Category:    enums.CategoryBirth,
	},
	{
		ID:          "birth-complete",
		Name:        "Box Naissance Complète",
		Description: "Tout pour célébrer l'arrivée du nouveau-né",
		UnitPrice:   50000,
		Components:  []string{"Ballons bébé", "Chocolats Patchi", "Roses blanches", "Nounours premium", "Biscuits Oreo"},
		Category:    enums.CategoryBirth,
	},
	{
		ID:          "birth-royal",
		Name:        "Box Naissance Royale",
		Description: "Une célébration royale pour le petit prince/princesse",
		UnitPrice:   70000,
		Components:  []string{"Ballons dorés", "Collection chocolats", "Bouquet roses blanches", "Nounours géant", "Coffret biscuits"},
		Category:    enums.CategoryBirth,
	},
}

var chocolateOptions = []Option{
	{ID: "patchi", Name: "Patchi", Price: 8000},
	{ID: "ferrero", Name: "Ferrero Rocher", Price: 6000},
	{ID: "raphael", Name: "Raphael", Price: 7000},
}

var biscuitOptions = []Option{
	{ID: "nutella", Name: "Biscuits Nutella", Price: 3000},
	{ID: "oreo", Name: "Biscuits Oreo", Price: 2500},
	{ID: "twix", Name: "Twix", Price: 3500},
}

var roseOptions = []Option{
	{ID: "white", Name: "Rose Blanche", Price: 4000},
	{ID: "red", Name: "Rose Rouge", Price: 4000},
}
