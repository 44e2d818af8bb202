package seed

import (
	"time"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

// Los fixtures referencian vendedores por account id y categorías por
// nombre: los ids reales los asigna cada backend al crear.

type sellerFixture struct {
	accountID string
	profile   repository.Profile
}

type productFixture struct {
	name          string
	description   string
	price         float64
	imageURLs     []string
	sellerAccount string
	categories    []string
}

type fixtureSet struct {
	sellers    []sellerFixture
	categories []string
	products   []productFixture
}

var peter = sellerFixture{
	accountID: "acc-391",
	profile: repository.Profile{
		FirstName: "Peter",
		LastName:  "Smith",
		Website:   "https://petersmith.example.com",
		Birthday:  time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Address:   "742 Evergreen Terrace",
		Email:     "peter.smith@example.com",
		Gender:    types.GenderMale,
	},
}

var mary = sellerFixture{
	accountID: "acc-392",
	profile: repository.Profile{
		FirstName: "Mary",
		LastName:  "Jones",
		Website:   "https://maryjones.example.com",
		Birthday:  time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC),
		Address:   "12 Baker Street",
		Email:     "mary.jones@example.com",
		Gender:    types.GenderFemale,
	},
}

var categoryNames = []string{"Furniture", "Handmade", "Kitchen", "Wood"}

var woodenDesk = productFixture{
	name:          "A Wooden Desk",
	description:   "Solid reclaimed oak, hand finished.",
	price:         249.99,
	imageURLs:     []string{"https://img.example.com/desk-front.jpg", "https://img.example.com/desk-side.jpg"},
	sellerAccount: peter.accountID,
	categories:    []string{"Wood", "Handmade"},
}

var diningChair = productFixture{
	name:          "Antique Dining Chair",
	description:   "Victorian era, reupholstered.",
	price:         234.20,
	imageURLs:     []string{"https://img.example.com/chair.jpg"},
	sellerAccount: mary.accountID,
	categories:    []string{"Furniture"},
}

var bambooSpoon = productFixture{
	name:          "Bamboo Spoon",
	description:   "Carved cooking spoon.",
	price:         13.11,
	sellerAccount: peter.accountID,
	categories:    []string{"Handmade", "Wood", "Kitchen"},
}

// documentSet es el fixture del backend de documentos: un solo
// vendedor con los tres productos.
var documentSet = fixtureSet{
	sellers:    []sellerFixture{peter},
	categories: categoryNames,
	products: []productFixture{
		withSeller(woodenDesk, peter.accountID),
		withSeller(diningChair, peter.accountID),
		bambooSpoon,
	},
}

// relationalSet es el fixture del backend relacional: dos vendedores y
// dos productos repartidos entre ellos.
var relationalSet = fixtureSet{
	sellers:    []sellerFixture{peter, mary},
	categories: categoryNames,
	products:   []productFixture{woodenDesk, diningChair},
}

func withSeller(p productFixture, accountID string) productFixture {
	p.sellerAccount = accountID
	return p
}

// fixturesFor elige el set según el backend. Cualquier backend que no
// sea el relacional (memoria incluida) recibe el set de documentos.
func fixturesFor(backend string) fixtureSet {
	if backend == "mysql" {
		return relationalSet
	}
	return documentSet
}
