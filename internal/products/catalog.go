package product

import (
	"github.com/paoquentinho/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	imageFrenchBread   = "/assets/french-bread.jpg"
	imageChocolateCake = "/assets/chocolate-cake.jpg"
	imageCoxinha       = "/assets/coxinha.jpg"
	imagePaoDeQueijo   = "/assets/pao-de-queijo.jpg"
)

// CustomCakeProductID is the catalog entry configured through the cake builder.
const CustomCakeProductID = "bolo-personalizado"

func readyToTake(id, name, description, price, image string, category enums.ProductCategory) Product {
	return Product{
		ID:            id,
		Name:          name,
		Description:   description,
		Price:         decimal.RequireFromString(price),
		Image:         image,
		Category:      category,
		IsAvailable:   true,
		IsReadyToTake: true,
	}
}

var catalog = []Product{
	readyToTake("pao-frances", "Pão Francês", "Nosso clássico pão francês, crocante por fora e macio por dentro", "0.75", imageFrenchBread, enums.ProductCategoryBread),
	readyToTake("pao-de-queijo", "Pão de Queijo", "Pão de queijo mineiro autêntico, quentinho e sequinho", "2.50", imagePaoDeQueijo, enums.ProductCategoryBread),
	readyToTake("pao-integral", "Pão Integral", "Pão integral com grãos e sementes, nutritivo e saboroso", "8.90", imageFrenchBread, enums.ProductCategoryBread),
	readyToTake("croissant", "Croissant", "Croissant francês folhado e amanteigado", "4.50", imageFrenchBread, enums.ProductCategoryBread),

	readyToTake("misto-quente", "Misto Quente", "Sanduíche quente com queijo e presunto no pão de forma", "6.50", imageCoxinha, enums.ProductCategorySnacks),
	readyToTake("pao-na-chapa", "Pão na Chapa", "Pão francês tostado na chapa com manteiga", "3.50", imageFrenchBread, enums.ProductCategorySnacks),
	readyToTake("sanduiche-natural", "Sanduíche Natural", "Sanduíche natural com peito de peru, queijo branco e salada", "12.90", imageCoxinha, enums.ProductCategorySnacks),
	readyToTake("bauru", "Bauru", "Sanduíche Bauru com rosbife, queijo, tomate e pickles", "15.90", imageCoxinha, enums.ProductCategorySnacks),

	readyToTake("bolo-chocolate", "Bolo de Chocolate", "Bolo de chocolate com cobertura cremosa, uma delícia irresistível", "35.90", imageChocolateCake, enums.ProductCategoryCakes),
	readyToTake("bolo-cenoura", "Bolo de Cenoura com Chocolate", "Tradicional bolo de cenoura com cobertura de chocolate", "32.90", imageChocolateCake, enums.ProductCategoryCakes),
	readyToTake("bolo-fuba", "Bolo de Fubá", "Bolo de fubá cremoso com erva-doce", "28.90", imageChocolateCake, enums.ProductCategoryCakes),
	readyToTake("bolo-laranja", "Bolo de Laranja", "Bolo de laranja com calda cítrica refrescante", "30.90", imageChocolateCake, enums.ProductCategoryCakes),
	{
		ID:             CustomCakeProductID,
		Name:           "Bolo Personalizado",
		Description:    "Crie seu bolo dos sonhos escolhendo massa, recheio e cobertura",
		Price:          decimal.RequireFromString("45.00"),
		Image:          imageChocolateCake,
		Category:       enums.ProductCategoryCakes,
		IsCustomizable: true,
		IsAvailable:    true,
		IsReadyToTake:  false,
	},

	readyToTake("coxinha", "Coxinha de Frango", "Coxinha tradicional com recheio generoso de frango desfiado", "4.50", imageCoxinha, enums.ProductCategorySavories),
	readyToTake("empada-frango", "Empada de Frango", "Empada artesanal com recheio de frango e catupiry", "5.50", imageCoxinha, enums.ProductCategorySavories),
	readyToTake("pastel-assado", "Pastel Assado", "Pastel assado crocante com recheio de carne", "6.50", imageCoxinha, enums.ProductCategorySavories),
	readyToTake("enroladinho", "Enroladinho de Salsicha", "Massa folhada enrolada com salsicha", "4.00", imageCoxinha, enums.ProductCategorySavories),
	readyToTake("quiche-queijo", "Quiche de Queijo", "Quiche cremosa com queijo e ervas finas", "8.50", imageCoxinha, enums.ProductCategorySavories),

	readyToTake("cafe-expresso", "Café Expresso", "Café expresso encorpado e aromático", "3.50", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("cafe-com-leite", "Café com Leite", "Café com leite cremoso na medida certa", "4.50", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("cappuccino", "Cappuccino", "Cappuccino cremoso com espuma de leite", "6.50", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("suco-laranja", "Suco de Laranja", "Suco natural de laranja fresquinho", "5.50", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("suco-abacaxi", "Suco de Abacaxi", "Suco natural de abacaxi doce e refrescante", "5.50", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("refrigerante", "Refrigerante", "Refrigerante gelado - Coca-Cola, Guaraná ou Fanta", "4.00", imageCoxinha, enums.ProductCategoryBeverages),
	readyToTake("agua", "Água", "Água mineral gelada 500ml", "2.50", imageCoxinha, enums.ProductCategoryBeverages),
}

func choice(value, label string, price int64) OptionChoice {
	return OptionChoice{Value: value, Label: label, Price: decimal.NewFromInt(price)}
}

var cakeOptions = OptionCatalog{
	Massa: []OptionChoice{
		choice("chocolate", "Chocolate", 0),
		choice("baunilha", "Baunilha", 0),
		choice("cenoura", "Cenoura", 0),
		choice("chocolate-premium", "Chocolate Premium", 5),
		choice("red-velvet", "Red Velvet", 8),
	},
	Recheio: []OptionChoice{
		choice("brigadeiro", "Brigadeiro", 0),
		choice("doce-de-leite", "Doce de Leite", 0),
		choice("creme-frutas", "Creme de Frutas", 0),
		choice("nutella", "Nutella", 10),
		choice("doce-de-leite-argentino", "Doce de Leite Argentino", 7),
	},
	Cobertura: []OptionChoice{
		choice("chantilly", "Chantilly", 0),
		choice("chocolate", "Chocolate", 0),
		choice("glace", "Glacê", 0),
		choice("fondant", "Fondant", 15),
		choice("chantilly-com-frutas", "Chantilly com Frutas", 8),
	},
}

// PickupSlots are the times a scheduled cake can be collected.
var PickupSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00", "18:00"}

// Options returns a copy of the priced-option catalog.
func Options() OptionCatalog {
	return OptionCatalog{
		Massa:     append([]OptionChoice(nil), cakeOptions.Massa...),
		Recheio:   append([]OptionChoice(nil), cakeOptions.Recheio...),
		Cobertura: append([]OptionChoice(nil), cakeOptions.Cobertura...),
	}
}

// Surcharge returns the price added by a choice on the given axis list.
// Values match option ids exactly; anything else adds zero.
func Surcharge(choices []OptionChoice, value string) decimal.Decimal {
	if c, ok := findChoice(choices, value); ok {
		return c.Price
	}
	return decimal.Zero
}

func findChoice(choices []OptionChoice, value string) (OptionChoice, bool) {
	if value == "" {
		return OptionChoice{}, false
	}
	for _, c := range choices {
		if c.Value == value {
			return c, true
		}
	}
	return OptionChoice{}, false
}
