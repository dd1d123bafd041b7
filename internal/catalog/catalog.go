// Package catalog holds the fixed display data of the site: the feature
// cards and the product catalog. Both lists are built once and never
// mutated; accessors hand out copies.
package catalog

// Feature is one informational card.
type Feature struct {
	ID          int
	Icon        string
	Title       string
	Description string
}

// Product is one catalog entry. Image is a color swatch, not a URL.
type Product struct {
	ID          int
	Name        string
	Type        string
	Price       string
	Image       string
	Description string
}

// Wood categories used by Product.Type.
const (
	TypeHardwood = "Madera Dura"
	TypeSoftwood = "Madera Blanda"
)

var features = []Feature{
	{
		ID:          1,
		Icon:        "fas fa-leaf",
		Title:       "Abastecimiento Sostenible",
		Description: "Toda nuestra madera proviene de bosques gestionados responsablemente con certificación FSC",
	},
	{
		ID:          2,
		Icon:        "fas fa-award",
		Title:       "Calidad Premium",
		Description: "Madera seleccionada a mano con patrones de veta superiores y durabilidad",
	},
	{
		ID:          3,
		Icon:        "fas fa-cogs",
		Title:       "Procesamiento Personalizado",
		Description: "Servicios de corte y acabado personalizados para cumplir con tus especificaciones exactas",
	},
	{
		ID:          4,
		Icon:        "fas fa-shipping-fast",
		Title:       "Entrega Rápida",
		Description: "Servicio de entrega rápido y confiable a tu ubicación a nivel nacional",
	},
}

var products = []Product{
	{
		ID:          1,
		Name:        "Tablones de Roble Premium",
		Type:        TypeHardwood,
		Price:       "Desde $45/pie²",
		Image:       "#d2b48c",
		Description: "Hermosos tablones de roble perfectos para pisos y fabricación de muebles",
	},
	{
		ID:          2,
		Name:        "Madera de Cedro",
		Type:        TypeSoftwood,
		Price:       "Desde $28/pie²",
		Image:       "#deb887",
		Description: "Madera de cedro aromática ideal para proyectos exteriores y closets",
	},
	{
		ID:          3,
		Name:        "Tablas de Nogal",
		Type:        TypeHardwood,
		Price:       "Desde $65/pie²",
		Image:       "#cd853f",
		Description: "Rica madera de nogal con patrones de veta impresionantes para proyectos premium",
	},
	{
		ID:          4,
		Name:        "Pino para Construcción",
		Type:        TypeSoftwood,
		Price:       "Desde $18/pie²",
		Image:       "#f4e4bc",
		Description: "Madera de pino confiable para aplicaciones de construcción y enmarcado",
	},
}

// Features returns the feature cards in display order.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// Products returns the catalog in display order.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ProductByID looks a product up by its id.
func ProductByID(id int) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// WoodTypes lists the product names offered in the contact form's
// wood type selector, in catalog order.
func WoodTypes() []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
