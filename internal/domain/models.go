package domain

// RawProduct is a catalog record as the data source supplies it.
// Images is a single comma-separated string.
type RawProduct struct {
	ID       string   `db:"id" json:"id" yaml:"id"`
	Name     string   `db:"name" json:"name" yaml:"name"`
	Summary  string   `db:"summary" json:"summary" yaml:"summary"`
	Category string   `db:"category" json:"category" yaml:"category"`
	Price    float64  `db:"price" json:"price" yaml:"price"`
	OldPrice *float64 `db:"old_price" json:"old_price,omitempty" yaml:"old_price,omitempty"`
	Stock    int      `db:"stock" json:"stock" yaml:"stock"`
	Images   string   `db:"images" json:"images" yaml:"images"`
}

type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Summary  string   `json:"summary,omitempty"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	OldPrice *float64 `json:"old_price,omitempty"`
	Stock    int      `json:"stock"`
	Images   []string `json:"images"`
}

// OnOffer reports whether the product carries a previous price above the current one.
func (p Product) OnOffer() bool {
	return p.OldPrice != nil && *p.OldPrice > p.Price
}

// FirstImage is the image cached on cart lines; "" when the product has none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Summary  string   `json:"summary,omitempty"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	OldPrice *float64 `json:"old_price,omitempty"`
	Stock    int      `json:"stock"`
	Images   []string `json:"images"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image"`
}

// NewCartItem snapshots p into a line with quantity 1.
func NewCartItem(p Product) CartItem {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Summary:  p.Summary,
		Category: p.Category,
		Price:    p.Price,
		OldPrice: p.OldPrice,
		Stock:    p.Stock,
		Images:   images,
		Quantity: 1,
		Image:    p.FirstImage(),
	}
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FiltersState struct {
	SearchTerm string     `json:"searchTerm"`
	Category   string     `json:"category"`
	PriceRange PriceRange `json:"priceRange"`
	StockOnly  bool       `json:"stockOnly"`
}

// FiltersPatch is a partial FiltersState; nil fields are left untouched on merge.
type FiltersPatch struct {
	SearchTerm *string     `json:"searchTerm,omitempty"`
	Category   *string     `json:"category,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	StockOnly  *bool       `json:"stockOnly,omitempty"`
}

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

type Notification struct {
	ID      int64            `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// HeaderStat is one entry of the storefront header stats strip.
type HeaderStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
