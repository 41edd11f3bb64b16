package domain

const (
	CategoryCollection = "category"
	ProductCollection  = "product"
	ReviewCollection   = "review"
)

type Usage string

const (
	UsageIndoor  Usage = "interno"
	UsageOutdoor Usage = "esterno"
	UsageBoth    Usage = "entrambi"
)

// Usages lists the accepted product usages.
var Usages = []Usage{UsageIndoor, UsageOutdoor, UsageBoth}

// Finish is the paint surface finish.
type Finish string

const (
	FinishMatte     Finish = "opaco"
	FinishSilk      Finish = "seta"
	FinishGloss     Finish = "lucido"
	FinishSatin     Finish = "satinato"
	FinishDeepMatte Finish = "opaco-prof"
)

var Finishes = []Finish{
	FinishMatte, FinishSilk, FinishGloss, FinishSatin, FinishDeepMatte,
}

type (
	Category struct {
		Name        string  `json:"name" bson:"name"`
		Slug        string  `json:"slug" bson:"slug"`
		Description *string `json:"description" bson:"description"`
		HeroImage   *string `json:"hero_image" bson:"hero_image"`
	}

	Product struct {
		Title        string           `json:"title" bson:"title"`
		Description  string           `json:"description" bson:"description"`
		Category     string           `json:"category" bson:"category"`
		Usage        Usage            `json:"usage" bson:"usage"`
		BasePrice    float64          `json:"base_price" bson:"base_price"`
		Variants     []ProductVariant `json:"variants" bson:"variants"`
		TechSheetURL *string          `json:"tech_sheet_url" bson:"tech_sheet_url"`
		Images       []string         `json:"images" bson:"images"`
	}

	ProductVariant struct {
		ColorName string `json:"color_name" bson:"color_name"`
		Hex       string `json:"hex" bson:"hex"`
		Finish    Finish `json:"finish" bson:"finish"`
		Stock     int    `json:"stock" bson:"stock"`
	}

	Review struct {
		ProductID string  `json:"product_id" bson:"product_id"`
		Rating    int     `json:"rating" bson:"rating"`
		Author    string  `json:"author" bson:"author"`
		Comment   *string `json:"comment" bson:"comment"`
	}
)

// ProductQuery holds the optional product listing filters.
// Empty strings and nil bounds are not applied.
type ProductQuery struct {
	Category string
	Usage    string
	Text     string
	Color    string
	Finish   string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

func (q ProductQuery) Filter() Filter {
	var f Filter
	if q.Category != "" {
		f = append(f, Eq("category", q.Category))
	}
	if q.Usage != "" {
		f = append(f, Eq("usage", q.Usage))
	}
	if q.Text != "" {
		f = append(f, ContainsFold("title", q.Text))
	}
	if q.Color != "" {
		f = append(f, Eq("variants.hex", q.Color))
	}
	if q.Finish != "" {
		f = append(f, Eq("variants.finish", q.Finish))
	}
	if q.MinPrice != nil {
		f = append(f, GTE("base_price", *q.MinPrice))
	}
	if q.MaxPrice != nil {
		f = append(f, LTE("base_price", *q.MaxPrice))
	}
	return f
}
