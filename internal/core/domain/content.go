package domain

const (
	BlogPostCollection       = "blogpost"
	ContactMessageCollection = "contactmessage"
	ProfessionalCollection   = "professional"
)

// Tier is the partnership level of a professional account.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPro      Tier = "pro"
	TierElite    Tier = "elite"
)

var Tiers = []Tier{TierStandard, TierPro, TierElite}

type (
	BlogPost struct {
		Title   string   `json:"title" bson:"title"`
		Slug    string   `json:"slug" bson:"slug"`
		Content string   `json:"content" bson:"content"`
		Cover   *string  `json:"cover" bson:"cover"`
		Tags    []string `json:"tags" bson:"tags"`
	}

	ContactMessage struct {
		Name    string `json:"name" bson:"name"`
		Email   string `json:"email" bson:"email"`
		Message string `json:"message" bson:"message"`
	}

	Professional struct {
		BusinessName string  `json:"business_name" bson:"business_name"`
		VAT          *string `json:"vat" bson:"vat"`
		Email        string  `json:"email" bson:"email"`
		Tier         Tier    `json:"tier" bson:"tier"`
	}
)
