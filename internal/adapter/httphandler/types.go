package httphandler

import "github.com/niksmo/drago-decor/internal/core/domain"

// Request types keep every field optional so that missing required
// fields are reported instead of silently zeroed.

type (
	categoryRequest struct {
		Name        *string `json:"name" validate:"required"`
		Slug        *string `json:"slug" validate:"required"`
		Description *string `json:"description"`
		HeroImage   *string `json:"hero_image" validate:"omitempty,http_url"`
	}

	productRequest struct {
		Title        *string          `json:"title" validate:"required"`
		Description  *string          `json:"description" validate:"required"`
		Category     *string          `json:"category" validate:"required"`
		Usage        *string          `json:"usage" validate:"omitempty,usage"`
		BasePrice    *float64         `json:"base_price" validate:"required,gte=0"`
		Variants     []variantRequest `json:"variants" validate:"dive"`
		TechSheetURL *string          `json:"tech_sheet_url" validate:"omitempty,http_url"`
		Images       []string         `json:"images" validate:"dive,http_url"`
	}

	variantRequest struct {
		ColorName *string  `json:"color_name" validate:"required"`
		Hex       *string  `json:"hex" validate:"required"`
		Finish    *string  `json:"finish" validate:"omitempty,finish"`
		Stock     *integer `json:"stock" validate:"omitempty,gte=0"`
	}

	reviewRequest struct {
		ProductID *string  `json:"product_id" validate:"required"`
		Rating    *integer `json:"rating" validate:"required,min=1,max=5"`
		Author    *string  `json:"author" validate:"required"`
		Comment   *string  `json:"comment"`
	}

	cartItemRequest struct {
		ProductID  *string  `json:"product_id" validate:"required"`
		VariantHex *string  `json:"variant_hex"`
		Quantity   *integer `json:"quantity" validate:"omitempty,gte=1"`
		UnitPrice  *float64 `json:"unit_price" validate:"required,gte=0"`
	}

	orderRequest struct {
		UserEmail *string           `json:"user_email" validate:"required"`
		Items     []cartItemRequest `json:"items" validate:"required,dive"`
		Total     *float64          `json:"total" validate:"required,gte=0"`
		Status    *string           `json:"status" validate:"omitempty,order_status"`
	}

	blogPostRequest struct {
		Title   *string  `json:"title" validate:"required"`
		Slug    *string  `json:"slug" validate:"required"`
		Content *string  `json:"content" validate:"required"`
		Cover   *string  `json:"cover" validate:"omitempty,http_url"`
		Tags    []string `json:"tags"`
	}

	contactRequest struct {
		Name    *string `json:"name" validate:"required"`
		Email   *string `json:"email" validate:"required"`
		Message *string `json:"message" validate:"required"`
	}

	professionalRequest struct {
		BusinessName *string `json:"business_name" validate:"required"`
		VAT          *string `json:"vat"`
		Email        *string `json:"email" validate:"required"`
		Tier         *string `json:"tier" validate:"omitempty,tier"`
	}

	coverageRequest struct {
		MQ          *float64 `json:"mq" validate:"required"`
		Mano        *integer `json:"mano"`
		ResaMQLitro *float64 `json:"resa_mq_litro"`
	}
)

type (
	contactResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	coverageResponse struct {
		Litri float64 `json:"litri"`
	}

	rootResponse struct {
		Brand  string `json:"brand"`
		Status string `json:"status"`
	}

	diagnosticsResponse struct {
		Backend          string   `json:"backend"`
		Database         string   `json:"database"`
		DatabaseURL      string   `json:"database_url"`
		DatabaseName     string   `json:"database_name"`
		ConnectionStatus string   `json:"connection_status"`
		Collections      []string `json:"collections"`
	}
)

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (req categoryRequest) toDomain() (domain.Category, error) {
	if err := validateRequest(req); err != nil {
		return domain.Category{}, err
	}
	return domain.Category{
		Name:        *req.Name,
		Slug:        *req.Slug,
		Description: req.Description,
		HeroImage:   req.HeroImage,
	}, nil
}

func (req productRequest) toDomain() (domain.Product, error) {
	if err := validateRequest(req); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		Title:        *req.Title,
		Description:  *req.Description,
		Category:     *req.Category,
		Usage:        domain.Usage(orDefault(req.Usage, string(domain.UsageIndoor))),
		BasePrice:    *req.BasePrice,
		Variants:     make([]domain.ProductVariant, len(req.Variants)),
		TechSheetURL: req.TechSheetURL,
		Images:       nonNil(req.Images),
	}
	for i, v := range req.Variants {
		p.Variants[i] = domain.ProductVariant{
			ColorName: *v.ColorName,
			Hex:       *v.Hex,
			Finish:    domain.Finish(orDefault(v.Finish, string(domain.FinishMatte))),
			Stock:     int(orDefault(v.Stock, 0)),
		}
	}
	return p, nil
}

func (req reviewRequest) toDomain() (domain.Review, error) {
	if err := validateRequest(req); err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		ProductID: *req.ProductID,
		Rating:    int(*req.Rating),
		Author:    *req.Author,
		Comment:   req.Comment,
	}, nil
}

func (req orderRequest) toDomain() (domain.Order, error) {
	if err := validateRequest(req); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		UserEmail: *req.UserEmail,
		Items:     make([]domain.CartItem, len(req.Items)),
		Total:     *req.Total,
		Status:    domain.OrderStatus(orDefault(req.Status, string(domain.OrderPending))),
	}
	for i, item := range req.Items {
		o.Items[i] = domain.CartItem{
			ProductID:  *item.ProductID,
			VariantHex: item.VariantHex,
			Quantity:   int(orDefault(item.Quantity, 1)),
			UnitPrice:  *item.UnitPrice,
		}
	}
	return o, nil
}

func (req blogPostRequest) toDomain() (domain.BlogPost, error) {
	if err := validateRequest(req); err != nil {
		return domain.BlogPost{}, err
	}
	return domain.BlogPost{
		Title:   *req.Title,
		Slug:    *req.Slug,
		Content: *req.Content,
		Cover:   req.Cover,
		Tags:    nonNil(req.Tags),
	}, nil
}

func (req contactRequest) toDomain() (domain.ContactMessage, error) {
	if err := validateRequest(req); err != nil {
		return domain.ContactMessage{}, err
	}
	return domain.ContactMessage{
		Name:    *req.Name,
		Email:   *req.Email,
		Message: *req.Message,
	}, nil
}

func (req professionalRequest) toDomain() (domain.Professional, error) {
	if err := validateRequest(req); err != nil {
		return domain.Professional{}, err
	}
	return domain.Professional{
		BusinessName: *req.BusinessName,
		VAT:          req.VAT,
		Email:        *req.Email,
		Tier:         domain.Tier(orDefault(req.Tier, string(domain.TierStandard))),
	}, nil
}
