package services

import (
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
)

func mapCategory(row *tables.Category) structs.Category {
	return structs.Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Image:       row.Image,
		CreatedAt:   lib.FormatTimestamp(row.CreatedAt),
		UpdatedAt:   lib.FormatTimestamp(row.UpdatedAt),
	}
}

func mapProduct(row *tables.Product) structs.Product {
	tiers := make([]structs.BulkPricingTier, 0, len(row.BulkPricing))
	for _, t := range row.BulkPricing {
		tiers = append(tiers, structs.BulkPricingTier{MinQty: t.MinQuantity, Price: t.Price})
	}
	images := make([]string, 0, len(row.Images))
	for _, img := range row.Images {
		images = append(images, img.URL)
	}

	return structs.Product{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		Price:       row.Price,
		BulkPricing: tiers,
		Category:    row.CategoryID,
		Images:      images,
		Stock:       row.Stock,
		CreatedAt:   lib.FormatTimestamp(row.CreatedAt),
		UpdatedAt:   lib.FormatTimestamp(row.UpdatedAt),
	}
}

func mapCustomer(row *tables.Customer) structs.Customer {
	if row == nil {
		return structs.Customer{}
	}
	return structs.Customer{
		ID:        row.ID,
		Name:      row.Name,
		Company:   row.Company,
		Email:     row.Email,
		Phone:     row.Phone,
		TaxNumber: row.TaxNumber,
		Address:   row.Address,
		City:      row.City,
		Notes:     row.Notes,
	}
}

// mapOrder attributes each item to categories[productID], "other" when unknown.
func mapOrder(row *tables.Order, categories map[string]string) structs.Order {
	items := make([]structs.OrderItem, 0, len(row.Items))
	for _, it := range row.Items {
		category, ok := categories[it.ProductID]
		if !ok || category == "" {
			category = uncategorized
		}
		items = append(items, structs.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Category:  category,
		})
	}

	metadata := row.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return structs.Order{
		ID:       row.ID,
		Status:   row.Status,
		Customer: mapCustomer(row.Customer),
		Items:    items,
		Totals: structs.OrderTotals{
			Subtotal:      row.Subtotal,
			Currency:      row.Currency,
			DiscountTotal: row.DiscountTotal,
			ShippingTotal: row.ShippingTotal,
			Total:         row.Total,
		},
		Metadata:  metadata,
		CreatedAt: lib.FormatTimestamp(row.CreatedAt),
		UpdatedAt: lib.FormatTimestamp(row.UpdatedAt),
	}
}

func mapMedia(row *tables.MediaAsset) structs.MediaAsset {
	metadata := row.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return structs.MediaAsset{
		ID:           row.ID,
		StorageKey:   row.StorageKey,
		Filename:     row.Filename,
		OriginalName: row.OriginalName,
		MimeType:     row.MimeType,
		Size:         row.Size,
		URL:          row.URL,
		Checksum:     row.Checksum,
		Metadata:     metadata,
		CreatedAt:    lib.FormatTimestamp(row.CreatedAt),
		UpdatedAt:    lib.FormatTimestamp(row.UpdatedAt),
	}
}

func mapLandingMedia(row *tables.LandingMedia) structs.LandingMedia {
	gallery := make([]string, 0, len(row.Gallery))
	for _, g := range row.Gallery {
		gallery = append(gallery, g.URL)
	}
	highlights := make([]structs.MediaHighlight, 0, len(row.Highlights))
	for _, h := range row.Highlights {
		highlights = append(highlights, structs.MediaHighlight{Title: h.Title, Caption: h.Caption, Image: h.Image})
	}
	return structs.LandingMedia{
		ID:              row.ID,
		HeroVideo:       structs.HeroVideo{Src: row.HeroVideoSrc, Poster: row.HeroVideoPoster},
		HeroGallery:     gallery,
		MediaHighlights: highlights,
	}
}

func mapSampleRequest(row *tables.SampleRequest) structs.SampleRequest {
	return structs.SampleRequest{
		ID:        row.ID,
		Name:      row.Name,
		Company:   row.Company,
		Email:     row.Email,
		Phone:     row.Phone,
		Product:   row.Product,
		Quantity:  row.Quantity,
		Notes:     row.Notes,
		Status:    row.Status,
		CreatedAt: lib.FormatTimestamp(row.CreatedAt),
		UpdatedAt: lib.FormatTimestamp(row.UpdatedAt),
	}
}
