package web

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

const listingsPath = "/listings"

func listingsHref(f domain.FilterState) string {
	if q := f.Encode(); q != "" {
		return listingsPath + "?" + q
	}
	return listingsPath
}

type cardView struct {
	Href     string
	Title    string
	Year     int
	Price    string
	Mileage  string
	ImageURL string
	ImageAlt string
	Sold     bool
}

type optionView struct {
	Label    string
	Value    string
	Selected bool
	Href     string
}

type pageLinkView struct {
	Number   int
	Href     string
	Current  bool
	Ellipsis bool
}

type paginationView struct {
	Show      bool
	FirstItem int64
	LastItem  int64
	Total     int64
	PrevHref  string
	NextHref  string
	Links     []pageLinkView
	PageSizes []optionView
}

type hiddenField struct {
	Name  string
	Value string
}

type listingsView struct {
	Cards   []cardView
	Total   int64
	Keyword string

	MinPrice   string
	MaxPrice   string
	MinMileage string
	MaxMileage string
	// Hidden carries the facet selections through the keyword/range form.
	Hidden []hiddenField

	Makes         []optionView
	Models        []optionView
	FuelTypes     []optionView
	DriveTypes    []optionView
	Transmissions []optionView
	Sorts         []optionView

	Pagination  paginationView
	HasFilters  bool
	ClearHref   string
	Notices     []string
	Unavailable bool
}

type specRow struct {
	Label string
	Value string
}

type imageView struct {
	URL string
	Alt string
}

type detailView struct {
	Title       string
	Slug        string
	Price       string
	Sold        bool
	Specs       []specRow
	Images      []imageView
	Features    []string
	DamageTags  []string
	ContactHref string
}

type homeView struct {
	Latest []cardView
}

type contactView struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	ListingSlug string
	Error       string
	Sent        bool
}

func (s *Server) imageURL(ctx context.Context, img *domain.Image) string {
	if img == nil || img.AssetRef == "" {
		return ""
	}
	return s.assets.URL(ctx, img.AssetRef)
}

func (s *Server) cards(ctx context.Context, ls []domain.Listing) []cardView {
	out := make([]cardView, 0, len(ls))
	for i := range ls {
		l := &ls[i]
		c := cardView{
			Href:     "/cars/" + l.Slug,
			Title:    l.Title,
			Year:     l.Year,
			Price:    formatPrice(l.Price),
			Mileage:  formatMileage(l.Mileage, l.MileageUnit),
			ImageURL: s.imageURL(ctx, l.MainImage),
			ImageAlt: l.Title,
			Sold:     l.IsSold(),
		}
		if l.MainImage != nil && l.MainImage.Alt != "" {
			c.ImageAlt = l.MainImage.Alt
		}
		out = append(out, c)
	}
	return out
}

func formValue(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

// hiddenParams are the selections the keyword/range form carries along.
// Page is left out so a new search starts on the first page.
var hiddenParams = []string{
	domain.ParamMakes, domain.ParamModels, domain.ParamFuelTypes, domain.ParamDriveTypes,
	domain.ParamTransmissions, domain.ParamSort, domain.ParamPageSize,
}

func hiddenFields(v url.Values) []hiddenField {
	var out []hiddenField
	for _, key := range hiddenParams {
		if val := v.Get(key); val != "" {
			out = append(out, hiddenField{Name: key, Value: val})
		}
	}
	return out
}

func stringOptions(available, selected domain.Set[string], toggle func(string) domain.FilterState) []optionView {
	all := available.Union(selected)
	out := make([]optionView, 0, len(all))
	for _, v := range all {
		out = append(out, optionView{Label: v, Value: v, Selected: selected.Contains(v), Href: listingsHref(toggle(v))})
	}
	return out
}

func enumOptions[T ~string](available, selected domain.Set[T], labels map[T]string, toggle func(T) domain.FilterState) []optionView {
	all := available.Union(selected)
	out := make([]optionView, 0, len(all))
	for _, v := range all {
		out = append(out, optionView{Label: label(labels, v), Value: string(v), Selected: selected.Contains(v), Href: listingsHref(toggle(v))})
	}
	return out
}

func newPaginationView(f domain.FilterState, p domain.Pagination) paginationView {
	v := paginationView{
		Show:      p.TotalPages > 1,
		FirstItem: p.FirstItem(),
		LastItem:  p.LastItem(),
		Total:     p.TotalCount,
	}
	if p.HasPrev() {
		v.PrevHref = listingsHref(f.WithPage(p.Page - 1))
	}
	if p.HasNext() {
		v.NextHref = listingsHref(f.WithPage(p.Page + 1))
	}
	for _, n := range p.Pages() {
		if n == 0 {
			v.Links = append(v.Links, pageLinkView{Ellipsis: true})
			continue
		}
		v.Links = append(v.Links, pageLinkView{Number: n, Href: listingsHref(f.WithPage(n)), Current: n == p.Page})
	}
	for _, size := range domain.PageSizes {
		v.PageSizes = append(v.PageSizes, optionView{
			Label:    strconv.Itoa(size),
			Value:    strconv.Itoa(size),
			Selected: size == f.PageSize,
			Href:     listingsHref(f.WithPageSize(size)),
		})
	}
	return v
}

func (s *Server) newListingsView(ctx context.Context, page *domain.ResultPage, unavailable bool) listingsView {
	f := page.Filter
	v := listingsView{
		Cards:       s.cards(ctx, page.Listings),
		Total:       page.TotalCount,
		Keyword:     f.Keyword,
		MinPrice:    formValue(f.MinPrice),
		MaxPrice:    formValue(f.MaxPrice),
		MinMileage:  formValue(f.MinMileage),
		MaxMileage:  formValue(f.MaxMileage),
		Hidden:      hiddenFields(f.Values()),
		Pagination:  newPaginationView(f, page.Pagination),
		HasFilters:  f.HasFilters(),
		ClearHref:   listingsHref(f.Cleared()),
		Notices:     page.Notices,
		Unavailable: unavailable,
	}

	v.Makes = stringOptions(page.Options.Makes, f.Makes, f.ToggleMake)
	if f.Makes.Len() > 0 {
		v.Models = stringOptions(page.Options.Models, f.Models, f.ToggleModel)
	}
	v.FuelTypes = enumOptions(page.Options.FuelTypes, f.FuelTypes, fuelLabels, f.ToggleFuelType)
	v.DriveTypes = enumOptions(page.Options.DriveTypes, f.DriveTypes, driveLabels, f.ToggleDriveType)
	v.Transmissions = enumOptions(page.Options.Transmissions, f.Transmissions, transmissionLabels, f.ToggleTransmission)

	for _, k := range domain.SortKeys {
		v.Sorts = append(v.Sorts, optionView{
			Label:    sortLabels[k],
			Value:    string(k),
			Selected: k == f.Sort,
			Href:     listingsHref(f.WithSort(k)),
		})
	}
	return v
}

func (s *Server) newDetailView(ctx context.Context, l *domain.Listing) detailView {
	regions := "Upon request"
	if len(l.DeliveryRegions) > 0 {
		regions = strings.Join(l.DeliveryRegions, ", ")
	}
	origin := l.OriginCountry
	if origin == "" {
		origin = notAvailable
	}

	v := detailView{
		Title: l.Title,
		Slug:  l.Slug,
		Price: formatPrice(l.Price),
		Sold:  l.IsSold(),
		Specs: []specRow{
			{"Year", strconv.Itoa(l.Year)},
			{"Make", l.Make},
			{"Model", l.Model},
			{"Mileage", formatMileage(l.Mileage, l.MileageUnit)},
			{"Engine", formatEngine(l.EngineDisplacement, l.EngineLayout)},
			{"Fuel", label(fuelLabels, l.FuelType)},
			{"Drive", label(driveLabels, l.DriveType)},
			{"Transmission", label(transmissionLabels, l.Transmission)},
			{"Origin Country", origin},
			{"Delivery Regions", regions},
		},
		Features:    l.Features,
		DamageTags:  l.DamageTags,
		ContactHref: "/contact?" + url.Values{"listing": {l.Slug}}.Encode(),
	}

	if u := s.imageURL(ctx, l.MainImage); u != "" {
		v.Images = append(v.Images, imageView{URL: u, Alt: altOr(l.MainImage.Alt, l.Title)})
	}
	for i := range l.Gallery {
		if u := s.imageURL(ctx, &l.Gallery[i]); u != "" {
			v.Images = append(v.Images, imageView{URL: u, Alt: altOr(l.Gallery[i].Alt, l.Title)})
		}
	}
	return v
}

func altOr(alt, fallback string) string {
	if alt != "" {
		return alt
	}
	return fallback
}
