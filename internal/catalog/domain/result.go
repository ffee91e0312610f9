package domain

// FacetOptions are the selectable values of each facet across unsold
// listings. Models is only populated when at least one make is selected.
type FacetOptions struct {
	Makes         Set[string]       `json:"makes"`
	Models        Set[string]       `json:"models"`
	FuelTypes     Set[FuelType]     `json:"fuelTypes"`
	DriveTypes    Set[DriveType]    `json:"driveTypes"`
	Transmissions Set[Transmission] `json:"transmissions"`
}

// ResultPage is everything the listings page renders for one FilterState.
type ResultPage struct {
	Listings []Listing `json:"listings"`
	Pagination
	Options FacetOptions `json:"options"`

	// Filter is the state the page was computed for. It differs from the
	// requested state when selected models were pruned.
	Filter         FilterState `json:"-"`
	CanonicalQuery string      `json:"query"`
	Pruned         bool        `json:"-"`
	Notices        []string    `json:"notices,omitempty"`
}

func (r *ResultPage) Empty() bool { return len(r.Listings) == 0 }
