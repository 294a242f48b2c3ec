// Package refdata holds the static reference catalogs served by the bot:
// Philippine environmental laws and disaster-preparedness topics.
// All catalogs are immutable for the process lifetime.
package refdata

// Law describes one Philippine environmental law entry.
type Law struct {
	ID           string
	Title        string
	Summary      string
	IRR          string
	Penalty      string
	Imprisonment string
	Link         string
}

var laws = []Law{
	{
		ID:           "law_air",
		Title:        "RA 8749 – Philippine Clean Air Act (1999)",
		Summary:      "Aims to achieve and maintain clean air that meets national air quality standards.",
		IRR:          "DENR Administrative Order No. 2000-81",
		Penalty:      "Fines up to ₱100,000/day per violation",
		Imprisonment: "Up to 6 years",
		Link:         "https://emb.gov.ph/wp-content/uploads/2015/09/RA-8749.pdf",
	},
	{
		ID:           "law_water",
		Title:        "RA 9275 – Philippine Clean Water Act (2004)",
		Summary:      "Protects water bodies from pollution from land-based sources.",
		IRR:          "DENR Administrative Order No. 2005-10",
		Penalty:      "Fines up to ₱200,000/day per violation",
		Imprisonment: "Up to 10 years",
		Link:         "https://emb.gov.ph/wp-content/uploads/2015/09/RA-9275.pdf",
	},
	{
		ID:           "law_waste",
		Title:        "RA 9003 – Ecological Solid Waste Management Act (2000)",
		Summary:      "Mandates proper waste segregation, recycling, and disposal.",
		IRR:          "DENR Administrative Order No. 2001-34",
		Penalty:      "Fines from ₱300 to ₱1,000 for individuals",
		Imprisonment: "1 to 15 days community service",
		Link:         "https://emb.gov.ph/wp-content/uploads/2015/09/RA-9003.pdf",
	},
	{
		ID:           "law_climate",
		Title:        "RA 9729 – Climate Change Act (2009)",
		Summary:      "Mainstreams climate change into government policy formulations.",
		IRR:          "DENR Administrative Order No. 2010-01",
		Penalty:      "As specified in respective provisions",
		Imprisonment: "As specified in respective provisions",
		Link:         "https://climate.gov.ph/files/RA-9729.pdf",
	},
}

var lawIndex = buildLawIndex()

func buildLawIndex() map[string]Law {
	idx := make(map[string]Law, len(laws))
	for _, l := range laws {
		idx[l.ID] = l
	}
	return idx
}

// Laws returns the law catalog in display order.
func Laws() []Law {
	out := make([]Law, len(laws))
	copy(out, laws)
	return out
}

// LawByID returns the law with the given identifier.
func LawByID(id string) (Law, bool) {
	l, ok := lawIndex[id]
	return l, ok
}
