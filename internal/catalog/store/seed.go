package store

import (
	"context"
	"fmt"

	"udyam/internal/catalog/models"
)

// CommonCategories is the cross-sector base checklist: the doc categories
// every startup provides at registration regardless of sector. The "common"
// requirement endpoints intersect a pair's checklist with this set.
var CommonCategories = map[string]bool{
	"incorporation_certificate": true,
	"pan_card":                  true,
	"aadhaar_card":              true,
	"address_proof":             true,
	"founder_id_proof":          true,
}

var registrationBase = []models.Requirement{
	{
		DocCategory: "incorporation_certificate",
		Required:    true,
		Note:        "Certificate of incorporation or partnership deed",
		ExtractFields: []models.ExtractField{
			{Name: "company_name", Label: "Company name"},
			{Name: "cin", Label: "CIN / registration number"},
			{Name: "incorporation_date", Label: "Date of incorporation"},
		},
	},
	{
		DocCategory: "pan_card",
		Required:    true,
		ExtractFields: []models.ExtractField{
			{Name: "pan_number", Label: "PAN number"},
			{Name: "holder_name", Label: "Name on card"},
		},
	},
	{
		DocCategory: "aadhaar_card",
		Required:    true,
		ExtractFields: []models.ExtractField{
			{Name: "aadhaar_number", Label: "Aadhaar number"},
		},
	},
	{
		DocCategory: "address_proof",
		Required:    true,
		Note:        "Registered office address proof (utility bill or rent agreement)",
	},
	{
		DocCategory: "founder_id_proof",
		Required:    true,
	},
	{
		DocCategory: "pitch_deck",
		Required:    false,
		Note:        "Optional: speeds up sector desk review",
	},
}

func clinicChecklist(sectorLicense models.Requirement) []models.Requirement {
	reqs := append([]models.Requirement{}, registrationBase...)
	reqs = append(reqs,
		sectorLicense,
		models.Requirement{
			DocCategory: "premises_proof",
			Required:    true,
			Note:        "Ownership or lease documents for the clinic premises",
		},
		models.Requirement{
			DocCategory: "practitioner_registration",
			Required:    true,
			Note:        "State council registration of the practitioner in charge",
			ExtractFields: []models.ExtractField{
				{Name: "registration_number", Label: "Council registration number"},
				{Name: "practitioner_name", Label: "Practitioner name"},
			},
		},
		models.Requirement{
			DocCategory: "biomedical_waste_authorization",
			Required:    false,
			Note:        "Required before commissioning; may be submitted later",
		},
	)
	return reqs
}

func loanLicenseChecklist(sectorLicense models.Requirement) []models.Requirement {
	reqs := append([]models.Requirement{}, registrationBase...)
	reqs = append(reqs,
		sectorLicense,
		models.Requirement{
			DocCategory: "manufacturing_agreement",
			Required:    true,
			Note:        "Agreement with the licensed manufacturing unit",
			ExtractFields: []models.ExtractField{
				{Name: "manufacturer_name", Label: "Manufacturer name"},
				{Name: "agreement_date", Label: "Agreement date"},
			},
		},
		models.Requirement{
			DocCategory: "gmp_certificate",
			Required:    true,
			Note:        "GMP certificate of the manufacturing unit",
		},
		models.Requirement{
			DocCategory: "product_list",
			Required:    true,
		},
	)
	return reqs
}

func sectorLicense(sector string) models.Requirement {
	return models.Requirement{
		DocCategory: "license_copy",
		Required:    true,
		Note:        fmt.Sprintf("Current %s practice/operating license", sector),
		ExtractFields: []models.ExtractField{
			{Name: "license_number", Label: "License number"},
			{Name: "valid_until", Label: "Valid until"},
		},
	}
}

// SeedEntries is the published requirement catalog: each AYUSH sector with
// its registration, clinic and loan-license checklists.
func SeedEntries() []models.CatalogEntry {
	sectors := []string{"ayurveda", "yoga", "homoeopathy"}
	entries := make([]models.CatalogEntry, 0, len(sectors)*3)
	for _, sector := range sectors {
		entries = append(entries,
			models.CatalogEntry{
				Sector:          sector,
				ApplicationType: "startup_registration",
				Requirements:    append([]models.Requirement{}, registrationBase...),
			},
			models.CatalogEntry{
				Sector:          sector,
				ApplicationType: "clinic",
				Requirements:    clinicChecklist(sectorLicense(sector)),
			},
			models.CatalogEntry{
				Sector:          sector,
				ApplicationType: "loan_license",
				Requirements:    loanLicenseChecklist(sectorLicense(sector)),
			},
		)
	}
	return entries
}

// Seed publishes the seed entries into the given store.
func Seed(ctx context.Context, s interface {
	Upsert(ctx context.Context, entry *models.CatalogEntry) error
}) error {
	for _, entry := range SeedEntries() {
		e := entry
		if err := s.Upsert(ctx, &e); err != nil {
			return fmt.Errorf("seed catalog %s/%s: %w", entry.Sector, entry.ApplicationType, err)
		}
	}
	return nil
}
