package indexer

import (
	"context"
	"fmt"
)

// UnknownLicense labels photos whose license id is not in the table
const UnknownLicense = "Unknown License"

// LicenseTable maps Flickr license ids to display names
type LicenseTable map[string]string

// Name returns the display name for id
func (t LicenseTable) Name(id string) string {
	if name, ok := t[id]; ok {
		return name
	}
	return UnknownLicense
}

// LoadLicenses fetches the license list once
func LoadLicenses(ctx context.Context, api LicenseSource) (LicenseTable, error) {
	licenses, err := api.Licenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load licenses: %w", err)
	}

	table := make(LicenseTable, len(licenses))
	for _, l := range licenses {
		table[l.ID] = l.Name
	}
	return table, nil
}
