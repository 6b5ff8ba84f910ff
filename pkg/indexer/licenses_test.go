package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickrindexer/pkg/flickr"
)

type licenseFunc func(ctx context.Context) ([]flickr.License, error)

func (f licenseFunc) Licenses(ctx context.Context) ([]flickr.License, error) { return f(ctx) }

func TestLicenseTableName(t *testing.T) {
	table := LicenseTable{"4": "Attribution License", "0": "All Rights Reserved"}

	assert.Equal(t, "Attribution License", table.Name("4"))
	assert.Equal(t, "All Rights Reserved", table.Name("0"))
	assert.Equal(t, UnknownLicense, table.Name("99"))
	assert.Equal(t, UnknownLicense, table.Name(""))
	assert.Equal(t, "Unknown License", LicenseTable(nil).Name("4"))
}

func TestLoadLicenses(t *testing.T) {
	source := licenseFunc(func(ctx context.Context) ([]flickr.License, error) {
		return []flickr.License{
			{ID: "4", Name: "Attribution License"},
			{ID: "9", Name: "Public Domain Dedication (CC0)"},
		}, nil
	})

	table, err := LoadLicenses(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, LicenseTable{
		"4": "Attribution License",
		"9": "Public Domain Dedication (CC0)",
	}, table)
}

func TestLoadLicensesFailure(t *testing.T) {
	source := licenseFunc(func(ctx context.Context) ([]flickr.License, error) {
		return nil, assert.AnError
	})

	_, err := LoadLicenses(context.Background(), source)
	assert.ErrorIs(t, err, assert.AnError)
}
