package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/config"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/service"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["extract"])
	assert.True(t, names["catalog"])

	extract, _, err := root.Find([]string{"extract"})
	require.NoError(t, err)
	assert.NotNil(t, extract.Flags().Lookup("pinned"))
}

func TestRunExtract_Search(t *testing.T) {
	var out bytes.Buffer
	extractor := service.NewExtractor(config.DefaultExtraction())

	err := runExtract(&out, extractor, "2 bed $1800 near Byward Market, by bike", false)
	require.NoError(t, err)

	var spec model.SearchSpec
	require.NoError(t, json.Unmarshal(out.Bytes(), &spec))
	assert.Equal(t, 1800, spec.BudgetMin)
	assert.Equal(t, 2300, spec.BudgetMax)
	assert.Equal(t, 2, spec.Bedrooms)
	assert.Equal(t, "Byward Market", spec.WorkAddress)
	assert.Equal(t, model.TransportBiking, spec.TransportMode)
}

func TestRunExtract_MissingAnchor(t *testing.T) {
	var out bytes.Buffer
	extractor := service.NewExtractor(config.DefaultExtraction())

	err := runExtract(&out, extractor, "I like pizza", false)
	assert.ErrorIs(t, err, service.ErrMissingAnchor)
	assert.Contains(t, out.String(), service.MissingAnchorPrompt)
}

func TestRunExtract_Pinned(t *testing.T) {
	var out bytes.Buffer
	extractor := service.NewExtractor(config.DefaultExtraction())

	require.NoError(t, runExtract(&out, extractor, "I like pizza", true))
	assert.NotContains(t, out.String(), "work_address")
}

func TestCatalogCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"catalog"})
	require.NoError(t, root.Execute())

	var catalog map[string][]model.CatalogEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &catalog))
	assert.Len(t, catalog["priorities"], 6)
	assert.Len(t, catalog["transport_modes"], 4)
}
