package georecon_test

import (
	"context"
	"fmt"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/logging"
	"github.com/agentstation/georecon/pkg/sources"
)

func ExampleClient_RelabelFeatures() {
	codes := geo.NewReferenceSet([]geo.ReferenceEntity{
		{Name: "France", ISOAlpha2: "FR"},
		{Name: "Republic of Korea", ISOAlpha2: "KR"},
	})
	client, err := georecon.New(
		georecon.WithCodeReference(codes),
		georecon.WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		panic(err)
	}

	features := []sources.Feature{
		{Index: 0, Label: "France", ID: "France"},
		{Index: 1, Label: "South-Korea", ID: "South-Korea"},
	}
	ctx := logging.WithLogger(context.Background(), logging.NewNopLogger())
	outcome, err := client.RelabelFeatures(ctx, features)
	if err != nil {
		panic(err)
	}

	for _, f := range features {
		fmt.Printf("%s -> %s\n", f.Label, f.ID)
	}
	for _, e := range outcome.Report.Entries {
		fmt.Printf("review %s: %s (%d)\n", e.Label, e.Candidate, e.Score)
	}
	// Output:
	// France -> FR
	// South-Korea -> South-Korea
	// review South-Korea: Republic of Korea (35)
}

func ExampleClient_ResolveContinents() {
	continents := geo.NewReferenceSet([]geo.ReferenceEntity{
		{Name: "Namibia", ISOAlpha2: "NA", ISOAlpha3: "NAM", CCTLD: ".na", Continent: geo.Africa},
	})
	client, err := georecon.New(
		georecon.WithContinentReference(continents),
		georecon.WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		panic(err)
	}

	borders := []sources.Border{
		{CountryCode: "NA", CountryName: "Namibia"},
		{CountryCode: "AX", CountryName: "Aland Islands"},
		{CountryCode: "XA", CountryName: "Atlantis"},
	}
	outcome, err := client.ResolveContinents(context.Background(), borders)
	if err != nil {
		panic(err)
	}

	for _, b := range borders {
		fmt.Printf("%s: %q\n", b.CountryName, b.Continent)
	}
	fmt.Println(outcome.Stats.Exact, outcome.Stats.Overridden, outcome.Stats.Unresolved)
	// Output:
	// Namibia: "Africa"
	// Aland Islands: "Europe"
	// Atlantis: ""
	// 1 1 1
}
