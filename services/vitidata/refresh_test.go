package vitidata

import (
	"context"
	"testing"
	"vitibrasil-backend/lib/telemetry"
	"vitibrasil-backend/lib/vitibrasil"

	"github.com/stretchr/testify/require"
)

func TestRefreshPageProduction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitidata")
	defer cleanup()
	portal := newPortalFixture(t, productionPage)
	store := setupStore(t)
	client := vitibrasil.NewClient(vitibrasil.ClientOptions{BaseUrl: portal.server.URL})
	refresher := NewRefresher(client, store, Options{})
	ctx := context.Background()

	err := refresher.refreshPage(ctx, vitibrasil.DomainProduction, 2020)
	require.NoError(t, err)

	records, err := store.SelectProduction(ctx, 2020, ProductionFilters{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// a second sweep replaces rather than appends
	err = refresher.refreshPage(ctx, vitibrasil.DomainProduction, 2020)
	require.NoError(t, err)
	records, err = store.SelectProduction(ctx, 2020, ProductionFilters{})
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestRefreshPageLeavesCacheOnFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitidata")
	defer cleanup()
	portal := newPortalFixture(t, productionPage)
	store := setupStore(t)
	client := vitibrasil.NewClient(vitibrasil.ClientOptions{BaseUrl: portal.server.URL})
	refresher := NewRefresher(client, store, Options{})
	ctx := context.Background()

	err := refresher.refreshPage(ctx, vitibrasil.DomainProduction, 2020)
	require.NoError(t, err)

	portal.down = true
	err = refresher.refreshPage(ctx, vitibrasil.DomainProduction, 2020)
	require.Error(t, err)

	// the last good dataset stays readable
	records, selErr := store.SelectProduction(ctx, 2020, ProductionFilters{})
	require.NoError(t, selErr)
	require.Len(t, records, 2)
}
