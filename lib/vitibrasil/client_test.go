package vitibrasil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vitibrasil-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestClientProduction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"opcao":    r.URL.Query().Get("opcao"),
			"ano":      r.URL.Query().Get("ano"),
			"subopcao": r.URL.Query().Get("subopcao"),
		}
		w.Write([]byte(productionPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})

	records, err := client.Production(context.Background(), 2020)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"opcao":    "opt_02",
		"ano":      "2020",
		"subopcao": "",
	}, gotQuery)

	require.Len(t, records, 3)
	require.Equal(t, "Tinto", records[0].Product)
	require.Equal(t, "VINHO DE MESA", records[0].Category)
	require.Equal(t, float64(175267437), *records[0].QuantityLiters)
	require.Nil(t, records[2].QuantityLiters)
}

func TestClientProcessingSendsSubOption(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"opcao":    r.URL.Query().Get("opcao"),
			"ano":      r.URL.Query().Get("ano"),
			"subopcao": r.URL.Query().Get("subopcao"),
		}
		w.Write([]byte(processingPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})

	opt, err := ResolveOption(DomainProcessing, "viniferas")
	require.NoError(t, err)

	records, err := client.Processing(context.Background(), 2003, opt)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"opcao":    "opt_03",
		"ano":      "2003",
		"subopcao": "subopt_01",
	}, gotQuery)

	require.Len(t, records, 2)
	require.Equal(t, "viníferas", records[0].Product)
}

func TestClientSourceUnavailable(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.FetchPage(context.Background(), DomainProduction, 2020, 0)
	require.True(t, errors.Is(err, ErrSourceUnavailable))

	server.Close()
	_, err = client.FetchPage(context.Background(), DomainProduction, 2020, 0)
	require.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestClientTimeout(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(productionPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		BaseUrl: server.URL,
		Timeout: time.Millisecond * 50,
	})
	_, err := client.FetchPage(context.Background(), DomainProduction, 2020, 0)
	require.True(t, errors.Is(err, ErrTimeout) || errors.Is(err, ErrSourceUnavailable))
}

func TestClientWrongTableDetectedStructurally(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wrongTablePage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.Production(context.Background(), 2020)
	require.True(t, errors.Is(err, ErrUnexpectedLayout))
}
