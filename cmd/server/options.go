package main

import (
	"net/http"
	"vitibrasil-backend/lib/vitibrasil"
	"vitibrasil-backend/services/vitidata"

	"github.com/go-chi/chi/v5"
)

// the option routes keep the response keys the public dataset consumers
// already depend on, Portuguese spelling included

type productionOptions struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
	Products   []string `json:"products"`
}

type processingOptions struct {
	Success  bool     `json:"success"`
	Groups   []string `json:"Grupo"`
	Products []string `json:"Produtos"`
	Cultives []string `json:"Cultivos"`
}

type commercializationOptions struct {
	Success  bool     `json:"success"`
	Groups   []string `json:"Grupos"`
	Products []string `json:"Produtos"`
}

type tradeOptions struct {
	Success   bool     `json:"success"`
	Countries []string `json:"Países"`
	Products  []string `json:"Produtos"`
}

func initOptionRoutes(router chi.Router, store vitidata.Store) {
	router.Get("/producao/options", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		categories, err := store.DistinctProductionCategories(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		products, err := store.DistinctProductionProducts(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productionOptions{
			Success:    true,
			Categories: categories,
			Products:   products,
		})
	})

	router.Get("/processamento/options", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		groups, err := store.DistinctProcessingGroups(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		cultives, err := store.DistinctProcessingCultives(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, processingOptions{
			Success:  true,
			Groups:   groups,
			Products: vitibrasil.OptionLabels(vitibrasil.DomainProcessing),
			Cultives: cultives,
		})
	})

	router.Get("/comercializacao/options", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		groups, err := store.DistinctCommercializationGroups(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		products, err := store.DistinctCommercializationProducts(ctx)
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, commercializationOptions{
			Success:  true,
			Groups:   groups,
			Products: products,
		})
	})

	router.Get("/importacao/options", func(w http.ResponseWriter, req *http.Request) {
		countries, err := store.DistinctImportCountries(req.Context())
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tradeOptions{
			Success:   true,
			Countries: countries,
			Products:  vitibrasil.OptionLabels(vitibrasil.DomainImport),
		})
	})

	router.Get("/exportacao/options", func(w http.ResponseWriter, req *http.Request) {
		countries, err := store.DistinctExportCountries(req.Context())
		if err != nil {
			writeOptionsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tradeOptions{
			Success:   true,
			Countries: countries,
			Products:  vitibrasil.OptionLabels(vitibrasil.DomainExport),
		})
	})
}

func writeOptionsError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
