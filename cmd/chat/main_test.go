package main

import (
	"testing"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/models"
)

func TestStartModel(t *testing.T) {
	served := models.ModelsResponse{
		Default: "gemma-3-27b-it",
		Models: []models.ModelInfo{
			{Model: catalog.Model{ID: "gemma-3-27b-it"}, Available: true},
			{Model: catalog.Model{ID: "qwen/qwen3-30b-a3b:free"}, Available: false},
		},
	}

	tests := []struct {
		name      string
		saved     string
		available models.ModelsResponse
		want      string
	}{
		{"no saved, no server", "", models.ModelsResponse{}, catalog.DefaultModelID},
		{"no saved, server default", "", served, "gemma-3-27b-it"},
		{"saved and available", "gemma-3-27b-it", served, "gemma-3-27b-it"},
		{"saved but unavailable", "qwen/qwen3-30b-a3b:free", served, "gemma-3-27b-it"},
		{"saved, server unreachable", "deepseek/deepseek-r1-0528:free", models.ModelsResponse{}, "deepseek/deepseek-r1-0528:free"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := startModel(tc.saved, tc.available); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
