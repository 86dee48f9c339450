package catalog

import "strings"

type Backend string

const (
	BackendGemini     Backend = "gemini"
	BackendOpenRouter Backend = "openrouter"
)

// Model is one entry of the model picker.
type Model struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tier        string  `json:"tier"`
	Backend     Backend `json:"backend"`
}

const DefaultModelID = "gemini-2.5-flash"

var models = []Model{
	{
		ID:          "gemma-3-27b-it",
		Name:        "Gemma 3",
		Description: "Google's open source model",
		Tier:        "free",
		Backend:     BackendGemini,
	},
	{
		ID:          "gemini-2.5-flash",
		Name:        "Gemini 2.5 Flash",
		Description: "Most capable for complex tasks",
		Tier:        "free",
		Backend:     BackendGemini,
	},
	{
		ID:          "mistralai/mistral-small-3.2-24b-instruct:free",
		Name:        "Mistral 3.2",
		Description: "Optimized model for speed",
		Tier:        "free",
		Backend:     BackendOpenRouter,
	},
	{
		ID:          "qwen/qwen3-30b-a3b:free",
		Name:        "Qwen 3",
		Description: "Newest Qwen model",
		Tier:        "free",
		Backend:     BackendOpenRouter,
	},
	{
		ID:          "deepseek/deepseek-r1-0528:free",
		Name:        "DeepSeek R1",
		Description: "Most advanced model in here",
		Tier:        "free",
		Backend:     BackendOpenRouter,
	},
}

// geminiFamilies are the model id prefixes served by the Gemini SDK.
var geminiFamilies = []string{"gemini", "gemma"}

// All returns a copy of the built-in model list.
func All() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Lookup finds a catalog entry by id.
func Lookup(id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// BackendFor decides which backend serves a model id. Ids that are not in
// the catalog are still routed by family so new Gemini releases work without
// a catalog change.
func BackendFor(id string) Backend {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "models/"))
	for _, family := range geminiFamilies {
		if strings.HasPrefix(name, family) {
			return BackendGemini
		}
	}
	return BackendOpenRouter
}

// DisplayName returns the friendly name for a model id, or the id itself.
func DisplayName(id string) string {
	if m, ok := Lookup(id); ok {
		return m.Name
	}
	return id
}
