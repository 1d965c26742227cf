package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

type handler struct {
	store *store.Store
}

func newHandler(recipeStore *store.Store) *handler {
	return &handler{store: recipeStore}
}

func (h *handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Recipes())
}

func (h *handler) RandomRecipes(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "n must be an integer"})
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, h.store.RandomRecipes(n))
}

func (h *handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Ingredients())
}

func (h *handler) ListTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Tags())
}

func (h *handler) ListShopping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ShoppingList())
}

func (h *handler) AddRecipeToShopping(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recipe id"})
		return
	}
	for _, recipe := range h.store.Recipes() {
		if recipe.ID == id {
			if err := h.store.AddRecipeToShopping(r.Context(), recipe); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update shopping list"})
				return
			}
			writeJSON(w, http.StatusOK, h.store.ShoppingList())
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
}

func (h *handler) PurchaseShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shopping id"})
		return
	}
	var body struct {
		Purchased bool `json:"purchased"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if err := h.store.PurchaseShoppingItem(r.Context(), id, body.Purchased); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"purchased": body.Purchased})
}

func (h *handler) ResetShoppingList(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetShoppingList(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset shopping list"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
