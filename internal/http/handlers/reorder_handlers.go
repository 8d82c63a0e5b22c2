package handlers

import "net/http"

// ReorderSuggestionsHandler godoc
// @Summary Reorder suggestions
// @Description Active low-stock products ranked Critical, High, Medium and then by deficit.
// @Tags reorder
// @Produce json
// @Success 200 {array} ReorderSuggestionResponse
// @Failure 500 {object} apperrors.Error
// @Router /reorder-suggestions [get]
func ReorderSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	suggestions, err := reorderService.Suggestions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]ReorderSuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		resp[i] = toReorderResponse(s)
	}
	respond(w, r, http.StatusOK, resp)
}
