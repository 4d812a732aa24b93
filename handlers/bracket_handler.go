package handlers

import (
	"net/http"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

func (h *BracketHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Format models.ChampionshipFormat `json:"format"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !input.Format.Valid() {
		badRequestResponse(w, r, services.ErrInvalidFormat)
		return
	}

	matches, err := h.bracketService.GenerateBracket(r.Context(), actorID, championshipID, input.Format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GenerateNextPhase(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.AdvanceToNextPhase(r.Context(), actorID, championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"phase": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
