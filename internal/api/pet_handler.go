package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/api/shared"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/service"
)

// PetHandler handles roster and growth related API requests.
type PetHandler struct {
	roster *service.RosterService
	growth *service.GrowthService
}

// NewPetHandler creates a new PetHandler with the given dependencies.
func NewPetHandler(roster *service.RosterService, growth *service.GrowthService) *PetHandler {
	return &PetHandler{
		roster: roster,
		growth: growth,
	}
}

// ListPets handles GET /pets.
func (h *PetHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.roster.ListRoster(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]PetResponse, 0, len(pets))
	for _, pet := range pets {
		out = append(out, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetPet handles GET /pets/{id}.
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pet, err := h.roster.GetPet(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// AdoptPet handles POST /pets. Adoption through this endpoint is free;
// buying a priced species goes through the shop.
func (h *PetHandler) AdoptPet(w http.ResponseWriter, r *http.Request) {
	var req AdoptPetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	pet, err := h.roster.Adopt(r.Context(), domain.Species(req.Species), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// RenamePet handles POST /pets/{id}/rename.
func (h *PetHandler) RenamePet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req RenamePetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	pet, err := h.roster.Rename(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// ReleasePet handles DELETE /pets/{id}.
func (h *PetHandler) ReleasePet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.roster.Release(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActivatePet handles POST /pets/{id}/activate.
func (h *PetHandler) ActivatePet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.roster.SetActive(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pet, err := h.roster.GetPet(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// FeedPet handles POST /pets/{id}/feed.
func (h *PetHandler) FeedPet(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, h.roster.Feed)
}

// PlayWithPet handles POST /pets/{id}/play.
func (h *PetHandler) PlayWithPet(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, h.roster.Play)
}

// UseItem handles POST /pets/{id}/use-item.
func (h *PetHandler) UseItem(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req InteractRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.ItemID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "item_id is required")
		return
	}

	pet, err := h.roster.UseItem(r.Context(), id, req.ItemID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// GrantExperience handles POST /pets/{id}/experience.
func (h *PetHandler) GrantExperience(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req GrantExperienceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	pet, err := h.roster.GrantExperience(r.Context(), id, req.Amount, req.Source)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}

// interact is the shared feed/play handler body.
func (h *PetHandler) interact(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, petID uuid.UUID, itemID string) (*domain.Pet, error),
) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The body is optional; an empty body means the default effect.
	var req InteractRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	pet, err := fn(r.Context(), id, req.ItemID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewPetResponse(pet, h.growth.Threshold(pet.Level)))
}
