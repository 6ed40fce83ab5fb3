package api

import (
	"net/http"

	"github.com/petdesk/petdesk/internal/api/shared"
	"github.com/petdesk/petdesk/internal/service"
)

// AchievementHandler handles achievement API requests.
type AchievementHandler struct {
	tracker *service.AchievementTracker
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(tracker *service.AchievementTracker) *AchievementHandler {
	return &AchievementHandler{tracker: tracker}
}

// ListAchievements handles GET /achievements. It returns the full
// catalog with each entry's unlock state.
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	unlockedAt := make(map[string]*AchievementResponse)
	for _, u := range h.tracker.ListUnlocked() {
		at := u.UnlockedAt
		unlockedAt[u.AchievementID] = &AchievementResponse{UnlockedAt: &at}
	}

	catalog := h.tracker.ListAchievements()
	out := make([]AchievementResponse, 0, len(catalog))
	for _, a := range catalog {
		resp := AchievementResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
		}
		if u, ok := unlockedAt[a.ID]; ok {
			resp.Unlocked = true
			resp.UnlockedAt = u.UnlockedAt
		}
		out = append(out, resp)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetProgress handles GET /achievements/progress.
func (h *AchievementHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress := h.tracker.Progress()
	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
		Purchases:  progress.Purchases,
		Feeds:      progress.Feeds,
		Plays:      progress.Plays,
		StreakDays: progress.StreakDays,
	})
}
