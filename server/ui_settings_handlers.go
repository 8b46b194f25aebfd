package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	msgSettingsSaved      = "Settings saved successfully!"
	msgSettingsLoadFailed = "Failed to load settings. Please try again."
	msgSettingsSaveFailed = "Failed to save settings. Please try again."
	msgUserIDRequired     = "UserId is required."

	defaultVolume = 50
)

var profileVisibilities = []string{"public", "private", "contacts"}

// SettingsPageData contains data for rendering the settings page
type SettingsPageData struct {
	Settings     vocapi.Settings
	Visibilities []string
}

// defaultSettings mirrors what the page shows before anything is loaded
func defaultSettings() vocapi.Settings {
	return vocapi.Settings{
		PrivacySettings: vocapi.PrivacySettings{ProfileVisibility: "public"},
		SoundSettings:   vocapi.SoundSettings{Volume: defaultVolume},
	}
}

func (s *Server) SettingsPageHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageData := s.newPageData(r, "settings", "Settings", nil)
		settings := defaultSettings()

		loaded, err := s.apiFor(r).GetSettings(r.Context())
		switch {
		case err != nil && sessionLost(err):
			endSession(w, r, err)
			return
		case err != nil:
			log.Warn().Err(err).Str("userId", userIDFrom(r)).Msg("failed to load settings")
			if pageData.Error == "" {
				pageData.Error = msgSettingsLoadFailed
			}
		default:
			settings = *loaded
			if settings.ProfileVisibility == "" {
				settings.ProfileVisibility = "public"
			}
			if settings.Volume == 0 {
				settings.Volume = defaultVolume
			}
		}

		pageData.Content = SettingsPageData{Settings: settings, Visibilities: profileVisibilities}
		s.renderPage(w, pages, pageSettings, pageData)
	}
}

// parseSettingsForm reads the settings form. Unchecked boxes are absent from
// the form and read as false.
func parseSettingsForm(r *http.Request) (vocapi.Settings, bool) {
	settings := vocapi.Settings{
		UserID: vocapi.ID(r.FormValue("userId")),
		NotificationSettings: vocapi.NotificationSettings{
			EmailNotifications: r.FormValue("emailNotifications") == "on",
			PushNotifications:  r.FormValue("pushNotifications") == "on",
			Updates:            r.FormValue("updates") == "on",
		},
		PrivacySettings: vocapi.PrivacySettings{
			ProfileVisibility: r.FormValue("profileVisibility"),
			ActivityStatus:    r.FormValue("activityStatus") == "on",
		},
		SoundSettings: vocapi.SoundSettings{
			EnableSound: r.FormValue("enableSound") == "on",
			Volume:      defaultVolume,
		},
	}

	visible := false
	for _, v := range profileVisibilities {
		if v == settings.ProfileVisibility {
			visible = true
		}
	}
	if !visible {
		return settings, false
	}

	if v := r.FormValue("volume"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return settings, false
		}
		settings.Volume = n
	}
	return settings, true
}

// SettingsSubmissionHandler saves the three settings sections concurrently
func (s *Server) SettingsSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		settings, ok := parseSettingsForm(r)
		if !ok {
			redirectWithError(w, r, RouteSettings, "Invalid settings")
			return
		}
		if settings.UserID == "" {
			redirectWithError(w, r, RouteSettings, msgUserIDRequired)
			return
		}

		api := s.apiFor(r)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error { return api.UpdateNotificationSettings(ctx, settings.NotificationSettings) })
		g.Go(func() error { return api.UpdatePrivacySettings(ctx, settings.PrivacySettings) })
		g.Go(func() error { return api.UpdateSoundSettings(ctx, settings.SoundSettings) })

		if err := g.Wait(); err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			log.Warn().Err(err).Str("userId", settings.UserID.String()).Msg("failed to save settings")
			redirectWithError(w, r, RouteSettings, userMessage(err, msgSettingsSaveFailed))
			return
		}

		redirectWithMessage(w, r, RouteSettings, msgSettingsSaved)
	}
}
