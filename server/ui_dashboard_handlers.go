package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const msgReviewThanks = "Thank you for your feedback!"

// ReviewCategory is one option of the dashboard feedback form
type ReviewCategory struct {
	Value         string
	Label         string
	Subcategories []string
}

var reviewCategories = []ReviewCategory{
	{Value: "product", Label: "Product", Subcategories: []string{"Quality", "Features", "Pricing"}},
	{Value: "service", Label: "Service", Subcategories: []string{"Support", "Delivery", "Installation"}},
	{Value: "experience", Label: "Experience", Subcategories: []string{"Website", "Mobile App", "Store"}},
}

func findReviewCategory(value string) (ReviewCategory, bool) {
	for _, c := range reviewCategories {
		if c.Value == value {
			return c, true
		}
	}
	return ReviewCategory{}, false
}

// NotificationView is a notification as shown on the dashboard
type NotificationView struct {
	vocapi.Notification
	IsWelcome bool
}

// DashboardPageData contains data for rendering the dashboard
type DashboardPageData struct {
	Profile       *vocapi.Profile
	Notifications []NotificationView
	Unread        int
	Categories    []ReviewCategory
}

// welcomeNotifications replaces the first notification's text with a greeting
// for the signed in user.
func welcomeNotifications(profile *vocapi.Profile, notifications []vocapi.Notification) []NotificationView {
	views := make([]NotificationView, 0, len(notifications))
	for i, n := range notifications {
		v := NotificationView{Notification: n}
		if i == 0 && profile != nil {
			v.Message = fmt.Sprintf("Welcome to our VOC platform, %s!", profile.Name)
			v.IsWelcome = true
		}
		views = append(views, v)
	}
	return views
}

// DashboardHandler loads the profile and notifications side by side
func (s *Server) DashboardHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api := s.apiFor(r)

		var (
			profile       *vocapi.Profile
			notifications []vocapi.Notification
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			p, err := api.GetUserProfile(ctx)
			profile = p
			return err
		})
		g.Go(func() error {
			n, err := api.GetNotifications(ctx)
			notifications = n
			return err
		})

		pageData := s.newPageData(r, "dashboard", "Dashboard", nil)
		if err := g.Wait(); err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			log.Warn().Err(err).Str("userId", userIDFrom(r)).Msg("failed to load dashboard data")
			pageData.Error = userMessage(err, "Failed to load dashboard")
		}

		data := DashboardPageData{
			Profile:       profile,
			Notifications: welcomeNotifications(profile, notifications),
			Categories:    reviewCategories,
		}
		for _, n := range data.Notifications {
			if !n.Read {
				data.Unread++
			}
		}
		pageData.Content = data

		s.renderPage(w, pages, pageDashboard, pageData)
	}
}

// MarkNotificationReadHandler marks one notification as read. Failures are
// logged and the dashboard is shown again unchanged.
func (s *Server) MarkNotificationReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.PathValue("id"))
		if id == "" {
			http.Error(w, "Missing notification id", http.StatusBadRequest)
			return
		}

		if err := s.apiFor(r).MarkNotificationAsRead(r.Context(), vocapi.ID(id)); err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			log.Warn().Err(err).Str("notificationId", id).Msg("failed to mark notification as read")
		}
		redirectSuccess(w, r, RouteDashboard)
	}
}

// SubmitReviewHandler sends the dashboard feedback form to the API
func (s *Server) SubmitReviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		category, ok := findReviewCategory(r.FormValue("category"))
		if !ok {
			redirectWithError(w, r, RouteDashboard, "Please choose a category")
			return
		}

		review := vocapi.Review{
			Category: category.Value,
			Comment:  strings.TrimSpace(r.FormValue("comment")),
		}
		if sub := r.FormValue("subcategory"); sub != "" {
			valid := false
			for _, c := range category.Subcategories {
				if c == sub {
					valid = true
					break
				}
			}
			if !valid {
				redirectWithError(w, r, RouteDashboard, "Please choose a valid subcategory")
				return
			}
			review.Subcategory = sub
		}
		if rating := r.FormValue("rating"); rating != "" {
			n, err := strconv.Atoi(rating)
			if err != nil || n < 1 || n > 5 {
				redirectWithError(w, r, RouteDashboard, "Rating must be between 1 and 5")
				return
			}
			review.Rating = n
		}
		if review.Comment == "" {
			redirectWithError(w, r, RouteDashboard, "Please enter your feedback")
			return
		}

		ack, err := s.apiFor(r).SubmitReview(r.Context(), review)
		if err != nil {
			if sessionLost(err) {
				endSession(w, r, err)
				return
			}
			redirectWithError(w, r, RouteDashboard, userMessage(err, "Failed to submit review"))
			return
		}

		msg := msgReviewThanks
		if ack != nil && strings.TrimSpace(ack.Message) != "" {
			msg = ack.Message
		}
		redirectWithMessage(w, r, RouteDashboard, msg)
	}
}
