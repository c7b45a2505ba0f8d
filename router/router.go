package router

import (
	"encoding/json"
	"net/http"

	"meetnote/internal/appstate"
	authHandler "meetnote/internal/auth"
	authRepo "meetnote/internal/auth/repository"
	authStore "meetnote/internal/auth/store"
	bookingHandler "meetnote/internal/booking"
	bookingRepo "meetnote/internal/booking/repository"
	bookingStore "meetnote/internal/booking/store"
	noteHandler "meetnote/internal/note"
	noteRepo "meetnote/internal/note/repository"
	noteStore "meetnote/internal/note/store"
	userHandler "meetnote/internal/user"
	userRepo "meetnote/internal/user/repository"
	userStore "meetnote/internal/user/store"
	"meetnote/middleware"
	"meetnote/pkg/api"
)

// Setup wires the stores behind both apps' routes. The booking app and the
// notes app talk to separate backends, so each gets its own API client.
func Setup(bookingAPI, notesAPI *api.Client) http.Handler {
	mux := http.NewServeMux()

	// booking app
	users := userStore.NewUserStore(userRepo.NewUserRepository(bookingAPI))
	bookings := bookingStore.NewBookingStore(bookingRepo.NewBookingRepository(bookingAPI))
	bh := bookingHandler.NewBookingHandler(bookings, users)
	uh := userHandler.NewUserHandler(users)

	mux.Handle("/api/dashboard", http.HandlerFunc(bh.Dashboard))
	mux.Handle("/api/bookings/options", http.HandlerFunc(bh.BookingOptions))
	mux.Handle("/api/bookings/create", http.HandlerFunc(bh.CreateBooking))
	mux.Handle("/api/bookings/update", http.HandlerFunc(bh.UpdateBooking))
	mux.Handle("/api/bookings/cancel", http.HandlerFunc(bh.CancelBooking))
	mux.Handle("/api/bookings/delete", http.HandlerFunc(bh.DeleteBooking))

	mux.Handle("/api/users", http.HandlerFunc(uh.ListUsers))
	mux.Handle("/api/users/create", http.HandlerFunc(uh.CreateUser))
	mux.Handle("/api/users/select", http.HandlerFunc(uh.SelectUser))
	mux.Handle("/api/users/update", http.HandlerFunc(uh.UpdateUser))
	mux.Handle("/api/users/delete", http.HandlerFunc(uh.DeleteUser))
	mux.Handle("/api/users/logout", http.HandlerFunc(uh.Logout))
	mux.Handle("/api/businesses", http.HandlerFunc(uh.ListBusinesses))
	mux.Handle("/api/profile", http.HandlerFunc(uh.Profile))

	// notes app
	ar := authRepo.NewAuthRepository(notesAPI)
	session := authStore.NewSessionStore(ar)
	notes := noteStore.NewNoteStore(noteRepo.NewNoteRepository(notesAPI))
	ah := authHandler.NewAuthHandler(ar, session)
	nh := noteHandler.NewNoteHandler(notes)

	mux.Handle("/api/auth/login", http.HandlerFunc(ah.Login))
	mux.Handle("/api/auth/register", http.HandlerFunc(ah.Register))
	mux.Handle("/api/auth/logout", http.HandlerFunc(ah.Logout))
	mux.Handle("/api/auth/session", http.HandlerFunc(ah.SessionCheck))
	mux.Handle("/api/users/me", http.HandlerFunc(ah.Me))

	mux.Handle("/api/notes", http.HandlerFunc(nh.ListNotes))
	mux.Handle("/api/notes/search", http.HandlerFunc(nh.SearchNotes))
	mux.Handle("/api/notes/get", http.HandlerFunc(nh.GetNote))
	mux.Handle("/api/notes/create", http.HandlerFunc(nh.CreateNote))
	mux.Handle("/api/notes/delete", http.HandlerFunc(nh.DeleteNote))
	mux.Handle("/api/notes/categories", http.HandlerFunc(nh.Categories))

	// global busy flag: any store with a request in flight marks the app busy
	app := appstate.New()
	bookings.Subscribe(func(st bookingStore.State) { app.SetLoading(st.IsLoading) })
	users.Subscribe(func(st userStore.State) { app.SetLoading(st.IsLoading) })
	notes.Subscribe(func(st noteStore.State) { app.SetLoading(st.IsLoading) })

	mux.Handle("/api/status", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"isLoading": app.State().IsLoading})
	}))

	rl := middleware.NewRateLimiter(5, 10)
	var handler http.Handler = mux
	handler = middleware.RouteGuard(handler)
	handler = middleware.RateLimit(rl)(handler)
	handler = middleware.RequestID(handler)
	return middleware.CORSMiddleware(handler)
}
