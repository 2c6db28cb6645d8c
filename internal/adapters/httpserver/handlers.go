package httpserver

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hydauction-listing-service/internal/domain/shared"
	"hydauction-listing-service/internal/ports/inbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUploadMemory bounds the in-memory part of multipart parsing
const maxUploadMemory = 32 << 20

// Handler holds the route handlers
type Handler struct {
	authService    inbound.AuthService
	listingService inbound.ListingService
	logger         zerolog.Logger
}
type HandlerParams struct {
	AuthService    inbound.AuthService
	ListingService inbound.ListingService
	Logger         zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		authService:    params.AuthService,
		listingService: params.ListingService,
		logger:         params.Logger.With().Str("component", "http_handler").Logger(),
	}
}

// Signup handles POST /signup
func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, handler.logger, shared.ErrInvalidRequest)
		return
	}

	userID, err := handler.authService.Signup(r.Context(), inbound.SignupRequest{
		Username:    r.FormValue("username"),
		Email:       r.FormValue("email"),
		PasswordB64: r.FormValue("password"),
	})
	if err != nil {
		writeError(w, handler.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "User created successfully",
		UserID:  userID.String(),
	})
}

// Login handles POST /login. The token travels back only as an HTTP-only
// cookie, out of reach of page scripts.
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, handler.logger, shared.ErrInvalidRequest)
		return
	}

	token, err := handler.authService.Login(r.Context(), inbound.LoginRequest{
		Username:    r.FormValue("username"),
		PasswordB64: r.FormValue("password"),
	})
	if err != nil {
		writeError(w, handler.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, messageResponse{Message: "Login successful"})
}

// Logout handles POST /logout. Always succeeds, even with a stale token.
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := handler.authService.Logout(r.Context(), token); err != nil {
		writeError(w, handler.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// ListItems handles GET /items. An identity is optional here; it only marks
// which items the requester owns.
func (handler *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	views, err := handler.listingService.ListItems(r.Context(), identity)
	if err != nil {
		writeError(w, handler.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// AddItem handles POST /items
func (handler *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, handler.logger, shared.ErrInvalidSession)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, handler.logger, shared.ErrInvalidRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeError(w, handler.logger, shared.ErrInvalidRequest)
		return
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["images"]
	}

	uploads := make([]shared.Upload, 0, len(files))
	for _, fileHeader := range files {
		fileHeader := fileHeader
		uploads = append(uploads, shared.Upload{
			Filename: fileHeader.Filename,
			Open: func() (io.ReadCloser, error) {
				return fileHeader.Open()
			},
		})
	}

	if _, err := handler.listingService.AddItem(r.Context(), *identity, inbound.AddItemRequest{
		Name:    r.FormValue("name"),
		Price:   price,
		Uploads: uploads,
	}); err != nil {
		writeError(w, handler.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Item added successfully"})
}

// DeleteItem handles DELETE /items/{id}
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, handler.logger, shared.ErrInvalidSession)
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		// A malformed id cannot name any item
		writeError(w, handler.logger, shared.ErrItemNotFound)
		return
	}

	if err := handler.listingService.DeleteItem(r.Context(), *identity, itemID); err != nil {
		writeError(w, handler.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}

// parseForm parses urlencoded or multipart request bodies
func parseForm(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadMemory)
	}
	return r.ParseForm()
}

// handleHealth reports liveness
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok", "service": "auction-listing"}`))
}
