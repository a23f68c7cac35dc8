package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/geosense/geosense/internal/api/middleware"
	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/community"
)

const postFeedLimit = 20

// CommunityHandler handles community feed endpoints.
type CommunityHandler struct {
	posts *community.Service
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(posts *community.Service) *CommunityHandler {
	return &CommunityHandler{posts: posts}
}

// ListPosts handles GET /v1/community/posts - the newest posts.
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListRecent(r.Context(), postFeedLimit)
	if err != nil {
		response.InternalError(w, r, "failed to load posts")
		return
	}

	if posts == nil {
		posts = []community.Post{}
	}
	response.JSON(w, r, http.StatusOK, models.PostsResponse{Posts: posts})
}

// CreatePost handles POST /v1/community/posts - publish a post.
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fieldErrors []models.FieldError
	if strings.TrimSpace(input.Title) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(input.Content) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "content", Message: "required"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "title and content are required", fieldErrors)
		return
	}

	post := &community.Post{
		Username: username,
		Title:    input.Title,
		Content:  input.Content,
		Location: input.Location,
		PostType: input.PostType,
	}
	if err := h.posts.Create(r.Context(), post); err != nil {
		response.InternalError(w, r, "failed to create post")
		return
	}

	location := fmt.Sprintf("/v1/community/posts/%s", post.ID)
	response.Created(w, r, location, post)
}

// UpvotePost handles POST /v1/community/posts/{postID}/upvote.
func (h *CommunityHandler) UpvotePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	upvotes, err := h.posts.Upvote(r.Context(), postID)
	if err != nil {
		if errors.Is(err, community.ErrPostNotFound) {
			response.NotFound(w, r, "post not found")
			return
		}
		response.InternalError(w, r, "failed to upvote post")
		return
	}

	response.JSON(w, r, http.StatusOK, models.UpvoteResponse{
		PostID:  postID,
		Upvotes: upvotes,
	})
}
