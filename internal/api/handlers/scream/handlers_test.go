package scream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Screams/internal/api/middleware"
	"Screams/internal/core/screams"
)

// mockScreamService implements screams.Service for testing
type mockScreamService struct {
	listFunc    func(ctx context.Context) ([]*screams.Scream, error)
	createFunc  func(ctx context.Context, author screams.Author, req screams.CreateScreamRequest) (*screams.Scream, error)
	getFunc     func(ctx context.Context, screamID string) (*screams.ScreamView, error)
	commentFunc func(ctx context.Context, author screams.Author, screamID string, req screams.CreateCommentRequest) (*screams.Comment, error)
	likeFunc    func(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error)
	unlikeFunc  func(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error)
	deleteFunc  func(ctx context.Context, author screams.Author, screamID string) error
}

func (m *mockScreamService) ListScreams(ctx context.Context) ([]*screams.Scream, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*screams.Scream{}, nil
}

func (m *mockScreamService) CreateScream(ctx context.Context, author screams.Author, req screams.CreateScreamRequest) (*screams.Scream, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, author, req)
	}
	return &screams.Scream{ID: "s1", UserHandle: author.Handle, Body: req.Body}, nil
}

func (m *mockScreamService) GetScream(ctx context.Context, screamID string) (*screams.ScreamView, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, screamID)
	}
	return &screams.ScreamView{Scream: &screams.Scream{ID: screamID}, Comments: []*screams.Comment{}}, nil
}

func (m *mockScreamService) CommentOnScream(ctx context.Context, author screams.Author, screamID string, req screams.CreateCommentRequest) (*screams.Comment, error) {
	if m.commentFunc != nil {
		return m.commentFunc(ctx, author, screamID, req)
	}
	return &screams.Comment{ID: "c1", ScreamID: screamID, UserHandle: author.Handle, Body: req.Body}, nil
}

func (m *mockScreamService) LikeScream(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error) {
	if m.likeFunc != nil {
		return m.likeFunc(ctx, author, screamID)
	}
	return &screams.Scream{ID: screamID, LikeCount: 1}, nil
}

func (m *mockScreamService) UnlikeScream(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error) {
	if m.unlikeFunc != nil {
		return m.unlikeFunc(ctx, author, screamID)
	}
	return &screams.Scream{ID: screamID}, nil
}

func (m *mockScreamService) DeleteScream(ctx context.Context, author screams.Author, screamID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, author, screamID)
	}
	return nil
}

var alice = screams.Author{Handle: "alice", ImageURL: "https://img/alice.png"}

// newRequest builds a request with an optional caller and {screamId} route param
func newRequest(method, target, body string, author *screams.Author, screamID string) *http.Request {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if author != nil {
		ctx = middleware.SetTestAuthor(ctx, *author)
	}
	if screamID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("screamId", screamID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func TestListHandler_Success(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	service := &mockScreamService{
		listFunc: func(ctx context.Context) ([]*screams.Scream, error) {
			return []*screams.Scream{{ID: "s1", UserHandle: "alice", Body: "hi", CreatedAt: created, LikeCount: 2}}, nil
		},
	}

	w := httptest.NewRecorder()
	NewListHandler(service).HandleList(w, newRequest(http.MethodGet, "/screams", "", nil, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0]["screamId"])
	assert.Equal(t, "alice", got[0]["userHandle"])
	assert.Equal(t, "2024-01-02T03:04:05Z", got[0]["createdAt"])
	assert.Equal(t, float64(2), got[0]["likeCount"])
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	NewListHandler(&mockScreamService{}).HandleList(w, newRequest(http.MethodGet, "/screams", "", nil, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListHandler_FailureResponds500(t *testing.T) {
	service := &mockScreamService{
		listFunc: func(ctx context.Context) ([]*screams.Scream, error) {
			return nil, errors.New("pq: connection refused")
		},
	}

	w := httptest.NewRecorder()
	NewListHandler(service).HandleList(w, newRequest(http.MethodGet, "/screams", "", nil, ""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "InternalServerError", body["error"])
	assert.NotContains(t, body["message"], "pq:")
}

func TestCreateHandler_Success(t *testing.T) {
	var gotAuthor screams.Author
	service := &mockScreamService{
		createFunc: func(ctx context.Context, author screams.Author, req screams.CreateScreamRequest) (*screams.Scream, error) {
			gotAuthor = author
			return &screams.Scream{ID: "s1", UserHandle: author.Handle, UserImage: author.ImageURL, Body: req.Body}, nil
		},
	}

	w := httptest.NewRecorder()
	NewCreateHandler(service).HandleCreate(w, newRequest(http.MethodPost, "/scream", `{"body":"hello"}`, &alice, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice, gotAuthor)

	var got screams.Scream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hello", got.Body)
	assert.Equal(t, "alice", got.UserHandle)
}

func TestCreateHandler_RequiresAuth(t *testing.T) {
	w := httptest.NewRecorder()
	NewCreateHandler(&mockScreamService{}).HandleCreate(w, newRequest(http.MethodPost, "/scream", `{"body":"hello"}`, nil, ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthRequired", decodeError(t, w)["error"])
}

func TestCreateHandler_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	NewCreateHandler(&mockScreamService{}).HandleCreate(w, newRequest(http.MethodPost, "/scream", `{"body":`, &alice, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w)["error"])
}

func TestCreateHandler_BodyTooLarge(t *testing.T) {
	payload := `{"body":"` + strings.Repeat("a", maxRequestBody) + `"}`

	w := httptest.NewRecorder()
	NewCreateHandler(&mockScreamService{}).HandleCreate(w, newRequest(http.MethodPost, "/scream", payload, &alice, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "InvalidRequest", body["error"])
	assert.Equal(t, "Request body too large", body["message"])
}

func TestGetHandler_Success(t *testing.T) {
	service := &mockScreamService{
		getFunc: func(ctx context.Context, screamID string) (*screams.ScreamView, error) {
			return &screams.ScreamView{
				Scream:   &screams.Scream{ID: screamID, Body: "hi", CommentCount: 1},
				Comments: []*screams.Comment{{ID: "c1", ScreamID: screamID, Body: "yo"}},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	NewGetHandler(service).HandleGet(w, newRequest(http.MethodGet, "/scream/s1", "", nil, "s1"))

	assert.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "s1", got["screamId"])
	assert.Equal(t, float64(1), got["commentCount"])
	comments, ok := got["comments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, comments, 1)
}

func TestGetHandler_NotFound(t *testing.T) {
	service := &mockScreamService{
		getFunc: func(ctx context.Context, screamID string) (*screams.ScreamView, error) {
			return nil, screams.ErrScreamNotFound
		},
	}

	w := httptest.NewRecorder()
	NewGetHandler(service).HandleGet(w, newRequest(http.MethodGet, "/scream/missing", "", nil, "missing"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "ScreamNotFound", body["error"])
	assert.Equal(t, "Scream not found", body["message"])
}

func TestCommentHandler_Success(t *testing.T) {
	var gotID string
	service := &mockScreamService{
		commentFunc: func(ctx context.Context, author screams.Author, screamID string, req screams.CreateCommentRequest) (*screams.Comment, error) {
			gotID = screamID
			return &screams.Comment{ID: "c1", ScreamID: screamID, UserHandle: author.Handle, Body: req.Body}, nil
		},
	}

	w := httptest.NewRecorder()
	NewCommentHandler(service).HandleComment(w, newRequest(http.MethodPost, "/scream/s1/comment", `{"body":"nice"}`, &alice, "s1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", gotID)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "c1", got["commentId"])
	assert.Equal(t, "nice", got["body"])
}

func TestCommentHandler_ValidationError(t *testing.T) {
	service := &mockScreamService{
		commentFunc: func(ctx context.Context, author screams.Author, screamID string, req screams.CreateCommentRequest) (*screams.Comment, error) {
			return nil, screams.NewValidationError("comment", "must not be empty")
		},
	}

	w := httptest.NewRecorder()
	NewCommentHandler(service).HandleComment(w, newRequest(http.MethodPost, "/scream/s1/comment", `{"body":"  "}`, &alice, "s1"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "InvalidRequest", body["error"])
	assert.Equal(t, "comment: must not be empty", body["message"])
}

func TestLikeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "already liked", err: screams.ErrAlreadyLiked, wantStatus: http.StatusBadRequest, wantError: "AlreadyLiked"},
		{name: "not found", err: screams.ErrScreamNotFound, wantStatus: http.StatusNotFound, wantError: "ScreamNotFound"},
		{name: "store failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantError: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockScreamService{
				likeFunc: func(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error) {
					return nil, tt.err
				},
			}

			w := httptest.NewRecorder()
			NewLikeHandler(service).HandleLike(w, newRequest(http.MethodPost, "/scream/s1/like", "", &alice, "s1"))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w)["error"])
		})
	}
}

func TestLikeHandler_Success(t *testing.T) {
	w := httptest.NewRecorder()
	NewLikeHandler(&mockScreamService{}).HandleLike(w, newRequest(http.MethodGet, "/scream/s1/like", "", &alice, "s1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var got screams.Scream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.LikeCount)
}

func TestUnlikeHandler_NotLiked(t *testing.T) {
	service := &mockScreamService{
		unlikeFunc: func(ctx context.Context, author screams.Author, screamID string) (*screams.Scream, error) {
			return nil, screams.ErrNotLiked
		},
	}

	w := httptest.NewRecorder()
	NewLikeHandler(service).HandleUnlike(w, newRequest(http.MethodPost, "/scream/s1/unlike", "", &alice, "s1"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NotLiked", decodeError(t, w)["error"])
}

func TestUnlikeHandler_RequiresAuth(t *testing.T) {
	w := httptest.NewRecorder()
	NewLikeHandler(&mockScreamService{}).HandleUnlike(w, newRequest(http.MethodPost, "/scream/s1/unlike", "", nil, "s1"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteHandler_Success(t *testing.T) {
	w := httptest.NewRecorder()
	NewDeleteHandler(&mockScreamService{}).HandleDelete(w, newRequest(http.MethodDelete, "/scream/s1", "", &alice, "s1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Scream deleted successfully"}`, w.Body.String())
}

func TestDeleteHandler_Forbidden(t *testing.T) {
	service := &mockScreamService{
		deleteFunc: func(ctx context.Context, author screams.Author, screamID string) error {
			return screams.ErrNotAuthorized
		},
	}

	w := httptest.NewRecorder()
	NewDeleteHandler(service).HandleDelete(w, newRequest(http.MethodDelete, "/scream/s1", "", &alice, "s1"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "NotAuthorized", body["error"])
	assert.Equal(t, "Unauthorized", body["message"])
}
