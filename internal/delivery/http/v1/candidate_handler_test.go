package v1_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-interview-backend/internal/delivery/http/middleware"
	v1 "go-interview-backend/internal/delivery/http/v1"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) GetCurrentUser(ctx context.Context) (*domain.UserWithProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithProfile), args.Error(1)
}

func (m *MockCandidateUC) SetupStatus(ctx context.Context) (*domain.SetupStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SetupStatus), args.Error(1)
}

func (m *MockCandidateUC) UpdateProfile(ctx context.Context, update *domain.ProfileUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func setupRouter(uc domain.CandidateUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	group := r.Group("/v1")
	noLimit := func(c *gin.Context) { c.Next() }
	v1.NewCandidateHandler(group, uc, noLimit, 5)
	return r
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/v1/candidates/me/profile", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func profileFields() map[string]string {
	return map[string]string{
		"name":            "Ana",
		"primaryRole":     "Backend Engineer",
		"experienceYears": "3",
		"targetLevel":     "Mid",
		"location":        "Remote",
		"techStack":       `["Go","Postgres"]`,
		"bio":             "I build backends.",
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("Should parse fields and hand them to the usecase", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		var got *domain.ProfileUpdate
		uc.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(*domain.ProfileUpdate)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, profileFields()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ana", got.Input.Name)
		assert.Equal(t, 3, got.Input.ExperienceYears)
		assert.Equal(t, domain.LevelMid, got.Input.TargetLevel)
		assert.Equal(t, []string{"Go", "Postgres"}, got.Input.TechStack)
		assert.Nil(t, got.Banner)
		assert.Nil(t, got.Avatar)
		assert.Nil(t, got.Resume)
	})

	t.Run("Should re-encode a submitted avatar as JPEG", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		var got *domain.ProfileUpdate
		uc.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(*domain.ProfileUpdate)
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, profileFields(),
			formFile{field: "avatar", name: "face.png", data: tinyPNG(t)}))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Avatar)
		assert.Equal(t, domain.AttachmentAvatar, got.Avatar.Kind)
		assert.Equal(t, []byte{0xFF, 0xD8}, got.Avatar.Data[:2]) // JPEG SOI
	})

	t.Run("Should reject a non-numeric experienceYears before the usecase runs", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		fields := profileFields()
		fields["experienceYears"] = "three"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "experienceYears must be a number")
		uc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed techStack JSON", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		fields := profileFields()
		fields["techStack"] = "Go, Postgres"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a resume with a forbidden file type", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, profileFields(),
			formFile{field: "resume", name: "cv.exe", data: []byte{0x4D, 0x5A, 0x90, 0x00}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Should map usecase errors through the envelope", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		uc.On("UpdateProfile", mock.Anything, mock.Anything).
			Return(apperror.NotFound("User not found"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, profileFields()))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestGetProfileHandler(t *testing.T) {
	t.Run("Should return the joined profile payload", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		uc.On("GetCurrentUser", mock.Anything).Return(&domain.UserWithProfile{
			User: domain.User{ID: "user_db_1", ClerkID: "clerk_1", Email: "ana@example.com"},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/candidates/me", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"clerk_id":"clerk_1"`)
	})

	t.Run("Should report setup status", func(t *testing.T) {
		uc := new(MockCandidateUC)
		router := setupRouter(uc)

		uc.On("SetupStatus", mock.Anything).Return(&domain.SetupStatus{NeedsProfile: true}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/candidates/me/setup-status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"needs_profile":true`)
	})
}
