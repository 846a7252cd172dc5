package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/upload"
)

// Image re-encode settings for profile media
const (
	bannerMaxDimension = 1920
	avatarMaxDimension = 512
	jpegQuality        = 80
)

type CandidateHandler struct {
	candidateUC   domain.CandidateUsecase
	maxUploadSize int64
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, limit gin.HandlerFunc, maxUploadSizeMB int) {
	handler := &CandidateHandler{
		candidateUC:   candidateUC,
		maxUploadSize: int64(maxUploadSizeMB) << 20,
	}

	candidates := protected.Group("/candidates")
	{
		candidates.GET("/me", handler.GetProfile)
		candidates.GET("/me/setup-status", handler.SetupStatus)
		candidates.PUT("/me/profile", limit, handler.UpdateProfile)
	}
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the current user joined with their candidate profile, if set up.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.UserWithProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	user, err := h.candidateUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", user)
}

// SetupStatus godoc
// @Summary      Get profile setup status
// @Description  Reports whether the current user still needs to complete profile setup.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SetupStatus}
// @Failure      401  {object}  response.Response
// @Router       /candidates/me/setup-status [get]
// @Security     BearerAuth
func (h *CandidateHandler) SetupStatus(c *gin.Context) {
	status, err := h.candidateUC.SetupStatus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Setup status", status)
}

// UpdateProfile godoc
// @Summary      Create or update the candidate profile
// @Description  One multipart submission of the profile setup form: structured fields plus optional banner, avatar and resume files.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        name             formData  string  true   "Display name"
// @Param        primaryRole      formData  string  true   "Primary role"
// @Param        experienceYears  formData  int     true   "Years of experience"
// @Param        targetLevel      formData  string  true   "Junior, Mid, Senior or Lead"
// @Param        location         formData  string  true   "Location"
// @Param        techStack        formData  string  true   "JSON-encoded array of skills"
// @Param        bio              formData  string  false  "Bio, max 500 characters"
// @Param        banner           formData  file    false  "Profile banner image"
// @Param        avatar           formData  file    false  "Avatar image"
// @Param        resume           formData  file    false  "Resume (pdf/doc/docx)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/me/profile [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	update, err := h.parseProfileForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.UpdateProfile(c.Request.Context(), update); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", nil)
}

func (h *CandidateHandler) parseProfileForm(c *gin.Context) (*domain.ProfileUpdate, error) {
	experienceYears, err := strconv.Atoi(c.PostForm("experienceYears"))
	if err != nil {
		return nil, apperror.BadRequest("experienceYears must be a number")
	}

	var techStack []string
	if raw := c.PostForm("techStack"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &techStack); err != nil {
			return nil, apperror.BadRequest("techStack must be a JSON array of strings")
		}
	}

	update := &domain.ProfileUpdate{
		Input: domain.ProfileInput{
			Name:            c.PostForm("name"),
			PrimaryRole:     c.PostForm("primaryRole"),
			ExperienceYears: experienceYears,
			TargetLevel:     domain.CandidateLevel(c.PostForm("targetLevel")),
			Location:        c.PostForm("location"),
			TechStack:       techStack,
			Bio:             c.PostForm("bio"),
		},
	}

	if update.Banner, err = h.readAttachment(c, "banner", domain.AttachmentBanner); err != nil {
		return nil, err
	}
	if update.Avatar, err = h.readAttachment(c, "avatar", domain.AttachmentAvatar); err != nil {
		return nil, err
	}
	if update.Resume, err = h.readAttachment(c, "resume", domain.AttachmentResume); err != nil {
		return nil, err
	}

	return update, nil
}

// readAttachment pulls one optional file part out of the form, enforces the
// size cap, checks its type and pre-shrinks images before they go anywhere
// near the media service. Returns nil when the part is absent or empty.
func (h *CandidateHandler) readAttachment(c *gin.Context, field string, kind domain.AttachmentKind) (*domain.Attachment, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, apperror.BadRequest(fmt.Sprintf("could not read %s file", field))
	}
	if fileHeader.Size == 0 {
		return nil, nil
	}
	if fileHeader.Size > h.maxUploadSize {
		return nil, apperror.BadRequest(fmt.Sprintf("%s exceeds the %dMB upload limit", field, h.maxUploadSize>>20))
	}

	data, err := readFile(fileHeader)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	att := &domain.Attachment{
		Kind:     kind,
		Filename: fileHeader.Filename,
		Data:     data,
	}

	if err := upload.ValidateAttachment(att); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if kind != domain.AttachmentResume {
		maxDimension := avatarMaxDimension
		if kind == domain.AttachmentBanner {
			maxDimension = bannerMaxDimension
		}
		compressed, err := upload.CompressImage(att.Data, maxDimension, jpegQuality)
		if err != nil {
			return nil, apperror.BadRequest(fmt.Sprintf("%s is not a valid image", field))
		}
		att.Data = compressed
	}

	return att, nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
