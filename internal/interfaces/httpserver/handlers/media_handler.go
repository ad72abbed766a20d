package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/config"
	domain "github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/metrics"
	"github.com/memberhub/media-api/internal/interfaces/httpserver/middlewares"
	"github.com/memberhub/media-api/internal/interfaces/httpserver/requests"
	"github.com/memberhub/media-api/internal/interfaces/httpserver/responses"
)

// MediaHandler exposes the media engine over HTTP.
type MediaHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger
}

func NewMediaHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "media-handler").Logger(),
	}
}

// Upload godoc
// @Summary      Upload media
// @Description  Accepts one multipart file plus descriptive fields and stores it.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  responses.UploadResponse
// @Router       /v1/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	var form requests.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		responses.WriteValidationError(c, err.Error())
		return
	}

	mediaType := domain.MediaType(strings.ToLower(form.Type))
	switch mediaType {
	case domain.TypeImage, domain.TypeVideo, domain.TypeAudio, domain.TypeDocument:
	default:
		responses.WriteValidationError(c, "type must be one of image, video, audio, document")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.WriteValidationError(c, "missing file part")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		responses.WriteValidationError(c, "unreadable file part")
		return
	}
	defer file.Close()

	requester := middlewares.RequesterFrom(c)
	item, err := h.service.Upload(c.Request.Context(), mediaType, file, domain.UploadRequest{
		ID:              form.UploadID,
		Filename:        fileHeader.Filename,
		DeclaredSize:    fileHeader.Size,
		AccessLevel:     domain.AccessLevel(form.AccessLevel),
		ResourceID:      form.ResourceID,
		ResourceType:    form.ResourceType,
		UploadedBy:      requester.UserID,
		DurationSeconds: form.DurationSeconds,
		Tags:            splitList(form.Tags),
		Metadata: domain.Metadata{
			Title:       form.Title,
			Description: form.Description,
			Author:      form.Author,
		},
	})
	if err != nil {
		metrics.RecordUpload(string(mediaType), "error", 0)
		responses.HandleError(c, err, h.log)
		return
	}

	metrics.RecordUpload(string(mediaType), "success", item.Size)
	c.JSON(http.StatusCreated, responses.UploadResponse{Item: item})
}

// Get godoc
// @Summary      Fetch media metadata
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.ItemResponse
// @Router       /v1/media/{id} [get]
func (h *MediaHandler) Get(c *gin.Context) {
	item, err := h.service.FetchItem(c.Request.Context(), c.Param("id"), middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	if item == nil {
		responses.WriteNotFound(c, "media not found")
		return
	}
	c.JSON(http.StatusOK, responses.ItemResponse{Item: item})
}

// Content godoc
// @Summary      Fetch media bytes
// @Description  Proxies the blob through the engine; ?intent=stream records a stream event.
// @Tags         media
// @Produce      octet-stream
// @Router       /v1/media/{id}/content [get]
func (h *MediaHandler) Content(c *gin.Context) {
	intent := domain.EventDownload
	if c.Query("intent") == "stream" {
		intent = domain.EventStream
	}

	data, err := h.service.FetchBytes(c.Request.Context(), c.Param("id"), middlewares.RequesterFrom(c), intent, nil)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// Thumbnail godoc
// @Summary      Fetch a reduced-size rendering
// @Tags         media
// @Produce      jpeg
// @Router       /v1/media/{id}/thumbnail [get]
func (h *MediaHandler) Thumbnail(c *gin.Context) {
	maxDim, _ := strconv.Atoi(c.Query("size"))
	data, err := h.service.Thumbnail(c.Request.Context(), c.Param("id"), maxDim, middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

// URL godoc
// @Summary      Resolve a streaming URL for the blob
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.URLResponse
// @Router       /v1/media/{id}/url [get]
func (h *MediaHandler) URL(c *gin.Context) {
	url, err := h.service.ResolveURL(c.Request.Context(), c.Param("id"), middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.URLResponse{URL: url})
}

// Update godoc
// @Summary      Update media metadata
// @Tags         media
// @Accept       json
// @Produce      json
// @Success      200  {object}  responses.ItemResponse
// @Router       /v1/media/{id} [patch]
func (h *MediaHandler) Update(c *gin.Context) {
	var req requests.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.WriteValidationError(c, err.Error())
		return
	}

	patch := domain.MetadataPatch{Tags: req.Tags}
	if req.Metadata != nil {
		patch.Metadata = &domain.Metadata{
			Title:       req.Metadata.Title,
			Description: req.Metadata.Description,
			Author:      req.Metadata.Author,
			Keywords:    req.Metadata.Keywords,
			Location:    req.Metadata.Location,
			CaptureInfo: req.Metadata.CaptureInfo,
			Extra:       req.Metadata.Extra,
		}
	}
	if req.AccessLevel != nil {
		level := domain.AccessLevel(*req.AccessLevel)
		patch.AccessLevel = &level
	}

	item, err := h.service.UpdateMetadata(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.ItemResponse{Item: item})
}

// Delete godoc
// @Summary      Delete media
// @Description  Removes blob then record; ?soft=true deactivates instead.
// @Tags         media
// @Router       /v1/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	requester := middlewares.RequesterFrom(c)
	var err error
	if c.Query("soft") == "true" {
		err = h.service.Deactivate(c.Request.Context(), c.Param("id"), requester)
	} else {
		err = h.service.Delete(c.Request.Context(), c.Param("id"), requester)
	}
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search godoc
// @Summary      Search media records
// @Description  Queries the metadata store directly; results reflect remote state.
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.SearchResponse
// @Router       /v1/media [get]
func (h *MediaHandler) Search(c *gin.Context) {
	var q requests.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.WriteValidationError(c, err.Error())
		return
	}

	items, err := h.service.Search(c.Request.Context(), domain.SearchQuery{
		Text:           q.Text,
		Type:           domain.MediaType(q.Type),
		ResourceID:     q.ResourceID,
		ResourceType:   q.ResourceType,
		AccessLevel:    domain.AccessLevel(q.AccessLevel),
		UploadedBy:     q.UploadedBy,
		Tags:           splitList(q.Tags),
		MinSize:        q.MinSize,
		MaxSize:        q.MaxSize,
		UploadedAfter:  q.After,
		UploadedBefore: q.Before,
		Limit:          q.Limit,
	}, middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.SearchResponse{Items: items, Count: len(items)})
}

// Events godoc
// @Summary      Recent access events for one item
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.EventsResponse
// @Router       /v1/media/{id}/events [get]
func (h *MediaHandler) Events(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := h.service.Events(c.Request.Context(), c.Param("id"), limit, middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.EventsResponse{Events: events, Count: len(events)})
}

// Stats godoc
// @Summary      Access analytics for one item
// @Tags         media
// @Produce      json
// @Success      200  {object}  responses.StatsResponse
// @Router       /v1/media/{id}/stats [get]
func (h *MediaHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("id"), middlewares.RequesterFrom(c))
	if err != nil {
		responses.HandleError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.StatsResponse{Stats: stats})
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
