package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/filestorage"
	"github.com/rmendoza/alumnitrack/internal/pkg/websocket"
)

const announcementImageDir = "announcements"

// AnnouncementService handles announcements and the real-time feed
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
	storage          filestorage.FileStorage
	hub              *websocket.Hub
	activityService  *ActivityService
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcementRepo *repositories.AnnouncementRepository,
	storage filestorage.FileStorage,
	hub *websocket.Hub,
	activityService *ActivityService,
	logger zerolog.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		storage:          storage,
		hub:              hub,
		activityService:  activityService,
		logger:           logger,
	}
}

// Create publishes a new announcement, optionally with an image, and pushes
// a feed event to connected clients.
func (s *AnnouncementService) Create(ctx context.Context, adminID int64, req *dto.CreateAnnouncementRequest, image *multipart.FileHeader, userAgent string) (*models.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewBadRequestError("title is required")
	}

	audience := req.Audience
	if audience == "" {
		audience = "all"
	}

	a := &models.Announcement{
		Title:     title,
		Body:      req.Body,
		Audience:  audience,
		CreatedBy: &adminID,
	}

	if image != nil {
		path, err := s.storage.SaveFileWithPath(image, announcementImageDir)
		if err != nil {
			return nil, err
		}
		a.ImageURL = &path
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		// Don't leave an orphan image behind
		if a.ImageURL != nil {
			_ = s.storage.DeleteFile(*a.ImageURL)
		}
		return nil, err
	}

	s.hub.Broadcast(&websocket.Event{
		Type:           websocket.EventAnnouncementCreated,
		AnnouncementID: a.ID,
		Title:          a.Title,
		Timestamp:      time.Now(),
	})

	s.activityService.Log(adminID, models.ActivityAnnouncement, "Published announcement", map[string]any{
		"announcementId": a.ID,
		"title":          a.Title,
	}, userAgent)

	return s.announcementRepo.GetByID(ctx, a.ID)
}

// Update edits an announcement. A new image replaces and removes the old one.
func (s *AnnouncementService) Update(ctx context.Context, adminID, id int64, req *dto.UpdateAnnouncementRequest, image *multipart.FileHeader, userAgent string) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewBadRequestError("title cannot be empty")
		}
		a.Title = title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Audience != nil && *req.Audience != "" {
		a.Audience = *req.Audience
	}

	var oldImage *string
	if image != nil {
		path, err := s.storage.SaveFileWithPath(image, announcementImageDir)
		if err != nil {
			return nil, err
		}
		oldImage = a.ImageURL
		a.ImageURL = &path
	}

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		if image != nil && a.ImageURL != nil {
			_ = s.storage.DeleteFile(*a.ImageURL)
		}
		return nil, err
	}

	if oldImage != nil {
		if err := s.storage.DeleteFile(*oldImage); err != nil {
			s.logger.Warn().Err(err).Str("path", *oldImage).Msg("Failed to delete replaced announcement image")
		}
	}

	s.hub.Broadcast(&websocket.Event{
		Type:           websocket.EventAnnouncementUpdated,
		AnnouncementID: a.ID,
		Title:          a.Title,
		Timestamp:      time.Now(),
	})

	s.activityService.Log(adminID, models.ActivityAnnouncement, "Updated announcement", map[string]any{
		"announcementId": a.ID,
	}, userAgent)

	return s.announcementRepo.GetByID(ctx, id)
}

// Delete removes an announcement and its image
func (s *AnnouncementService) Delete(ctx context.Context, adminID, id int64, userAgent string) error {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	if a.ImageURL != nil {
		if err := s.storage.DeleteFile(*a.ImageURL); err != nil {
			s.logger.Warn().Err(err).Str("path", *a.ImageURL).Msg("Failed to delete announcement image")
		}
	}

	s.hub.Broadcast(&websocket.Event{
		Type:           websocket.EventAnnouncementDeleted,
		AnnouncementID: id,
		Timestamp:      time.Now(),
	})

	s.activityService.Log(adminID, models.ActivityAnnouncement, "Deleted announcement", map[string]any{
		"announcementId": id,
	}, userAgent)

	return nil
}

// GetByID retrieves a single announcement
func (s *AnnouncementService) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

// List retrieves announcements newest first
func (s *AnnouncementService) List(ctx context.Context, filter dto.AnnouncementFilterRequest) ([]*models.Announcement, int, error) {
	return s.announcementRepo.List(ctx, filter)
}

// UnseenCount returns the number of announcements the user has not seen
func (s *AnnouncementService) UnseenCount(ctx context.Context, userID int64) (int64, error) {
	return s.announcementRepo.CountUnseen(ctx, userID)
}

// MarkSeen moves the user's watermark so the unseen badge resets
func (s *AnnouncementService) MarkSeen(ctx context.Context, userID int64) error {
	return s.announcementRepo.TouchLastSeen(ctx, userID)
}
