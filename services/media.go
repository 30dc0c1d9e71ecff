package services

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/model"
	"github.com/edustream/portal_api/shared"
)

// MediaService bridges the lesson catalog and the object store. Material
// and audio entries may carry either an absolute URL (hosted elsewhere)
// or a bucket object key; object keys are exchanged for short-lived
// presigned links at read time.
type MediaService struct {
	appContext.DefaultService

	minioSvc *MinIOService
	sqlSvc   *SqliteService

	linkTTL time.Duration
}

const MEDIA_SVC = "media_svc"

const maxUploadSize = 100 << 20 // 100 MB

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	svc.linkTTL = time.Hour
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	return nil
}

func isAbsoluteURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// ResolveMaterials returns the download links for a lesson's materials.
// Link-kind entries are never presigned; they point outside the bucket
// by definition.
func (svc *MediaService) ResolveMaterials(lessonID uint) (*dto.MaterialListResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	raw := lesson.DecodeMaterials()
	if raw == nil {
		log.Printf("Malformed materials for lesson %d, serving empty", lesson.ID)
	}

	materials := make([]dto.MaterialLinkResponse, 0, len(raw))
	for _, m := range raw {
		link := dto.MaterialLinkResponse{
			Title:        m.Title,
			Kind:         m.Kind,
			URL:          m.URL,
			Downloadable: m.Kind != shared.MaterialLink,
		}

		if m.Kind != shared.MaterialLink && !isAbsoluteURL(m.URL) {
			presigned, err := svc.minioSvc.GetFileURL(m.URL, svc.linkTTL)
			if err != nil {
				log.WithError(err).Warnf("Failed to presign material %q for lesson %d", m.URL, lesson.ID)
				continue
			}
			link.URL = presigned
		}

		materials = append(materials, link)
	}

	return &dto.MaterialListResponse{
		LessonID:  lesson.ID,
		Materials: materials,
	}, nil
}

// UploadLessonMaterial stores an uploaded document in the bucket and
// appends it to the lesson's material list under its object key.
func (svc *MediaService) UploadLessonMaterial(lessonID uint, title, kind string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	objectKey, info, err := svc.storeUpload(fmt.Sprintf("lessons/%d/materials", lessonID), file)
	if err != nil {
		return nil, err
	}

	materials := lesson.DecodeMaterials()
	materials = append(materials, model.MaterialItem{
		Title: title,
		URL:   objectKey,
		Kind:  kind,
	})

	if err := svc.saveMaterials(lesson, materials); err != nil {
		return nil, err
	}

	url, err := svc.minioSvc.GetFileURL(objectKey, svc.linkTTL)
	if err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		ObjectKey:   objectKey,
		URL:         url,
		Size:        info.Size,
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

// UploadLessonAudio stores an uploaded track and appends it to the
// lesson's audio list.
func (svc *MediaService) UploadLessonAudio(lessonID uint, title, duration string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	objectKey, info, err := svc.storeUpload(fmt.Sprintf("lessons/%d/audio", lessonID), file)
	if err != nil {
		return nil, err
	}

	audios := lesson.DecodeAudios()
	audios = append(audios, model.AudioItem{
		Title:    title,
		URL:      objectKey,
		Duration: duration,
	})

	audiosJSON, err := json.Marshal(audios)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audios: %v", err)
	}
	lesson.Audios = audiosJSON

	if err := svc.sqlSvc.UpdateLesson(lesson); err != nil {
		return nil, err
	}

	url, err := svc.minioSvc.GetFileURL(objectKey, svc.linkTTL)
	if err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		ObjectKey:   objectKey,
		URL:         url,
		Size:        info.Size,
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

func (svc *MediaService) storeUpload(prefix string, file *multipart.FileHeader) (string, *dto.UploadInfo, error) {
	if file.Size > maxUploadSize {
		return "", nil, shared.NewBadRequestError(fmt.Errorf("upload of %d bytes", file.Size), "File too large")
	}

	src, err := file.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open upload: %v", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	objectKey := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := svc.minioSvc.UploadFile(objectKey, src, file.Size, contentType)
	if err != nil {
		return "", nil, err
	}

	return objectKey, &dto.UploadInfo{Size: info.Size}, nil
}

func (svc *MediaService) saveMaterials(lesson *model.Lesson, materials []model.MaterialItem) error {
	materialsJSON, err := json.Marshal(materials)
	if err != nil {
		return fmt.Errorf("failed to marshal materials: %v", err)
	}
	lesson.Materials = materialsJSON

	return svc.sqlSvc.UpdateLesson(lesson)
}

// DeleteLessonAsset removes an object from the bucket. Catalog entries
// referencing the key are the caller's concern.
func (svc *MediaService) DeleteLessonAsset(objectKey string) error {
	return svc.minioSvc.DeleteFile(objectKey)
}

// MediaStatistics summarizes what the bucket holds under the lessons prefix.
func (svc *MediaService) MediaStatistics() (map[string]interface{}, error) {
	objects, err := svc.minioSvc.ListFiles("lessons/")
	if err != nil {
		return nil, err
	}

	var totalSize int64
	for _, obj := range objects {
		totalSize += obj.Size
	}

	return map[string]interface{}{
		"object_count":     len(objects),
		"total_size_bytes": totalSize,
		"bucket":           svc.minioSvc.GetBucketName(),
	}, nil
}
