package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gestoria/internal/api"
	"gestoria/internal/filex"
	"gestoria/internal/logging"
	sc "gestoria/internal/server/config"
	"gestoria/internal/server/filestore"
	"gestoria/internal/server/models"
	"gestoria/internal/server/processor"
	"gestoria/internal/server/repositories/repomanager"
	"gestoria/internal/server/repositories/uploads"
)

// ErrUnsupportedFile rejects intake of anything but PDF and XLSX payloads.
// The text is the Spanish detail string operators see.
var ErrUnsupportedFile = errors.New("Solo se admiten PDF o XLSX")

// ErrNoFilename marks a record that cannot be retried because it carries no
// original filename for the processor to locate.
var ErrNoFilename = errors.New("El upload no tiene filename")

// ProcessorNotifier hands one stored document to the processing pipeline.
// It never fails outright: an unreachable pipeline is reported as a
// synthetic status (processor.StatusUnreachable) with a diagnostic detail,
// and any status >= 300 means the job was not accepted.
type ProcessorNotifier interface {
	Notify(ctx context.Context, job processor.Job) (status int, detail string)
}

// allowedUpload is the intake extension policy. The check is on the
// lowercase filename only; declared MIME types are recorded but not trusted.
func allowedUpload(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".pdf") || strings.HasSuffix(name, ".xlsx")
}

// guessMime falls back to the extension when the client declared no type.
func guessMime(filename, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return api.MimePDF
	}
	return api.MimeXLSX
}

// UploadService runs the document intake: payload storage, the metadata
// row, and the webhook that hands the document to the processing pipeline.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       filestore.Store
	notifier    ProcessorNotifier
	storage     string
	log         logging.Logger
}

func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, store filestore.Store, notifier ProcessorNotifier, cfg *sc.Config, log logging.Logger) *UploadService {
	storage := cfg.FileStore
	if storage == "" {
		storage = "local"
	}
	return &UploadService{
		db:          db,
		repomanager: m,
		store:       store,
		notifier:    notifier,
		storage:     storage,
		log:         log.With("module", "uploads"),
	}
}

// Store ingests one uploaded document: saves the payload, records the
// metadata row with status UPLOADED, and fires the processing webhook.
// A webhook refusal does not fail the intake; the row is flipped to FAILED
// with the refusal detail so the history view offers a retry.
func (s *UploadService) Store(ctx context.Context, user *models.User, kind api.DocumentKind, filename, contentType string, data []byte) (*models.Upload, error) {
	if !allowedUpload(filename) {
		return nil, ErrUnsupportedFile
	}

	safeName := filex.SanitizeFilename(filename)

	path, err := s.store.Save(ctx, user.Username, kind, safeName, data)
	if err != nil {
		return nil, fmt.Errorf("error guardando archivo: %v", err)
	}

	sum := sha256.Sum256(data)

	upload := &models.Upload{
		UserID:           user.ID,
		Tipo:             kind,
		OriginalFilename: safeName,
		StoragePath:      path,
		MimeType:         guessMime(safeName, contentType),
		SizeBytes:        int64(len(data)),
		SHA256:           hex.EncodeToString(sum[:]),
		Status:           api.StatusUploaded,
	}

	repo := s.repomanager.Uploads(s.db)
	upload, err = repo.Create(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("error insertando metadatos: %v", err)
	}

	s.log.Info(ctx, "upload stored", "upload_id", upload.ID, "tipo", kind, "filename", safeName, "size", upload.SizeBytes)

	status, detail := s.notifier.Notify(ctx, processor.Job{
		Tipo:     kind,
		Storage:  s.storage,
		User:     user.Username,
		Filename: safeName,
	})
	if status >= 300 {
		s.log.Error(ctx, "processing webhook refused upload", "upload_id", upload.ID, "status", status)
		upload.Status = api.StatusFailed
		upload.Detail = fmt.Sprintf("n8n %d: %s", status, truncate(detail, 200))
		if err := repo.SetStatus(ctx, upload.ID, upload.Status, upload.Detail); err != nil {
			s.log.Warn(ctx, "could not mark upload failed", "upload_id", upload.ID, "error", err)
		}
	}

	return upload, nil
}

// RetryOutcome reports one webhook re-fire: the upload row as left in the
// database and the processor's raw answer.
type RetryOutcome struct {
	Upload          *models.Upload
	ProcessorStatus int
	ProcessorDetail string
}

// Retry re-fires the processing webhook for a stored upload. Success flips
// the row back to UPLOADED, failure to FAILED with the refusal detail; the
// status update itself is best effort, like the original intake.
func (s *UploadService) Retry(ctx context.Context, user *models.User, id string, kind api.DocumentKind) (*RetryOutcome, error) {
	repo := s.repomanager.Uploads(s.db)

	upload, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, uploads.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading upload: %v", err)
	}
	if upload.OriginalFilename == "" {
		return nil, ErrNoFilename
	}

	status, detail := s.notifier.Notify(ctx, processor.Job{
		Tipo:     kind,
		Storage:  s.storage,
		User:     user.Username,
		Filename: upload.OriginalFilename,
	})

	if status < 300 {
		upload.Status = api.StatusUploaded
		upload.Detail = "reintento OK"
	} else {
		upload.Status = api.StatusFailed
		upload.Detail = fmt.Sprintf("n8n %d: %s", status, truncate(detail, 200))
	}
	if err := repo.SetStatus(ctx, upload.ID, upload.Status, upload.Detail); err != nil {
		s.log.Warn(ctx, "could not update upload after retry", "upload_id", upload.ID, "error", err)
	}

	s.log.Info(ctx, "upload retried", "upload_id", upload.ID, "status", status)

	return &RetryOutcome{
		Upload:          upload,
		ProcessorStatus: status,
		ProcessorDetail: truncate(detail, 500),
	}, nil
}

// ListRecent returns up to limit upload records, newest first.
func (s *UploadService) ListRecent(ctx context.Context, limit int) ([]models.Upload, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repomanager.Uploads(s.db).ListRecent(ctx, limit)
}
