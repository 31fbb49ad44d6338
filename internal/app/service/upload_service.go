package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/util"
)

var (
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrFileTooLarge     = errors.New("file too large")
)

const (
	MessageUploadBusy     = "Please wait, file is being processed..."
	MessageInvalidType    = "Please select a valid file format (PDF, JPG, PNG)"
	MessageFileTooLarge   = "File size must be less than 10MB"
	MessageUploadComplete = "Certificate processed successfully! 🎉"
	messageUploadFailed   = "Error processing certificate: "
)

// DefaultMaxUploadBytes 10MB
const DefaultMaxUploadBytes = 10 << 20

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

type uploadStage struct {
	percent int
	caption func(doc model.Document) string
}

var uploadStages = []uploadStage{
	{20, func(doc model.Document) string { return fmt.Sprintf("Reading %s...", doc.Filename) }},
	{40, func(model.Document) string { return "Extracting text with OCR..." }},
	{60, func(model.Document) string { return "Parsing certificate data..." }},
	{80, func(model.Document) string { return "Verifying against database..." }},
	{100, func(model.Document) string { return "Processing complete!" }},
}

// UploadLocker is the single busy flag of the pipeline. It is not owned by a
// session: whoever finishes releases it.
type UploadLocker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
	Held(ctx context.Context) (bool, error)
}

type memoryLocker struct {
	mu   sync.Mutex
	held bool
}

// NewMemoryLocker returns an in-process UploadLocker.
func NewMemoryLocker() UploadLocker {
	return &memoryLocker{}
}

func (l *memoryLocker) Acquire(context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *memoryLocker) Release(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}

func (l *memoryLocker) Held(context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held, nil
}

// DocumentArchive stores the raw upload. It returns the object key.
type DocumentArchive interface {
	Archive(ctx context.Context, sessionID string, doc model.Document) (string, error)
}

type noopArchive struct{}

func (noopArchive) Archive(context.Context, string, model.Document) (string, error) {
	return "", nil
}

type UploadOptions struct {
	MaxBytes         int64
	StageDelayMin    time.Duration
	StageDelayJitter time.Duration

	// StageDelay overrides the random delay after each stage.
	StageDelay func() time.Duration
	// Spawn runs a pipeline. Defaults to a new goroutine.
	Spawn func(func())
	Rand  util.Rand
}

type UploadService interface {
	// Submit validates doc and starts processing it. It returns the new
	// session id; processing continues after Submit returns.
	Submit(ctx context.Context, doc model.Document) (string, error)
	// Reset clears results, hides progress, forgets the session and releases
	// the busy flag. A pipeline still running finishes but its result is dropped.
	Reset()
	State() model.UploadState
	// Wait blocks until every started pipeline has returned.
	Wait()
}

type uploadService struct {
	opts          UploadOptions
	extractor     Extractor
	verifier      VerificationService
	notifications NotificationService
	locker        UploadLocker
	archive       DocumentArchive
	clock         clock.Clock
	publisher     EventPublisher

	mu        sync.Mutex
	sessionID string
	progress  model.Progress
	result    *model.VerificationResult

	wg sync.WaitGroup
}

func NewUploadService(
	opts UploadOptions,
	extractor Extractor,
	verifier VerificationService,
	notifications NotificationService,
	locker UploadLocker,
	archive DocumentArchive,
	clk clock.Clock,
	publisher EventPublisher,
) UploadService {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxUploadBytes
	}
	if opts.Rand == nil {
		opts.Rand = util.DefaultRand()
	}
	if opts.StageDelay == nil {
		r, min, jitter := opts.Rand, opts.StageDelayMin, opts.StageDelayJitter
		opts.StageDelay = func() time.Duration {
			return util.RandomDuration(r, min, jitter)
		}
	}
	if opts.Spawn == nil {
		opts.Spawn = func(f func()) { go f() }
	}
	if locker == nil {
		locker = NewMemoryLocker()
	}
	if archive == nil {
		archive = noopArchive{}
	}
	if clk == nil {
		clk = clock.New()
	}
	return &uploadService{
		opts:          opts,
		extractor:     extractor,
		verifier:      verifier,
		notifications: notifications,
		locker:        locker,
		archive:       archive,
		clock:         clk,
		publisher:     publisherOrNoop(publisher),
	}
}

func (s *uploadService) Submit(ctx context.Context, doc model.Document) (string, error) {
	busy, err := s.locker.Held(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check upload lock: %w", err)
	}
	if busy {
		s.notifications.Notify(MessageUploadBusy, model.SeverityWarning)
		return "", ErrUploadInProgress
	}

	if err := s.validate(doc); err != nil {
		return "", err
	}

	acquired, err := s.locker.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to acquire upload lock: %w", err)
	}
	if !acquired {
		s.notifications.Notify(MessageUploadBusy, model.SeverityWarning)
		return "", ErrUploadInProgress
	}

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessionID = sessionID
	s.result = nil
	s.progress = model.Progress{Visible: true}
	s.mu.Unlock()

	logger.Info("Upload session started", map[string]interface{}{
		"session_id": sessionID,
		"filename":   doc.Filename,
		"size":       doc.Size,
	})
	s.publisher.Publish(websocket.EventUploadProgress, s.State())

	// the pipeline outlives the request that submitted it
	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	s.opts.Spawn(func() {
		defer s.wg.Done()
		s.run(runCtx, sessionID, doc)
	})

	return sessionID, nil
}

func (s *uploadService) validate(doc model.Document) error {
	if !allowedContentTypes[normalizeContentType(doc.ContentType)] {
		s.notifications.Notify(MessageInvalidType, model.SeverityError)
		return fmt.Errorf("%w: %q", ErrInvalidFileType, doc.ContentType)
	}
	if doc.Size > s.opts.MaxBytes {
		s.notifications.Notify(MessageFileTooLarge, model.SeverityError)
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, doc.Size)
	}
	return nil
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func (s *uploadService) run(ctx context.Context, sessionID string, doc model.Document) {
	defer s.finish(ctx, sessionID)

	if err := s.process(ctx, sessionID, doc); err != nil {
		logger.Error("Upload processing failed", err, map[string]interface{}{
			"session_id": sessionID,
			"filename":   doc.Filename,
		})
		if s.isCurrent(sessionID) {
			s.notifications.Notify(messageUploadFailed+err.Error(), model.SeverityError)
		}
	}
}

func (s *uploadService) process(ctx context.Context, sessionID string, doc model.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	for i, stage := range uploadStages {
		s.setProgress(sessionID, stage.percent, stage.caption(doc))
		if i == 0 {
			s.archiveDocument(ctx, sessionID, doc)
		}
		if err := s.clock.Sleep(ctx, s.opts.StageDelay()); err != nil {
			return err
		}
	}

	if !s.isCurrent(sessionID) {
		logger.Info("Upload session superseded, result discarded", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil
	}

	extracted, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return err
	}

	// a reset session must not reach the stats or the recent log
	if !s.isCurrent(sessionID) {
		logger.Info("Upload session superseded before verification, result discarded", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil
	}

	result, err := s.verifier.Verify(ctx, extracted)
	if err != nil {
		return err
	}

	s.mu.Lock()
	current := s.sessionID == sessionID
	if current {
		s.result = result
	}
	s.mu.Unlock()
	if !current {
		return nil
	}

	s.publisher.Publish(websocket.EventUploadResult, result)
	s.notifications.Notify(MessageUploadComplete, model.SeveritySuccess)
	return nil
}

func (s *uploadService) archiveDocument(ctx context.Context, sessionID string, doc model.Document) {
	key, err := s.archive.Archive(ctx, sessionID, doc)
	if err != nil {
		logger.Warn("Failed to archive uploaded document", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}
	if key != "" {
		logger.Debug("Uploaded document archived", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
		})
	}
}

// finish hides progress and releases the busy flag whether or not the
// session is still current.
func (s *uploadService) finish(ctx context.Context, sessionID string) {
	s.mu.Lock()
	s.progress.Visible = false
	s.mu.Unlock()

	if err := s.locker.Release(ctx); err != nil {
		logger.Error("Failed to release upload lock", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}

	logger.Info("Upload session complete", map[string]interface{}{
		"session_id": sessionID,
	})
	s.publisher.Publish(websocket.EventUploadProgress, s.State())
}

func (s *uploadService) setProgress(sessionID string, percent int, caption string) {
	s.mu.Lock()
	if s.sessionID != sessionID {
		s.mu.Unlock()
		return
	}
	s.progress = model.Progress{Visible: true, Percent: percent, Caption: caption}
	progress := s.progress
	s.mu.Unlock()

	s.publisher.Publish(websocket.EventUploadProgress, progress)
}

func (s *uploadService) isCurrent(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID == sessionID
}

func (s *uploadService) Reset() {
	s.mu.Lock()
	s.sessionID = ""
	s.result = nil
	s.progress = model.Progress{}
	s.mu.Unlock()

	if err := s.locker.Release(context.Background()); err != nil {
		logger.Error("Failed to release upload lock", err)
	}
	s.publisher.Publish(websocket.EventUploadReset, nil)
}

func (s *uploadService) State() model.UploadState {
	busy, err := s.locker.Held(context.Background())
	if err != nil {
		logger.Warn("Failed to read upload lock", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return model.UploadState{
		Busy:      busy,
		SessionID: s.sessionID,
		Progress:  s.progress,
		Result:    s.result,
	}
}

func (s *uploadService) Wait() {
	s.wg.Wait()
}
