package onedrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"anyonedrive/internal/logging"
	"anyonedrive/pkg/models"
)

// Recorder receives request and transfer measurements
type Recorder interface {
	RecordAPIRequest(operation, status string, duration time.Duration)
	RecordBytesStreamed(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordAPIRequest(string, string, time.Duration) {}
func (nopRecorder) RecordBytesStreamed(int)                        {}

// Service provides all OneDrive share operations in one place.
// It keeps no state between calls, so one Service can serve concurrent callers.
type Service struct {
	httpClient     *http.Client
	baseURL        string
	sharePattern   *regexp.Regexp
	requestTimeout time.Duration
	logger         *slog.Logger
	recorder       Recorder
}

// Option configures a Service
type Option func(*Service)

// WithHTTPClient sets the client used for listings and downloads.
// A client Timeout also bounds file downloads, so prefer WithRequestTimeout for listings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithBaseURL sets the API root, e.g. https://api.onedrive.com/v1.0
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithShareHost sets the host accepted in share links
func WithShareHost(host string) Option {
	return func(s *Service) {
		s.sharePattern = newSharePattern(host)
	}
}

// WithRequestTimeout bounds each listing request
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.requestTimeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// NewOneDriveService creates a new OneDrive service
func NewOneDriveService(opts ...Option) *Service {
	s := &Service{
		httpClient:     &http.Client{},
		baseURL:        DefaultBaseURL,
		sharePattern:   newSharePattern(DefaultShareHost),
		requestTimeout: 30 * time.Second,
		logger:         logging.Discard(),
		recorder:       nopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.httpClient == nil {
		s.httpClient = &http.Client{}
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}

	return s
}

// ListItems lists every child of the folder as a file or folder handle, in API order
func (s *Service) ListItems(ctx context.Context, folder models.FolderInfo) ([]models.Item, error) {
	driveItems, shareToken, err := s.listChildren(ctx, folder)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(driveItems))
	for _, driveItem := range driveItems {
		item, err := classify(driveItem, shareToken)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ListFiles lists the children of the folder that carry a file facet
func (s *Service) ListFiles(ctx context.Context, folder models.FolderInfo) ([]models.FileInfo, error) {
	driveItems, shareToken, err := s.listChildren(ctx, folder)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileInfo, 0, len(driveItems))
	for _, driveItem := range driveItems {
		if driveItem.File == nil {
			continue
		}
		item, err := classify(driveItem, shareToken)
		if err != nil {
			return nil, err
		}
		files = append(files, item.(models.FileInfo))
	}

	return files, nil
}

// ListFolders lists the children of the folder that carry a folder facet
func (s *Service) ListFolders(ctx context.Context, folder models.FolderInfo) ([]models.FolderInfo, error) {
	driveItems, shareToken, err := s.listChildren(ctx, folder)
	if err != nil {
		return nil, err
	}

	folders := make([]models.FolderInfo, 0, len(driveItems))
	for _, driveItem := range driveItems {
		if driveItem.Folder == nil {
			continue
		}
		item, err := classify(driveItem, shareToken)
		if err != nil {
			return nil, err
		}
		folders = append(folders, item.(models.FolderInfo))
	}

	return folders, nil
}

// GetStream opens the content of a file. It returns as soon as the response headers arrive;
// the caller owns the returned stream and must close it.
func (s *Service) GetStream(ctx context.Context, file models.FileInfo) (io.ReadCloser, error) {
	if file.URL == "" {
		return nil, fmt.Errorf("%w for item %q", ErrMissingDownloadURL, file.Name)
	}

	started := time.Now()
	resp, err := s.get(ctx, file.URL, "")
	if err != nil {
		s.recorder.RecordAPIRequest("download", logging.StatusError, time.Since(started))
		return nil, fmt.Errorf("failed to execute download request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		s.recorder.RecordAPIRequest("download", logging.StatusError, time.Since(started))
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: file.URL}
	}

	s.recorder.RecordAPIRequest("download", logging.StatusSuccess, time.Since(started))
	s.logger.DebugContext(ctx, "opened file stream",
		logging.Operation("onedrive.download"),
		slog.String("name", file.Name),
		slog.Int64("size", file.Size))

	return &countingBody{ReadCloser: resp.Body, recorder: s.recorder}, nil
}

// WithStream opens the content of a file, hands it to fn and closes it whatever fn returns
func (s *Service) WithStream(ctx context.Context, file models.FileInfo, fn func(io.Reader) error) error {
	stream, err := s.GetStream(ctx, file)
	if err != nil {
		return err
	}
	defer stream.Close()

	return fn(stream)
}

// listChildren fetches the raw children of a folder together with the share token they belong to
func (s *Service) listChildren(ctx context.Context, folder models.FolderInfo) ([]DriveItem, string, error) {
	endpoint, shareToken, err := s.ResolveEndpoint(folder)
	if err != nil {
		return nil, "", err
	}

	logger := s.logger.With(logging.Operation("onedrive.list"), logging.Share(shareToken))

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	started := time.Now()
	oneDriveResp, err := s.fetchChildren(ctx, endpoint)
	duration := time.Since(started)
	if err != nil {
		s.recorder.RecordAPIRequest("list", logging.StatusError, duration)
		logger.DebugContext(ctx, "listing failed", logging.Duration(duration), logging.Err(err))
		return nil, "", err
	}
	s.recorder.RecordAPIRequest("list", logging.StatusSuccess, duration)

	if oneDriveResp.NextLink != "" {
		logger.DebugContext(ctx, "listing has more pages, only the first one is returned",
			slog.Int("count", oneDriveResp.Count))
	}
	logger.DebugContext(ctx, "listed folder",
		slog.Int("items", len(oneDriveResp.Value)),
		logging.Duration(duration))

	return oneDriveResp.Value, shareToken, nil
}

func (s *Service) fetchChildren(ctx context.Context, endpoint string) (*APIResponse, error) {
	resp, err := s.get(ctx, endpoint, "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	var oneDriveResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&oneDriveResp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrDeserializationFailed, err)
	}

	return &oneDriveResp, nil
}

func (s *Service) get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	return s.httpClient.Do(req)
}

// countingBody reports streamed bytes to the recorder
type countingBody struct {
	io.ReadCloser
	recorder Recorder
}

func (b *countingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.recorder.RecordBytesStreamed(n)
	}
	return n, err
}
