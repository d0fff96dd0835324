package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/matchstats/config"
	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/schema"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the web dashboard",
	Long: `Launch the matchstats dashboard, a single web page where you upload a
matches CSV and get the same report as 'matchstats analyze'.

The page shows:
- A preview of the uploaded table
- Key insights, venue and city analysis, deeper statistics
- A team appearances bar chart and the additional insight tables

If data.file (or --file) is set, that table is analyzed when the page opens.
The interface is available at http://localhost:8080 by default.`,
	Run: func(cmd *cobra.Command, args []string) {
		port := viper.GetString("dashboard.port")
		if port == "" {
			port = "8080"
		}
		cfg.Dashboard.Port = port

		fmt.Printf("🚀 Starting matchstats dashboard on http://localhost:%s\n", port)
		fmt.Println("Press Ctrl+C to stop the server")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := NewDashboardServer(cfg, logger).ListenAndServe(ctx); err != nil {
			fail("Dashboard stopped: %v", err)
			return
		}
	},
}

func init() {
	dashboardCmd.Flags().String("port", "8080", "Port to run the web server on")
	viper.BindPFlag("dashboard.port", dashboardCmd.Flags().Lookup("port"))
}

// DashboardServer serves the upload page and the JSON analysis endpoint.
type DashboardServer struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func NewDashboardServer(cfg *config.Config, logger *logrus.Logger) *DashboardServer {
	return &DashboardServer{cfg: cfg, logger: logger}
}

// Handler returns the dashboard routes.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/analyze", s.handleAPIAnalyze)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs until ctx is cancelled.
func (s *DashboardServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Dashboard.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *DashboardServer) page() report.Page {
	return report.Page{
		Title:       report.DefaultTitle,
		UploadPath:  "/analyze",
		MaxUploadMB: s.cfg.Dashboard.MaxUploadMB,
	}
}

func (s *DashboardServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.page()
	if s.cfg.Data.File == "" {
		p.Prompt = missingInputPrompt
		s.writePage(w, http.StatusOK, p)
		return
	}

	records, err := loader.LoadMatches(s.cfg.Data.File)
	if err != nil {
		s.logger.WithError(err).WithField("file", s.cfg.Data.File).Error("failed to load configured table")
		p.Error = err.Error()
		s.writePage(w, http.StatusInternalServerError, p)
		return
	}
	status := s.fillPage(&p, s.cfg.Data.File, records, s.requestLogger(w, r))
	s.writePage(w, status, p)
}

func (s *DashboardServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	log := s.requestLogger(w, r)
	p := s.page()

	filename, data, err := s.readUpload(w, r)
	if errors.Is(err, loader.ErrMissingInput) {
		p.Prompt = missingInputPrompt
		s.writePage(w, http.StatusOK, p)
		return
	}
	if err != nil {
		log.WithError(err).Warn("upload rejected")
		p.Error = err.Error()
		s.writePage(w, http.StatusBadRequest, p)
		return
	}

	records, err := loader.Parse(filename, data)
	if err != nil {
		log.WithError(err).WithField("filename", filename).Warn("uploaded table is malformed")
		p.Filename = filename
		p.Error = err.Error()
		s.writePage(w, http.StatusBadRequest, p)
		return
	}

	status := s.fillPage(&p, filename, records, log)
	s.writePage(w, status, p)
}

func (s *DashboardServer) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	log := s.requestLogger(w, r)

	filename, data, err := s.readUpload(w, r)
	if err != nil {
		if errors.Is(err, loader.ErrMissingInput) {
			err = errors.New(missingInputPrompt)
		}
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := loader.Parse(filename, data)
	if err != nil {
		log.WithError(err).WithField("filename", filename).Warn("uploaded table is malformed")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rep, err := s.analyze(filename, records, log)
	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, rep)
}

func (s *DashboardServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload returns the uploaded "file" part. ErrMissingInput means the
// form carried no file.
func (s *DashboardServer) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := s.cfg.Dashboard.MaxUploadMB << 20
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		return "", nil, fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, loader.ErrMissingInput
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return header.Filename, data, nil
}

// fillPage adds the preview and report for records to p and returns the
// response status.
func (s *DashboardServer) fillPage(p *report.Page, filename string, records []schema.MatchRecord, log *logrus.Entry) int {
	p.Filename = filename
	p.Message = loadedMessage
	p.Preview = report.PreviewTable(records, s.cfg.Analysis.PreviewRows)

	rep, err := s.analyze(filename, records, log)
	p.Report = rep
	if err != nil {
		p.Error = err.Error()
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func (s *DashboardServer) analyze(filename string, records []schema.MatchRecord, log *logrus.Entry) (*report.Report, error) {
	return analyzeRecords(records, filename, analysisOptions(s.cfg), log)
}

func (s *DashboardServer) requestLogger(w http.ResponseWriter, r *http.Request) *logrus.Entry {
	id := uuid.NewString()
	w.Header().Set("X-Request-ID", id)
	return s.logger.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}

func (s *DashboardServer) writePage(w http.ResponseWriter, status int, p report.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := report.RenderPage(w, p); err != nil {
		s.logger.WithError(err).Error("failed to render page")
	}
}

func (s *DashboardServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := report.WriteJSON(w, v, ""); err != nil {
		s.logger.WithError(err).Error("failed to write response")
	}
}
