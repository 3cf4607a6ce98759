package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"scmicro_tracker/internal/domain/classification"
	"scmicro_tracker/internal/domain/extraction"
	"scmicro_tracker/internal/domain/tabular"
	"scmicro_tracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps a single upload at 5 MiB.
const DefaultMaxUploadBytes int64 = 5 << 20

var (
	ErrInvalidImportType = errors.New("invalid import type")
	ErrUnsupportedUpload = errors.New("unsupported upload format")
	ErrUploadTooLarge    = errors.New("upload too large")
	ErrMalformedUpload   = errors.New("malformed upload")
)

const (
	batchResultOK       = "ok"
	batchResultRejected = "rejected"
	batchResultFatal    = "fatal"
)

// IIngestionUseCase imports one spreadsheet batch into customers, work orders
// and projects.
//
// Row problems end up in BatchReport.Errors. A returned error means the batch
// was rejected or aborted; rows reconciled before an abort stay committed.

type IIngestionUseCase interface {
	Ingest(ctx context.Context, filename string, content io.Reader, importType string) (BatchReport, error)
	Template(importType string) (filename string, content []byte, err error)
}

type IngestionUseCase struct {
	customers  interfaces.ICustomerRepository
	reconciler *Reconciler
	classifier *classification.Classifier
	metrics    interfaces.IIngestionMetrics
	logger     *zap.Logger
	maxBytes   int64
}

var _ IIngestionUseCase = (*IngestionUseCase)(nil)

func NewIngestionUseCase(
	customers interfaces.ICustomerRepository,
	workOrders interfaces.IWorkOrderRepository,
	projects interfaces.IProjectRepository,
	classifier *classification.Classifier,
	metrics interfaces.IIngestionMetrics,
	logger *zap.Logger,
	maxBytes int64,
) *IngestionUseCase {
	if classifier == nil {
		classifier = classification.Default(nil)
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &IngestionUseCase{
		customers:  customers,
		reconciler: NewReconciler(workOrders, projects),
		classifier: classifier,
		metrics:    metrics,
		logger:     logger.Named("ingest.usecase"),
		maxBytes:   maxBytes,
	}
}

func (u *IngestionUseCase) Ingest(ctx context.Context, filename string, content io.Reader, importType string) (BatchReport, error) {
	schema, err := extraction.ParseSchema(importType)
	if err != nil {
		return BatchReport{}, ErrInvalidImportType
	}
	start := time.Now()
	log := u.logger.With(zap.String("type", schema.Selector()), zap.String("file", filename))

	report, err := u.ingest(ctx, log, filename, content, schema)
	elapsed := time.Since(start)
	switch {
	case err == nil:
		u.metrics.ObserveBatch(schema.Selector(), batchResultOK, elapsed)
		log.Info("batch done",
			zap.Int("processed", report.Processed),
			zap.Int("created", report.Created),
			zap.Int("updated", report.Updated),
			zap.Int("customers_created", report.CustomersCreated),
			zap.Int("failed", len(report.Errors)),
			zap.Duration("elapsed", elapsed),
		)
	case errors.Is(err, ErrUploadTooLarge), errors.Is(err, ErrUnsupportedUpload), errors.Is(err, ErrMalformedUpload):
		u.metrics.ObserveBatch(schema.Selector(), batchResultRejected, elapsed)
		log.Warn("batch rejected", zap.Error(err))
	default:
		u.metrics.ObserveBatch(schema.Selector(), batchResultFatal, elapsed)
		log.Error("batch aborted", zap.Error(err))
	}
	return report, err
}

func (u *IngestionUseCase) ingest(ctx context.Context, log *zap.Logger, filename string, content io.Reader, schema extraction.Schema) (BatchReport, error) {
	upload, err := tabular.Spool(content, filename, u.maxBytes)
	if err != nil {
		if errors.Is(err, tabular.ErrUploadTooLarge) {
			return BatchReport{}, ErrUploadTooLarge
		}
		return BatchReport{}, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		if cerr := upload.Close(); cerr != nil {
			log.Warn("temp file not removed", zap.String("path", upload.Path), zap.Error(cerr))
		}
	}()

	format, err := upload.Format()
	if err != nil {
		return BatchReport{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedUpload, filename, upload.MIME)
	}
	f, err := upload.Open()
	if err != nil {
		return BatchReport{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	reader, err := tabular.Open(f, format)
	if err != nil {
		return BatchReport{}, malformedOr(err)
	}
	defer reader.Close()
	log.Debug("batch started", zap.Int64("bytes", upload.Size), zap.Stringer("format", format))

	return u.process(ctx, log, reader, schema)
}

func (u *IngestionUseCase) process(ctx context.Context, log *zap.Logger, reader *tabular.Reader, schema extraction.Schema) (BatchReport, error) {
	resolver := NewCustomerResolver(u.customers, log)
	builder := NewReportBuilder()
	for {
		if err := ctx.Err(); err != nil {
			return BatchReport{}, err
		}
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return BatchReport{}, malformedOr(err)
		}

		outcome, customerCreated, err := u.processRow(ctx, resolver, row, schema)
		if customerCreated {
			builder.CustomerCreated()
			u.metrics.ObserveCustomerCreated(schema.Selector())
		}
		if err != nil {
			return BatchReport{}, fmt.Errorf("row %d: %w", row.Number, err)
		}
		if outcome.Kind == OutcomeFailed {
			log.Debug("row failed", zap.Int("row", outcome.Row), zap.String("reason", outcome.Reason))
		}
		builder.Record(outcome)
		u.metrics.ObserveRow(schema.Selector(), string(outcome.Kind))
	}
	return builder.Report(), nil
}

func (u *IngestionUseCase) processRow(ctx context.Context, resolver *CustomerResolver, row tabular.Row, schema extraction.Schema) (Outcome, bool, error) {
	res := extraction.Extract(row, schema)
	if !res.OK() {
		return failed(row.Number, res.Failure.Message), false, nil
	}
	fields := u.classifier.Classify(row, res.Fields)

	customer, created, err := resolver.Resolve(ctx, fields.Customer, fields.Contact)
	if err != nil {
		if rowScoped(err) {
			return failed(row.Number, err.Error()), false, nil
		}
		return Outcome{}, false, err
	}

	var outcome Outcome
	if schema == extraction.SchemaProject {
		outcome, err = u.reconciler.ReconcileProject(ctx, row.Number, fields, customer)
	} else {
		outcome, err = u.reconciler.ReconcileWorkOrder(ctx, row.Number, fields, customer)
	}
	return outcome, created, err
}

func (u *IngestionUseCase) Template(importType string) (string, []byte, error) {
	schema, err := extraction.ParseSchema(importType)
	if err != nil {
		return "", nil, ErrInvalidImportType
	}
	content, err := extraction.TemplateCSV(schema)
	if err != nil {
		return "", nil, err
	}
	return extraction.TemplateFilename(schema), content, nil
}

func malformedOr(err error) error {
	var m *tabular.MalformedInputError
	if errors.As(err, &m) {
		return fmt.Errorf("%w: %w", ErrMalformedUpload, err)
	}
	return err
}

type noopMetrics struct{}

func (noopMetrics) ObserveRow(string, string)                  {}
func (noopMetrics) ObserveCustomerCreated(string)              {}
func (noopMetrics) ObserveBatch(string, string, time.Duration) {}
