package agent

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/hidtools/hidlayout/hiddesc"
	"github.com/hidtools/hidlayout/internal/configsvc"
	"github.com/hidtools/hidlayout/internal/layoutsvc"
)

type Agent struct {
	config Config
	log    *zap.Logger

	db        *badger.DB
	configSvc *configsvc.Service
	layoutSvc *layoutsvc.Service

	// tables holds the last resolved layout table per corpus entry name,
	// used to report layout changes across corpus re-reads.
	tables *xsync.MapOf[string, hiddesc.LayoutTable]
}

func NewAgent(config Config) (*Agent, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dbOptions := badger.DefaultOptions(filepath.Join(config.DataDir, "db"))
	dbOptions.Logger = &badgerLogger{l: logger.Named("badger")}

	db, err := badger.Open(dbOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	configSvc := configsvc.New(logger.Named("config"))
	layoutSvc := layoutsvc.New(db, logger.Named("layouts"))

	return &Agent{
		config:    config,
		log:       logger,
		db:        db,
		configSvc: configSvc,
		layoutSvc: layoutSvc,
		tables:    xsync.NewMapOf[string, hiddesc.LayoutTable](),
	}, nil
}

func (a *Agent) Close() error {
	return a.db.Close()
}

func (a *Agent) Layouts() *layoutsvc.Service {
	return a.layoutSvc
}

type badgerLogger struct {
	l *zap.Logger
}

func (l badgerLogger) Errorf(msg string, args ...any) {
	l.l.Error(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Warningf(msg string, args ...any) {
	l.l.Warn(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Infof(msg string, args ...any) {
	l.l.Info(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Debugf(msg string, args ...any) {
	l.l.Debug(fmt.Sprintf(msg, args...))
}

// Run starts the agent and blocks until the context is cancelled.
// Agent startup will fail if the corpus configuration is not valid.
// In case configuration becomes invalid after the startup, it will remain
// running with the last valid configuration.
func (a *Agent) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.configSvc.Start(groupCtx)
	})
	group.Go(func() error {
		return a.layoutSvc.Start(groupCtx)
	})
	group.Go(func() error {
		return a.watchCorpus(groupCtx)
	})

	err := group.Wait()
	if err != nil {
		return fmt.Errorf("agent failed: %w", err)
	}
	return nil
}

func (a *Agent) watchCorpus(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-a.configSvc.Ready():
	}
	select {
	case <-ctx.Done():
		return nil
	case <-a.layoutSvc.Ready():
	}

	corpus, err := configsvc.Register(a.configSvc, a.config.CorpusConfig, Corpus{}, func(corpus Corpus, err error) {
		if err != nil {
			a.log.Error("Failed to re-read corpus config", zap.Error(err))
			return
		}
		a.processCorpus(corpus)
	})
	if err != nil {
		return fmt.Errorf("failed to register corpus config: %w", err)
	}
	a.processCorpus(corpus)

	<-ctx.Done()
	return nil
}

func (a *Agent) processCorpus(corpus Corpus) {
	for _, entry := range corpus.Descriptors {
		desc, err := entry.Bytes()
		if err != nil {
			a.log.Error("Failed to decode descriptor", zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		table, err := a.layoutSvc.Resolve(desc)
		if err != nil {
			a.log.Error("Failed to resolve layout", zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		if prev, ok := a.tables.Load(entry.Name); ok {
			for _, diff := range hiddesc.DiffTables(prev, table) {
				a.log.Warn("Layout changed",
					zap.String("name", entry.Name),
					zap.String("diff", diff.String()))
			}
		}
		a.tables.Store(entry.Name, table)
		a.log.Info("Resolved descriptor",
			zap.String("name", entry.Name),
			zap.Int("reports", len(table)),
			zap.String("class", hiddesc.Classify(table).String()))
	}
}
