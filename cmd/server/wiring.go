package main

import (
	"context"
	"database/sql"
	"log/slog"

	dirmodels "campuspass/internal/directory/models"
	dirservice "campuspass/internal/directory/service"
	dirstore "campuspass/internal/directory/store"
	"campuspass/internal/notify"
	"campuspass/internal/platform/config"
	platformredis "campuspass/internal/platform/redis"
	unistore "campuspass/internal/university/store"
	"campuspass/internal/verification/handler"
	"campuspass/internal/verification/lookup"
	vmetrics "campuspass/internal/verification/metrics"
	"campuspass/internal/verification/service"
	otpstore "campuspass/internal/verification/store/otp"
	recordstore "campuspass/internal/verification/store/record"
	tokenstore "campuspass/internal/verification/store/token"
	"campuspass/internal/verification/token"
	id "campuspass/pkg/domain"
	audit "campuspass/pkg/platform/audit"
	"campuspass/pkg/platform/audit/publisher"
	auditkafka "campuspass/pkg/platform/audit/store/kafka"
	auditmemory "campuspass/pkg/platform/audit/store/memory"
	auditpostgres "campuspass/pkg/platform/audit/store/postgres"
	"campuspass/pkg/platform/tx"
)

const auditBufferSize = 1024

// directoryStore is what both the orchestrator and the token service read.
type directoryStore interface {
	FindStudent(ctx context.Context, studentID id.StudentID) (*dirmodels.Student, error)
	FindStudentByEmail(ctx context.Context, email string) (*dirmodels.Student, error)
	FindVendor(ctx context.Context, vendorID id.VendorID) (*dirmodels.Vendor, error)
	FindProduct(ctx context.Context, productID id.ProductID) (*dirmodels.Product, error)
}

type universityStore interface {
	service.UniversityStore
	lookup.ConfigSource
}

type app struct {
	handler *handler.Handler
	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(cfg config.Config, log *slog.Logger, db *sql.DB, rc *platformredis.Client) (*app, error) {
	a := &app{}

	var (
		universities universityStore
		directory    directoryStore
		records      service.RecordStore
		tokens       token.Store
		challenges   service.ChallengeStore = otpstore.New()
		auditStores  audit.Fanout
		txRunner     tx.Runner = tx.NoopRunner{}
	)
	if db != nil {
		universities = unistore.NewPostgres(db)
		directory = dirstore.NewPostgres(db)
		records = recordstore.NewPostgres(db)
		tokens = tokenstore.NewPostgres(db)
		auditStores = append(auditStores, auditpostgres.New(db))
		txRunner = tx.SQLRunner{DB: db}
	} else {
		memUniversities, memDirectory := unistore.NewInMemory(), dirstore.NewInMemory()
		if cfg.Server.SeedDemoData {
			if err := seedDemoData(memUniversities, memDirectory, log); err != nil {
				return nil, err
			}
		}
		universities = memUniversities
		directory = memDirectory
		records = recordstore.New()
		tokens = tokenstore.New()
		auditStores = append(auditStores, auditmemory.NewInMemoryStore())
	}
	if rc != nil {
		challenges = otpstore.NewRedis(rc.Client)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		client, err := auditkafka.NewClient(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		auditStores = append(auditStores, auditkafka.New(client, cfg.Kafka.Topic))
		log.Info("streaming audit events to kafka", "topic", cfg.Kafka.Topic)
	}
	auditor := publisher.NewPublisher(auditStores,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
	)
	a.closers = append(a.closers, auditor.Close)

	status := service.NewStatusReader(records)
	tokenSvc := token.New(tokens, directory, status,
		token.WithLogger(log),
		token.WithMagicLinkTTL(cfg.Verification.MagicLinkTTL),
		token.WithWidgetTTL(cfg.Verification.WidgetTTL),
	)
	lookupClient := lookup.New(universities,
		lookup.WithTimeout(cfg.Verification.LookupTimeout),
		lookup.WithLogger(log),
	)

	svc, err := service.New(service.Deps{
		Universities: universities,
		Records:      records,
		Challenges:   challenges,
		Directory:    directory,
		Tokens:       tokenSvc,
		Lookup:       lookupClient,
		Email:        emailSender(cfg.Email, log),
		WhatsApp:     whatsAppSender(cfg.WhatsApp, log),
	},
		service.WithLogger(log),
		service.WithMetrics(vmetrics.New()),
		service.WithAuditPublisher(auditor),
		service.WithTxRunner(txRunner),
		service.WithFrontendURL(cfg.Verification.FrontendURL),
		service.WithRecordTTL(cfg.Verification.RecordTTL),
		service.WithOTPLength(cfg.Verification.OTPLength),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.handler = handler.New(svc, dirservice.NewVendorAuthenticator(directory, log), log,
		handler.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		handler.WithOTPRequestLimit(cfg.Server.OTPRequestLimit),
	)
	return a, nil
}

func emailSender(cfg config.EmailConfig, log *slog.Logger) service.EmailSender {
	if cfg.APIKey == "" {
		log.Warn("SENDGRID_API_KEY not set; emails are logged, not sent")
		return notify.NewLogSender(log)
	}
	return notify.NewSendGridSender(cfg.APIKey, cfg.FromName, cfg.FromEmail, notify.WithSendGridLogger(log))
}

func whatsAppSender(cfg config.WhatsAppConfig, log *slog.Logger) service.MessageSender {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		log.Warn("twilio credentials not set; whatsapp messages are logged, not sent")
		return notify.NewLogSender(log)
	}
	return notify.NewTwilioWhatsAppSender(cfg.AccountSID, cfg.AuthToken, cfg.From, log)
}
