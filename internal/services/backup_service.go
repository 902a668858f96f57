package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "weighbridge-backend/internal/config"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupService pushes periodic CSV snapshots of the full transaction
// ledger to an S3-compatible bucket (Cloudflare R2 in production). Paper
// receipts are the yard's primary record; the snapshots are what the office
// restores from when a machine dies.
type BackupService struct {
	reports  *ReportService
	cfg      *appconfig.Config
	stopChan chan struct{}
}

func NewBackupService(reports *ReportService, cfg *appconfig.Config) *BackupService {
	return &BackupService{
		reports:  reports,
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

// Start launches the snapshot scheduler. No-op when backups are disabled.
func (s *BackupService) Start() {
	if !s.cfg.Backup.Enabled {
		log.Println("[Backup] Disabled, ledger snapshots will not be uploaded")
		return
	}

	interval := time.Duration(s.cfg.Backup.IntervalHours) * time.Hour
	log.Printf("[Backup] Ledger snapshots every %s to bucket %s", interval, s.cfg.Backup.Bucket)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.RunOnce(context.Background()); err != nil {
					log.Printf("[Backup] Snapshot failed: %v", err)
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *BackupService) Stop() {
	close(s.stopChan)
}

// RunOnce exports the full ledger and uploads it. Also used by the manual
// trigger endpoint before risky maintenance.
func (s *BackupService) RunOnce(ctx context.Context) error {
	if !s.cfg.Backup.Enabled {
		return fmt.Errorf("backups are not configured")
	}

	data, err := s.reports.GenerateTransactionsCSV(ctx, models.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("export ledger: %w", err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return fmt.Errorf("configure backup client: %w", err)
	}

	key := fmt.Sprintf("ledger/transactions_%s.csv", timeutil.Now().Format("20060102_150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, len(data))
	return nil
}

func (s *BackupService) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Backup.AccessKey,
			s.cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Backup.Region),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Backup.Endpoint)
		}
	}), nil
}
