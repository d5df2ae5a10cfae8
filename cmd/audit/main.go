package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"catalog-audit/internal/config"
	"catalog-audit/internal/email"
	"catalog-audit/internal/exclusion"
	"catalog-audit/internal/export"
	"catalog-audit/internal/logging"
	"catalog-audit/internal/providers/shopify"
	"catalog-audit/internal/report"
	"catalog-audit/internal/sftpclient"
	"catalog-audit/internal/tags"
	"catalog-audit/internal/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outDir     = flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
		limit      = flag.Int("limit", 0, "max products to fetch (0 = config default)")
		pageSize   = flag.Int("page-size", 0, "products per page (0 = config default)")
		exclusions = flag.String("exclusions", "", "YAML exclusion rule file (overrides EXCLUSIONS_FILE)")
		sendEmail  = flag.Bool("email", false, "email the generated reports via SendGrid")
		uploadSFTP = flag.Bool("sftp", false, "archive the generated reports over SFTP")
		logMode    = flag.String("log", "dev", "log mode: dev or prod")
	)
	flag.Parse()

	// .env is optional, real environments set vars directly
	_ = godotenv.Load()

	log, err := logging.New(*logMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		return 1
	}
	defer log.Sync()

	log = log.With("run_id", uuid.NewString())

	cfg := config.Load()
	if cfg.ShopURL == "" || cfg.AccessToken == "" {
		log.Error("missing Shopify configuration: set SHOP_URL and SHOPIFY_ACCESS_TOKEN")
		return 1
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *limit > 0 {
		cfg.FetchLimit = *limit
	}
	if *pageSize > 0 {
		cfg.PageSize = *pageSize
	}
	if *exclusions != "" {
		cfg.ExclusionsFile = *exclusions
	}

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Hour)
	defer cancel()

	rules := exclusion.DefaultRules()
	if cfg.ExclusionsFile != "" {
		rules, err = exclusion.LoadRules(cfg.ExclusionsFile)
		if err != nil {
			log.Errorw("loading exclusion rules", "file", cfg.ExclusionsFile, "error", err)
			return 1
		}
	}

	provider := shopify.Provider{
		C:        shopify.New(cfg.ShopURL, cfg.AccessToken, cfg.APIVersion),
		PageSize: cfg.PageSize,
		Limit:    cfg.FetchLimit,
		Log:      log,
	}

	log.Infow("starting product audit", "shop", cfg.ShopURL, "limit", cfg.FetchLimit)

	products, err := provider.ListProducts(ctx)
	if err != nil {
		log.Errorw("fetching products", "error", err)
		return 1
	}
	log.Infow("fetched products", "total", len(products))

	assembler := report.NewAssembler(
		exclusion.NewFilter(rules),
		validation.New(validation.Config{
			MinImages:            cfg.MinImages,
			MinDescriptionLength: cfg.MinDescriptionLength,
			MinPrice:             cfg.MinPrice,
		}),
		export.NewMapper(tags.NewClassifier()),
	)

	result := assembler.Run(products)
	log.Infow("audit complete",
		"total", result.Total,
		"validated", result.Validated,
		"excluded", len(result.Excluded),
		"flagged", len(result.Flagged),
	)

	if len(result.Flagged) == 0 {
		log.Info("no validation issues found")
		return 0
	}

	reportPath, importPath, err := writeReports(cfg.OutputDir, result)
	if err != nil {
		log.Errorw("writing reports", "error", err)
		return 1
	}
	log.Infow("wrote reports", "issue_report", reportPath, "import_file", importPath)

	if *sendEmail {
		if err := emailReports(ctx, cfg, log, result, reportPath, importPath); err != nil {
			log.Errorw("emailing reports", "error", err)
			return 1
		}
	}
	if *uploadSFTP {
		sftpCfg := sftpclient.Config{
			Host:      cfg.SFTPHost,
			Port:      cfg.SFTPPort,
			User:      cfg.SFTPUser,
			Pass:      cfg.SFTPPass,
			RemoteDir: cfg.SFTPDir,
		}
		upCtx, upCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer upCancel()
		if err := sftpclient.UploadFiles(upCtx, sftpCfg, []string{reportPath, importPath}); err != nil {
			log.Errorw("uploading reports", "error", err)
			return 1
		}
		log.Infow("archived reports", "host", cfg.SFTPHost, "dir", cfg.SFTPDir)
	}

	// Non-zero exit tells the scheduler the catalog needs attention.
	return 1
}

func writeReports(outputDir string, result report.Result) (reportPath, importPath string, err error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	reportPath = filepath.Join(outputDir, fmt.Sprintf("validation_report_%s.csv", stamp))
	importPath = filepath.Join(outputDir, fmt.Sprintf("product_import_%s.csv", stamp))

	if err := writeFile(reportPath, func(f *os.File) error {
		return export.WriteReportCSV(f, result.ReportEntries())
	}); err != nil {
		return "", "", err
	}
	if err := writeFile(importPath, func(f *os.File) error {
		return export.WriteImportCSV(f, result.Rows)
	}); err != nil {
		return "", "", err
	}
	return reportPath, importPath, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func emailReports(ctx context.Context, cfg config.Config, log *zap.SugaredLogger, result report.Result, paths ...string) error {
	client, err := email.New(email.Config{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailSender,
		FromName:  cfg.EmailSenderName,
	}, log)
	if err != nil {
		return err
	}

	attachments := make([]email.Attachment, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		attachments = append(attachments, email.Attachment{
			Filename: filepath.Base(p),
			Content:  content,
		})
	}

	now := time.Now()
	subject := fmt.Sprintf("Daily Product Validation Report - %s", now.Format("2006-01-02"))
	body := fmt.Sprintf(`Product Validation Report Summary
Generated: %s

Total Products Checked: %d
Products Excluded: %d
Products with Issues: %d

Details are attached.`,
		now.Format("2006-01-02 15:04:05"),
		result.Validated,
		len(result.Excluded),
		len(result.Flagged),
	)

	emailCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	return client.SendReport(emailCtx, subject, body, cfg.EmailRecipients, attachments)
}
