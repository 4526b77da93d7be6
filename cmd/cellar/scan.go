package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai"
	"github.com/thierryx96/cellar-ai/model"
	"github.com/thierryx96/cellar-ai/ocr"
)

// scanReport is a grouped page stamped with a scan identifier
type scanReport struct {
	ScanID string `json:"scan_id"`
	Image  string `json:"image"`
	*cellar.Report
}

func newScanCmd(a *app) *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "OCR a menu photo, then enrich and group its words",
		Long: `Scan runs Tesseract over a menu photo (PNG, JPEG, GIF, WebP, TIFF or BMP),
tags the recognized words and groups them into wine entries.

OCR support must be compiled in with: go build -tags ocr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			tokens, err := a.extractTokens(data)
			if err != nil {
				return err
			}

			report, err := a.runPipeline(tokens, true, flags)
			if err != nil {
				return err
			}

			out := scanReport{ScanID: uuid.NewString(), Image: args[0], Report: report}
			a.logger.Info("scanned menu",
				zap.String("scan_id", out.ScanID),
				zap.Int("tokens", len(tokens)),
				zap.Int("entries", len(report.Entries)),
			)
			if err := a.writeJSON(cmd, out); err != nil {
				return err
			}
			summary(cmd, "scan "+out.ScanID, len(report.Entries), len(report.Noise), strategyDetail(report))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) extractTokens(data []byte) ([]model.Token, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetLanguage(a.cfg.OCR.Languages); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(ocr.PageSegMode(a.cfg.OCR.PageSegMode)); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation: %w", err)
	}
	return client.ExtractTokens(data)
}
