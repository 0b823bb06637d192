package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"newswatch/types"
)

// AnalysisArchive persists completed analyses to S3 as JSON documents, one
// object per article, keyed by processing date and article id. The archive is
// optional; archival failures never interrupt the pipeline.
type AnalysisArchive struct {
	s3     *S3
	bucket string
}

// NewAnalysisArchive wraps an S3 client and target bucket.
func NewAnalysisArchive(s3 *S3, bucket string) *AnalysisArchive {
	return &AnalysisArchive{s3: s3, bucket: bucket}
}

// Archive writes one result to the archive. Already-archived articles are
// skipped so re-analysis after a restart does not overwrite the original
// record.
func (a *AnalysisArchive) Archive(ctx context.Context, result *types.Result) error {
	key := fmt.Sprintf("analyses/%s/%s.json",
		result.Analysis.ProcessedAt.Format("2006/01/02"), result.Article.ID)

	exists, err := a.s3.Exists(ctx, a.bucket, key)
	if err != nil {
		return fmt.Errorf("archive existence check: %w", err)
	}
	if exists {
		return nil
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("archive marshal: %w", err)
	}

	if err := a.s3.Put(ctx, a.bucket, key, bytes.NewReader(payload), "application/json"); err != nil {
		return fmt.Errorf("archive upload: %w", err)
	}

	log.Printf("🗄️ Archived analysis: s3://%s/%s", a.bucket, key)
	return nil
}
