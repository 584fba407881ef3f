package app

import (
	"context"
	"io"

	"github.com/alexanderramin/cxready/internal/domain"
)

type SubmitAssessmentUseCase interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
}

type PreviewAssessmentUseCase interface {
	Preview(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
}

type ReadLogUseCase interface {
	ReadLog(ctx context.Context) ([]domain.AssessmentRecord, error)
}

type ExportLogUseCase interface {
	ExportLog(ctx context.Context, w io.Writer, delimiter rune) (int, error)
}
