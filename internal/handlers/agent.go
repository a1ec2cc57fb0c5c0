// Package handlers implements the HTTP bridge between the host application
// and the agent. Timestamps cross the bridge as epoch milliseconds.
package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_agent.go -package=mocks insig8-ai/internal/handlers Agent

import (
	"context"

	"insig8-ai/internal/agent"
	"insig8-ai/internal/commitment"
	"insig8-ai/internal/indexer"
	"insig8-ai/internal/intelligence"
	"insig8-ai/internal/models"
	"insig8-ai/internal/screen"
)

// Agent is the operation surface the bridge exposes.
type Agent interface {
	Initialize(ctx context.Context) error

	AnalyzeMessage(ctx context.Context, in agent.MessageInput) (*models.Commitment, error)
	ActiveCommitments(ctx context.Context) ([]*models.Commitment, error)
	UpdateCommitmentStatus(ctx context.Context, id, status string) (*models.Commitment, error)
	SnoozeCommitment(ctx context.Context, id string, untilMillis int64) (*models.Commitment, error)
	CheckProgress(ctx context.Context) (commitment.ProgressReport, error)

	StartMeetingRecording(ctx context.Context, title string) (*models.MeetingSession, error)
	AppendTranscript(speaker, text string) error
	StopMeetingRecording(ctx context.Context) (*models.MeetingSession, error)
	MeetingHistory(ctx context.Context, limit int) ([]*models.MeetingSession, error)

	SemanticSearch(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error)
	HybridSearch(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error)
	GlobalSearch(ctx context.Context, query string, limit int) (intelligence.GlobalResult, error)
	EnhancedSearch(ctx context.Context, query string, limit int) (intelligence.EnhancedResult, error)
	SearchByType(ctx context.Context, query, typ string, limit int) ([]models.VectorSearchResult, error)
	SearchCommitments(ctx context.Context, query string) ([]models.VectorSearchResult, error)
	SearchMeetings(ctx context.Context, query string) ([]models.VectorSearchResult, error)
	SearchClipboard(ctx context.Context, query string) ([]models.VectorSearchResult, error)

	StartScreenMonitoring(ctx context.Context) error
	StopScreenMonitoring(ctx context.Context)
	UnrespondedMessages(ctx context.Context) ([]screen.UnrespondedMessage, error)

	ReindexItems(ctx context.Context, full bool) (indexer.Report, error)
	IndexCoverage(ctx context.Context) (*indexer.Coverage, error)

	Status(ctx context.Context) agent.Status
	Health(ctx context.Context) agent.Health
}
