package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/repository/firestore"
	"github.com/portnet-lab/caseflow/pkg/repository/memory"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend selection
type Repository struct {
	backend            string
	firestoreProjectID string
	firestoreDatabase  string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository backend (memory or firestore)",
			Value:       "memory",
			Sources:     cli.EnvVars("CASEFLOW_REPOSITORY"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "GCP project ID for Firestore",
			Sources:     cli.EnvVars("CASEFLOW_FIRESTORE_PROJECT_ID"),
			Destination: &r.firestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("CASEFLOW_FIRESTORE_DATABASE_ID"),
			Destination: &r.firestoreDatabase,
		},
	}
}

// Build creates the repository specified by the flags
func (r *Repository) Build(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "memory", "":
		return memory.New(), nil

	case "firestore":
		if r.firestoreProjectID == "" {
			return nil, goerr.New("firestore-project-id is required for firestore repository")
		}
		repo, err := firestore.New(ctx, r.firestoreProjectID, r.firestoreDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}

// LogValue renders the configuration for the startup log line
func (r *Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("firestore_project_id", r.firestoreProjectID),
		slog.String("firestore_database_id", r.firestoreDatabase),
	)
}
