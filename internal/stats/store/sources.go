package store

import (
	"context"

	intake "civicdesk/internal/intake/models"
	"civicdesk/internal/stats/models"
)

// IntakeSnapshots is implemented by the in-memory intake store.
type IntakeSnapshots interface {
	Entities(ctx context.Context) []intake.EntityProfile
	Feedback(ctx context.Context) []intake.FeedbackReport
	Submissions(ctx context.Context) []intake.Submission
}

// IntakeSources projects the intake snapshots into countable rows.
func IntakeSources(snap IntakeSnapshots) map[models.Table]Source {
	return map[models.Table]Source{
		models.TableEntities: func(ctx context.Context) []Row {
			entities := snap.Entities(ctx)
			rows := make([]Row, 0, len(entities))
			for _, e := range entities {
				approved := e.IsApproved
				rows = append(rows, Row{
					Dimensions: map[models.Dimension]string{
						models.DimEntityType:  string(e.EntityType),
						models.DimGovernorate: string(e.Governorate),
					},
					Approved:  &approved,
					CreatedAt: e.CreatedAt,
				})
			}
			return rows
		},
		models.TableFeedback: func(ctx context.Context) []Row {
			reports := snap.Feedback(ctx)
			rows := make([]Row, 0, len(reports))
			for _, f := range reports {
				rows = append(rows, Row{
					Dimensions: map[models.Dimension]string{
						models.DimFeedbackType: string(f.FeedbackType),
						models.DimPriority:     string(f.Priority),
						models.DimGovernorate:  f.Governorate,
					},
					Status:    string(f.Status),
					CreatedAt: f.CreatedAt,
				})
			}
			return rows
		},
		models.TableSubmissions: func(ctx context.Context) []Row {
			subs := snap.Submissions(ctx)
			rows := make([]Row, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, Row{CreatedAt: sub.CreatedAt})
			}
			return rows
		},
	}
}
