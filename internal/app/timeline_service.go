package app

import (
	"context"

	"stride/internal/domain"
)

// ActivityView is an activity together with its derived display metrics.
type ActivityView struct {
	domain.Activity
	Pace            string `json:"pace"`
	DurationDisplay string `json:"duration_display"`
}

// TimelineEntry is a timeline row together with its derived display metrics.
type TimelineEntry struct {
	domain.ActivityWithLikes
	Pace            string `json:"pace"`
	DurationDisplay string `json:"duration_display"`
}

// NewActivityView derives pace and duration text for a. Pace is left empty
// when the stored distance cannot produce one.
func NewActivityView(a domain.Activity) ActivityView {
	pace, _ := domain.Pace(a.DistanceMiles, a.Duration)
	return ActivityView{
		Activity:        a,
		Pace:            pace,
		DurationDisplay: domain.FormatDuration(a.Duration),
	}
}

// TimelineService encapsulates the activity listing use cases.
type TimelineService struct {
	activities domain.ActivityRepository
}

// NewTimelineService creates a TimelineService backed by the given repository.
func NewTimelineService(activities domain.ActivityRepository) *TimelineService {
	return &TimelineService{activities: activities}
}

// ListAll returns every activity, newest first, with like metadata relative
// to viewerID. A nil viewer has liked nothing.
func (s *TimelineService) ListAll(ctx context.Context, viewerID *int64) ([]TimelineEntry, error) {
	rows, err := s.activities.ListActivitiesWithLikes(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]TimelineEntry, 0, len(rows))
	for _, row := range rows {
		pace, _ := domain.Pace(row.DistanceMiles, row.Duration)
		out = append(out, TimelineEntry{
			ActivityWithLikes: row,
			Pace:              pace,
			DurationDisplay:   domain.FormatDuration(row.Duration),
		})
	}
	return out, nil
}

// ListForAccount returns the activities of one account, most recent activity
// date first.
func (s *TimelineService) ListForAccount(ctx context.Context, accountID int64) ([]ActivityView, error) {
	items, err := s.activities.ListActivitiesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityView, 0, len(items))
	for _, a := range items {
		out = append(out, NewActivityView(a))
	}
	return out, nil
}
