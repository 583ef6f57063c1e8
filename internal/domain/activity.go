package domain

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ActivityKind is the type of a logged activity.
type ActivityKind string

const (
	KindRun  ActivityKind = "run"
	KindWalk ActivityKind = "walk"
)

// MaxDistanceMiles is the exclusive upper bound imposed by the numeric(8,2) column.
const MaxDistanceMiles = 1_000_000

// MaxDurationHours is the largest value the INTEGER hours column can hold.
const MaxDurationHours = math.MaxInt32

// Valid reports whether k is one of the known kinds.
func (k ActivityKind) Valid() bool {
	return k == KindRun || k == KindWalk
}

// Duration is an activity duration decomposed the way users enter it.
type Duration struct {
	Hours   int `json:"duration_hours"`
	Minutes int `json:"duration_minutes"`
	Seconds int `json:"duration_seconds"`
}

// TotalMinutes returns the duration as fractional minutes.
func (d Duration) TotalMinutes() float64 {
	return float64(d.Hours*60+d.Minutes) + float64(d.Seconds)/60
}

// Validate checks component ranges and that the duration is not empty.
func (d Duration) Validate() error {
	if d.Hours < 0 || d.Hours > MaxDurationHours {
		return fmt.Errorf("%w: duration_hours must be within [0, %d]", ErrInvalidInput, MaxDurationHours)
	}
	if d.Minutes < 0 || d.Minutes > 59 {
		return fmt.Errorf("%w: duration_minutes must be within [0, 59]", ErrInvalidInput)
	}
	if d.Seconds < 0 || d.Seconds > 59 {
		return fmt.Errorf("%w: duration_seconds must be within [0, 59]", ErrInvalidInput)
	}
	if d.Hours+d.Minutes+d.Seconds == 0 {
		return fmt.Errorf("%w: duration must be greater than zero", ErrInvalidInput)
	}
	return nil
}

// Activity is a logged run or walk belonging to one account.
type Activity struct {
	ID            int64        `json:"id"`
	AccountID     int64        `json:"account_id"`
	Kind          ActivityKind `json:"type"`
	DistanceMiles float64      `json:"distance_miles"`
	Duration
	ActivityDate time.Time `json:"activity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the persisted invariants of an activity. DistanceMiles is
// expected to be rounded with RoundDistance first.
func (a Activity) Validate() error {
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: type must be \"run\" or \"walk\"", ErrInvalidInput)
	}
	if a.DistanceMiles <= 0 || math.IsNaN(a.DistanceMiles) {
		return fmt.Errorf("%w: distance_miles must be > 0", ErrInvalidInput)
	}
	if a.DistanceMiles >= MaxDistanceMiles {
		return fmt.Errorf("%w: distance_miles must be < %d", ErrInvalidInput, MaxDistanceMiles)
	}
	if err := a.Duration.Validate(); err != nil {
		return err
	}
	if a.ActivityDate.IsZero() {
		return fmt.Errorf("%w: activity_date is required", ErrInvalidInput)
	}
	return nil
}

// ActivityWithLikes is an activity as shown on the shared timeline.
type ActivityWithLikes struct {
	Activity
	AccountName  string `json:"user_name"`
	LikesCount   int    `json:"likes_count"`
	UserHasLiked bool   `json:"user_has_liked"`
}

// ActivityPatch holds the fields of a partial update; nil means unchanged.
type ActivityPatch struct {
	Kind          *ActivityKind `json:"type,omitempty"`
	DistanceMiles *float64      `json:"distance_miles,omitempty"`
	Hours         *int          `json:"duration_hours,omitempty"`
	Minutes       *int          `json:"duration_minutes,omitempty"`
	Seconds       *int          `json:"duration_seconds,omitempty"`
	ActivityDate  *time.Time    `json:"activity_date,omitempty"`
}

// Apply returns a copy of a with the supplied fields replaced.
func (p ActivityPatch) Apply(a Activity) Activity {
	if p.Kind != nil {
		a.Kind = *p.Kind
	}
	if p.DistanceMiles != nil {
		a.DistanceMiles = RoundDistance(*p.DistanceMiles)
	}
	if p.Hours != nil {
		a.Hours = *p.Hours
	}
	if p.Minutes != nil {
		a.Minutes = *p.Minutes
	}
	if p.Seconds != nil {
		a.Seconds = *p.Seconds
	}
	if p.ActivityDate != nil {
		a.ActivityDate = p.ActivityDate.UTC()
	}
	return a
}

// Empty reports whether the patch changes nothing.
func (p ActivityPatch) Empty() bool {
	return p.Kind == nil && p.DistanceMiles == nil && p.Hours == nil &&
		p.Minutes == nil && p.Seconds == nil && p.ActivityDate == nil
}

// RoundDistance rounds a distance to the two decimal places that are stored.
func RoundDistance(miles float64) float64 {
	return math.Round(miles*100) / 100
}

// ActivityRepository is the port for activity persistence.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a Activity) (*Activity, error)
	// ActivityByID returns nil, nil when no activity matches.
	ActivityByID(ctx context.Context, id int64) (*Activity, error)
	// ListActivitiesByAccount orders by activity date, newest first.
	ListActivitiesByAccount(ctx context.Context, accountID int64) ([]Activity, error)
	// ListActivitiesWithLikes orders by creation time, newest first. A nil
	// viewer never has liked anything.
	ListActivitiesWithLikes(ctx context.Context, viewerID *int64) ([]ActivityWithLikes, error)
	// UpdateActivity overwrites the mutable fields of a.ID and returns nil, nil
	// when no such activity exists.
	UpdateActivity(ctx context.Context, a Activity) (*Activity, error)
	// DeleteActivity removes the activity owned by accountID along with its
	// likes. It reports false when no such owned activity exists.
	DeleteActivity(ctx context.Context, id, accountID int64) (bool, error)
}
