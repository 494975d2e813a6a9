package domain

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ViewingStatus string

const (
	ViewingScheduled ViewingStatus = "scheduled"
	ViewingCompleted ViewingStatus = "completed"
	ViewingCancelled ViewingStatus = "cancelled"
	ViewingNoShow    ViewingStatus = "no_show"
)

// ViewingTransition is a requested status change. scheduled is the only
// non-terminal state; every transition out of a terminal state is rejected.
type ViewingTransition string

const (
	TransitionComplete ViewingTransition = "complete"
	TransitionCancel   ViewingTransition = "cancel"
	TransitionNoShow   ViewingTransition = "no_show"
)

// transitionTarget maps a transition to the state it lands in.
var transitionTarget = map[ViewingTransition]ViewingStatus{
	TransitionComplete: ViewingCompleted,
	TransitionCancel:   ViewingCancelled,
	TransitionNoShow:   ViewingNoShow,
}

// rejections holds the per-(current state, transition) error messages. The
// legality table lives here and nowhere else.
var rejections = map[ViewingStatus]map[ViewingTransition]string{
	ViewingCompleted: {
		TransitionComplete: "Viewing is already marked as completed",
		TransitionCancel:   "Cannot cancel completed viewing",
		TransitionNoShow:   "Cannot mark completed viewing as no-show",
	},
	ViewingCancelled: {
		TransitionComplete: "Cannot mark cancelled viewing as completed",
		TransitionCancel:   "Viewing is already cancelled",
		TransitionNoShow:   "Cannot mark cancelled viewing as no-show",
	},
	ViewingNoShow: {
		TransitionComplete: "Cannot mark no-show viewing as completed",
		TransitionCancel:   "Cannot cancel no-show viewing",
		TransitionNoShow:   "Viewing is already marked as no-show",
	},
}

// Apply returns the state the transition lands in, or a ValidationError
// with the rejection message when the transition is illegal.
func (s ViewingStatus) Apply(t ViewingTransition) (ViewingStatus, error) {
	target, ok := transitionTarget[t]
	if !ok {
		return s, Invalid("Unknown viewing transition")
	}
	if s == ViewingScheduled {
		return target, nil
	}
	if msgs, ok := rejections[s]; ok {
		return s, Invalid(msgs[t])
	}
	return s, Invalid("Viewing is in an unknown state")
}

// Terminal reports whether no further transitions are permitted.
func (s ViewingStatus) Terminal() bool {
	return s == ViewingCompleted || s == ViewingCancelled || s == ViewingNoShow
}

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidViewingTime checks the HH:MM wall-clock format.
func ValidViewingTime(t string) bool {
	return timePattern.MatchString(t)
}

type Viewing struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID bson.ObjectID `bson:"propertyId" json:"propertyId"`
	ClientID   bson.ObjectID `bson:"clientId" json:"clientId"`
	Date       time.Time     `bson:"date" json:"date"`
	Time       string        `bson:"time" json:"time"`
	Status     ViewingStatus `bson:"status" json:"status"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ViewingView is a viewing joined with its client and property summaries.
type ViewingView struct {
	ID        bson.ObjectID   `bson:"_id" json:"id"`
	Client    ClientSummary   `bson:"client" json:"client"`
	Property  PropertySummary `bson:"property" json:"property"`
	Date      time.Time       `bson:"date" json:"date"`
	Time      string          `bson:"time" json:"time"`
	Status    ViewingStatus   `bson:"status" json:"status"`
	Notes     string          `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}
