package goals

import (
	"errors"
	"time"
)

var ErrGoalNotFound = errors.New("goal not found")

type Type string

const (
	TypeDistance     Type = "distance"
	TypeTime         Type = "time"
	TypeFrequency    Type = "frequency"
	TypeSpeed        Type = "speed"
	TypeStyleMastery Type = "style_mastery"
	TypeStreak       Type = "streak"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusPaused    Status = "paused"
)

// Goal is a user-defined, time-boxed target. Progress is recomputed against
// the activity history until the goal completes; a completed goal's values
// are frozen at the completing evaluation.
type Goal struct {
	ID           int        `json:"id"`
	UserID       int        `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Type         Type       `json:"type"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	Unit         string     `json:"unit,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       Status     `json:"status"`
	IsCompleted  bool       `json:"isCompleted"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Progress     float64    `json:"progress"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Stats struct {
	TotalGoals     int          `json:"totalGoals"`
	ActiveGoals    int          `json:"activeGoals"`
	CompletedGoals int          `json:"completedGoals"`
	FailedGoals    int          `json:"failedGoals"`
	CompletionRate float64      `json:"completionRate"`
	GoalsByType    map[Type]int `json:"goalsByType"`
}
