package achievements

import (
	"errors"
	"time"
)

var ErrAchievementNotFound = errors.New("achievement not found")

type Type string

const (
	TypeFirstTraining     Type = "first_training"
	TypeDistanceMilestone Type = "distance_milestone"
	TypeTimeMilestone     Type = "time_milestone"
	TypeStreakWeek        Type = "streak_week"
	TypeStreakMonth       Type = "streak_month"
	TypeStyleMaster       Type = "style_master"
	TypeSpeedImprovement  Type = "speed_improvement"
	TypeConsistency       Type = "consistency"
	TypeGoalAchiever      Type = "goal_achiever"
)

type Level string

const (
	LevelBronze   Level = "bronze"
	LevelSilver   Level = "silver"
	LevelGold     Level = "gold"
	LevelPlatinum Level = "platinum"
)

// Record is the persisted per-user achievement state. At most one record
// exists per (userId, type, level); the unlock transition is one-way.
type Record struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Type        Type       `json:"type"`
	Level       Level      `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Progress    float64    `json:"progress"`
	Target      float64    `json:"target"`
	IsUnlocked  bool       `json:"isUnlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type LevelStats struct {
	Bronze   int `json:"bronze"`
	Silver   int `json:"silver"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}

type Stats struct {
	TotalAchievements    int        `json:"totalAchievements"`
	UnlockedAchievements int        `json:"unlockedAchievements"`
	CompletionRate       float64    `json:"completionRate"`
	LevelStats           LevelStats `json:"levelStats"`
}
