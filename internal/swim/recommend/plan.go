package recommend

import (
	"fmt"
	"time"

	"github.com/2beens/swimstats/internal/swim"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type PlanGoal string

const (
	GoalEndurance PlanGoal = "endurance"
	GoalSpeed     PlanGoal = "speed"
	GoalTechnique PlanGoal = "technique"
	GoalGeneral   PlanGoal = "general"
)

type PlanRequest struct {
	Goal             PlanGoal   `json:"goal"`
	Style            swim.Style `json:"style,omitempty"`
	Duration         int        `json:"duration,omitempty"`
	FrequencyPerWeek int        `json:"frequencyPerWeek,omitempty"`
}

type TrainingPlan struct {
	ID              int        `json:"id"`
	UserID          int        `json:"userId"`
	Goal            PlanGoal   `json:"goal"`
	Difficulty      Difficulty `json:"difficulty"`
	Focus           string     `json:"focus"`
	Intensity       string     `json:"intensity"`
	SwimTraining    string     `json:"swimTraining"`
	DrylandTraining string     `json:"drylandTraining"`
	TargetHeartRate float64    `json:"targetHeartRate,omitempty"`
	Duration        int        `json:"duration"`
	CreatedAt       time.Time  `json:"createdAt"`
}

const maxTargetHeartRate = 160

// Synthesize turns a profile and a request into a training plan. It always
// produces a plan; with no history the neutral baseline profile drives it.
func Synthesize(profile UserProfile, req PlanRequest) TrainingPlan {
	difficulty := difficultyOf(profile)

	plan := TrainingPlan{
		UserID:     profile.UserID,
		Goal:       goalOrDefault(req.Goal),
		Difficulty: difficulty,
		Duration:   durationOf(req, difficulty),
	}
	plan.Focus, plan.Intensity = focusAndIntensity(plan.Goal, profile)
	plan.SwimTraining = swimTraining(plan.Goal, difficulty)
	plan.DrylandTraining = drylandTraining(plan.Goal)

	if profile.Wearable != nil && profile.Wearable.AvgHeartRate > 0 {
		plan.TargetHeartRate = profile.Wearable.AvgHeartRate + 10
		if plan.TargetHeartRate > maxTargetHeartRate {
			plan.TargetHeartRate = maxTargetHeartRate
		}
		plan.SwimTraining = fmt.Sprintf("%s, target HR ~%.0f bpm", plan.SwimTraining, plan.TargetHeartRate)
	}

	return plan
}

// difficultyOf picks a tier from training history, or purely from wearable
// heart-rate/stroke-rate signal when one exists. The two paths are never
// blended.
func difficultyOf(profile UserProfile) Difficulty {
	if w := profile.Wearable; w != nil && (w.AvgHeartRate > 0 || w.StrokeRate > 0) {
		switch {
		case w.AvgHeartRate > 150 && w.StrokeRate > 50:
			return DifficultyAdvanced
		case w.AvgHeartRate > 130 && w.StrokeRate > 40:
			return DifficultyIntermediate
		default:
			return DifficultyBeginner
		}
	}

	// any one weak metric drags the tier down
	if profile.TotalDistance < 5000 || profile.TrainingFrequency < 2 || profile.Consistency < 0.3 {
		return DifficultyBeginner
	}
	if profile.TotalDistance < 20000 || profile.TrainingFrequency < 4 || profile.Consistency < 0.6 {
		return DifficultyIntermediate
	}
	return DifficultyAdvanced
}

func goalOrDefault(goal PlanGoal) PlanGoal {
	switch goal {
	case GoalEndurance, GoalSpeed, GoalTechnique:
		return goal
	}
	return GoalGeneral
}

func focusAndIntensity(goal PlanGoal, profile UserProfile) (focus, intensity string) {
	switch goal {
	case GoalEndurance:
		focus = "aerobic endurance"
		switch {
		case profile.RecentPerformance > 0.7:
			intensity = "high"
		case profile.RecentPerformance > 0.4:
			intensity = "moderate"
		default:
			intensity = "low"
		}
	case GoalSpeed:
		focus = "sprint speed"
		if profile.AverageSpeed > 40 {
			intensity = "high"
		} else {
			intensity = "moderate"
		}
	case GoalTechnique:
		focus = "stroke technique"
		intensity = "low"
	default:
		focus = "general fitness"
		intensity = "moderate"
	}
	return focus, intensity
}

var swimPrescriptions = map[PlanGoal]map[Difficulty]string{
	GoalEndurance: {
		DifficultyBeginner:     "5x100m intervals, 1 min rest",
		DifficultyIntermediate: "5x200m intervals, 1 min rest",
		DifficultyAdvanced:     "4x400m intervals, 45 sec rest",
	},
	GoalSpeed: {
		DifficultyBeginner:     "6x25m sprints, 2 min rest",
		DifficultyIntermediate: "8x50m sprints, 2 min rest",
		DifficultyAdvanced:     "10x50m sprints, 90 sec rest",
	},
	GoalTechnique: {
		DifficultyBeginner:     "4x50m drill sets, focus on catch",
		DifficultyIntermediate: "6x50m drill sets with fins",
		DifficultyAdvanced:     "8x100m drill and swim alternation",
	},
	GoalGeneral: {
		DifficultyBeginner:     "20 min free swim",
		DifficultyIntermediate: "30 min free swim",
		DifficultyAdvanced:     "45 min free swim",
	},
}

func swimTraining(goal PlanGoal, difficulty Difficulty) string {
	return swimPrescriptions[goal][difficulty]
}

func drylandTraining(goal PlanGoal) string {
	switch goal {
	case GoalEndurance:
		return "planks + burpees"
	case GoalSpeed:
		return "jump squats + push-ups"
	case GoalTechnique:
		return "shoulder mobility + band work"
	default:
		return "stretching + core"
	}
}

func durationOf(req PlanRequest, difficulty Difficulty) int {
	if req.Duration > 0 {
		return req.Duration
	}
	switch difficulty {
	case DifficultyAdvanced:
		return 60
	case DifficultyIntermediate:
		return 45
	default:
		return 30
	}
}
