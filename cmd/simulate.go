/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingokit/internal/app"
	"github.com/eslsoft/lingokit/internal/entity"
)

var (
	simUser     string
	simSessions int
	simSeed     int64
)

// simulateCmd feeds a seeded synthetic learner through the full engine
// pipeline and prints what the core derives at each adaptation cycle.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a deterministic learner simulation through the engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.Initialize()
		if err != nil {
			return err
		}
		return runSimulation(container, simUser, simSessions, simSeed)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simUser, "user", "sim-learner", "user id for the simulated learner")
	simulateCmd.Flags().IntVar(&simSessions, "sessions", 20, "number of sessions to simulate")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 42, "random seed")
}

func runSimulation(container *app.Container, userID string, sessions int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	coord := container.Coordinator
	log := container.Logger

	profile := &entity.UserProfile{
		UserID:           userID,
		Goals:            []string{"conversation", "travel"},
		Interests:        []string{"travel", "food"},
		EngagementScore:  0.7,
		ConfidenceScore:  0.6,
		StudyStreakDays:  5,
		SessionsLastWeek: 4,
	}

	lessonTypes := []string{"vocabulary", "grammar", "listening", "conversation"}
	start := time.Now().Add(-time.Duration(sessions) * 24 * time.Hour)

	for i := 0; i < sessions; i++ {
		// Accuracy drifts upward with noise so the difficulty loop has
		// something to react to.
		progress := float64(i) / float64(sessions)
		summary := entity.SessionSummary{
			LessonType: lessonTypes[rng.Intn(len(lessonTypes))],
			Topic:      profile.Interests[rng.Intn(len(profile.Interests))],
			Minutes:    20 + rng.Float64()*20,
			Accuracy:   entity.Clamp01(0.55 + 0.35*progress + (rng.Float64()-0.5)*0.1),
			Engagement: entity.Clamp01(0.6 + (rng.Float64()-0.5)*0.2),
			Completion: entity.Clamp01(0.8 + rng.Float64()*0.2),
			StartedAt:  start.Add(time.Duration(i) * 24 * time.Hour),
		}
		if rng.Float64() < 0.3 {
			summary.Errors = []entity.SessionError{{Category: "grammar", Detail: "tense"}}
		}
		if err := coord.RecordSession(userID, summary); err != nil {
			return err
		}

		if (i+1)%5 == 0 {
			if err := coord.Tick(userID, profile); err != nil {
				return err
			}
			difficulty, err := coord.CurrentDifficulty(userID)
			if err != nil {
				return err
			}
			fmt.Printf("cycle %d: difficulty=%.2f\n", (i+1)/5, difficulty)
		}

		itemID := fmt.Sprintf("item-%d", i%6)
		quality := entity.RecallDifficult
		if summary.Accuracy > 0.75 {
			quality = entity.RecallPerfect
		}
		if err := coord.ReviewOutcome(userID, itemID, quality); err != nil {
			return err
		}
	}

	recs, err := coord.RecommendLessons(userID, profile, simulationCatalog(), entity.RecommendOptions{Limit: 5})
	if err != nil {
		return err
	}
	fmt.Println("\nrecommended lessons:")
	for _, r := range recs {
		fmt.Printf("  %-20s score=%.3f  %s\n", r.Item.ItemID(), r.Score, r.Rationale)
	}

	if schedule, err := coord.StudySchedule(userID); err == nil && schedule != nil {
		fmt.Println("\nstudy schedule:")
		for _, s := range schedule.Sessions {
			fmt.Printf("  %s %02d:00-%02d:00  %.0f min at difficulty %.2f\n",
				s.Window.Weekday, s.Window.StartHour, s.Window.EndHour, s.Minutes, s.Difficulty)
		}
	}

	analytics, err := coord.LearningAnalytics(userID)
	if err != nil {
		return err
	}
	fmt.Printf("\nanalytics: trend=%s expected_accuracy=%.2f cognitive_load=%.2f\n",
		analytics.Prediction.Trend, analytics.Prediction.ExpectedAccuracy, analytics.CognitiveLoad.Average)
	for _, risk := range analytics.RiskFactors {
		fmt.Printf("  risk: %s (%.2f) %s\n", risk.Name, risk.Severity, risk.Description)
	}

	due, err := coord.DueReviews(userID, 10)
	if err != nil {
		return err
	}
	fmt.Printf("\ndue reviews: %d\n", len(due))

	log.WithField("user", userID).WithField("sessions", sessions).Info("simulation complete")
	return nil
}

func simulationCatalog() []entity.Lesson {
	return []entity.Lesson{
		{ID: "travel-basics", Title: "Travel Basics", Type: "vocabulary", Topics: []string{"travel"}, Skills: []string{"vocabulary"}, Difficulty: 0.3, Minutes: 15, CulturalRelevance: 0.6, EngagementHistory: 0.7},
		{ID: "ordering-food", Title: "Ordering Food", Type: "conversation", Topics: []string{"food"}, Skills: []string{"conversation"}, Difficulty: 0.4, Minutes: 20, CulturalRelevance: 0.8, EngagementHistory: 0.8},
		{ID: "past-tense", Title: "Past Tense", Type: "grammar", Topics: []string{"grammar"}, Skills: []string{"grammar"}, Difficulty: 0.5, Minutes: 25, CulturalRelevance: 0.3, EngagementHistory: 0.5},
		{ID: "airport-dialogue", Title: "Airport Dialogue", Type: "listening", Topics: []string{"travel"}, Skills: []string{"listening"}, Prerequisites: []string{"travel-basics"}, Difficulty: 0.6, Minutes: 20, CulturalRelevance: 0.5, EngagementHistory: 0.6},
		{ID: "idioms-daily", Title: "Everyday Idioms", Type: "vocabulary", Topics: []string{"culture"}, Skills: []string{"vocabulary"}, Difficulty: 0.7, Minutes: 15, CulturalRelevance: 0.9, EngagementHistory: 0.7},
		{ID: "debate-practice", Title: "Debate Practice", Type: "conversation", Topics: []string{"opinion"}, Skills: []string{"conversation"}, Prerequisites: []string{"ordering-food"}, Difficulty: 0.85, Minutes: 30, CulturalRelevance: 0.4, EngagementHistory: 0.6},
	}
}
