package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathsl/ranya-front-sub000/internal/cache"
	"github.com/fathsl/ranya-front-sub000/internal/config"
	"github.com/fathsl/ranya-front-sub000/internal/model"
	"github.com/fathsl/ranya-front-sub000/internal/repository"
)

// Seeds a handful of completed attempts into the archive and score board so
// the trainer leaderboard has data during local development.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	archive := repository.NewAttemptArchive(client.Database(cfg.MongoDatabase))
	scores := cache.NewScoreBoard(rdb)

	evaluationID := "ev_demo"
	now := time.Now()

	seeds := []struct {
		participantID   string
		participantName string
		percentage      int
	}{
		{"p_demo1", "Alex Martin", 92},
		{"p_demo2", "Nour Haddad", 75},
		{"p_demo3", "Sam Keller", 58},
		{"p_demo4", "Rita Oduya", 41},
	}

	for i, s := range seeds {
		passed := s.percentage >= 70
		cert := model.CertificateNone
		if passed {
			cert = model.CertificateIssued
		}

		record := &model.AttemptRecord{
			AttemptID:       fmt.Sprintf("a_demo%d", i+1),
			EvaluationID:    evaluationID,
			EvaluationTitle: "Demo Safety Evaluation",
			ParticipantID:   s.participantID,
			ParticipantName: s.participantName,
			Result: model.Result{
				EarnedPoints: s.percentage,
				TotalPoints:  100,
				Percentage:   s.percentage,
				Passed:       passed,
			},
			AnsweredCount: 10,
			QuestionCount: 10,
			Certificate:   cert,
			StartedAt:     now.Add(-30 * time.Minute),
			CompletedAt:   now.Add(-10 * time.Minute),
		}

		if err := archive.Create(ctx, record); err != nil {
			log.Fatalf("Failed to archive attempt %s: %v", record.AttemptID, err)
		}
		if err := scores.RecordScore(ctx, evaluationID, s.participantID, s.percentage); err != nil {
			log.Fatalf("Failed to record score for %s: %v", s.participantID, err)
		}
		fmt.Printf("Seeded attempt %s (%s, %d%%)\n", record.AttemptID, s.participantName, s.percentage)
	}

	fmt.Println("Done.")
}
