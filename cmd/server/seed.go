package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/urfave/cli/v2"

	"Screams/internal/core/screams"
)

var seedHandles = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
	"jennifer_lee", "william_martinez", "amanda_johnson", "daniel_brown",
}

var seedScreams = []string{
	"Anyone else think the new bike lanes downtown are actually great?",
	"Hot take: pineapple belongs on pizza and I will not be taking questions.",
	"Just finished my first marathon. My legs have filed a formal complaint.",
	"Why does every coffee shop play the same three songs?",
	"Reminder to drink water and back up your files.",
	"The sunset tonight was unreal. Go outside if you can.",
}

var seedComments = []string{
	"Absolutely agree!",
	"Couldn't have said it better myself.",
	"Strong disagree, but respect.",
	"This made my day.",
	"Source?",
	"Same here, honestly.",
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the store with sample screams for local development",
		Description: `Creates screams from a fixed cast of users, then adds random
comments and likes through the same service the API uses.`,
		Flags: append(storeFlags(),
			&cli.IntFlag{
				Name:  "screams",
				Usage: "Number of screams to create",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "max-comments",
				Usage: "Maximum comments per scream",
				Value: 5,
			},
			&cli.Int64Flag{
				Name:  "rand-seed",
				Usage: "Random seed for reproducible data",
				Value: 1,
			},
		),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			repo, closeStore, err := openStore(ctx.Context, cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			service := screams.NewService(repo, slog.Default())
			rng := rand.New(rand.NewSource(ctx.Int64("rand-seed")))

			stats, err := seed(ctx.Context, service, rng, ctx.Int("screams"), ctx.Int("max-comments"))
			if err != nil {
				return err
			}

			slog.Info("seed completed",
				"screams", stats.screams,
				"comments", stats.comments,
				"likes", stats.likes)
			return nil
		},
	}
}

type seedStats struct {
	screams  int
	comments int
	likes    int
}

func seed(ctx context.Context, service screams.Service, rng *rand.Rand, count, maxComments int) (seedStats, error) {
	var stats seedStats

	for i := 0; i < count; i++ {
		author := seedAuthor(seedHandles[rng.Intn(len(seedHandles))])
		scream, err := service.CreateScream(ctx, author, screams.CreateScreamRequest{
			Body: seedScreams[rng.Intn(len(seedScreams))],
		})
		if err != nil {
			return stats, fmt.Errorf("failed to create scream: %w", err)
		}
		stats.screams++

		for c := rng.Intn(maxComments + 1); c > 0; c-- {
			commenter := seedAuthor(seedHandles[rng.Intn(len(seedHandles))])
			_, err := service.CommentOnScream(ctx, commenter, scream.ID, screams.CreateCommentRequest{
				Body: seedComments[rng.Intn(len(seedComments))],
			})
			if err != nil {
				return stats, fmt.Errorf("failed to comment on scream: %w", err)
			}
			stats.comments++
		}

		// Each handle likes at most once; Perm keeps the likers distinct
		for _, idx := range rng.Perm(len(seedHandles))[:rng.Intn(len(seedHandles)/2+1)] {
			if _, err := service.LikeScream(ctx, seedAuthor(seedHandles[idx]), scream.ID); err != nil {
				return stats, fmt.Errorf("failed to like scream: %w", err)
			}
			stats.likes++
		}
	}

	return stats, nil
}

func seedAuthor(handle string) screams.Author {
	return screams.Author{
		Handle:   handle,
		ImageURL: "https://avatars.example/" + handle + ".png",
	}
}
