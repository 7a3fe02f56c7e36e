package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/factory"
	"github.com/agora-dev/agora/internal/storage/pg"
)

var channels = []factory.ChannelAttrs{
	{Name: "Go", Slug: "go"},
	{Name: "Databases", Slug: "databases"},
	{Name: "Off topic", Slug: "off-topic"},
}

type Storage interface {
	factory.Storage
	ChannelBySlug(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error)
}

type options struct {
	users      int
	threads    int
	maxReplies int
}

func (o options) validate() error {
	if o.users < 1 {
		return fmt.Errorf("-users should be at least 1, got %d", o.users)
	}
	if o.threads < 0 {
		return fmt.Errorf("-threads should not be negative, got %d", o.threads)
	}
	if o.maxReplies < 0 {
		return fmt.Errorf("-max_replies should not be negative, got %d", o.maxReplies)
	}
	return nil
}

func main() {
	var configFolder string
	var opts options
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.IntVar(&opts.users, "users", 5, "number of users to create")
	flag.IntVar(&opts.threads, "threads", 20, "number of threads to create")
	flag.IntVar(&opts.maxReplies, "max_replies", 8, "upper bound of replies per thread")
	flag.Parse()
	if err := opts.validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	cfg := config.MustLoad(configFolder)
	storage, err := pg.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer storage.Cleanup()

	migrator, err := pg.NewMigrator(storage.DB())
	if err != nil {
		log.Fatalf("Failed to init migrator: %v", err)
	}
	if err := migrator.Upgrade(); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seed(context.Background(), storage, opts); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	fmt.Println("=================================================")
	fmt.Printf("  Seeded %d users, %d channels, %d threads\n", opts.users, len(channels), opts.threads)
	fmt.Printf("  Every user's password is %q\n", factory.DefaultPassword)
	fmt.Println("=================================================")
}

// seed is safe to run against an already seeded database: known channels are reused.
func seed(ctx context.Context, storage Storage, opts options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	f, err := factory.New(storage)
	if err != nil {
		return err
	}

	users := make([]*domain.User, 0, opts.users)
	for i := 0; i < opts.users; i++ {
		user, err := f.User(ctx, factory.UserAttrs{})
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	created := make([]*domain.Channel, 0, len(channels))
	for _, attrs := range channels {
		channel, err := channelFor(ctx, storage, f, attrs)
		if err != nil {
			return err
		}
		created = append(created, channel)
	}

	for i := 0; i < opts.threads; i++ {
		thread, err := f.Thread(ctx, factory.ThreadAttrs{
			User:    users[rand.Intn(len(users))],
			Channel: created[rand.Intn(len(created))],
		})
		if err != nil {
			return err
		}
		for j := rand.Intn(opts.maxReplies + 1); j > 0; j-- {
			if _, err := f.Reply(ctx, factory.ReplyAttrs{User: users[rand.Intn(len(users))], Thread: thread}); err != nil {
				return err
			}
		}
	}
	return nil
}

func channelFor(ctx context.Context, storage Storage, f *factory.Factory, attrs factory.ChannelAttrs) (*domain.Channel, error) {
	existing, err := storage.ChannelBySlug(ctx, attrs.Slug)
	if err == nil {
		return &existing, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}
	return f.Channel(ctx, attrs)
}
