package home

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"checkdev-site/internal/category"
	"checkdev-site/internal/interview"
	"checkdev-site/internal/logger"
	"checkdev-site/internal/profile"
	"checkdev-site/internal/topic"
	"checkdev-site/internal/user"
	"checkdev-site/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CategoryQuery interface {
	GetMostPopular(ctx context.Context) ([]category.Category, error)
}

type TopicQuery interface {
	GetByCategory(ctx context.Context, categoryID int) ([]topic.Topic, error)
}

type InterviewQuery interface {
	GetByType(ctx context.Context, interviewType int) ([]interview.Interview, error)
}

type ProfileQuery interface {
	GetProfileByID(ctx context.Context, id int) (utils.Optional[profile.Profile], error)
}

type AuthQuery interface {
	GetUserInfo(ctx context.Context, userID int) (utils.Optional[user.UserInfo], error)
}

type NotificationQuery interface {
	GetSubscribedCategories(ctx context.Context, userID int) ([]int, error)
}

// Deps are the read-only services the home page is built from.
// Notifications may be nil.
type Deps struct {
	Categories    CategoryQuery
	Topics        TopicQuery
	Interviews    InterviewQuery
	Profiles      ProfileQuery
	Auth          AuthQuery
	Notifications NotificationQuery
}

type Options struct {
	NewInterviewType int
	HomeLabel        string
	// QueryTimeout bounds one BuildHomeView call; zero means no deadline.
	QueryTimeout time.Duration
	// MaxParallel caps concurrent lookups within one fan-out.
	MaxParallel int
}

const (
	defaultHomeLabel   = "Home"
	defaultMaxParallel = 8
)

var errMissingDeps = errors.New("home: categories, topics, interviews, profiles and auth queries are required")

// Aggregator assembles the home page view model. It holds no mutable state
// and is safe for concurrent use.
type Aggregator struct {
	deps Deps
	opts Options
}

func NewAggregator(deps Deps, opts Options) (*Aggregator, error) {
	if deps.Categories == nil || deps.Topics == nil || deps.Interviews == nil ||
		deps.Profiles == nil || deps.Auth == nil {
		return nil, errMissingDeps
	}
	if opts.NewInterviewType == 0 {
		opts.NewInterviewType = interview.TypeNew
	}
	if opts.HomeLabel == "" {
		opts.HomeLabel = defaultHomeLabel
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = defaultMaxParallel
	}
	return &Aggregator{deps: deps, opts: opts}, nil
}

// BuildHomeView runs the category, interview and user lookups concurrently
// and joins them into one view model. Any failed lookup fails the whole
// call and no view model is returned.
func (a *Aggregator) BuildHomeView(ctx context.Context, req RequestContext) (*ViewModel, error) {
	if a.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.QueryTimeout)
		defer cancel()
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "aggregator"),
		zap.String("method", "BuildHomeView"),
	)

	var (
		categories    []category.Category
		groups        []TopicGroup
		interviews    []interview.Interview
		profiles      map[int]utils.Optional[profile.Profile]
		userInfo      = utils.None[user.UserInfo]()
		subscriptions []int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		categories, groups, err = a.loadCategories(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		interviews, profiles, err = a.loadInterviews(gctx)
		return err
	})

	if userID, ok := req.UserID.Get(); ok {
		g.Go(func() error {
			var err error
			userInfo, err = a.deps.Auth.GetUserInfo(gctx, userID)
			if err != nil {
				return fmt.Errorf("load user info: %w", err)
			}
			return nil
		})

		if a.deps.Notifications != nil {
			g.Go(func() error {
				var err error
				subscriptions, err = a.deps.Notifications.GetSubscribedCategories(gctx, userID)
				if err != nil {
					return fmt.Errorf("load subscriptions: %w", err)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		log.Error("failed to build home view", zap.Error(err))
		return nil, err
	}

	canManage := false
	if info, ok := userInfo.Get(); ok {
		canManage = utils.HasRole(info.Roles, utils.RoleAdmin)
	}

	log.Debug("home view built",
		zap.Int("categories", len(categories)),
		zap.Int("interviews", len(interviews)),
		zap.Int("profiles", len(profiles)),
		zap.Bool("authenticated", userInfo.IsPresent()),
	)

	return &ViewModel{
		Categories:    categories,
		Topics:        groups,
		Breadcrumbs:   a.breadcrumbs(),
		UserInfo:      userInfo,
		NewInterviews: interviews,
		Profiles:      profiles,
		Subscriptions: subscriptions,
		CanManage:     canManage,
	}, nil
}

func (a *Aggregator) breadcrumbs() []Breadcrumb {
	return []Breadcrumb{{Label: a.opts.HomeLabel, URL: "/"}}
}

// loadCategories fetches the popular categories and then the topics of each
// one, grouped in category order.
func (a *Aggregator) loadCategories(ctx context.Context) ([]category.Category, []TopicGroup, error) {
	categories, err := a.deps.Categories.GetMostPopular(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}

	groups := make([]TopicGroup, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.MaxParallel)

	for i, c := range categories {
		g.Go(func() error {
			topics, err := a.deps.Topics.GetByCategory(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("load topics of category %d: %w", c.ID, err)
			}
			groups[i] = TopicGroup{Category: c, Topics: topics}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return categories, groups, nil
}

// loadInterviews fetches the interviews of the configured type and looks up
// each distinct submitter profile once.
func (a *Aggregator) loadInterviews(ctx context.Context) ([]interview.Interview, map[int]utils.Optional[profile.Profile], error) {
	interviews, err := a.deps.Interviews.GetByType(ctx, a.opts.NewInterviewType)
	if err != nil {
		return nil, nil, fmt.Errorf("load interviews: %w", err)
	}

	ids := make([]int, 0, len(interviews))
	for _, i := range interviews {
		ids = append(ids, i.SubmitterID)
	}
	ids = utils.DistinctInts(ids)

	var mu sync.Mutex
	profiles := make(map[int]utils.Optional[profile.Profile], len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.MaxParallel)

	for _, id := range ids {
		g.Go(func() error {
			p, err := a.deps.Profiles.GetProfileByID(gctx, id)
			if err != nil {
				return fmt.Errorf("load profile %d: %w", id, err)
			}
			mu.Lock()
			profiles[id] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return interviews, profiles, nil
}
