package command

import (
	"context"
	"sort"
	"strings"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// In-memory fakes for the repository interfaces. They mirror the storage
// semantics the handlers rely on: not-found sentinels, the XP ledger unique
// constraint and feed ordering.

type fakeContentRepo struct {
	items map[string]*content.VideoContent
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: make(map[string]*content.VideoContent)}
}

func (r *fakeContentRepo) Create(_ context.Context, vc *content.VideoContent) error {
	cp := *vc
	r.items[vc.ID] = &cp
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id string) (*content.VideoContent, error) {
	vc, ok := r.items[id]
	if !ok {
		return nil, shared.ErrContentNotFound
	}
	cp := *vc
	return &cp, nil
}

func (r *fakeContentRepo) Update(_ context.Context, vc *content.VideoContent) error {
	if _, ok := r.items[vc.ID]; !ok {
		return shared.ErrContentNotFound
	}
	cp := *vc
	r.items[vc.ID] = &cp
	return nil
}

func (r *fakeContentRepo) ListByCreator(_ context.Context, creatorID string) ([]*content.VideoContent, error) {
	var out []*content.VideoContent
	for _, vc := range r.items {
		if vc.CreatorID == creatorID {
			cp := *vc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeContentRepo) ListFeedPage(_ context.Context, filter content.FeedFilter, after *content.FeedKey, limit int) ([]*content.VideoContent, error) {
	var all []*content.VideoContent
	for _, vc := range r.items {
		if vc.Status != content.StatusPublished || vc.PublishedAt == nil {
			continue
		}
		if vc.Language != filter.Language || vc.Level != filter.Level {
			continue
		}
		cp := *vc
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.PublishedAt.Equal(*b.PublishedAt) {
			return a.PublishedAt.After(*b.PublishedAt)
		}
		return strings.Compare(a.ID, b.ID) > 0
	})

	start := 0
	if after != nil {
		for i, vc := range all {
			if vc.PublishedAt.Equal(after.PublishedAt) && vc.ID == after.ID {
				start = i + 1
				break
			}
			if vc.PublishedAt.Before(after.PublishedAt) {
				start = i
				break
			}
			start = i + 1
		}
	}

	if start >= len(all) {
		return nil, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

type fakeQuizRepo struct {
	byContent map[string]*content.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{byContent: make(map[string]*content.Quiz)}
}

func (r *fakeQuizRepo) Upsert(_ context.Context, quiz *content.Quiz) error {
	cp := *quiz
	r.byContent[quiz.ContentID] = &cp
	return nil
}

func (r *fakeQuizRepo) GetByContentID(_ context.Context, contentID string) (*content.Quiz, error) {
	q, ok := r.byContent[contentID]
	if !ok {
		return nil, shared.ErrQuizNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuizRepo) ExistsByContentID(_ context.Context, contentID string) (bool, error) {
	_, ok := r.byContent[contentID]
	return ok, nil
}

type ledgerKey struct {
	userID    string
	contentID string
	date      string
}

type fakeProgressRepo struct {
	attempts []*progress.QuizAttempt
	ledger   map[ledgerKey]*progress.XPEvent
	streaks  map[string]*progress.Streak
	totals   map[string]int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		ledger:  make(map[ledgerKey]*progress.XPEvent),
		streaks: make(map[string]*progress.Streak),
		totals:  make(map[string]int),
	}
}

func (r *fakeProgressRepo) CreateAttempt(_ context.Context, attempt *progress.QuizAttempt) error {
	cp := *attempt
	r.attempts = append(r.attempts, &cp)
	return nil
}

func (r *fakeProgressRepo) RecordXPEvent(_ context.Context, event *progress.XPEvent) error {
	key := ledgerKey{event.UserID, event.ContentID, event.AwardedDateUTC}
	if _, exists := r.ledger[key]; exists {
		return shared.ErrXPAlreadyAwarded
	}
	cp := *event
	r.ledger[key] = &cp
	return nil
}

func (r *fakeProgressRepo) GetStreak(_ context.Context, userID string) (*progress.Streak, error) {
	s, ok := r.streaks[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	if s.LastActiveDate != nil {
		d := *s.LastActiveDate
		cp.LastActiveDate = &d
	}
	return &cp, nil
}

func (r *fakeProgressRepo) SaveStreak(_ context.Context, streak *progress.Streak) error {
	cp := *streak
	if streak.LastActiveDate != nil {
		d := *streak.LastActiveDate
		cp.LastActiveDate = &d
	}
	r.streaks[streak.UserID] = &cp
	return nil
}

func (r *fakeProgressRepo) GetRecentAttempts(_ context.Context, userID string, limit int) ([]*progress.QuizAttempt, error) {
	var out []*progress.QuizAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProgressRepo) AddTotalXP(_ context.Context, userID string, amount int) (int, error) {
	r.totals[userID] += amount
	return r.totals[userID], nil
}

func (r *fakeProgressRepo) GetTotalXP(_ context.Context, userID string) (int, error) {
	return r.totals[userID], nil
}

type fakeLearnerRepo struct {
	profiles map[string]*learner.Profile
}

func newFakeLearnerRepo() *fakeLearnerRepo {
	return &fakeLearnerRepo{profiles: make(map[string]*learner.Profile)}
}

func (r *fakeLearnerRepo) Upsert(_ context.Context, profile *learner.Profile) error {
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeLearnerRepo) GetByUserID(_ context.Context, userID string) (*learner.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

// passthroughUoW runs the function directly, without transactional semantics.
type passthroughUoW struct{}

func (passthroughUoW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// capturingPublisher records every published event.
type capturingPublisher struct {
	events []shared.Event
}

func (p *capturingPublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) byType(t shared.EventType) []shared.Event {
	var out []shared.Event
	for _, e := range p.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}
