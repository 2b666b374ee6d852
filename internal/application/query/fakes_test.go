package query

import (
	"context"
	"sort"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// In-memory fakes mirroring the storage contracts the query handlers use.

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

// feedLess reports whether a comes before b in feed order
// (published_at DESC, id DESC).
func feedLess(a, b *content.VideoContent) bool {
	if !a.PublishedAt.Equal(*b.PublishedAt) {
		return a.PublishedAt.After(*b.PublishedAt)
	}
	return a.ID > b.ID
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
	sort.Slice(all, func(i, j int) bool { return feedLess(all[i], all[j]) })

	var out []*content.VideoContent
	for _, vc := range all {
		if after != nil {
			// Keep only rows strictly after the key in feed order.
			afterKey := vc.PublishedAt.Before(after.PublishedAt) ||
				(vc.PublishedAt.Equal(after.PublishedAt) && vc.ID < after.ID)
			if !afterKey {
				continue
			}
		}
		out = append(out, vc)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	quizzes map[string]*content.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[string]*content.Quiz)}
}

func (r *fakeQuizRepo) Upsert(_ context.Context, quiz *content.Quiz) error {
	cp := *quiz
	r.quizzes[quiz.ContentID] = &cp
	return nil
}

func (r *fakeQuizRepo) GetByContentID(_ context.Context, contentID string) (*content.Quiz, error) {
	quiz, ok := r.quizzes[contentID]
	if !ok {
		return nil, shared.ErrQuizNotFound
	}
	cp := *quiz
	return &cp, nil
}

func (r *fakeQuizRepo) ExistsByContentID(_ context.Context, contentID string) (bool, error) {
	_, ok := r.quizzes[contentID]
	return ok, nil
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

type fakeProgressRepo struct {
	attempts []*progress.QuizAttempt
	streaks  map[string]*progress.Streak
	totals   map[string]int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		streaks: make(map[string]*progress.Streak),
		totals:  make(map[string]int),
	}
}

func (r *fakeProgressRepo) CreateAttempt(_ context.Context, attempt *progress.QuizAttempt) error {
	cp := *attempt
	r.attempts = append(r.attempts, &cp)
	return nil
}

func (r *fakeProgressRepo) RecordXPEvent(_ context.Context, _ *progress.XPEvent) error {
	return nil
}

func (r *fakeProgressRepo) GetStreak(_ context.Context, userID string) (*progress.Streak, error) {
	s, ok := r.streaks[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeProgressRepo) SaveStreak(_ context.Context, streak *progress.Streak) error {
	cp := *streak
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
