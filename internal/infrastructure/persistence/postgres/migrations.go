// Package postgres implements PostgreSQL persistence layer for LinguaClip.
package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_learners",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_content",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_progress",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE LEARNERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create learner profile and progress tables
-- Version: 001

-- Learner profile: what the learner studies. Created at onboarding,
-- required for the feed.
CREATE TABLE IF NOT EXISTS learner_profiles (
    user_id UUID PRIMARY KEY,
    target_language VARCHAR(5) NOT NULL,
    level VARCHAR(2) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_target_language CHECK (target_language IN ('en', 'es', 'fr')),
    CONSTRAINT valid_level CHECK (level IN ('A1', 'A2', 'B1', 'B2', 'C1', 'C2'))
);

-- Learner progress: accumulated XP and streak state. Kept separate from the
-- profile so progress accrues even before onboarding.
CREATE TABLE IF NOT EXISTS learner_progress (
    user_id UUID PRIMARY KEY,
    total_xp INTEGER NOT NULL DEFAULT 0,
    current_streak INTEGER NOT NULL DEFAULT 0,
    best_streak INTEGER NOT NULL DEFAULT 0,
    last_active_date DATE,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_total_xp CHECK (total_xp >= 0),
    CONSTRAINT valid_current_streak CHECK (current_streak >= 0),
    CONSTRAINT valid_best_streak CHECK (best_streak >= 0)
);
`

const migration001Down = `
DROP TABLE IF EXISTS learner_progress;
DROP TABLE IF EXISTS learner_profiles;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE CONTENT
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create video content, quiz and question tables
-- Version: 002

CREATE TABLE IF NOT EXISTS video_contents (
    id UUID PRIMARY KEY,
    creator_id UUID NOT NULL,
    language VARCHAR(5) NOT NULL,
    level VARCHAR(2) NOT NULL,
    title VARCHAR(200) NOT NULL,
    caption TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL DEFAULT '',
    thumbnail_url TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'draft',
    published_at TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_status CHECK (status IN ('draft', 'published')),
    CONSTRAINT valid_language CHECK (language IN ('en', 'es', 'fr')),
    CONSTRAINT valid_content_level CHECK (level IN ('A1', 'A2', 'B1', 'B2', 'C1', 'C2')),
    -- Published rows always carry a publish timestamp
    CONSTRAINT published_has_timestamp CHECK (status != 'published' OR published_at IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_video_contents_creator ON video_contents(creator_id, created_at DESC);

-- Keyset feed index: (published_at DESC, id DESC) within a language/level slice.
CREATE INDEX IF NOT EXISTS idx_video_contents_feed
    ON video_contents(language, level, published_at DESC, id DESC)
    WHERE status = 'published';

-- Quiz attached to a video, 1:1.
CREATE TABLE IF NOT EXISTS quizzes (
    id UUID PRIMARY KEY,
    content_id UUID NOT NULL REFERENCES video_contents(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    UNIQUE(content_id)
);

CREATE TABLE IF NOT EXISTS quiz_questions (
    id UUID PRIMARY KEY,
    quiz_id UUID NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    prompt TEXT NOT NULL,
    options JSONB NOT NULL,
    correct_option_index INTEGER NOT NULL,
    position INTEGER NOT NULL,

    CONSTRAINT valid_correct_index CHECK (correct_option_index >= 0),
    CONSTRAINT valid_position CHECK (position >= 0),
    UNIQUE(quiz_id, position)
);

CREATE INDEX IF NOT EXISTS idx_quiz_questions_quiz ON quiz_questions(quiz_id, position);
`

const migration002Down = `
DROP TABLE IF EXISTS quiz_questions;
DROP TABLE IF EXISTS quizzes;
DROP TABLE IF EXISTS video_contents;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create quiz attempt and XP ledger tables
-- Version: 003

-- Every attempt is recorded, including repeats that award no XP.
CREATE TABLE IF NOT EXISTS quiz_attempts (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    content_id UUID NOT NULL REFERENCES video_contents(id) ON DELETE CASCADE,
    score_percent INTEGER NOT NULL,
    correct_count INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    xp_awarded INTEGER NOT NULL DEFAULT 0,
    completed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_score CHECK (score_percent >= 0 AND score_percent <= 100),
    CONSTRAINT valid_counts CHECK (correct_count >= 0 AND correct_count <= total_questions),
    CONSTRAINT valid_xp_awarded CHECK (xp_awarded >= 0)
);

CREATE INDEX IF NOT EXISTS idx_quiz_attempts_user ON quiz_attempts(user_id, completed_at DESC);
CREATE INDEX IF NOT EXISTS idx_quiz_attempts_content ON quiz_attempts(content_id);

-- XP ledger. The unique constraint is the idempotency anchor: one award
-- per user, per video, per UTC day.
CREATE TABLE IF NOT EXISTS xp_events (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    content_id UUID NOT NULL REFERENCES video_contents(id) ON DELETE CASCADE,
    amount INTEGER NOT NULL,
    reason VARCHAR(50) NOT NULL,
    awarded_date_utc DATE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_amount CHECK (amount > 0),
    UNIQUE(user_id, content_id, awarded_date_utc)
);

CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at DESC);
`

const migration003Down = `
DROP TABLE IF EXISTS xp_events;
DROP TABLE IF EXISTS quiz_attempts;
`
